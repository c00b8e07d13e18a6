package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/cwaimg/internal/adapters/config"
	"go.trai.ch/cwaimg/internal/core/domain"
	"go.trai.ch/cwaimg/internal/core/ports"
	"go.trai.ch/cwaimg/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

var _ ports.ConfigLoader = (*config.Loader)(nil)

func writeTaskfile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tasks.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoader_Load(t *testing.T) {
	path := writeTaskfile(t, `version: "1"
tasks:
  - name: lightning
    pattern: "L_"
    list: /Data/js/obs_img/Observe_lightning.js
    dir: /Data/lightning/
  - name: temperature
    pattern: "T_"
    list: /Data/js/temperature.js
    dir: /Data/temperature/
`)

	tasks, err := config.NewLoader(nil).Load(path)
	require.NoError(t, err)

	assert.Equal(t, []domain.CustomTask{
		{Name: "lightning", Pattern: "L_", ListPath: "/Data/js/obs_img/Observe_lightning.js", ImageDir: "/Data/lightning/"},
		{Name: "temperature", Pattern: "T_", ListPath: "/Data/js/temperature.js", ImageDir: "/Data/temperature/"},
	}, tasks)
}

func TestLoader_Load_FeedsRegistry(t *testing.T) {
	path := writeTaskfile(t, `version: "1"
tasks:
  - name: lightning
    pattern: "L_"
`)

	tasks, err := config.NewLoader(nil).Load(path)
	require.NoError(t, err)

	_, err = domain.BuildRegistry(domain.RegistryConfig{Custom: tasks})
	require.ErrorIs(t, err, domain.ErrCustomTaskIncomplete)
}

func TestLoader_Load_Empty(t *testing.T) {
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	path := writeTaskfile(t, "version: \"1\"\n")
	log.EXPECT().Warn("task file defines no tasks", "path", path).Times(1)

	tasks, err := config.NewLoader(log).Load(path)
	require.NoError(t, err)
	assert.Empty(t, tasks)
}

func TestLoader_Load_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr error
	}{
		{name: "malformed yaml", content: "version: [\n", wantErr: domain.ErrConfigParseFailed},
		{name: "unknown field", content: "version: \"1\"\ntasks:\n  - name: a\n    url: /x\n", wantErr: domain.ErrConfigParseFailed},
		{name: "missing version", content: "tasks: []\n", wantErr: domain.ErrUnsupportedConfigVersion},
		{name: "future version", content: "version: \"2\"\n", wantErr: domain.ErrUnsupportedConfigVersion},
		{name: "empty file", content: "", wantErr: domain.ErrUnsupportedConfigVersion},
		{name: "entry with only a name", content: "version: \"1\"\ntasks:\n  - name: lightning\n", wantErr: domain.ErrCustomTaskIncomplete},
		{name: "empty entry", content: "version: \"1\"\ntasks:\n  - {}\n", wantErr: domain.ErrCustomTaskIncomplete},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := config.NewLoader(nil).Load(writeTaskfile(t, tt.content))
			require.ErrorIs(t, err, domain.ErrConfigInvalid)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestLoader_Load_MissingFile(t *testing.T) {
	_, err := config.NewLoader(nil).Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorIs(t, err, domain.ErrConfigInvalid)
	require.ErrorIs(t, err, domain.ErrConfigReadFailed)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
