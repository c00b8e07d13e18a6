package commands_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/cwaimg/cmd/cwaimg/commands"
	"go.trai.ch/cwaimg/internal/app"
	"go.trai.ch/cwaimg/internal/build"
	"go.trai.ch/cwaimg/internal/core/domain"
	"go.trai.ch/cwaimg/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

type mockApp struct {
	runFunc    func(ctx context.Context, opts app.RunOptions) error
	statusFunc func(root string, w io.Writer) error
}

func (m *mockApp) Run(ctx context.Context, opts app.RunOptions) error {
	if m.runFunc != nil {
		return m.runFunc(ctx, opts)
	}
	return nil
}

func (m *mockApp) Status(root string, w io.Writer) error {
	if m.statusFunc != nil {
		return m.statusFunc(root, w)
	}
	return nil
}

func TestCommands_Root(t *testing.T) {
	t.Run("wires flags correctly", func(t *testing.T) {
		var captured app.RunOptions
		mock := &mockApp{
			runFunc: func(_ context.Context, opts app.RunOptions) error {
				captured = opts
				return nil
			},
		}

		cli := commands.New(mock, nil)
		cli.SetArgs([]string{
			"data",
			"--sat-img", "LCC_IR1",
			"--radar-cloud", "CV1_TW",
			"--radar-rain", "RCLY",
			"--custom", "L_", "--custom-list", "/Data/js/l.js", "--custom-dir", "/Data/l/",
			"-c", "tasks.yaml",
			"-i", "300",
			"--timeout", "5s",
			"-j", "3",
			"--host", "http://127.0.0.1:8080",
		})

		require.NoError(t, cli.Execute(context.Background()))
		assert.Equal(t, app.RunOptions{
			Root:       "data",
			Host:       "http://127.0.0.1:8080",
			Satellite:  "LCC_IR1",
			RadarCloud: "CV1_TW",
			RadarRain:  "RCLY",
			Custom:     domain.CustomTask{Pattern: "L_", ListPath: "/Data/js/l.js", ImageDir: "/Data/l/"},
			TaskFile:   "tasks.yaml",
			Interval:   300 * time.Second,
			Timeout:    5 * time.Second,
			Jobs:       3,
		}, captured)
	})

	t.Run("defaults", func(t *testing.T) {
		t.Setenv(domain.HostEnvVar, "")
		var captured app.RunOptions
		mock := &mockApp{
			runFunc: func(_ context.Context, opts app.RunOptions) error {
				captured = opts
				return nil
			},
		}

		cli := commands.New(mock, nil)
		cli.SetArgs([]string{"--sat-img", "S"})

		require.NoError(t, cli.Execute(context.Background()))
		assert.Equal(t, domain.DefaultRootDir, captured.Root)
		assert.Equal(t, domain.DefaultHost, captured.Host)
		assert.Equal(t, commands.DefaultTimeout, captured.Timeout)
		assert.Equal(t, 1, captured.Jobs)
		assert.Zero(t, captured.Interval)
	})

	t.Run("host from environment", func(t *testing.T) {
		t.Setenv(domain.HostEnvVar, "http://mirror.test")
		var captured app.RunOptions
		mock := &mockApp{
			runFunc: func(_ context.Context, opts app.RunOptions) error {
				captured = opts
				return nil
			},
		}

		cli := commands.New(mock, nil)
		cli.SetArgs([]string{"--radar-rain", "R"})

		require.NoError(t, cli.Execute(context.Background()))
		assert.Equal(t, "http://mirror.test", captured.Host)
	})

	t.Run("returns error on run failure", func(t *testing.T) {
		mock := &mockApp{
			runFunc: func(_ context.Context, _ app.RunOptions) error {
				return errors.New("simulated error")
			},
		}

		cli := commands.New(mock, nil)
		cli.SetArgs([]string{"--sat-img", "S"})
		cli.SetOutput(new(bytes.Buffer), new(bytes.Buffer))

		err := cli.Execute(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "simulated error")
	})

	t.Run("rejects extra arguments", func(t *testing.T) {
		cli := commands.New(&mockApp{}, nil)
		cli.SetArgs([]string{"a", "b"})
		cli.SetOutput(new(bytes.Buffer), new(bytes.Buffer))

		require.Error(t, cli.Execute(context.Background()))
	})
}

func TestCommands_LoggerFlags(t *testing.T) {
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().SetJSON(true)
	log.EXPECT().SetDebug(true)

	cli := commands.New(&mockApp{}, log)
	cli.SetArgs([]string{"--sat-img", "S", "-d", "--json"})

	require.NoError(t, cli.Execute(context.Background()))
}

func TestCommands_Status(t *testing.T) {
	var gotRoot string
	mock := &mockApp{
		statusFunc: func(root string, w io.Writer) error {
			gotRoot = root
			_, err := io.WriteString(w, "report\n")
			return err
		},
	}

	cli := commands.New(mock, nil)
	buf := new(bytes.Buffer)
	cli.SetOutput(buf, buf)
	cli.SetArgs([]string{"status", "data"})

	require.NoError(t, cli.Execute(context.Background()))
	assert.Equal(t, "data", gotRoot)
	assert.Equal(t, "report\n", buf.String())
}

func TestCommands_Version(t *testing.T) {
	cli := commands.New(&mockApp{}, nil)

	buf := new(bytes.Buffer)
	cli.SetOutput(buf, buf)
	cli.SetArgs([]string{"version"})

	require.NoError(t, cli.Execute(context.Background()))
	assert.Contains(t, buf.String(), "cwaimg version "+build.Version)
}
