package download_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/cwaimg/internal/core/domain"
	"go.trai.ch/cwaimg/internal/core/ports/mocks"
	"go.trai.ch/cwaimg/internal/engine/download"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	fetcher *mocks.MockFetcher
	storage *mocks.MockStorage
	logger  *mocks.MockLogger
	manager *download.Manager
}

func setup(t *testing.T) fixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	f := fixture{
		fetcher: mocks.NewMockFetcher(ctrl),
		storage: mocks.NewMockStorage(ctrl),
		logger:  mocks.NewMockLogger(ctrl),
	}
	f.manager = download.NewManager(f.fetcher, f.storage, f.logger)
	return f
}

func request(existing ...string) download.Request {
	return download.Request{
		Category: domain.CategorySatellite,
		ImageURL: "https://www.cwa.gov.tw/Data/satellite/a.png",
		Filename: "a.png",
		LocalDir: filepath.Join("images", domain.CategorySatellite),
		Existing: domain.NewLocalFileSet(existing...),
	}
}

func TestDownload_SkipsExisting(t *testing.T) {
	f := setup(t)
	f.logger.EXPECT().Debug("skipped a.png")

	res := f.manager.Download(context.Background(), request("a.png"))

	assert.Equal(t, domain.OutcomeSkipped, res.Outcome)
	assert.Equal(t, "a.png", res.Filename)
	assert.NoError(t, res.Err)
}

func TestDownload_SavesNewFile(t *testing.T) {
	f := setup(t)
	body := make([]byte, 1536)
	path := filepath.Join("images", domain.CategorySatellite, "a.png")

	gomock.InOrder(
		f.fetcher.EXPECT().FetchBytes(gomock.Any(), "https://www.cwa.gov.tw/Data/satellite/a.png").Return(body, nil),
		f.storage.EXPECT().Save(filepath.Join("images", domain.CategorySatellite), "a.png", body).Return(path, nil),
		f.logger.EXPECT().Info("saved " + path + " 1.50KB"),
	)

	res := f.manager.Download(context.Background(), request("b.png"))

	assert.Equal(t, domain.OutcomeDownloaded, res.Outcome)
	assert.Equal(t, path, res.Path)
	assert.Equal(t, int64(1536), res.Bytes)
	assert.NoError(t, res.Err)
}

func TestDownload_FetchFailure(t *testing.T) {
	f := setup(t)
	fetchErr := errors.Join(domain.ErrNetwork, domain.ErrUnexpectedStatus)

	f.fetcher.EXPECT().FetchBytes(gomock.Any(), gomock.Any()).Return(nil, fetchErr)
	f.logger.EXPECT().Error(gomock.Any()).Do(func(err error) {
		assert.ErrorIs(t, err, domain.ErrUnexpectedStatus)
	})

	res := f.manager.Download(context.Background(), request())

	assert.Equal(t, domain.OutcomeFailed, res.Outcome)
	require.Error(t, res.Err)
	assert.ErrorIs(t, res.Err, domain.ErrNetwork)
	assert.Contains(t, res.Err.Error(), "download image failed")
}

func TestDownload_SaveFailure(t *testing.T) {
	f := setup(t)
	saveErr := errors.Join(domain.ErrIO, domain.ErrLocalWriteFailed)

	f.fetcher.EXPECT().FetchBytes(gomock.Any(), gomock.Any()).Return([]byte("img"), nil)
	f.storage.EXPECT().Save(gomock.Any(), "a.png", []byte("img")).Return("", saveErr)
	f.logger.EXPECT().Error(gomock.Any())

	res := f.manager.Download(context.Background(), request())

	assert.Equal(t, domain.OutcomeFailed, res.Outcome)
	assert.ErrorIs(t, res.Err, domain.ErrLocalWriteFailed)
	assert.Zero(t, res.Bytes)
}

func TestDownload_CanceledBeforeStart(t *testing.T) {
	f := setup(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res := f.manager.Download(ctx, request())

	assert.Equal(t, domain.OutcomeCanceled, res.Outcome)
	assert.NoError(t, res.Err)
}

func TestDownload_CanceledDuringFetch(t *testing.T) {
	f := setup(t)
	ctx, cancel := context.WithCancel(context.Background())

	f.fetcher.EXPECT().FetchBytes(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, _ string) ([]byte, error) {
			cancel()
			return nil, ctx.Err()
		},
	)

	res := f.manager.Download(ctx, request())

	assert.Equal(t, domain.OutcomeCanceled, res.Outcome)
	assert.NoError(t, res.Err)
}

func TestDownload_TimeoutIsAFailure(t *testing.T) {
	f := setup(t)
	req := request()
	req.Timeout = time.Millisecond

	f.fetcher.EXPECT().FetchBytes(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, _ string) ([]byte, error) {
			_, ok := ctx.Deadline()
			assert.True(t, ok)
			<-ctx.Done()
			return nil, errors.Join(domain.ErrNetwork, ctx.Err())
		},
	)
	f.logger.EXPECT().Error(gomock.Any())

	res := f.manager.Download(context.Background(), req)

	assert.Equal(t, domain.OutcomeFailed, res.Outcome)
	assert.ErrorIs(t, res.Err, context.DeadlineExceeded)
}
