package ports

import "context"

// Fetcher retrieves upstream resources by absolute URL.
//
//go:generate mockgen -source=fetcher.go -destination=mocks/mock_fetcher.go -package=mocks
type Fetcher interface {
	// FetchText returns the response body of url as text.
	FetchText(ctx context.Context, url string) (string, error)

	// FetchBytes returns the complete response body of url.
	FetchBytes(ctx context.Context, url string) ([]byte, error)
}
