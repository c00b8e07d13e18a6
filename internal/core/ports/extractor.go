package ports

// Extractor turns raw listing text into candidate filenames.
//
//go:generate mockgen -source=extractor.go -destination=mocks/mock_extractor.go -package=mocks
type Extractor interface {
	// Extract returns the filenames found in raw in source order.
	// It returns an empty slice when nothing is found.
	Extract(raw string) []string
}
