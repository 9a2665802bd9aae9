package testutil

// Fixture paths relative to the repository root.
// These constants should be used instead of hardcoding paths in test files.
const (
	// SafariDownloads is a bookmark Safari stored for a file in ~/Downloads.
	SafariDownloads = "testdata/safari-downloads.bookmark"
)
