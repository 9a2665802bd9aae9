package testutil

import (
	"os"
	"testing"
)

// LoadFixture reads a fixture from the repository testdata directory.
// Calls t.Skip if the fixture is not found.
//
// Example:
//
//	data := testutil.LoadFixture(t, testutil.SafariDownloads)
func LoadFixture(t testing.TB, relativePath string) []byte {
	t.Helper()

	path := resolveTestPath(t, relativePath)
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read fixture: %v", err)
	}
	return data
}

// resolveTestPath attempts to find the fixture by trying multiple path resolutions.
// This handles the fact that tests may be run from different working directories.
func resolveTestPath(t testing.TB, relativePath string) string {
	t.Helper()

	candidates := []string{
		relativePath,                  // Direct path (from repo root)
		"../" + relativePath,          // From a top-level package
		"../../" + relativePath,       // From package two levels deep (e.g., pkg/bookmark/)
		"../../../" + relativePath,    // From package three levels deep
		"../../../../" + relativePath, // From package four levels deep
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	t.Skipf("Fixture not found at any candidate path starting from: %s", relativePath)
	return "" // unreachable
}
