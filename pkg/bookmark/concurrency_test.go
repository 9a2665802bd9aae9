package bookmark_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/joshuapare/bookmarkkit/internal/testutil"
	"github.com/joshuapare/bookmarkkit/pkg/bookmark"
)

// TestConcurrentParse decodes the same buffer from many goroutines and reads
// one shared Bookmark concurrently.
func TestConcurrentParse(t *testing.T) {
	defer goleak.VerifyNone(t)

	blob := testutil.LoadFixture(t, testutil.SafariDownloads)
	shared, err := bookmark.Parse(blob)
	require.NoError(t, err)
	want, _ := shared.Path()

	const workers = 16
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	paths := make(chan string, workers*2)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			bm, err := bookmark.Parse(blob)
			if err != nil {
				errs <- err
				return
			}
			p, _ := bm.Path()
			paths <- p
			p, _ = shared.Path()
			paths <- p
		}()
	}
	wg.Wait()
	close(errs)
	close(paths)

	for err := range errs {
		require.NoError(t, err)
	}
	n := 0
	for p := range paths {
		require.Equal(t, want, p)
		n++
	}
	require.Equal(t, workers*2, n)
}
