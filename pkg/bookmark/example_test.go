package bookmark_test

import (
	"errors"
	"fmt"

	"github.com/joshuapare/bookmarkkit/internal/testutil"
	"github.com/joshuapare/bookmarkkit/pkg/bookmark"
	"github.com/joshuapare/bookmarkkit/pkg/types"
)

func exampleBlob() []byte {
	b := testutil.NewBuilder()
	path := b.StringArray("Users", "alice", "Downloads", "report.pdf")
	vol := b.String("Macintosh HD")
	label := b.String("com.example.label")
	b.TOC(1,
		testutil.TOCEntry{Key: types.KeyTargetPath, Offset: path},
		testutil.TOCEntry{Key: types.KeyVolumeName, Offset: vol},
		testutil.TOCEntry{Key: types.CustomKeyFlag | types.Key(label), Offset: b.Int32(3)},
	)
	return b.Bytes()
}

// Example decodes a bookmark and reads its named fields.
func Example() {
	bm, err := bookmark.Parse(exampleBlob())
	if err != nil {
		fmt.Printf("Parse failed: %v\n", err)
		return
	}
	parts, _ := bm.PathComponents()
	vol, _ := bm.VolumeName()
	fmt.Println(parts[len(parts)-1])
	fmt.Println(vol)
	// Output:
	// report.pdf
	// Macintosh HD
}

// ExampleBookmark_GetCustom reads a custom key by name.
func ExampleBookmark_GetCustom() {
	bm, err := bookmark.Parse(exampleBlob())
	if err != nil {
		fmt.Printf("Parse failed: %v\n", err)
		return
	}
	v, ok := bm.GetCustom("com.example.label")
	if !ok {
		return
	}
	n, _ := v.AsInt()
	fmt.Println(n)
	// Output: 3
}

// ExampleParse_errors shows how to branch on fatal errors.
func ExampleParse_errors() {
	_, err := bookmark.Parse([]byte("alis"))
	switch {
	case errors.Is(err, bookmark.ErrTruncatedHeader):
		fmt.Println("truncated")
	case errors.Is(err, bookmark.ErrInvalidMagic):
		fmt.Println("not a bookmark")
	}
	// Output: truncated
}

// ExampleParseWithOptions decodes with strict limits and NFC names.
func ExampleParseWithOptions() {
	bm, err := bookmark.ParseWithOptions(exampleBlob(), bookmark.Options{
		Limits:           types.StrictLimits(),
		NormalizeUnicode: true,
	})
	if err != nil {
		fmt.Printf("Parse failed: %v\n", err)
		return
	}
	fmt.Println(bm.Len(), bm.Diagnostics().HasAnyIssues())
	// Output: 3 false
}
