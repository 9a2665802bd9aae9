/*
Package bookmark decodes macOS Bookmark ("book") blobs, the binary alias
format stored in property lists such as Safari's Downloads.plist, login item
lists and .sfl2 files.

# Quick Start

	bm, err := bookmark.Parse(blob)
	if err != nil {
	    log.Fatal(err)
	}
	fmt.Println(bm.Path())

The caller extracts the blob from its container; this package never reads
files or property lists.

# Features

  - Header and chained table-of-contents parsing with cycle detection
  - Typed record decoding (strings, data, numbers, dates, UUIDs, URLs,
    arrays, dictionaries) with unknown tags preserved
  - Named accessors for the well-known keys
  - Generic access to every key, including custom keys by name
  - Bounded work on hostile input (depth, element and size limits)

# Error Handling

Decoding fails only for structural faults: a bad magic, a truncated header,
a cyclic or out-of-bounds TOC, or a top-level record outside the buffer.
Branch on them with errors.Is:

	bm, err := bookmark.Parse(blob)
	switch {
	case errors.Is(err, bookmark.ErrInvalidMagic):
	    // not a bookmark
	case errors.Is(err, bookmark.ErrOutOfBounds):
	    // truncated or corrupt
	}

Faults confined to one entry (a bad array element, nesting too deep, an
unexpected type for a named field) make that entry absent and are reported
through Diagnostics:

	for _, d := range bm.Diagnostics().Diagnostics {
	    fmt.Printf("%s %s at 0x%x: %s\n", d.Severity, d.Key, d.Offset, d.Issue)
	}

# Thread Safety

Parse keeps no state between calls and may be called concurrently. A
Bookmark is immutable and safe for concurrent readers.
*/
package bookmark
