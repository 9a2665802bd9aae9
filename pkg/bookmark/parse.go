package bookmark

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/joshuapare/bookmarkkit/internal/format"
	"github.com/joshuapare/bookmarkkit/pkg/types"
)

// Parse decodes a bookmark blob with DefaultOptions.
//
// Example:
//
//	bm, err := bookmark.Parse(blob)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if path, ok := bm.Path(); ok {
//	    fmt.Println(path)
//	}
func Parse(b []byte) (*Bookmark, error) {
	return ParseWithOptions(b, DefaultOptions())
}

// ParseWithOptions decodes a bookmark blob. The input is only read and may be
// reused once ParseWithOptions returns; the result does not alias it.
//
// Example:
//
//	bm, err := bookmark.ParseWithOptions(blob, bookmark.Options{
//	    Limits:           types.StrictLimits(),
//	    NormalizeUnicode: true,
//	})
func ParseWithOptions(b []byte, opts Options) (*Bookmark, error) {
	opts = opts.withDefaults()

	h, err := format.ParseHeader(b)
	if err != nil {
		return nil, err
	}
	data := h.Data(b)

	toc, err := format.ParseTOC(data, h.TOCOffset, format.TOCOptions{
		Limits:     opts.Limits,
		Duplicates: opts.Duplicates,
	})
	if err != nil {
		return nil, err
	}
	opts.Logger.Debug("bookmark: parsed toc",
		"size", h.Size,
		"version", h.Version,
		"blocks", len(toc.Blocks),
		"entries", toc.Len(),
		"duplicates", toc.Duplicates)

	r := &resolver{
		opts: opts,
		dec:  format.NewDecoder(data, opts.Limits),
		bm: &Bookmark{
			index:  make(map[Key]int, toc.Len()),
			byName: make(map[string]int),
			named:  make(map[Key]Value),
			nfc:    opts.NormalizeUnicode,
			diags:  types.NewDiagnosticReport(),
		},
	}
	r.dec.ExcludeTOC(toc)
	if toc.Duplicates > 0 {
		r.note(types.SevInfo, types.DiagStructure, 0, h.TOCOffset, "TOC",
			fmt.Sprintf("%d duplicate keys resolved %s", toc.Duplicates, opts.Duplicates), nil)
	}

	for _, e := range toc.Entries {
		if err := r.resolve(e); err != nil {
			return nil, err
		}
	}
	if err := r.assignNamed(); err != nil {
		return nil, err
	}

	bm := r.bm
	bm.info = Info{
		Size:       h.Size,
		Version:    h.Version,
		DataOffset: h.DataOffset,
		TOCOffset:  h.TOCOffset,
		TOCBlocks:  len(toc.Blocks),
		TOCEntries: toc.Len(),
		Entries:    len(bm.entries),
	}
	bm.diags.Finalize()
	return bm, nil
}

// resolver turns TOC entries into Bookmark entries, recording recovered
// faults as diagnostics.
type resolver struct {
	opts Options
	dec  *format.Decoder
	bm   *Bookmark
}

func (r *resolver) resolve(e format.TOCEntry) error {
	entry := Entry{Key: e.Key, Name: e.Key.String()}
	if e.Key.IsCustom() {
		name, err := r.dec.DecodeString(e.Key.CustomOffset())
		if err != nil {
			r.note(types.SevWarning, categoryOf(err), e.Key, e.Key.CustomOffset(), "KEY",
				"custom key name unreadable", err)
			entry.Name = ""
		} else {
			entry.Name = r.bm.text(name)
		}
	}

	if _, err := r.dec.Frame(e.RecordOffset); err != nil && errors.Is(err, types.ErrOutOfBounds) {
		if !r.opts.Tolerant {
			return fmt.Errorf("key %s: %w", e.Key, err)
		}
		r.note(types.SevError, types.DiagStructure, e.Key, e.RecordOffset, "RECORD",
			"record outside the data section", err)
		return nil
	}

	v, err := r.dec.Decode(e.RecordOffset)
	if err != nil {
		r.note(types.SevError, categoryOf(err), e.Key, e.RecordOffset, "RECORD",
			"record could not be decoded", err)
		return nil
	}
	entry.Value = v

	r.bm.index[e.Key] = len(r.bm.entries)
	if e.Key.IsCustom() && entry.Name != "" {
		if _, dup := r.bm.byName[entry.Name]; !dup {
			r.bm.byName[entry.Name] = len(r.bm.entries)
		}
	}
	r.bm.entries = append(r.bm.entries, entry)
	return nil
}

// assignNamed type-checks the well-known keys that decoded.
func (r *resolver) assignNamed() error {
	for _, e := range r.bm.entries {
		check, ok := wellKnown[e.Key]
		if !ok {
			continue
		}
		if check(e.Value) {
			r.bm.named[e.Key] = e.Value
			continue
		}
		err := fmt.Errorf("key %s holds %s: %w", e.Key, e.Value.Kind(), types.ErrTypeMismatch)
		if r.opts.StrictTypes {
			return err
		}
		r.note(types.SevWarning, types.DiagType, e.Key, e.Value.Offset(), "KEY",
			"unexpected type for named field", err)
	}
	return nil
}

func (r *resolver) note(sev types.Severity, cat types.DiagCategory, key Key, off uint32, structure, issue string, err error) {
	r.bm.diags.Add(types.Diagnostic{
		Severity:  sev,
		Category:  cat,
		Offset:    off,
		Structure: structure,
		Key:       key,
		Issue:     issue,
		Err:       err,
	})

	level := slog.LevelWarn
	if sev == types.SevInfo {
		level = slog.LevelDebug
	}
	r.opts.Logger.Log(context.Background(), level, "bookmark: "+issue,
		"key", key.String(),
		"offset", off,
		"err", err)
}

func categoryOf(err error) types.DiagCategory {
	switch types.KindOf(err) {
	case types.ErrKindBounds:
		return types.DiagIntegrity
	case types.ErrKindLimit:
		return types.DiagStructure
	case types.ErrKindType:
		return types.DiagType
	default:
		return types.DiagData
	}
}
