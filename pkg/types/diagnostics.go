package types

import (
	"slices"
	"sort"
)

// -----------------------------------------------------------------------------
// Diagnostics - faults the decoder recovered from
// -----------------------------------------------------------------------------
//
// A decode either fails with a single fatal error or succeeds. On success any
// field-level faults that were recovered locally (the field became absent)
// are recorded here, so callers can tell a sparse bookmark from a damaged one.

// Severity classifies how serious a diagnostic issue is.
type Severity int

const (
	SevInfo    Severity = iota // unusual but valid
	SevWarning                 // value present but unusable for its named field
	SevError                   // value could not be decoded, entry dropped
)

func (s Severity) String() string {
	switch s {
	case SevInfo:
		return "INFO"
	case SevWarning:
		return "WARNING"
	case SevError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// DiagCategory classifies the type of issue found.
type DiagCategory int

const (
	DiagStructure DiagCategory = iota // TOC/record framing problems
	DiagData                          // payload decoding problems
	DiagType                          // well-known key with an unexpected type
	DiagIntegrity                     // references that cannot be followed
)

func (c DiagCategory) String() string {
	switch c {
	case DiagStructure:
		return "STRUCTURE"
	case DiagData:
		return "DATA"
	case DiagType:
		return "TYPE"
	case DiagIntegrity:
		return "INTEGRITY"
	default:
		return "UNKNOWN"
	}
}

// Diagnostic represents a single recovered issue.
type Diagnostic struct {
	Severity Severity     `json:"severity"`
	Category DiagCategory `json:"category"`

	Offset    uint32 `json:"offset"`    // data-section offset of the record involved
	Structure string `json:"structure"` // "TOC", "RECORD", "KEY", ...
	Key       Key    `json:"key"`       // TOC key the issue belongs to

	Issue string `json:"issue"`
	Err   error  `json:"-"`
}

// DiagnosticReport collects the diagnostics of one decode.
type DiagnosticReport struct {
	Diagnostics []Diagnostic              `json:"diagnostics"`
	Summary     DiagSummary               `json:"summary"`
	BySeverity  map[Severity][]Diagnostic `json:"by_severity,omitempty"`
	ByOffset    []Diagnostic              `json:"by_offset,omitempty"` // sorted by offset after Finalize
}

// DiagSummary provides quick statistics.
type DiagSummary struct {
	Errors   int `json:"errors"`
	Warnings int `json:"warnings"`
	Info     int `json:"info"`
}

// NewDiagnosticReport creates an empty report.
func NewDiagnosticReport() *DiagnosticReport {
	return &DiagnosticReport{
		BySeverity: make(map[Severity][]Diagnostic),
	}
}

// Add adds a diagnostic to the report and updates indices.
func (r *DiagnosticReport) Add(d Diagnostic) {
	r.Diagnostics = append(r.Diagnostics, d)

	switch d.Severity {
	case SevError:
		r.Summary.Errors++
	case SevWarning:
		r.Summary.Warnings++
	case SevInfo:
		r.Summary.Info++
	}

	r.BySeverity[d.Severity] = append(r.BySeverity[d.Severity], d)
}

// Finalize sorts diagnostics by offset.
func (r *DiagnosticReport) Finalize() {
	r.ByOffset = make([]Diagnostic, len(r.Diagnostics))
	copy(r.ByOffset, r.Diagnostics)
	sort.SliceStable(r.ByOffset, func(i, j int) bool {
		return r.ByOffset[i].Offset < r.ByOffset[j].Offset
	})
}

// Clone returns a deep copy of the report.
func (r *DiagnosticReport) Clone() *DiagnosticReport {
	out := &DiagnosticReport{
		Diagnostics: slices.Clone(r.Diagnostics),
		Summary:     r.Summary,
		BySeverity:  make(map[Severity][]Diagnostic, len(r.BySeverity)),
		ByOffset:    slices.Clone(r.ByOffset),
	}
	for sev, ds := range r.BySeverity {
		out.BySeverity[sev] = slices.Clone(ds)
	}
	return out
}

// HasErrors returns true if any entry had to be dropped.
func (r *DiagnosticReport) HasErrors() bool {
	return r.Summary.Errors > 0
}

// HasAnyIssues returns true if any issues were found (including warnings and info).
func (r *DiagnosticReport) HasAnyIssues() bool {
	return len(r.Diagnostics) > 0
}

// ForKey returns the diagnostics recorded against key k.
func (r *DiagnosticReport) ForKey(k Key) []Diagnostic {
	var out []Diagnostic
	for _, d := range r.Diagnostics {
		if d.Key == k {
			out = append(out, d)
		}
	}
	return out
}
