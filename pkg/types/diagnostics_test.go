package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiagnosticReport(t *testing.T) {
	r := NewDiagnosticReport()
	assert.False(t, r.HasAnyIssues())

	r.Add(Diagnostic{Severity: SevWarning, Category: DiagType, Offset: 0x80, Key: KeyVolumeName, Issue: "type"})
	r.Add(Diagnostic{Severity: SevError, Category: DiagIntegrity, Offset: 0x10, Key: KeyTargetPath, Issue: "bounds"})
	r.Add(Diagnostic{Severity: SevInfo, Category: DiagStructure, Offset: 0x40, Issue: "duplicates"})
	r.Finalize()

	assert.True(t, r.HasAnyIssues())
	assert.True(t, r.HasErrors())
	assert.Equal(t, DiagSummary{Errors: 1, Warnings: 1, Info: 1}, r.Summary)
	require.Len(t, r.ByOffset, 3)
	assert.Equal(t, uint32(0x10), r.ByOffset[0].Offset)
	assert.Equal(t, uint32(0x80), r.ByOffset[2].Offset)
	assert.Len(t, r.BySeverity[SevWarning], 1)

	got := r.ForKey(KeyTargetPath)
	require.Len(t, got, 1)
	assert.Equal(t, "bounds", got[0].Issue)
	assert.Empty(t, r.ForKey(KeyLocalizedName))

	assert.Equal(t, "WARNING", SevWarning.String())
	assert.Equal(t, "INTEGRITY", DiagIntegrity.String())
}

func TestDiagnosticReportClone(t *testing.T) {
	r := NewDiagnosticReport()
	r.Add(Diagnostic{Severity: SevWarning, Offset: 0x20, Key: KeyVolumeName, Issue: "type"})
	r.Finalize()

	c := r.Clone()
	c.Add(Diagnostic{Severity: SevError, Offset: 0x10, Issue: "added"})
	c.Finalize()
	c.Diagnostics[0].Issue = "changed"
	c.BySeverity[SevWarning][0].Issue = "changed"

	assert.False(t, r.HasErrors())
	require.Len(t, r.Diagnostics, 1)
	assert.Equal(t, "type", r.Diagnostics[0].Issue)
	assert.Equal(t, "type", r.BySeverity[SevWarning][0].Issue)
	assert.Len(t, r.ByOffset, 1)
	assert.Empty(t, r.BySeverity[SevError])
}
