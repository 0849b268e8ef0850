package reporter

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oxhq/svcheck/internal/token"
)

func TestReportWritesFormattedLine(t *testing.T) {
	var buf bytes.Buffer
	r := New(&buf)
	r.Report(ErrSyntax, "top.sv", token.Position{Line: 3, Col: 5}, "", "begin", "module body")
	assert.Contains(t, buf.String(), "top.sv:3:5")
	assert.Contains(t, buf.String(), "Unexpected begin in module body.")
}

func TestErrNotFoundDedupsPerFileAndContext(t *testing.T) {
	var buf bytes.Buffer
	r := New(&buf)
	r.Report(ErrNotFound, "top.sv", token.Position{Line: 1, Col: 1}, "widget_t", "widget_t")
	r.Report(ErrNotFound, "top.sv", token.Position{Line: 9, Col: 1}, "widget_t", "widget_t")
	r.Report(ErrNotFound, "top.sv", token.Position{Line: 2, Col: 1}, "other_t", "other_t")

	require.Len(t, r.Diagnostics(), 2)
}

func TestSeverityOverrideAppliesBeforeReport(t *testing.T) {
	var buf bytes.Buffer
	r := New(&buf)
	r.SetSeverity(WarnUnused, Error)
	r.Report(WarnUnused, "top.sv", token.Position{}, "", "sig_a")
	require.Len(t, r.Diagnostics(), 1)
	assert.Equal(t, Error, r.Diagnostics()[0].Severity)
	assert.True(t, r.HasErrors())
}

func TestAbortThreshold(t *testing.T) {
	var buf bytes.Buffer
	r := New(&buf)
	r.SetAbortThreshold(2)
	assert.False(t, r.Aborted())
	r.Report(ErrSyntax, "a.sv", token.Position{}, "", "x", "y")
	assert.False(t, r.Aborted())
	r.Report(ErrSyntax, "a.sv", token.Position{}, "", "x", "z")
	assert.True(t, r.Aborted())
}

func TestDiagnosticsSortedByFileThenPosition(t *testing.T) {
	var buf bytes.Buffer
	r := New(&buf)
	r.Report(ErrSyntax, "b.sv", token.Position{Line: 1, Col: 1}, "", "x", "y")
	r.Report(ErrSyntax, "a.sv", token.Position{Line: 5, Col: 1}, "", "x", "y")
	r.Report(ErrSyntax, "a.sv", token.Position{Line: 2, Col: 1}, "", "x", "y")

	diags := r.Diagnostics()
	require.Len(t, diags, 3)
	assert.Equal(t, "a.sv", diags[0].File)
	assert.Equal(t, 2, diags[0].Pos.Line)
	assert.Equal(t, "a.sv", diags[1].File)
	assert.Equal(t, 5, diags[1].Pos.Line)
	assert.Equal(t, "b.sv", diags[2].File)
}

func TestExplainFallsBackWhenDiffEmpty(t *testing.T) {
	var buf bytes.Buffer
	r := New(&buf)
	r.Explain("top.sv", token.Position{Line: 10, Col: 1}, "foo", "foo")
	require.Len(t, r.Diagnostics(), 1)
	assert.Equal(t, ErrSyntax, r.Diagnostics()[0].ID)
	assert.Contains(t, r.Diagnostics()[0].Message, `expected "foo", got "foo"`)
}
