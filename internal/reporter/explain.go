package reporter

import (
	"fmt"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/oxhq/svcheck/internal/token"
)

// Explain reports a label-mismatch diagnostic (e.g. "endmodule : other"
// where "other" doesn't match the module's own name) with a unified diff
// between the expected and actual spelling appended to the message, rather
// than a bare "expected X got Y" string. Adapted from the teacher's
// snapshot-diff test helpers (internal/lang/golang's dsl_snapshot_test.go
// style) into a production diagnostic rather than a test-only tool.
func (r *Reporter) Explain(file string, pos token.Position, expected, actual string) {
	diff := difflib.UnifiedDiff{
		A:        difflib.SplitLines(expected),
		B:        difflib.SplitLines(actual),
		FromFile: "expected",
		ToFile:   "actual",
		Context:  1,
	}
	text, err := difflib.GetUnifiedDiffString(diff)
	if err != nil || text == "" {
		text = fmt.Sprintf("expected %q, got %q", expected, actual)
	}
	r.Report(ErrSyntax, file, pos, expected+"|"+actual, text, "end-label")
}
