package migrate

import (
	"strings"

	gojson "github.com/goccy/go-json"
	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/reoring/draftkit/draft"
)

// Report bundles a migration with its summary, completeness check and a
// line diff of the pretty-printed documents.
type Report struct {
	Original     any          `json:"original" yaml:"original"`
	Migrated     any          `json:"migrated" yaml:"migrated"`
	Summary      Summary      `json:"summary" yaml:"summary"`
	Completeness Completeness `json:"completeness" yaml:"completeness"`
	Diff         []DiffLine   `json:"diff" yaml:"diff"`
}

// DiffOp marks a line of a Diff.
type DiffOp string

const (
	DiffEqual  DiffOp = " "
	DiffInsert DiffOp = "+"
	DiffDelete DiffOp = "-"
)

// DiffLine is one line of the migration diff.
type DiffLine struct {
	Op   DiffOp `json:"op" yaml:"op"`
	Text string `json:"text" yaml:"text"`
}

func (l DiffLine) String() string { return string(l.Op) + " " + l.Text }

// MigrateWithReport migrates schema and describes the result.
func MigrateWithReport(schema any, from draft.Draft) Report {
	if from == "" {
		from = draft.Detect(schema)
	}
	migrated := Migrate(schema, from)
	return Report{
		Original:     schema,
		Migrated:     migrated,
		Summary:      Summarize(schema, from),
		Completeness: CheckCompleteness(schema, migrated),
		Diff:         LineDiff(pretty(schema), pretty(migrated)),
	}
}

// LineDiff compares two texts line by line.
func LineDiff(before, after string) []DiffLine {
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	out := []DiffLine{}
	for _, d := range diffs {
		op := DiffEqual
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			op = DiffInsert
		case diffmatchpatch.DiffDelete:
			op = DiffDelete
		}
		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line == "" {
				continue
			}
			out = append(out, DiffLine{Op: op, Text: strings.TrimSuffix(line, "\n")})
		}
	}
	return out
}

// FormatDiff renders lines in the usual "+"/"-" text form.
func FormatDiff(lines []DiffLine) string {
	var b strings.Builder
	for _, l := range lines {
		b.WriteString(l.String())
		b.WriteByte('\n')
	}
	return b.String()
}

func pretty(v any) string {
	b, err := gojson.MarshalIndent(v, "", "  ")
	if err != nil {
		return ""
	}
	return string(b) + "\n"
}
