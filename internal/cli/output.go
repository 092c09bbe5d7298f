package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	gojson "github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	successMark = color.New(color.FgGreen, color.Bold).SprintFunc()
	failureMark = color.New(color.FgRed, color.Bold).SprintFunc()
	warningMark = color.New(color.FgYellow, color.Bold).SprintFunc()
	dim         = color.New(color.Faint).SprintFunc()
)

// printer writes command results in the selected output format.
type printer struct {
	out    io.Writer
	errOut io.Writer
	format string
	quiet  bool
}

func (a *app) printer(cmd *cobra.Command) *printer {
	return &printer{
		out:    cmd.OutOrStdout(),
		errOut: cmd.ErrOrStderr(),
		format: a.outputFormat(),
		quiet:  a.v.GetBool("quiet"),
	}
}

// structured prints v as JSON or YAML and reports whether it did so.
func (p *printer) structured(v any) (bool, error) {
	switch p.format {
	case "json":
		return true, printJSON(p.out, v)
	case "yaml":
		return true, printYAML(p.out, v)
	case "text", "":
		return false, nil
	default:
		return true, fmt.Errorf("unknown output format %q", p.format)
	}
}

// printJSON outputs data as formatted JSON
func printJSON(w io.Writer, data any) error {
	b, err := gojson.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}

// printYAML outputs data as YAML
func printYAML(w io.Writer, data any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(data); err != nil {
		return fmt.Errorf("encoding YAML: %w", err)
	}
	return enc.Close()
}

// printTable outputs data in a human-readable table format
func printTable(w io.Writer, headers []string, rows [][]string) {
	if len(rows) == 0 {
		return
	}

	widths := make([]int, len(headers))
	for i, header := range headers {
		widths[i] = len(header)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	line := func(cells []string) {
		parts := make([]string, 0, len(cells))
		for i, cell := range cells {
			if i < len(widths) {
				parts = append(parts, fmt.Sprintf("%-*s", widths[i], cell))
			}
		}
		fmt.Fprintln(w, strings.TrimRight(strings.Join(parts, "  "), " "))
	}

	line(headers)
	seps := make([]string, len(headers))
	for i := range headers {
		seps[i] = strings.Repeat("-", widths[i])
	}
	line(seps)
	for _, row := range rows {
		line(row)
	}
}

// Success prints a success line unless quiet.
func (p *printer) Success(message string) {
	if p.quiet {
		return
	}
	fmt.Fprintf(p.out, "%s %s\n", successMark("✓"), message)
}

// Failure prints a failed result.
func (p *printer) Failure(message string) {
	fmt.Fprintf(p.out, "%s %s\n", failureMark("✗"), message)
}

// Warning prints a warning to stderr.
func (p *printer) Warning(message string) {
	fmt.Fprintf(p.errOut, "%s %s\n", warningMark("!"), message)
}

// Detail prints an indented line under the previous status line.
func (p *printer) Detail(message string) {
	fmt.Fprintf(p.out, "  %s\n", message)
}
