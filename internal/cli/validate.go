package cli

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/reoring/draftkit/draft"
	"github.com/reoring/draftkit/validate"
)

// FileResult is the validation result of one data document.
type FileResult struct {
	File string `json:"file" yaml:"file"`

	validate.Result `yaml:",inline"`
}

// ValidationSummary collects the results of one validate run.
type ValidationSummary struct {
	Schema  string       `json:"schema" yaml:"schema"`
	Draft   draft.Draft  `json:"draft" yaml:"draft"`
	Total   int          `json:"total" yaml:"total"`
	Valid   int          `json:"valid" yaml:"valid"`
	Invalid int          `json:"invalid" yaml:"invalid"`
	Results []FileResult `json:"results" yaml:"results"`
}

func (a *app) validateCommand() *cobra.Command {
	var (
		schemaFile   string
		draftName    string
		assertFormat bool
	)
	cmd := &cobra.Command{
		Use:   "validate --schema FILE DATA...",
		Short: "Validate JSON or YAML documents against a schema",
		Long: `Validate data documents against a JSON Schema.

The engine is chosen from the schema's dialect, which is detected unless
--draft is given. Errors point at the failing value with a JSON Pointer and,
when known, its line and column. The command exits with status 1 when any
document is invalid.

Examples:
  draftkit validate --schema person.schema.json alice.json bob.yaml
  draftkit validate --schema schema.yaml --draft draft-07 data.json
  draftkit validate --schema schema.json --output json data.json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if schemaFile == "" {
				return fmt.Errorf("--schema is required")
			}
			d, err := parseDraftFlag(draftName)
			if err != nil {
				return err
			}
			schema, err := loadDocument(cmd, schemaFile)
			if err != nil {
				return err
			}
			if d == "" {
				d = draft.Detect(schema.Value)
			}
			opts := validate.DefaultOptions()
			opts.AssertFormat = assertFormat

			summary := ValidationSummary{Schema: schemaFile, Draft: d, Total: len(args)}
			for _, path := range args {
				b, format, err := readInput(cmd, path)
				if err != nil {
					return err
				}
				res := validate.ValidateDocument(schema.Value, b, format, d, opts)
				log.Debug().Str("file", path).Bool("valid", res.Valid).Int("errors", len(res.Errors)).Msg("Validated document")
				if res.Valid {
					summary.Valid++
				} else {
					summary.Invalid++
				}
				summary.Results = append(summary.Results, FileResult{File: path, Result: res})
			}

			p := a.printer(cmd)
			done, err := p.structured(summary)
			if err != nil {
				return err
			}
			if !done {
				printValidationSummary(p, summary)
			}
			if summary.Invalid > 0 {
				return ErrInvalid
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&schemaFile, "schema", "s", "", "schema file (JSON or YAML)")
	cmd.Flags().StringVar(&draftName, "draft", "", "schema dialect (default: detected)")
	cmd.Flags().BoolVar(&assertFormat, "assert-format", true, `treat "format" as an assertion`)
	return cmd
}

func printValidationSummary(p *printer, s ValidationSummary) {
	for _, r := range s.Results {
		if r.Valid {
			p.Success(r.File)
			continue
		}
		p.Failure(r.File)
		for _, e := range r.Errors {
			line := fmt.Sprintf("%s: %s", e.Path, e.Message)
			if e.Line > 0 {
				line += " " + dim(fmt.Sprintf("(line %d, column %d)", e.Line, e.Column))
			}
			p.Detail(line)
		}
	}
	if !p.quiet {
		fmt.Fprintf(p.out, "\n%d valid, %d invalid (%s)\n", s.Valid, s.Invalid, s.Draft.DisplayName())
	}
}
