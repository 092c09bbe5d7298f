package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/reoring/draftkit/draft"
	"github.com/reoring/draftkit/validate"
)

// CheckResult reports whether a schema is valid for its dialect.
type CheckResult struct {
	File  string      `json:"file" yaml:"file"`
	Draft draft.Draft `json:"draft" yaml:"draft"`
	Valid bool        `json:"valid" yaml:"valid"`
	Error string      `json:"error,omitempty" yaml:"error,omitempty"`
}

func (a *app) checkCommand() *cobra.Command {
	var draftName string
	cmd := &cobra.Command{
		Use:   "check FILE",
		Short: "Check that a schema is valid against its dialect's meta-schema",
		Example: `  draftkit check schema.json
  draftkit check --draft 2019-09 schema.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := parseDraftFlag(draftName)
			if err != nil {
				return err
			}
			doc, err := loadDocument(cmd, args[0])
			if err != nil {
				return err
			}
			if d == "" {
				d = draft.Detect(doc.Value)
			}
			res := CheckResult{File: args[0], Draft: d, Valid: true}
			if err := validate.CheckSchema(doc.Value, d); err != nil {
				res.Valid = false
				res.Error = err.Error()
			}

			p := a.printer(cmd)
			done, err := p.structured(res)
			if err != nil {
				return err
			}
			if !done {
				if res.Valid {
					p.Success(fmt.Sprintf("%s is a valid %s schema", res.File, d.DisplayName()))
				} else {
					p.Failure(fmt.Sprintf("%s is not a valid %s schema", res.File, d.DisplayName()))
					p.Detail(res.Error)
				}
			}
			if !res.Valid {
				return ErrInvalid
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&draftName, "draft", "", "schema dialect (default: detected)")
	return cmd
}
