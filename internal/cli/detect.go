package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/reoring/draftkit/draft"
)

// DetectResult is the detected dialect of one schema file.
type DetectResult struct {
	File        string      `json:"file" yaml:"file"`
	Draft       draft.Draft `json:"draft" yaml:"draft"`
	DisplayName string      `json:"displayName" yaml:"displayName"`
	SchemaURI   string      `json:"schemaURI" yaml:"schemaURI"`
	Compatible  bool        `json:"compatible" yaml:"compatible"`
	Legacy      []string    `json:"legacyKeywords,omitempty" yaml:"legacyKeywords,omitempty"`
}

func (a *app) detectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "detect FILE...",
		Short: "Detect the JSON Schema dialect of schema files",
		Long: `Detect which JSON Schema dialect each schema targets.

The "$schema" URI wins when present; otherwise the dialect is inferred from the
keywords the schema uses. Schemas without any hint are treated as 2020-12.

Examples:
  draftkit detect schema.json
  draftkit detect --output json schemas/*.yaml
  cat schema.json | draftkit detect -`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p := a.printer(cmd)
			results := make([]DetectResult, 0, len(args))
			for _, path := range args {
				doc, err := loadDocument(cmd, path)
				if err != nil {
					return err
				}
				d := draft.Detect(doc.Value)
				res := DetectResult{
					File:        path,
					Draft:       d,
					DisplayName: d.DisplayName(),
					SchemaURI:   d.URI(),
					Compatible:  draft.IsCompatible(doc.Value, d),
				}
				if m, ok := doc.Value.(map[string]any); ok && d == draft.Latest {
					res.Legacy = draft.LegacyKeywords(m)
				}
				results = append(results, res)
			}

			if done, err := p.structured(results); done {
				return err
			}
			for _, r := range results {
				fmt.Fprintf(p.out, "%s: %s %s\n", r.File, r.DisplayName, dim("("+r.Draft.String()+")"))
				if len(r.Legacy) > 0 {
					p.Warning(fmt.Sprintf("%s: legacy keywords present: %v", r.File, r.Legacy))
				}
			}
			return nil
		},
	}
}
