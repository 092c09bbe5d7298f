package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/reoring/draftkit/migrate"
)

func (a *app) summaryCommand() *cobra.Command {
	var from string
	cmd := &cobra.Command{
		Use:   "summary FILE",
		Short: "List the changes a migration to 2020-12 would make",
		Example: `  draftkit summary schema.json
  draftkit summary --lang ja schema.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := parseDraftFlag(from)
			if err != nil {
				return err
			}
			doc, err := loadDocument(cmd, args[0])
			if err != nil {
				return err
			}
			s := migrate.Summarize(doc.Value, src)

			p := a.printer(cmd)
			if done, err := p.structured(s); done {
				return err
			}
			fmt.Fprintf(p.out, "%s → %s\n", s.SourceDraft.DisplayName(), s.TargetDraft.DisplayName())
			for _, c := range s.Changes {
				p.Detail("- " + c)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&from, "from", "", "source dialect (default: detected)")
	return cmd
}
