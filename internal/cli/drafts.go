package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/reoring/draftkit/draft"
	"github.com/reoring/draftkit/validate"
)

func (a *app) draftsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "drafts",
		Short: "List supported dialects and their features",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			drafts := draft.Supported()
			infos := make([]validate.EngineInfo, 0, len(drafts))
			for _, d := range drafts {
				infos = append(infos, validate.Info(d))
			}

			p := a.printer(cmd)
			if done, err := p.structured(infos); done {
				return err
			}

			rows := make([][]string, 0, len(infos))
			for _, info := range infos {
				rows = append(rows, []string{info.Draft.String(), info.Draft.DisplayName(), info.Engine, info.SchemaURI})
			}
			printTable(p.out, []string{"DRAFT", "NAME", "ENGINE", "URI"}, rows)
			fmt.Fprintln(p.out)

			headers := []string{"FEATURE", "SINCE"}
			for _, d := range drafts {
				headers = append(headers, d.String())
			}
			rows = rows[:0]
			for _, f := range draft.AllFeatures() {
				row := []string{string(f), draft.IntroducedIn(f).String()}
				for _, info := range infos {
					mark := "-"
					if info.Supports.Has(f) {
						mark = "yes"
					}
					row = append(row, mark)
				}
				rows = append(rows, row)
			}
			printTable(p.out, headers, rows)
			return nil
		},
	}
}
