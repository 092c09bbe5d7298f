package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/reoring/draftkit/internal/server"
)

func (a *app) typesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "types [NAME]",
		Short: "Print the JSON Schema of an HTTP API type",
		Example: `  draftkit types
  draftkit types validate-request`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p := a.printer(cmd)
			if len(args) == 0 {
				names := server.TypeNames()
				if done, err := p.structured(names); done {
					return err
				}
				for _, n := range names {
					fmt.Fprintln(p.out, n)
				}
				return nil
			}
			sch, err := server.TypeSchema(args[0])
			if err != nil {
				return err
			}
			if p.format == "yaml" {
				return printYAML(p.out, sch)
			}
			return printJSON(p.out, sch)
		},
	}
}
