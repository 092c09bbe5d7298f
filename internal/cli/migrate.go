package cli

import (
	"bytes"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/reoring/draftkit/draft"
	"github.com/reoring/draftkit/migrate"
	"github.com/reoring/draftkit/source"
)

func (a *app) migrateCommand() *cobra.Command {
	var (
		from    string
		write   bool
		outFile string
		diff    bool
	)
	cmd := &cobra.Command{
		Use:   "migrate FILE",
		Short: "Migrate a schema to JSON Schema 2020-12",
		Long: `Migrate a draft-07 or 2019-09 schema to 2020-12.

The migrated schema is printed to stdout unless --write or -o is given.
Keywords that could not be migrated are reported as warnings on stderr.

Examples:
  draftkit migrate schema.json
  draftkit migrate --diff schema.json
  draftkit migrate --from draft-07 -o schema.2020.yaml schema.yaml
  draftkit migrate --write schema.json
  draftkit migrate --output json schema.json    # full migration report`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if write && outFile != "" {
				return fmt.Errorf("--write and -o cannot be used together")
			}
			path := args[0]
			if write && path == stdinPath {
				return fmt.Errorf("--write needs a file argument")
			}
			src, err := parseDraftFlag(from)
			if err != nil {
				return err
			}
			doc, err := loadDocument(cmd, path)
			if err != nil {
				return err
			}

			report := migrate.MigrateWithReport(doc.Value, src)
			log.Debug().
				Str("file", path).
				Str("source", report.Summary.SourceDraft.String()).
				Bool("complete", report.Completeness.Success).
				Msg("Migrated schema")

			p := a.printer(cmd)
			for _, w := range report.Completeness.Warnings {
				p.Warning(w)
			}

			target := outFile
			if write {
				target = path
			}
			if target != "" {
				format := source.FormatFromPath(target)
				if format == source.FormatAuto {
					format = doc.Format
				}
				var buf bytes.Buffer
				if err := encodeDocument(&buf, report.Migrated, format); err != nil {
					return err
				}
				if err := os.WriteFile(target, buf.Bytes(), 0o644); err != nil {
					return fmt.Errorf("writing %s: %w", target, err)
				}
			}

			if done, err := p.structured(report); done {
				return err
			}
			switch {
			case diff:
				fmt.Fprint(p.out, colorDiff(report.Diff))
			case target == "":
				if err := encodeDocument(p.out, report.Migrated, doc.Format); err != nil {
					return err
				}
			default:
				p.Success(fmt.Sprintf("Migrated %s from %s to %s", target,
					report.Summary.SourceDraft.DisplayName(), report.Summary.TargetDraft.DisplayName()))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&from, "from", "", "source dialect (default: detected)")
	cmd.Flags().BoolVarP(&write, "write", "w", false, "overwrite FILE with the migrated schema")
	cmd.Flags().StringVarP(&outFile, "out", "o", "", "write the migrated schema to this file")
	cmd.Flags().BoolVar(&diff, "diff", false, "print a line diff instead of the migrated schema")
	return cmd
}

func colorDiff(lines []migrate.DiffLine) string {
	var b bytes.Buffer
	for _, l := range lines {
		switch l.Op {
		case migrate.DiffInsert:
			b.WriteString(successMark(l.String()))
		case migrate.DiffDelete:
			b.WriteString(failureMark(l.String()))
		default:
			b.WriteString(l.String())
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// parseDraftFlag parses an optional dialect flag; empty means detect.
func parseDraftFlag(s string) (draft.Draft, error) {
	if s == "" {
		return "", nil
	}
	return draft.Parse(s)
}
