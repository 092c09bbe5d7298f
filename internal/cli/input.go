package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/reoring/draftkit/source"
)

const stdinPath = "-"

// readInput returns the bytes of path, or of stdin when path is "-".
func readInput(cmd *cobra.Command, path string) ([]byte, source.Format, error) {
	if path == stdinPath {
		b, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, source.FormatAuto, fmt.Errorf("reading stdin: %w", err)
		}
		return b, source.FormatAuto, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, source.FormatAuto, err
	}
	return b, source.FormatFromPath(path), nil
}

// loadDocument reads and decodes a JSON or YAML document.
func loadDocument(cmd *cobra.Command, path string) (*source.Document, error) {
	b, format, err := readInput(cmd, path)
	if err != nil {
		return nil, err
	}
	doc, err := source.Parse(b, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// encodeDocument renders v in the given format for writing back to disk.
func encodeDocument(w io.Writer, v any, format source.Format) error {
	if format == source.FormatYAML {
		return printYAML(w, v)
	}
	return printJSON(w, v)
}
