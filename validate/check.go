package validate

import (
	"fmt"

	"github.com/reoring/draftkit/draft"
)

// CheckSchema validates schema itself against the bundled meta-schema of
// dialect d (detected when empty). It returns nil for a well-formed schema.
func CheckSchema(schema any, d draft.Draft) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("check schema: engine panic: %v", r)
		}
	}()
	if d == "" {
		d = draft.Detect(schema)
	}
	_, err = newSanthoshEngine(d, Options{}).compile(schema, true)
	return err
}
