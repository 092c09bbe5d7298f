package draftkit

import (
	"github.com/reoring/draftkit/draft"
	"github.com/reoring/draftkit/migrate"
	"github.com/reoring/draftkit/source"
	"github.com/reoring/draftkit/validate"
)

// DetectSchemaVersion guesses the dialect of schema. The answer is advisory:
// ambiguous schemas default to Draft 2020-12.
func DetectSchemaVersion(schema any) draft.Draft { return draft.Detect(schema) }

// SchemaURI returns the canonical "$schema" URI of d.
func SchemaURI(d draft.Draft) string { return d.URI() }

// DraftDisplayName returns a human-readable name for d.
func DraftDisplayName(d draft.Draft) string { return d.DisplayName() }

// SupportedDrafts returns draft-07, 2019-09 and 2020-12 in that order.
func SupportedDrafts() []draft.Draft { return draft.Supported() }

// IsCompatibleWithDraft reports whether the root keywords of schema are legal
// in dialect d.
func IsCompatibleWithDraft(schema any, d draft.Draft) bool { return draft.IsCompatible(schema, d) }

// MigrateToSchema202012 converts schema to Draft 2020-12. An empty from
// detects the source dialect.
func MigrateToSchema202012(schema any, from draft.Draft) any { return migrate.Migrate(schema, from) }

// MigrationSummary lists the changes MigrateToSchema202012 would make.
func MigrationSummary(schema any, from draft.Draft) migrate.Summary {
	return migrate.Summarize(schema, from)
}

// ValidateMigration checks a migrated schema for leftover legacy keywords.
func ValidateMigration(original, migrated any) migrate.Completeness {
	return migrate.CheckCompleteness(original, migrated)
}

// MigrateWithReport migrates schema and returns the result together with its
// summary, completeness check and a line diff.
func MigrateWithReport(schema any, from draft.Draft) migrate.Report {
	return migrate.MigrateWithReport(schema, from)
}

// CreateValidator returns a fresh engine for d with format assertion on.
func CreateValidator(d draft.Draft) validate.Engine {
	return validate.New(d, validate.DefaultOptions())
}

// ValidatorInfo describes the engine used for d.
func ValidatorInfo(d draft.Draft) validate.EngineInfo { return validate.Info(d) }

// ValidateSchema validates data against schema. An empty d detects the
// dialect from the schema.
func ValidateSchema(schema, data any, d draft.Draft) validate.Result {
	return validate.Validate(schema, data, d, validate.DefaultOptions())
}

// ValidateDocument validates a JSON or YAML data document, reporting line
// and column for each error.
func ValidateDocument(schema any, doc []byte, d draft.Draft) validate.Result {
	return validate.ValidateDocument(schema, doc, source.FormatAuto, d, validate.DefaultOptions())
}

// CheckSchema validates schema against the meta-schema of d.
func CheckSchema(schema any, d draft.Draft) error { return validate.CheckSchema(schema, d) }
