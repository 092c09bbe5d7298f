// Package draftkit detects, migrates and validates JSON Schema documents
// written for draft-07, 2019-09 and 2020-12.
//
// The root package is a thin facade:
//
//   - DetectSchemaVersion classifies a schema value into a dialect.
//   - MigrateToSchema202012 rewrites older schemas into Draft 2020-12.
//   - MigrationSummary and ValidateMigration describe a migration.
//   - ValidateSchema checks data with the engine configured for a dialect.
//
// Schemas are plain decoded JSON values (bool or map[string]any). None of the
// functions modify their inputs, and none of them panic: failures are
// reported through the returned values.
//
// Typical usage:
//
//	d := draftkit.DetectSchemaVersion(schema)
//	latest := draftkit.MigrateToSchema202012(schema, d)
//	res := draftkit.ValidateSchema(latest, data, draft.Latest)
//	if !res.Valid {
//		for _, e := range res.Errors {
//			fmt.Println(e.Path, e.Message)
//		}
//	}
//
// Detailed APIs live in the draft, migrate, validate and source packages;
// the CLI is under cmd/draftkit.
package draftkit
