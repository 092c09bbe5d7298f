package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reoring/draftkit/draft"
	"github.com/reoring/draftkit/i18n"
	"github.com/reoring/draftkit/migrate"
	"github.com/reoring/draftkit/source"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

type result struct {
	stdout string
	stderr string
	err    error
}

func execute(t *testing.T, stdin string, args ...string) result {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	cmd := NewRootCommand()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return result{stdout: out.String(), stderr: errOut.String(), err: err}
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const legacySchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "properties": {"home": {"$ref": "#/definitions/address"}},
  "definitions": {"address": {"type": "string"}}
}`

func TestDetect(t *testing.T) {
	dir := t.TempDir()
	legacy := writeFile(t, dir, "legacy.json", legacySchema)
	modern := writeFile(t, dir, "modern.yaml", "type: array\nprefixItems:\n  - type: string\n")

	r := execute(t, "", "detect", legacy, modern)
	require.NoError(t, r.err)
	assert.Contains(t, r.stdout, legacy+": Draft 07 (draft-07)")
	assert.Contains(t, r.stdout, modern+": Draft 2020-12 (Latest) (2020-12)")
}

func TestDetect_JSONAndStdin(t *testing.T) {
	r := execute(t, `{"$recursiveAnchor": true}`, "detect", "--output", "json", "-")
	require.NoError(t, r.err)

	var out []DetectResult
	require.NoError(t, json.Unmarshal([]byte(r.stdout), &out))
	require.Len(t, out, 1)
	assert.Equal(t, "-", out[0].File)
	assert.Equal(t, draft.Draft201909, out[0].Draft)
	assert.True(t, out[0].Compatible)
}

func TestDetect_LegacyKeywordsOn2020(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "mixed.json", `{"$schema": "https://json-schema.org/draft/2020-12/schema", "definitions": {}}`)
	r := execute(t, "", "detect", path)
	require.NoError(t, r.err)
	assert.Contains(t, r.stderr, "legacy keywords present: [definitions]")
}

func TestDetect_Errors(t *testing.T) {
	r := execute(t, "", "detect", filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, r.err)

	r = execute(t, `{"a": 1, "a": 2}`, "detect", "-")
	var dup *source.DuplicateKeyError
	assert.ErrorAs(t, r.err, &dup)

	r = execute(t, "")
	assert.NoError(t, r.err)
	r = execute(t, "", "detect")
	assert.Error(t, r.err)
}

func TestMigrate_Stdout(t *testing.T) {
	path := writeFile(t, t.TempDir(), "legacy.json", legacySchema)
	r := execute(t, "", "migrate", path)
	require.NoError(t, r.err)

	var out map[string]any
	require.NoError(t, json.Unmarshal([]byte(r.stdout), &out))
	assert.Equal(t, draft.Draft202012.URI(), out["$schema"])
	assert.Contains(t, out, "$defs")
	assert.NotContains(t, out, "definitions")
	home := out["properties"].(map[string]any)["home"].(map[string]any)
	assert.Equal(t, "#/$defs/address", home["$ref"])
	assert.Empty(t, r.stderr)
}

func TestMigrate_OutFileKeepsFormat(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, dir, "tuple.yaml", "type: array\nitems:\n  - type: string\n  - type: number\nadditionalItems: false\n")
	out := filepath.Join(dir, "tuple.2020.yaml")

	r := execute(t, "", "migrate", "--from", "draft7", "-o", out, in)
	require.NoError(t, r.err)
	assert.Contains(t, r.stdout, "Migrated "+out+" from Draft 07 to Draft 2020-12")

	b, err := os.ReadFile(out)
	require.NoError(t, err)
	v, err := source.Decode(b, source.FormatYAML)
	require.NoError(t, err)
	m := v.(map[string]any)
	assert.Equal(t, false, m["items"])
	assert.Len(t, m["prefixItems"], 2)
	assert.NotContains(t, m, "additionalItems")

	orig, err := os.ReadFile(in)
	require.NoError(t, err)
	assert.Contains(t, string(orig), "additionalItems")
}

func TestMigrate_Write(t *testing.T) {
	path := writeFile(t, t.TempDir(), "legacy.json", legacySchema)
	r := execute(t, "", "migrate", "--write", "--quiet", path)
	require.NoError(t, r.err)
	assert.Empty(t, r.stdout)

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	var m map[string]any
	require.NoError(t, json.Unmarshal(b, &m))
	assert.Equal(t, draft.Draft202012, draft.Detect(m))
	assert.Contains(t, m, "$defs")
}

func TestMigrate_Diff(t *testing.T) {
	path := writeFile(t, t.TempDir(), "legacy.json", legacySchema)
	r := execute(t, "", "migrate", "--diff", path)
	require.NoError(t, r.err)
	assert.Contains(t, r.stdout, `- `)
	assert.Contains(t, r.stdout, `+ `)
	assert.Contains(t, r.stdout, `"$defs"`)
	assert.Contains(t, r.stdout, `"definitions"`)
}

func TestMigrate_ReportAndWarnings(t *testing.T) {
	path := writeFile(t, t.TempDir(), "gap.json", `{"$schema": "http://json-schema.org/draft-07/schema#", "$recursiveRef": "#"}`)
	r := execute(t, "", "migrate", "--output", "json", path)
	require.NoError(t, r.err)
	assert.Contains(t, r.stderr, "Old recursive keywords still present (should be $dynamic*)")

	var report migrate.Report
	require.NoError(t, json.Unmarshal([]byte(r.stdout), &report))
	assert.False(t, report.Completeness.Success)
	assert.Equal(t, draft.Draft07, report.Summary.SourceDraft)
}

func TestMigrate_FlagErrors(t *testing.T) {
	path := writeFile(t, t.TempDir(), "legacy.json", legacySchema)

	r := execute(t, "", "migrate", "--write", "-o", "x.json", path)
	assert.Error(t, r.err)

	r = execute(t, "", "migrate", "--from", "draft-04", path)
	assert.ErrorIs(t, r.err, draft.ErrUnknownDraft)

	r = execute(t, "{}", "migrate", "--write", "-")
	assert.Error(t, r.err)
}

func TestSummary(t *testing.T) {
	path := writeFile(t, t.TempDir(), "legacy.json", legacySchema)
	r := execute(t, "", "summary", path)
	require.NoError(t, r.err)
	assert.Contains(t, r.stdout, "Draft 07 → Draft 2020-12")
	assert.Contains(t, r.stdout, `- Convert "definitions" → "$defs"`)
	assert.Contains(t, r.stdout, "- Update 1 definition references")
	assert.Contains(t, r.stdout, "- Update $schema URI to Draft 2020-12")
}

func TestSummary_Japanese(t *testing.T) {
	t.Cleanup(func() { i18n.SetLanguage("en") })
	path := writeFile(t, t.TempDir(), "legacy.json", legacySchema)
	r := execute(t, "", "summary", "--lang", "ja", "--output", "yaml", path)
	require.NoError(t, r.err)
	assert.Contains(t, r.stdout, "sourceDraft: draft-07")
	assert.Contains(t, r.stdout, `"definitions" を "$defs" に変換`)
}

func validateFixtures(t *testing.T) (schema, good, bad string) {
	dir := t.TempDir()
	schema = writeFile(t, dir, "person.schema.json", `{
  "type": "object",
  "required": ["name"],
  "properties": {
    "name": {"type": "string"},
    "age": {"type": "integer", "minimum": 0}
  }
}`)
	good = writeFile(t, dir, "alice.json", `{"name": "Alice", "age": 30}`)
	bad = writeFile(t, dir, "bob.yaml", "name: Bob\nage: -1\n")
	return schema, good, bad
}

func TestValidate(t *testing.T) {
	schema, good, _ := validateFixtures(t)
	r := execute(t, "", "validate", "--schema", schema, good)
	require.NoError(t, r.err)
	assert.Contains(t, r.stdout, "✓ "+good)
	assert.Contains(t, r.stdout, "1 valid, 0 invalid (Draft 2020-12 (Latest))")
}

func TestValidate_Invalid(t *testing.T) {
	schema, good, bad := validateFixtures(t)
	r := execute(t, "", "validate", "-s", schema, good, bad)
	require.ErrorIs(t, r.err, ErrInvalid)
	assert.Contains(t, r.stdout, "✗ "+bad)
	assert.Contains(t, r.stdout, "/age: ")
	assert.Contains(t, r.stdout, "(line 2, column 6)")
	assert.Contains(t, r.stdout, "1 valid, 1 invalid")
}

func TestValidate_JSONOutput(t *testing.T) {
	schema, _, bad := validateFixtures(t)
	r := execute(t, "", "validate", "--output", "json", "--draft", "draft-07", "--schema", schema, bad)
	require.ErrorIs(t, r.err, ErrInvalid)

	var out ValidationSummary
	require.NoError(t, json.Unmarshal([]byte(r.stdout), &out))
	assert.Equal(t, draft.Draft07, out.Draft)
	assert.Equal(t, 1, out.Invalid)
	require.Len(t, out.Results, 1)
	require.NotEmpty(t, out.Results[0].Errors)
	assert.Equal(t, "/age", out.Results[0].Errors[0].Path)
	assert.Equal(t, 2, out.Results[0].Errors[0].Line)
}

func TestValidate_Stdin(t *testing.T) {
	schema, _, _ := validateFixtures(t)
	r := execute(t, `{"age": 3}`, "validate", "--schema", schema, "-")
	require.ErrorIs(t, r.err, ErrInvalid)
	assert.Contains(t, r.stdout, "✗ -")
}

func TestValidate_Errors(t *testing.T) {
	_, good, _ := validateFixtures(t)
	r := execute(t, "", "validate", good)
	assert.EqualError(t, r.err, "--schema is required")
}

func TestCheck(t *testing.T) {
	dir := t.TempDir()
	ok := writeFile(t, dir, "ok.json", `{"type": "string"}`)
	bad := writeFile(t, dir, "bad.yaml", "type: 12\n")

	r := execute(t, "", "check", ok)
	require.NoError(t, r.err)
	assert.Contains(t, r.stdout, "is a valid Draft 2020-12 (Latest) schema")

	r = execute(t, "", "check", "--draft", "2019-09", bad)
	require.ErrorIs(t, r.err, ErrInvalid)
	assert.Contains(t, r.stdout, "is not a valid Draft 2019-09 schema")

	r = execute(t, "", "check", "--output", "json", bad)
	require.ErrorIs(t, r.err, ErrInvalid)
	var out CheckResult
	require.NoError(t, json.Unmarshal([]byte(r.stdout), &out))
	assert.False(t, out.Valid)
	assert.NotEmpty(t, out.Error)
}

func TestDrafts(t *testing.T) {
	r := execute(t, "", "drafts")
	require.NoError(t, r.err)
	assert.Contains(t, r.stdout, "xeipuuv/gojsonschema")
	assert.Contains(t, r.stdout, "santhosh-tekuri/jsonschema/v6")
	assert.Contains(t, r.stdout, "https://json-schema.org/draft/2019-09/schema")

	var prefix string
	for _, line := range strings.Split(r.stdout, "\n") {
		if strings.HasPrefix(line, "prefixItems") {
			prefix = line
		}
	}
	fields := strings.Fields(prefix)
	assert.Equal(t, []string{"prefixItems", "2020-12", "-", "-", "yes"}, fields)
}

func TestDrafts_YAML(t *testing.T) {
	r := execute(t, "", "drafts", "--output", "yaml")
	require.NoError(t, r.err)
	assert.Contains(t, r.stdout, "- draft: draft-07\n")
	assert.Contains(t, r.stdout, "dynamicRefs: true")
}

func TestTypes(t *testing.T) {
	r := execute(t, "", "types")
	require.NoError(t, r.err)
	assert.Contains(t, r.stdout, "validate-request\n")

	r = execute(t, "", "types", "migrate-request")
	require.NoError(t, r.err)
	var sch map[string]any
	require.NoError(t, json.Unmarshal([]byte(r.stdout), &sch))
	assert.Contains(t, sch["properties"], "fromDraft")

	r = execute(t, "", "types", "nope")
	assert.Error(t, r.err)
}

func TestVersion(t *testing.T) {
	r := execute(t, "", "version", "--output", "json")
	require.NoError(t, r.err)
	var info VersionInfo
	require.NoError(t, json.Unmarshal([]byte(r.stdout), &info))
	assert.Equal(t, "dev", info.Version)
	assert.Contains(t, getVersion(), "dev")
}

func TestOutputFormat(t *testing.T) {
	path := writeFile(t, t.TempDir(), "s.json", `{}`)
	r := execute(t, "", "detect", "--output", "xml", path)
	assert.EqualError(t, r.err, `unknown output format "xml"`)
}

func TestConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "s.json", `{"$recursiveAnchor": true}`)
	cfg := writeFile(t, dir, "config.yaml", "output: json\n")

	r := execute(t, "", "--config", cfg, "detect", path)
	require.NoError(t, r.err)
	var out []DetectResult
	require.NoError(t, json.Unmarshal([]byte(r.stdout), &out))
	assert.Equal(t, draft.Draft201909, out[0].Draft)

	r = execute(t, "", "--config", filepath.Join(dir, "missing.yaml"), "detect", path)
	assert.Error(t, r.err)
}

func TestEnvironment(t *testing.T) {
	t.Setenv("DRAFTKIT_OUTPUT", "yaml")
	path := writeFile(t, t.TempDir(), "s.json", `{}`)
	r := execute(t, "", "detect", path)
	require.NoError(t, r.err)
	assert.Contains(t, r.stdout, "draft: 2020-12")
}

func TestServerConfig(t *testing.T) {
	a := &app{v: viper.New()}
	cmd := a.serveCommand()
	require.NoError(t, cmd.Flags().Set("port", "9999"))
	require.NoError(t, cmd.Flags().Set("cors", "true"))

	cfg := a.serverConfig()
	assert.Equal(t, "localhost", cfg.Host)
	assert.Equal(t, 9999, cfg.Port)
	assert.True(t, cfg.EnableCORS)
	assert.True(t, cfg.EnableMetrics)
	assert.Equal(t, "localhost:9999", cfg.Addr())
}
