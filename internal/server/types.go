package server

import (
	"fmt"
	"net/http"
	"sort"

	"github.com/gorilla/mux"
	"github.com/invopop/jsonschema"

	"github.com/reoring/draftkit/migrate"
	"github.com/reoring/draftkit/validate"
)

// apiTypes are the wire types described by GET /api/v1/types/{name}.
var apiTypes = map[string]any{
	"detect-request":    &DetectRequest{},
	"detect-response":   &DetectResponse{},
	"migrate-request":   &MigrateRequest{},
	"migration-report":  &migrate.Report{},
	"migration-summary": &migrate.Summary{},
	"validate-request":  &ValidateRequest{},
	"validate-response": &ValidateResponse{},
	"validation-result": &validate.Result{},
	"check-request":     &CheckRequest{},
	"check-response":    &CheckResponse{},
	"drafts-response":   &DraftsResponse{},
	"error":             &ErrorResponse{},
}

// TypeNames lists the names accepted by TypeSchema.
func TypeNames() []string {
	names := make([]string, 0, len(apiTypes))
	for n := range apiTypes {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// TypeSchema reflects the Draft 2020-12 JSON Schema of an API wire type.
func TypeSchema(name string) (*jsonschema.Schema, error) {
	v, ok := apiTypes[name]
	if !ok {
		return nil, fmt.Errorf("unknown type %q", name)
	}
	r := &jsonschema.Reflector{ExpandedStruct: true}
	return r.Reflect(v), nil
}

func (s *Server) typeSchema(w http.ResponseWriter, r *http.Request) {
	sch, err := TypeSchema(mux.Vars(r)["name"])
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}
	writeJSON(w, http.StatusOK, sch)
}
