package resume

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed schema.json
var recordSchema string

var schemaLoader = gojsonschema.NewStringLoader(recordSchema)

// SchemaError lists every field that does not match the record schema.
type SchemaError struct {
	Errors []FieldError
}

// FieldError is a single schema violation at a JSON field path.
type FieldError struct {
	Field   string
	Message string
}

func (e *SchemaError) Error() string {
	var sb strings.Builder
	sb.WriteString("resume JSON does not match schema:\n")
	for i, fe := range e.Errors {
		fmt.Fprintf(&sb, "  %d. %s: %s\n", i+1, fe.Field, fe.Message)
	}
	return sb.String()
}

// LoadJSON reads a record in the editor's JSON shape. Missing fields decode as empty
// values; structurally wrong documents (e.g. skills as a string) fail with *SchemaError.
func LoadJSON(r io.Reader) (Record, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Record{}, fmt.Errorf("read resume JSON: %w", err)
	}
	result, err := gojsonschema.Validate(schemaLoader, gojsonschema.NewBytesLoader(data))
	if err != nil {
		return Record{}, fmt.Errorf("parse resume JSON: %w", err)
	}
	if !result.Valid() {
		se := &SchemaError{}
		for _, re := range result.Errors() {
			se.Errors = append(se.Errors, FieldError{Field: re.Field(), Message: re.Description()})
		}
		return Record{}, se
	}

	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return Record{}, fmt.Errorf("decode resume JSON: %w", err)
	}
	return rec, nil
}
