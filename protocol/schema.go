package protocol

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
)

// commandPrototypes maps each kind to a zero value used for reflection.
var commandPrototypes = map[Kind]Command{
	KindRunFile:        RunFile{},
	KindRunCode:        RunCode{},
	KindGetVariables:   GetVariables{},
	KindGetDetails:     GetDetails{},
	KindUpdateVariable: UpdateVariable{},
	KindClearNamespace: ClearNamespace{},
	KindSaveSession:    SaveSession{},
	KindLoadSession:    LoadSession{},
}

// Kinds returns every command kind this package can encode.
func Kinds() []Kind {
	kinds := make([]Kind, 0, len(commandPrototypes))
	for k := range commandPrototypes {
		kinds = append(kinds, k)
	}
	return kinds
}

// CommandSchema reflects the JSON Schema for one command kind. Hosts use
// the schemas to validate hand-built commands or to document the wire
// format; the codec itself does not validate against them.
func CommandSchema(kind Kind) (*jsonschema.Schema, error) {
	proto, ok := commandPrototypes[kind]
	if !ok {
		return nil, fmt.Errorf("unknown command kind %q", kind)
	}
	reflector := &jsonschema.Reflector{
		DoNotReference: true,
		ExpandedStruct: true,
	}
	return reflector.Reflect(proto), nil
}

// CommandSchemaJSON returns the schema for kind as marshaled JSON.
func CommandSchemaJSON(kind Kind) ([]byte, error) {
	schema, err := CommandSchema(kind)
	if err != nil {
		return nil, err
	}
	data, err := json.Marshal(schema)
	if err != nil {
		return nil, fmt.Errorf("marshal schema for %s: %w", kind, err)
	}
	return data, nil
}

// CommandSchemas reflects schemas for every command kind.
func CommandSchemas() (map[Kind]*jsonschema.Schema, error) {
	schemas := make(map[Kind]*jsonschema.Schema, len(commandPrototypes))
	for kind := range commandPrototypes {
		schema, err := CommandSchema(kind)
		if err != nil {
			return nil, err
		}
		schemas[kind] = schema
	}
	return schemas, nil
}
