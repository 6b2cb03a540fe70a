package docstore

import (
	"encoding/json"

	"github.com/pkg/errors"
)

// JSONSnapshot is a Snapshot backed by a JSON object, used by the backends
// that keep documents as JSON (memory, postgres).
type JSONSnapshot struct {
	DocID string
	Data  []byte
}

func (s JSONSnapshot) ID() string { return s.DocID }

func (s JSONSnapshot) DataTo(v any) error {
	if err := json.Unmarshal(s.Data, v); err != nil {
		return errors.Wrapf(err, "decode document %s", s.DocID)
	}
	return nil
}

// EncodeJSON renders data as a JSON object.
func EncodeJSON(data any) ([]byte, error) {
	b, err := json.Marshal(data)
	if err != nil {
		return nil, errors.Wrap(err, "encode document")
	}
	return b, nil
}

// MergeJSON overlays fields on top of the JSON object in doc.
func MergeJSON(doc []byte, fields map[string]any) ([]byte, error) {
	current := map[string]any{}
	if err := json.Unmarshal(doc, &current); err != nil {
		return nil, errors.Wrap(err, "decode stored document")
	}
	patch, err := EncodeJSON(fields)
	if err != nil {
		return nil, err
	}
	overlay := map[string]any{}
	if err := json.Unmarshal(patch, &overlay); err != nil {
		return nil, errors.Wrap(err, "decode update fields")
	}
	for k, v := range overlay {
		current[k] = v
	}
	return EncodeJSON(current)
}
