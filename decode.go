package micromodels

import (
	"bytes"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// FromJSON builds an instance of s from a JSON object. Numbers are decoded
// as json.Number so numeric text survives untouched until a field interprets
// it.
func FromJSON(s *Schema, data []byte) (*Model, error) {
	src, err := DecodeJSON(data)
	if err != nil {
		return nil, err
	}
	return FromDict(s, src)
}

// FromYAML builds an instance of s from a YAML mapping.
func FromYAML(s *Schema, data []byte) (*Model, error) {
	src, err := DecodeYAML(data)
	if err != nil {
		return nil, err
	}
	return FromDict(s, src)
}

// DecodeJSON decodes a JSON object into a generic mapping suitable for
// SetData.
func DecodeJSON(data []byte) (map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var m map[string]any
	if err := dec.Decode(&m); err != nil {
		return nil, &TypeError{Code: CodeParseError, Message: "invalid JSON object", Cause: err}
	}
	return m, nil
}

// DecodeYAML decodes a YAML mapping into a generic mapping suitable for
// SetData.
func DecodeYAML(data []byte) (map[string]any, error) {
	var m map[string]any
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, &TypeError{Code: CodeParseError, Message: "invalid YAML mapping", Cause: err}
	}
	return m, nil
}

// ToJSON exports the instance as JSON text via ToDict(serial=true).
func (m *Model) ToJSON() ([]byte, error) {
	d, err := m.ToDict(true)
	if err != nil {
		return nil, err
	}
	return json.Marshal(d)
}

// ToYAML exports the instance as YAML text via ToDict(serial=true).
func (m *Model) ToYAML() ([]byte, error) {
	d, err := m.ToDict(true)
	if err != nil {
		return nil, err
	}
	return yaml.Marshal(d)
}
