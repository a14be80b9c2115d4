// Package schema fetches and interprets Apple's device-management profile
// schemas (the YAML files published in apple/device-management) and answers
// "what is the documented default for this key?".
package schema

import (
	"fmt"

	"github.com/vburojevic/mdmdefaults/internal/value"
	"gopkg.in/yaml.v3"
)

// Schema is the parsed form of one profile schema document.
type Schema struct {
	Title       string          `yaml:"title"`
	Description string          `yaml:"description"`
	Payload     PayloadInfo     `yaml:"payload"`
	PayloadKeys []KeyDescriptor `yaml:"payloadkeys"`
}

// PayloadInfo is the schema's own description of the payload it documents.
type PayloadInfo struct {
	PayloadType string `yaml:"payloadtype"`
}

// KeyDescriptor documents a single preference key.
type KeyDescriptor struct {
	Key      string `yaml:"key"`
	Title    string `yaml:"title"`
	Type     string `yaml:"type"`
	Presence string `yaml:"presence"`
	Content  string `yaml:"content"`

	RawDefault yaml.Node `yaml:"default"`

	// Default is RawDefault decoded; HasDefault is false when the schema
	// omits the default or sets it to null.
	Default    value.Value `yaml:"-"`
	HasDefault bool        `yaml:"-"`
}

// Parse decodes a schema document. An empty document yields an empty schema.
func Parse(domain string, data []byte) (*Schema, error) {
	var s Schema
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, &ParseError{Domain: domain, Err: err}
	}

	for i := range s.PayloadKeys {
		kd := &s.PayloadKeys[i]
		v, err := value.FromYAML(&kd.RawDefault)
		if err != nil {
			return nil, &ParseError{Domain: domain, Err: fmt.Errorf("default for %q: %w", kd.Key, err)}
		}
		kd.Default = v
		kd.HasDefault = !v.IsNull()
	}

	return &s, nil
}

// Default returns the documented default for key. The first descriptor with
// a matching name and a non-null default wins. A nil schema documents nothing.
func Default(s *Schema, key string) (value.Value, bool) {
	if s == nil {
		return value.Value{}, false
	}
	for _, kd := range s.PayloadKeys {
		if kd.Key != "" && kd.Key == key && kd.HasDefault {
			return kd.Default, true
		}
	}
	return value.Value{}, false
}
