package glossary

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrNotList is returned when glossary input is not a list of mappings.
var ErrNotList = errors.New("glossary source must be a list of term records")

//go:embed default_glossary.yaml
var defaultGlossary []byte

// Decode parses a YAML (or JSON) glossary document. The document must be a
// sequence whose items are all mappings; any other shape is rejected.
// Missing fields decode to the empty string.
func Decode(data []byte) ([]RawTerm, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing glossary: %w", err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) != 1 {
		return nil, ErrNotList
	}
	seq := doc.Content[0]
	if seq.Kind != yaml.SequenceNode {
		return nil, ErrNotList
	}

	out := make([]RawTerm, 0, len(seq.Content))
	for i, item := range seq.Content {
		if item.Kind != yaml.MappingNode {
			return nil, fmt.Errorf("%w: item %d is not a mapping", ErrNotList, i)
		}
		var rt RawTerm
		if err := item.Decode(&rt); err != nil {
			return nil, fmt.Errorf("decoding term %d: %w", i, err)
		}
		out = append(out, rt)
	}
	return out, nil
}

// LoadFile reads and decodes a glossary file.
func LoadFile(path string) ([]RawTerm, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading glossary %s: %w", path, err)
	}
	return Decode(data)
}

// Default returns the built-in glossary records.
func Default() []RawTerm {
	raw, err := Decode(defaultGlossary)
	if err != nil {
		panic(fmt.Sprintf("glossary: embedded glossary is invalid: %v", err))
	}
	return raw
}
