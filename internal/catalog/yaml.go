package catalog

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed data/catalog.yaml
var builtinYAML []byte

// Builtin parses the embedded catalog.
func Builtin() (Catalog, error) {
	c, err := DecodeYAML(bytes.NewReader(builtinYAML))
	if err != nil {
		return Catalog{}, fmt.Errorf("builtin catalog: %w", err)
	}
	return c, nil
}

// DecodeYAML reads a catalog document. The reduced schema (comma-separated
// lists, missing ids) is accepted.
func DecodeYAML(r io.Reader) (Catalog, error) {
	var c Catalog
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&c); err != nil {
		if err == io.EOF {
			return Catalog{}, nil
		}
		return Catalog{}, fmt.Errorf("decode catalog yaml: %w", err)
	}
	c.normalize()
	return c, nil
}

// LoadYAML reads a catalog from a YAML file.
func LoadYAML(path string) (Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return Catalog{}, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()
	return DecodeYAML(f)
}

// EncodeYAML writes the catalog in the full schema.
func EncodeYAML(w io.Writer, c Catalog) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return fmt.Errorf("encode catalog yaml: %w", err)
	}
	return enc.Close()
}
