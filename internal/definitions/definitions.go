// Package definitions loads program definition files: JSON or YAML
// documents mapping program names to search criteria (field → terms).
// Parsing preserves the file's key order so filter composition and
// report output are reproducible run to run.
package definitions

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/Velocidex/ordereddict"
	"gopkg.in/yaml.v3"

	"github.com/threatops/surveyor/internal/model"
)

// ParseError reports a malformed or unreadable definition file. The
// survey skips the file and continues with the remaining ones.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("definitions: parse %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// SourceName returns the provenance kind for a definition file: its
// basename without the extension.
func SourceName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Discover walks dir recursively and returns every definition file
// (*.json, *.yaml, *.yml) in lexical walk order.
func Discover(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		switch strings.ToLower(filepath.Ext(path)) {
		case ".json", ".yaml", ".yml":
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("definitions: walk %s: %w", dir, err)
	}
	return files, nil
}

// Load parses one definition file into its programs, in file order.
func Load(path string) ([]model.Program, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}

	var programs []model.Program
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		programs, err = parseYAML(data)
	default:
		programs, err = parseJSON(data)
	}
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	return programs, nil
}

func parseJSON(data []byte) ([]model.Program, error) {
	doc := ordereddict.NewDict()
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}

	names := doc.Keys()
	programs := make([]model.Program, 0, len(names))
	for _, name := range names {
		raw, _ := doc.Get(name)
		criteria, ok := raw.(*ordereddict.Dict)
		if !ok {
			return nil, fmt.Errorf("program %q: criteria must be an object", name)
		}

		p := model.Program{Name: name}
		for _, field := range criteria.Keys() {
			rawTerms, _ := criteria.Get(field)
			terms, err := stringTerms(rawTerms)
			if err != nil {
				return nil, fmt.Errorf("program %q, field %q: %w", name, field, err)
			}
			p.Fields = append(p.Fields, model.FieldTerms{Field: field, Terms: terms})
		}
		programs = append(programs, p)
	}
	return programs, nil
}

func stringTerms(raw interface{}) ([]string, error) {
	list, ok := raw.([]interface{})
	if !ok {
		return nil, fmt.Errorf("terms must be an array of strings")
	}
	terms := make([]string, 0, len(list))
	for _, item := range list {
		s, ok := item.(string)
		if !ok {
			return nil, fmt.Errorf("terms must be an array of strings")
		}
		terms = append(terms, s)
	}
	return terms, nil
}

// parseYAML walks the yaml.Node tree directly: mapping node content
// keeps document order, which plain map unmarshalling would lose.
func parseYAML(data []byte) ([]model.Program, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, fmt.Errorf("empty document")
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("top level must be a mapping of program names")
	}

	var programs []model.Program
	for i := 0; i+1 < len(root.Content); i += 2 {
		name := root.Content[i].Value
		criteria := root.Content[i+1]
		if criteria.Kind != yaml.MappingNode {
			return nil, fmt.Errorf("program %q: criteria must be a mapping", name)
		}

		p := model.Program{Name: name}
		for j := 0; j+1 < len(criteria.Content); j += 2 {
			field := criteria.Content[j].Value
			termsNode := criteria.Content[j+1]
			if termsNode.Kind != yaml.SequenceNode {
				return nil, fmt.Errorf("program %q, field %q: terms must be a sequence", name, field)
			}
			terms := make([]string, 0, len(termsNode.Content))
			for _, t := range termsNode.Content {
				terms = append(terms, t.Value)
			}
			p.Fields = append(p.Fields, model.FieldTerms{Field: field, Terms: terms})
		}
		programs = append(programs, p)
	}
	return programs, nil
}
