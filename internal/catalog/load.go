package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var builtinYAML []byte

var validate = validator.New()

// file is the on-disk catalog document.
type file struct {
	Templates []Template `yaml:"templates"`
}

var (
	defaultOnce sync.Once
	defaultCat  *Catalog
	defaultErr  error
)

// Default returns the catalog compiled into the binary.
func Default() (*Catalog, error) {
	defaultOnce.Do(func() {
		defaultCat, defaultErr = Parse(builtinYAML)
		if defaultErr != nil {
			defaultErr = fmt.Errorf("builtin catalog: %w", defaultErr)
		}
	})
	return defaultCat, defaultErr
}

// Load returns the catalog at path, or the built-in catalog when path is empty.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default()
	}
	return LoadFile(path)
}

// LoadFile reads a YAML catalog document from disk.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return c, nil
}

// Parse decodes a YAML catalog document:
//
//	templates:
//	  - id: code-generation
//	    title: Code Generation
//	    questions:
//	      - id: language
//	        type: select
//	        options: [Go, Rust]
func Parse(data []byte) (*Catalog, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	return New(f.Templates)
}

// Validate checks the catalog rules: struct-level field rules, unique
// template ids, unique question ids per template, and choices present
// exactly when the question kind is a choice kind.
func Validate(templates []Template) error {
	if len(templates) == 0 {
		return errors.New("catalog has no templates")
	}

	var problems []string
	seen := make(map[string]bool, len(templates))
	for i, t := range templates {
		if err := validate.Struct(t); err != nil {
			problems = append(problems, fmt.Sprintf("template %d (%s): %s", i, t.ID, describe(err)))
			continue
		}
		if seen[t.ID] {
			problems = append(problems, fmt.Sprintf("duplicate template id %q", t.ID))
		}
		seen[t.ID] = true

		qseen := make(map[string]bool, len(t.Questions))
		for _, q := range t.Questions {
			if qseen[q.ID] {
				problems = append(problems, fmt.Sprintf("template %s: duplicate question id %q", t.ID, q.ID))
			}
			qseen[q.ID] = true

			switch {
			case q.Kind.HasChoices() && len(q.Choices) == 0:
				problems = append(problems, fmt.Sprintf("template %s: question %q of type %s needs options", t.ID, q.ID, q.Kind))
			case !q.Kind.HasChoices() && len(q.Choices) > 0:
				problems = append(problems, fmt.Sprintf("template %s: question %q of type %s cannot have options", t.ID, q.ID, q.Kind))
			}
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid catalog: %s", strings.Join(problems, "; "))
	}
	return nil
}

// describe flattens validator errors into "Field: tag" pairs.
func describe(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		parts = append(parts, fmt.Sprintf("%s failed %q", fe.Namespace(), fe.Tag()))
	}
	return strings.Join(parts, ", ")
}
