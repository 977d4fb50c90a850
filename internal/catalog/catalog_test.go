package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultCatalog(t *testing.T) {
	c, err := Default()
	if err != nil {
		t.Fatalf("Default: %v", err)
	}
	if c.Len() == 0 {
		t.Fatal("expected builtin templates")
	}

	tmpl, ok := c.Lookup("code-generation")
	if !ok {
		t.Fatal("expected code-generation template")
	}
	if tmpl.Questions[0].ID != "language" {
		t.Errorf("first question = %q, want language", tmpl.Questions[0].ID)
	}

	all := c.All()
	if all[0].ID != "code-generation" {
		t.Errorf("catalog order not preserved: first = %q", all[0].ID)
	}
}

func TestGetUnknown(t *testing.T) {
	c, err := Default()
	if err != nil {
		t.Fatalf("Default: %v", err)
	}

	_, err = c.Get("nonexistent-id")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get err = %v, want ErrNotFound", err)
	}
	if !strings.Contains(err.Error(), "nonexistent-id") {
		t.Errorf("error %q should name the id", err)
	}
}

func TestLookupReturnsCopy(t *testing.T) {
	c, err := Default()
	if err != nil {
		t.Fatalf("Default: %v", err)
	}

	a, _ := c.Lookup("code-generation")
	a.Questions[0].Label = "mutated"
	a.Questions[0].Choices[0] = "mutated"

	b, _ := c.Lookup("code-generation")
	if b.Questions[0].Label == "mutated" || b.Questions[0].Choices[0] == "mutated" {
		t.Error("catalog template was mutated through a lookup result")
	}
}

func TestParseRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{
			name: "choice kind without options",
			doc: `templates:
  - id: t
    title: T
    questions:
      - {id: q, type: select, label: Q}
`,
			want: "needs options",
		},
		{
			name: "text kind with options",
			doc: `templates:
  - id: t
    title: T
    questions:
      - {id: q, type: text, label: Q, options: [a]}
`,
			want: "cannot have options",
		},
		{
			name: "unknown kind",
			doc: `templates:
  - id: t
    title: T
    questions:
      - {id: q, type: slider, label: Q}
`,
			want: "oneof",
		},
		{
			name: "duplicate question id",
			doc: `templates:
  - id: t
    title: T
    questions:
      - {id: q, type: text, label: Q}
      - {id: q, type: text, label: Q2}
`,
			want: "duplicate question id",
		},
		{
			name: "duplicate template id",
			doc: `templates:
  - id: t
    title: T
    questions:
      - {id: q, type: text, label: Q}
  - id: t
    title: T2
    questions:
      - {id: q, type: text, label: Q}
`,
			want: "duplicate template id",
		},
		{
			name: "no questions",
			doc: `templates:
  - id: t
    title: T
`,
			want: "Questions",
		},
		{
			name: "empty",
			doc:  "templates: []\n",
			want: "no templates",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %q, want substring %q", err, tt.want)
			}
		})
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.yaml")
	doc := `templates:
  - id: unit-tests
    title: Unit Tests
    description: Write tests
    icon: "🧪"
    questions:
      - {id: goal, type: text, label: Goal, required: true}
      - {id: tags, type: multiselect, label: Tags, options: [rust, testing, go]}
`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	tmpl, err := c.Get("unit-tests")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if tmpl.RequiredCount() != 1 {
		t.Errorf("RequiredCount = %d, want 1", tmpl.RequiredCount())
	}
	if q, ok := tmpl.Question("tags"); !ok || !q.Kind.IsMulti() {
		t.Errorf("tags question = %+v, want multiselect", q)
	}
	if got := tmpl.Index("missing"); got != -1 {
		t.Errorf("Index(missing) = %d, want -1", got)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
