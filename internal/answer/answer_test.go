package answer

import (
	"encoding/json"
	"testing"

	"github.com/boozedog/contextcrafter/internal/catalog"
)

func TestPopulated(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		want bool
	}{
		{"zero value", Value{}, false},
		{"empty text", Text(""), false},
		{"whitespace text", Text("   \t\n"), false},
		{"text", Text("go"), true},
		{"padded text", Text("  go  "), true},
		{"empty list", List(), false},
		{"list", List("a"), true},
		{"list of blank", List(""), true},
	}

	for _, tt := range tests {
		if got := tt.v.Populated(); got != tt.want {
			t.Errorf("%s: Populated() = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestFormat(t *testing.T) {
	if got := List("rust", "testing").Format(); got != "rust, testing" {
		t.Errorf("list Format = %q", got)
	}
	if got := Text("  keep padding ").Format(); got != "  keep padding " {
		t.Errorf("text Format = %q, want verbatim", got)
	}
}

func TestFits(t *testing.T) {
	tests := []struct {
		v    Value
		k    catalog.Kind
		want bool
	}{
		{Text("x"), catalog.KindText, true},
		{Text("x"), catalog.KindTextarea, true},
		{Text("x"), catalog.KindSelect, true},
		{Text("x"), catalog.KindRadio, true},
		{Text("x"), catalog.KindMultiSelect, false},
		{List("x"), catalog.KindMultiSelect, true},
		{List("x"), catalog.KindText, false},
		{List(), catalog.KindSelect, false},
	}

	for _, tt := range tests {
		if got := tt.v.Fits(tt.k); got != tt.want {
			t.Errorf("%+v.Fits(%s) = %v, want %v", tt.v, tt.k, got, tt.want)
		}
	}
}

func TestListCopiesInput(t *testing.T) {
	in := []string{"a", "b"}
	v := List(in...)
	in[0] = "z"
	if v.Items()[0] != "a" {
		t.Error("List should copy its input")
	}

	out := v.Items()
	out[1] = "z"
	if v.Items()[1] != "b" {
		t.Error("Items should return a copy")
	}
}

func TestJSONShape(t *testing.T) {
	list := []Answer{
		{QuestionID: "goal", Value: Text("Write unit tests")},
		{QuestionID: "tags", Value: List("rust", "testing")},
		{QuestionID: "none", Value: List()},
	}

	data, err := json.Marshal(list)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	want := `[{"questionId":"goal","value":"Write unit tests"},{"questionId":"tags","value":["rust","testing"]},{"questionId":"none","value":[]}]`
	if string(data) != want {
		t.Errorf("json = %s\nwant   %s", data, want)
	}

	var back []Answer
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	for i := range list {
		if !back[i].Value.Equal(list[i].Value) {
			t.Errorf("answer %d: got %+v, want %+v", i, back[i].Value, list[i].Value)
		}
	}
}

func TestUnmarshalRejectsOtherShapes(t *testing.T) {
	var v Value
	if err := json.Unmarshal([]byte(`42`), &v); err == nil {
		t.Error("expected error for a number")
	}
	if err := json.Unmarshal([]byte(`[1,2]`), &v); err == nil {
		t.Error("expected error for a list of numbers")
	}
}

func TestSetAnswersOrder(t *testing.T) {
	s := Set{
		"zeta":  Text("z"),
		"alpha": Text("a"),
		"tags":  List("x"),
		"goal":  Text("g"),
	}

	got := s.Answers([]string{"goal", "tags", "missing"})
	ids := make([]string, len(got))
	for i, a := range got {
		ids[i] = a.QuestionID
	}
	want := []string{"goal", "tags", "alpha", "zeta"}
	if len(ids) != len(want) {
		t.Fatalf("ids = %v, want %v", ids, want)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Errorf("ids = %v, want %v", ids, want)
			break
		}
	}
}

func TestSetClone(t *testing.T) {
	s := Set{"tags": List("a")}
	c := s.Clone()
	c["tags"] = List("b")
	c["new"] = Text("x")

	if v, _ := s.Get("tags"); v.Items()[0] != "a" {
		t.Error("clone shares values with the original")
	}
	if _, ok := s.Get("new"); ok {
		t.Error("clone shares the map with the original")
	}
}

func TestFromAnswersLaterWins(t *testing.T) {
	s := FromAnswers([]Answer{
		{QuestionID: "goal", Value: Text("first")},
		{QuestionID: "goal", Value: Text("second")},
	})
	if v, _ := s.Get("goal"); v.String() != "second" {
		t.Errorf("goal = %q, want second", v.String())
	}
}
