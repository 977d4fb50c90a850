package workflow

import (
	"github.com/boozedog/contextcrafter/internal/answer"
	"github.com/boozedog/contextcrafter/internal/catalog"
)

// Satisfied returns true if q is optional or has a populated answer in set.
func Satisfied(q catalog.Question, set answer.Set) bool {
	if !q.Required {
		return true
	}
	v, ok := set.Get(q.ID)
	return ok && v.Populated()
}

// Completeness returns the share of required questions with populated
// answers. A template with no required questions is fully complete.
func Completeness(t catalog.Template, set answer.Set) float64 {
	required := t.RequiredCount()
	if required == 0 {
		return 1
	}
	return float64(required-len(MissingRequired(t, set))) / float64(required)
}

// MissingRequired returns the required questions without a populated
// answer, in template order.
func MissingRequired(t catalog.Template, set answer.Set) []catalog.Question {
	var missing []catalog.Question
	for _, q := range t.Questions {
		if q.Required && !Satisfied(q, set) {
			missing = append(missing, q)
		}
	}
	return missing
}
