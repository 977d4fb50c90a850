package answer

import (
	"maps"
	"slices"
)

// Set maps question ids to values.
type Set map[string]Value

// Get returns the value for id and whether one is stored.
func (s Set) Get(id string) (Value, bool) {
	v, ok := s[id]
	return v, ok
}

// Clone returns a deep copy of the set.
func (s Set) Clone() Set {
	c := make(Set, len(s))
	for k, v := range s {
		c[k] = v.Clone()
	}
	return c
}

// FromAnswers builds a set from a list of answers. Later entries win.
func FromAnswers(list []Answer) Set {
	s := make(Set, len(list))
	for _, a := range list {
		s[a.QuestionID] = a.Value
	}
	return s.Clone()
}

// Answers lists the set as answers. Ids in order come first, in that order;
// any remaining ids follow sorted.
func (s Set) Answers(order []string) []Answer {
	out := make([]Answer, 0, len(s))
	used := make(map[string]bool, len(order))
	for _, id := range order {
		if v, ok := s[id]; ok && !used[id] {
			out = append(out, Answer{QuestionID: id, Value: v})
			used[id] = true
		}
	}
	rest := slices.Sorted(maps.Keys(s))
	for _, id := range rest {
		if !used[id] {
			out = append(out, Answer{QuestionID: id, Value: s[id]})
		}
	}
	return cloneAnswers(out)
}

func cloneAnswers(list []Answer) []Answer {
	for i := range list {
		list[i].Value = list[i].Value.Clone()
	}
	return list
}
