package handler

import (
	"slices"
	"strings"

	"github.com/boozedog/contextcrafter/internal/answer"
	"github.com/boozedog/contextcrafter/internal/catalog"
)

// formValue converts posted "value" fields into an answer for q. Text is
// kept verbatim apart from browser line endings.
func formValue(q catalog.Question, prev answer.Value, posted []string) answer.Value {
	if q.Kind.IsMulti() {
		return answer.List(mergeSelection(prev.Items(), posted)...)
	}
	text := ""
	if len(posted) > 0 {
		text = posted[0]
	}
	return answer.Text(strings.ReplaceAll(text, "\r\n", "\n"))
}

// mergeSelection keeps previously selected items that are still checked in
// their selection order and appends newly checked ones in form order.
func mergeSelection(prev, checked []string) []string {
	out := make([]string, 0, len(checked))
	for _, p := range prev {
		if slices.Contains(checked, p) && !slices.Contains(out, p) {
			out = append(out, p)
		}
	}
	for _, c := range checked {
		if c != "" && !slices.Contains(out, c) {
			out = append(out, c)
		}
	}
	return out
}
