package ui

import (
	"fmt"
	"math"
	"strings"
)

// ReadyPercent is the completeness at which a session counts as ready to
// generate.
const ReadyPercent = 70

// Percent converts a completeness ratio to a whole percentage.
func Percent(ratio float64) int {
	return int(math.Round(math.Max(0, math.Min(1, ratio)) * 100))
}

// StatusText describes a completeness percentage.
func StatusText(percent int) string {
	switch {
	case percent < 50:
		return "Getting started"
	case percent < ReadyPercent:
		return "Almost ready"
	default:
		return "Ready to generate"
	}
}

// Ready reports whether the percentage reaches ReadyPercent.
func Ready(percent int) bool {
	return percent >= ReadyPercent
}

// StepProgress returns the "Question i of N" label and the "p% Complete"
// label for a zero-based position.
func StepProgress(pos, total int) (string, string) {
	if total <= 0 {
		return "Question 0 of 0", "0% Complete"
	}
	i := min(pos+1, total)
	pct := int(math.Round(float64(i) / float64(total) * 100))
	return fmt.Sprintf("Question %d of %d", i, total), fmt.Sprintf("%d%% Complete", pct)
}

// Bar draws a completeness bar of the given width with its percentage and
// status text.
func Bar(ratio float64, width int) string {
	if width < 1 {
		width = 20
	}
	pct := Percent(ratio)
	filled := pct * width / 100

	style := StyleWarning
	if Ready(pct) {
		style = StyleSuccess
	}
	bar := StyleBarFilled.Render(strings.Repeat("█", filled)) +
		StyleBarEmpty.Render(strings.Repeat("░", width-filled))
	return fmt.Sprintf("%s %3d%% %s", bar, pct, style.Render(StatusText(pct)))
}
