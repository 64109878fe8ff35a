package calendar

import (
	"regexp"
	"strings"
)

// Suggestion is one AI calendar suggestion.
type Suggestion struct {
	Category string `json:"category"`
	Task     string `json:"task"`
	Advice   string `json:"advice"`
	Timing   string `json:"timing"`
}

const (
	defaultCategory = "General"
	defaultTask     = "Agricultural Strategy"
	defaultTiming   = "TBD"

	// shorter unstructured answers are not worth showing as a suggestion
	minFallbackLength = 50
)

var (
	sectionSeparator = regexp.MustCompile(`\d\.`)
	categoryPattern  = regexp.MustCompile(`(?i)CATEGORY:\s*(.*)`)
	taskPattern      = regexp.MustCompile(`(?i)TASK:\s*(.*)`)
	advicePattern    = regexp.MustCompile(`(?is)DETAILED ADVICE:\s*(.*?)(?:TIMING:|\z)`)
	timingPattern    = regexp.MustCompile(`(?i)TIMING:\s*(.*)`)
)

// ParseSuggestions extracts the suggestions from an answer in the
// "CATEGORY: / TASK: / DETAILED ADVICE: / TIMING:" format requested from the model.
func ParseSuggestions(text string) []Suggestion {
	parsed := []Suggestion{}

	for _, section := range sectionSeparator.Split(text, -1) {
		if strings.TrimSpace(section) == "" {
			continue
		}

		category, hasCategory := firstGroup(categoryPattern, section)
		task, hasTask := firstGroup(taskPattern, section)
		if !hasCategory && !hasTask {
			continue
		}

		s := Suggestion{
			Category: defaultCategory,
			Task:     defaultTask,
			Advice:   strings.TrimSpace(section),
			Timing:   defaultTiming,
		}
		if hasCategory {
			s.Category = category
		}
		if hasTask {
			s.Task = task
		}
		if advice, ok := firstGroup(advicePattern, section); ok {
			s.Advice = advice
		}
		if timing, ok := firstGroup(timingPattern, section); ok {
			s.Timing = timing
		}
		parsed = append(parsed, s)
	}

	if len(parsed) == 0 && len(text) > minFallbackLength {
		return []Suggestion{{
			Category: "Market",
			Task:     "Regional Strategy Update",
			Advice:   text,
			Timing:   "Immediate",
		}}
	}

	return parsed
}

func firstGroup(pattern *regexp.Regexp, s string) (string, bool) {
	m := pattern.FindStringSubmatch(s)
	if m == nil {
		return "", false
	}
	return strings.TrimSpace(m[1]), true
}
