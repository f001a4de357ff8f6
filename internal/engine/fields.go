package engine

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/spigell/resume-scorer/internal/candidate"
)

// Contact returns every non-empty contact fragment, in text order, joined for display.
// Duplicates are kept.
func (e *Engine) Contact(text string) string {
	var fragments []string
	for _, m := range e.rules.Contact.FindAllStringSubmatch(text, -1) {
		if fragment := strings.TrimSpace(m[1]); fragment != "" {
			fragments = append(fragments, fragment)
		}
	}
	return strings.Join(fragments, candidate.ListSeparator)
}

// Education fills every education field independently. A missing pattern leaves the zero value.
func (e *Engine) Education(text string) candidate.Education {
	edu := candidate.Education{
		Institution: e.Institution(text),
		Year:        e.Year(text),
		Course:      e.Course(text),
		Discipline:  e.Discipline(text),
	}
	edu.GradeDisplay, edu.GradeValue = e.Grade(text)
	return edu
}

// Institution returns the longest institution match. The first one wins a tie.
func (e *Engine) Institution(text string) string {
	best, bestLen := "", 0
	for _, m := range e.rules.Institution.FindAllString(text, -1) {
		if n := utf8.RuneCountInString(m); n > bestLen {
			best, bestLen = m, n
		}
	}
	return strings.TrimSpace(best)
}

func (e *Engine) Year(text string) string {
	return e.rules.Year.FindString(text)
}

// Course returns the full name of the first dictionary entry whose abbreviation
// occurs anywhere in text. Dictionary order decides, not position in text.
func (e *Engine) Course(text string) string {
	for _, c := range e.rules.Courses {
		if strings.Contains(text, strings.ToLower(c.Abbreviation)) {
			return c.Name
		}
	}
	return ""
}

// Discipline returns the first listed discipline found in text, title-cased.
func (e *Engine) Discipline(text string) string {
	for _, d := range e.rules.Disciplines {
		if strings.Contains(text, strings.ToLower(d)) {
			return cases.Title(language.English).String(d)
		}
	}
	return ""
}

// Grade returns the display form and the 0-10 value of the grade.
// CGPA wins over a percentage; percentages are divided by 10.
func (e *Engine) Grade(text string) (string, float64) {
	if value, ok := firstNumber(e.rules.CGPA.FindStringSubmatch(text)); ok {
		return "CGPA: " + formatDecimal(value) + "/10", value
	}
	if value, ok := firstNumber(e.rules.Percentage.FindStringSubmatch(text)); ok {
		return formatDecimal(value) + "%", value / 10
	}
	return "", 0
}

func firstNumber(match []string) (float64, bool) {
	if len(match) < 2 {
		return 0, false
	}
	value, err := strconv.ParseFloat(match[1], 64)
	if err != nil {
		return 0, false
	}
	return value, true
}

// formatDecimal prints the shortest representation, always with a fractional part: 88 -> "88.0".
func formatDecimal(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
