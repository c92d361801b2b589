// Package syllabus is the static catalog of subjects and topics taught in
// Zambian secondary schools, grades 8 through 12.
package syllabus

import (
	"fmt"
	"strconv"
	"strings"
)

// Grade is a school grade level.
type Grade int

const (
	MinGrade Grade = 8
	MaxGrade Grade = 12
)

// Grades returns every supported grade in ascending order.
func Grades() []Grade {
	out := make([]Grade, 0, MaxGrade-MinGrade+1)
	for g := MinGrade; g <= MaxGrade; g++ {
		out = append(out, g)
	}
	return out
}

func (g Grade) Valid() bool {
	return g >= MinGrade && g <= MaxGrade
}

func (g Grade) String() string {
	return fmt.Sprintf("Grade %d", int(g))
}

// ParseGrade accepts "10" or "Grade 10".
func ParseGrade(s string) (Grade, error) {
	s = strings.TrimSpace(strings.TrimPrefix(strings.ToLower(strings.TrimSpace(s)), "grade"))
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid grade %q", s)
	}
	g := Grade(n)
	if !g.Valid() {
		return 0, fmt.Errorf("grade %d is outside %d-%d", n, MinGrade, MaxGrade)
	}
	return g, nil
}

// Icon identifies a subject's pictogram. Each subject's icon is fixed in
// the catalog.
type Icon int

const (
	IconCalculator Icon = iota
	IconFlask
	IconBook
	IconScale
	IconGlobe
	IconHourglass
	IconBriefcase
)

var iconGlyphs = [...]string{
	IconCalculator: "∑",
	IconFlask:      "⚗",
	IconBook:       "✎",
	IconScale:      "⚖",
	IconGlobe:      "◍",
	IconHourglass:  "⧗",
	IconBriefcase:  "▤",
}

// Glyph returns a single-cell terminal symbol for the icon.
func (i Icon) Glyph() string {
	if i < 0 || int(i) >= len(iconGlyphs) {
		return "•"
	}
	return iconGlyphs[i]
}

// Topic is one syllabus unit and the grades it is taught in.
type Topic struct {
	Name   string
	Grades []Grade
}

// TaughtIn reports whether the topic belongs to grade g.
func (t Topic) TaughtIn(g Grade) bool {
	for _, tg := range t.Grades {
		if tg == g {
			return true
		}
	}
	return false
}

type Subject struct {
	ID     string
	Name   string
	Icon   Icon
	Topics []Topic
}

// TopicsFor returns the subject's topics taught in grade g, in catalog order.
func (s Subject) TopicsFor(g Grade) []Topic {
	var out []Topic
	for _, t := range s.Topics {
		if t.TaughtIn(g) {
			out = append(out, t)
		}
	}
	return out
}

// HasTopic reports whether name is one of the subject's topics.
func (s Subject) HasTopic(name string) bool {
	for _, t := range s.Topics {
		if t.Name == name {
			return true
		}
	}
	return false
}
