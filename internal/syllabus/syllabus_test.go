package syllabus

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogShape(t *testing.T) {
	subjects := Subjects()
	require.Len(t, subjects, 7)

	seen := map[string]bool{}
	icons := map[Icon]bool{}
	for _, s := range subjects {
		assert.False(t, seen[s.ID], "duplicate subject id %s", s.ID)
		seen[s.ID] = true
		icons[s.Icon] = true
		assert.NotEmpty(t, s.Topics, "subject %s has no topics", s.ID)
		for _, tp := range s.Topics {
			assert.NotEmpty(t, tp.Grades, "%s/%s has no grades", s.ID, tp.Name)
			for _, g := range tp.Grades {
				assert.True(t, g.Valid(), "%s/%s has grade %d", s.ID, tp.Name, g)
			}
		}
	}
	assert.Len(t, icons, 7, "each subject should have its own icon")
	assert.Equal(t, []string{"math", "science", "english", "civic", "geo", "history", "commerce"}, SubjectIDs())
}

func TestSubjectsReturnsCopy(t *testing.T) {
	s := Subjects()
	s[0].Name = "changed"
	again, ok := SubjectByID("math")
	require.True(t, ok)
	assert.Equal(t, "Mathematics", again.Name)
}

func TestSubjectByID(t *testing.T) {
	s, ok := SubjectByID("history")
	require.True(t, ok)
	assert.Equal(t, IconHourglass, s.Icon)
	assert.True(t, s.HasTopic("Colonisation"))
	assert.False(t, s.HasTopic("Calculus"))

	_, ok = SubjectByID("latin")
	assert.False(t, ok)
}

func TestTopicsForGrade(t *testing.T) {
	math, _ := SubjectByID("math")

	g8 := math.TopicsFor(8)
	g12 := math.TopicsFor(12)
	assert.Less(t, len(g8), len(g12))
	for _, tp := range g8 {
		assert.NotEqual(t, "Calculus", tp.Name)
	}

	byGrade := TopicsForGrade(12)
	require.NotEmpty(t, byGrade)
	assert.Equal(t, "Mathematics", byGrade[0].Subject)
	assert.Contains(t, byGrade[0].Topics, "Calculus")
}

func TestParseGrade(t *testing.T) {
	tests := []struct {
		in      string
		want    Grade
		wantErr bool
	}{
		{"10", 10, false},
		{"Grade 12", 12, false},
		{" grade 8 ", 8, false},
		{"7", 0, true},
		{"13", 0, true},
		{"ten", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseGrade(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}
	assert.Equal(t, "Grade 9", Grade(9).String())
	assert.Len(t, Grades(), 5)
}

func TestIconGlyph(t *testing.T) {
	assert.Equal(t, "∑", IconCalculator.Glyph())
	assert.Equal(t, "•", Icon(99).Glyph())
}
