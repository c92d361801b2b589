package syllabus

var (
	allGrades    = []Grade{8, 9, 10, 11, 12}
	juniorGrades = []Grade{8, 9}
	seniorGrades = []Grade{10, 11, 12}
	upperGrades  = []Grade{11, 12}
)

func topic(name string, grades []Grade) Topic {
	return Topic{Name: name, Grades: grades}
}

var catalog = []Subject{
	{
		ID: "math", Name: "Mathematics", Icon: IconCalculator,
		Topics: []Topic{
			topic("Algebra", allGrades),
			topic("Geometry", allGrades),
			topic("Trigonometry", seniorGrades),
			topic("Sets", allGrades),
			topic("Probability", seniorGrades),
			topic("Calculus", upperGrades),
			topic("Matrices", upperGrades),
		},
	},
	{
		ID: "science", Name: "Integrated Science", Icon: IconFlask,
		Topics: []Topic{
			topic("Matter", allGrades),
			topic("Energy", allGrades),
			topic("Living Organisms", allGrades),
			topic("The Environment", juniorGrades),
			topic("Chemical Reactions", seniorGrades),
			topic("Physics", seniorGrades),
		},
	},
	{
		ID: "english", Name: "English Language", Icon: IconBook,
		Topics: []Topic{
			topic("Grammar", allGrades),
			topic("Composition", allGrades),
			topic("Comprehension", allGrades),
			topic("Summary", seniorGrades),
			topic("Literature", seniorGrades),
		},
	},
	{
		ID: "civic", Name: "Civic Education", Icon: IconScale,
		Topics: []Topic{
			topic("Constitution", allGrades),
			topic("Governance", allGrades),
			topic("Human Rights", allGrades),
			topic("Citizenship", juniorGrades),
			topic("Economic Development", seniorGrades),
		},
	},
	{
		ID: "geo", Name: "Geography", Icon: IconGlobe,
		Topics: []Topic{
			topic("Physical Geography", allGrades),
			topic("Human Geography", allGrades),
			topic("Map Reading", allGrades),
			topic("Settlements", juniorGrades),
			topic("Population", seniorGrades),
		},
	},
	{
		ID: "history", Name: "History", Icon: IconHourglass,
		Topics: []Topic{
			topic("Central African History", allGrades),
			topic("World History", seniorGrades),
			topic("Industrialisation", seniorGrades),
			topic("Colonisation", allGrades),
		},
	},
	{
		ID: "commerce", Name: "Commerce", Icon: IconBriefcase,
		Topics: []Topic{
			topic("Production", allGrades),
			topic("Trade", allGrades),
			topic("Banking", seniorGrades),
			topic("Transport", juniorGrades),
			topic("Insurance", seniorGrades),
		},
	},
}

// Subjects returns the catalog in display order. The slice is a copy;
// topic slices are shared and must not be modified.
func Subjects() []Subject {
	out := make([]Subject, len(catalog))
	copy(out, catalog)
	return out
}

// SubjectIDs returns every subject id in display order.
func SubjectIDs() []string {
	ids := make([]string, len(catalog))
	for i, s := range catalog {
		ids[i] = s.ID
	}
	return ids
}

// SubjectByID looks a subject up by id.
func SubjectByID(id string) (Subject, bool) {
	for _, s := range catalog {
		if s.ID == id {
			return s, true
		}
	}
	return Subject{}, false
}

// GradeTopics is one subject's topic names for a grade.
type GradeTopics struct {
	Subject string
	Topics  []string
}

// TopicsForGrade lists, per subject, the topic names taught in grade g.
// Subjects with no topics for g are omitted.
func TopicsForGrade(g Grade) []GradeTopics {
	var out []GradeTopics
	for _, s := range catalog {
		topics := s.TopicsFor(g)
		if len(topics) == 0 {
			continue
		}
		names := make([]string, len(topics))
		for i, t := range topics {
			names[i] = t.Name
		}
		out = append(out, GradeTopics{Subject: s.Name, Topics: names})
	}
	return out
}
