package domain

// StudyGuide is the structured output of one generation.
// Every category is present; a category with no applicable content is an
// empty slice, never nil after decoding.
type StudyGuide struct {
	Flashcards           []Flashcard           `json:"flashcards"`
	MCQs                 []MCQ                 `json:"mcqs"`
	FillInTheBlanks      []FillInTheBlank      `json:"fillInTheBlanks"`
	WhatIsThisCalled     []WhatIsThisCalled    `json:"whatIsThisCalled"`
	Definitions          []Definition          `json:"definitions"`
	ProgrammingQuestions []ProgrammingQuestion `json:"programmingQuestions"`
	ExamSheet            []ExamQuestion        `json:"examSheet"`
}

// Flashcard is a key term and its definition.
type Flashcard struct {
	Term       string `json:"term"`
	Definition string `json:"definition"`
}

// ExamQuestion is one item of the timed exam sheet.
type ExamQuestion struct {
	// QuestionNumber is the 1-based ordinal position.
	QuestionNumber int `json:"questionNumber"`

	// QuestionType tags the category the question belongs to.
	QuestionType QuestionType `json:"questionType"`

	// Question is the question text.
	Question string `json:"question"`

	// Options is present only for MCQ questions.
	Options []string `json:"options,omitempty"`
}

// Section identifies one tab of the study guide viewer.
type Section int

// Sections in display order.
const (
	SectionFlashcards Section = iota
	SectionMCQs
	SectionFillInTheBlanks
	SectionWhatIsThisCalled
	SectionDefinitions
	SectionProgramming
	SectionExamSheet
)

// AllSections returns every section in display order.
func AllSections() []Section {
	return []Section{
		SectionFlashcards,
		SectionMCQs,
		SectionFillInTheBlanks,
		SectionWhatIsThisCalled,
		SectionDefinitions,
		SectionProgramming,
		SectionExamSheet,
	}
}

// Title returns the tab label.
func (s Section) Title() string {
	switch s {
	case SectionFlashcards:
		return "Flashcards"
	case SectionMCQs:
		return "Multiple Choice"
	case SectionFillInTheBlanks:
		return "Fill in the Blanks"
	case SectionWhatIsThisCalled:
		return "What is this called?"
	case SectionDefinitions:
		return "Definitions"
	case SectionProgramming:
		return "Programming Questions"
	case SectionExamSheet:
		return "30-Min Exam"
	default:
		return unknownDescription
	}
}

// String returns the tab label.
func (s Section) String() string {
	return s.Title()
}

// Len returns the number of items in the given section.
func (g *StudyGuide) Len(s Section) int {
	if g == nil {
		return 0
	}
	switch s {
	case SectionFlashcards:
		return len(g.Flashcards)
	case SectionMCQs:
		return len(g.MCQs)
	case SectionFillInTheBlanks:
		return len(g.FillInTheBlanks)
	case SectionWhatIsThisCalled:
		return len(g.WhatIsThisCalled)
	case SectionDefinitions:
		return len(g.Definitions)
	case SectionProgramming:
		return len(g.ProgrammingQuestions)
	case SectionExamSheet:
		return len(g.ExamSheet)
	default:
		return 0
	}
}

// Sections returns the non-empty sections in display order.
func (g *StudyGuide) Sections() []Section {
	var out []Section
	for _, s := range AllSections() {
		if g.Len(s) > 0 {
			out = append(out, s)
		}
	}
	return out
}

// DefaultSection returns the tab shown first: flashcards when present,
// otherwise the first non-empty section.
func (g *StudyGuide) DefaultSection() Section {
	sections := g.Sections()
	if len(sections) == 0 {
		return SectionFlashcards
	}
	return sections[0]
}

// Questions returns the practice items of a question section as the tagged union.
// Flashcards and the exam sheet are not practice questions and return nil.
func (g *StudyGuide) Questions(s Section) []Question {
	if g == nil {
		return nil
	}
	var out []Question
	switch s {
	case SectionMCQs:
		for i := range g.MCQs {
			out = append(out, g.MCQs[i])
		}
	case SectionFillInTheBlanks:
		for i := range g.FillInTheBlanks {
			out = append(out, g.FillInTheBlanks[i])
		}
	case SectionWhatIsThisCalled:
		for i := range g.WhatIsThisCalled {
			out = append(out, g.WhatIsThisCalled[i])
		}
	case SectionDefinitions:
		for i := range g.Definitions {
			out = append(out, g.Definitions[i])
		}
	case SectionProgramming:
		for i := range g.ProgrammingQuestions {
			out = append(out, g.ProgrammingQuestions[i])
		}
	case SectionFlashcards, SectionExamSheet:
		return nil
	}
	return out
}

// Normalise replaces nil category slices with empty ones.
func (g *StudyGuide) Normalise() {
	if g.Flashcards == nil {
		g.Flashcards = []Flashcard{}
	}
	if g.MCQs == nil {
		g.MCQs = []MCQ{}
	}
	if g.FillInTheBlanks == nil {
		g.FillInTheBlanks = []FillInTheBlank{}
	}
	if g.WhatIsThisCalled == nil {
		g.WhatIsThisCalled = []WhatIsThisCalled{}
	}
	if g.Definitions == nil {
		g.Definitions = []Definition{}
	}
	if g.ProgrammingQuestions == nil {
		g.ProgrammingQuestions = []ProgrammingQuestion{}
	}
	if g.ExamSheet == nil {
		g.ExamSheet = []ExamQuestion{}
	}
}
