package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleGuide() *StudyGuide {
	return &StudyGuide{
		Flashcards: []Flashcard{{Term: "Mitosis", Definition: "Cell division"}},
		MCQs: []MCQ{{
			Question:   "Which organelle makes ATP?",
			Options:    []string{"Nucleus", "Mitochondria", "Ribosome", "Golgi"},
			AnswerText: "Mitochondria",
		}},
		FillInTheBlanks:  []FillInTheBlank{{Question: "DNA is stored in the ___.", AnswerText: "nucleus"}},
		WhatIsThisCalled: []WhatIsThisCalled{{Description: "Powerhouse of the cell", AnswerText: "Mitochondria"}},
		Definitions:      []Definition{{Term: "Osmosis", Definition: "Diffusion of water"}},
		ExamSheet: []ExamQuestion{
			{QuestionNumber: 1, QuestionType: QuestionDefinition, Question: "Define osmosis."},
		},
	}
}

func TestStudyGuide_Sections_SkipsEmpty(t *testing.T) {
	g := sampleGuide()

	sections := g.Sections()

	assert.Equal(t, []Section{
		SectionFlashcards,
		SectionMCQs,
		SectionFillInTheBlanks,
		SectionWhatIsThisCalled,
		SectionDefinitions,
		SectionExamSheet,
	}, sections)
	assert.NotContains(t, sections, SectionProgramming)
}

func TestStudyGuide_DefaultSection(t *testing.T) {
	g := sampleGuide()
	assert.Equal(t, SectionFlashcards, g.DefaultSection())

	g.Flashcards = nil
	assert.Equal(t, SectionMCQs, g.DefaultSection())

	empty := &StudyGuide{}
	assert.Equal(t, SectionFlashcards, empty.DefaultSection())
	assert.Empty(t, empty.Sections())
}

func TestStudyGuide_Len(t *testing.T) {
	g := sampleGuide()
	for _, s := range AllSections() {
		if s == SectionProgramming {
			assert.Zero(t, g.Len(s))
			continue
		}
		assert.Equal(t, 1, g.Len(s), s.Title())
	}

	var nilGuide *StudyGuide
	assert.Zero(t, nilGuide.Len(SectionFlashcards))
}

func TestStudyGuide_Questions(t *testing.T) {
	g := sampleGuide()

	mcqs := g.Questions(SectionMCQs)
	require.Len(t, mcqs, 1)
	assert.Equal(t, QuestionMCQ, mcqs[0].Type())

	defs := g.Questions(SectionDefinitions)
	require.Len(t, defs, 1)
	assert.Equal(t, `What is the definition of "Osmosis"?`, defs[0].Prompt())
	assert.Equal(t, "Diffusion of water", defs[0].Answer())

	assert.Nil(t, g.Questions(SectionFlashcards))
	assert.Nil(t, g.Questions(SectionExamSheet))
	assert.Empty(t, g.Questions(SectionProgramming))
}

func TestStudyGuide_Normalise(t *testing.T) {
	g := &StudyGuide{}
	g.Normalise()

	assert.NotNil(t, g.Flashcards)
	assert.NotNil(t, g.MCQs)
	assert.NotNil(t, g.FillInTheBlanks)
	assert.NotNil(t, g.WhatIsThisCalled)
	assert.NotNil(t, g.Definitions)
	assert.NotNil(t, g.ProgrammingQuestions)
	assert.NotNil(t, g.ExamSheet)
}

func TestSection_Title(t *testing.T) {
	titles := make([]string, 0, len(AllSections()))
	for _, s := range AllSections() {
		titles = append(titles, s.String())
	}
	assert.Equal(t, []string{
		"Flashcards",
		"Multiple Choice",
		"Fill in the Blanks",
		"What is this called?",
		"Definitions",
		"Programming Questions",
		"30-Min Exam",
	}, titles)
	assert.Equal(t, unknownDescription, Section(42).Title())
}

func TestQuestion_TaggedUnion(t *testing.T) {
	questions := []Question{
		MCQ{Question: "q", Options: []string{"a", "b", "c", "d"}, AnswerText: "c"},
		FillInTheBlank{Question: "The ___ sat.", AnswerText: "cat"},
		WhatIsThisCalled{Description: "A small feline", AnswerText: "Kitten"},
		Definition{Term: "Cat", Definition: "A feline"},
		ProgrammingQuestion{Question: "Reverse a list", AnswerText: "xs[::-1]"},
	}

	seen := make(map[QuestionType]bool)
	for _, q := range questions {
		switch v := q.(type) {
		case MCQ:
			assert.Equal(t, 2, v.AnswerIndex())
			assert.True(t, v.IsCorrect("c"))
			assert.False(t, v.IsCorrect("a"))
		case FillInTheBlank:
			assert.Contains(t, v.Prompt(), BlankMarker)
		case WhatIsThisCalled:
			assert.Equal(t, "A small feline", v.Prompt())
		case Definition:
			assert.Equal(t, "A feline", v.Answer())
		case ProgrammingQuestion:
			assert.Equal(t, "xs[::-1]", v.Answer())
		}
		seen[q.Type()] = true
	}

	for _, qt := range QuestionTypes() {
		assert.True(t, seen[qt], qt.String())
		assert.True(t, qt.IsValid())
	}
	assert.False(t, QuestionType("Essay").IsValid())
}

func TestMCQ_AnswerIndex_NotFound(t *testing.T) {
	q := MCQ{Options: []string{"a", "b"}, AnswerText: "z"}
	assert.Equal(t, -1, q.AnswerIndex())
}
