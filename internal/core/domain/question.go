package domain

import "fmt"

// QuestionType tags the five question categories.
type QuestionType string

// Question categories used by practice items and exam questions.
const (
	QuestionMCQ              QuestionType = "MCQ"
	QuestionFillInTheBlank   QuestionType = "FillInTheBlank"
	QuestionWhatIsThisCalled QuestionType = "WhatIsThisCalled"
	QuestionDefinition       QuestionType = "Definition"
	QuestionProgramming      QuestionType = "Programming"
)

// QuestionTypes returns all question categories.
func QuestionTypes() []QuestionType {
	return []QuestionType{
		QuestionMCQ,
		QuestionFillInTheBlank,
		QuestionWhatIsThisCalled,
		QuestionDefinition,
		QuestionProgramming,
	}
}

// IsValid returns true if the question type is recognised.
func (t QuestionType) IsValid() bool {
	switch t {
	case QuestionMCQ, QuestionFillInTheBlank, QuestionWhatIsThisCalled, QuestionDefinition, QuestionProgramming:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (t QuestionType) String() string {
	return string(t)
}

// Question is a practice item. The interface is sealed: only the five
// category types below implement it, so a type switch over them is exhaustive.
type Question interface {
	// Type returns the category tag.
	Type() QuestionType

	// Prompt returns the text shown before the answer is revealed.
	Prompt() string

	// Answer returns the text shown once revealed.
	Answer() string

	isQuestion()
}

// MCQ is a multiple-choice question with exactly four options.
// AnswerText must equal one of the options.
type MCQ struct {
	Question   string   `json:"question"`
	Options    []string `json:"options"`
	AnswerText string   `json:"answer"`
}

// FillInTheBlank is a sentence with the blank marker and the missing word.
type FillInTheBlank struct {
	Question   string `json:"question"`
	AnswerText string `json:"answer"`
}

// WhatIsThisCalled gives a description and asks for the term.
type WhatIsThisCalled struct {
	Description string `json:"description"`
	AnswerText  string `json:"answer"`
}

// Definition gives a term and asks for its definition.
type Definition struct {
	Term       string `json:"term"`
	Definition string `json:"definition"`
}

// ProgrammingQuestion asks a code-related question; the answer is an
// explanation or snippet.
type ProgrammingQuestion struct {
	Question   string `json:"question"`
	AnswerText string `json:"answer"`
}

// BlankMarker is the literal used for the missing word in fill-in-the-blank items.
const BlankMarker = "___"

// MCQOptionCount is the number of options every MCQ carries.
const MCQOptionCount = 4

// Type implements Question.
func (MCQ) Type() QuestionType { return QuestionMCQ }

// Prompt implements Question.
func (q MCQ) Prompt() string { return q.Question }

// Answer implements Question.
func (q MCQ) Answer() string { return q.AnswerText }

func (MCQ) isQuestion() {}

// IsCorrect reports whether option is the right answer.
func (q MCQ) IsCorrect(option string) bool { return option == q.AnswerText }

// AnswerIndex returns the index of the answer among the options, or -1.
func (q MCQ) AnswerIndex() int {
	for i, o := range q.Options {
		if o == q.AnswerText {
			return i
		}
	}
	return -1
}

func (FillInTheBlank) Type() QuestionType { return QuestionFillInTheBlank }

func (q FillInTheBlank) Prompt() string { return q.Question }

func (q FillInTheBlank) Answer() string { return q.AnswerText }

func (FillInTheBlank) isQuestion() {}

func (WhatIsThisCalled) Type() QuestionType { return QuestionWhatIsThisCalled }

func (q WhatIsThisCalled) Prompt() string { return q.Description }

func (q WhatIsThisCalled) Answer() string { return q.AnswerText }

func (WhatIsThisCalled) isQuestion() {}

func (Definition) Type() QuestionType { return QuestionDefinition }

// Prompt asks for the definition of the term.
func (q Definition) Prompt() string {
	return fmt.Sprintf("What is the definition of \"%s\"?", q.Term)
}

func (q Definition) Answer() string { return q.Definition }

func (Definition) isQuestion() {}

func (ProgrammingQuestion) Type() QuestionType { return QuestionProgramming }

func (q ProgrammingQuestion) Prompt() string { return q.Question }

func (q ProgrammingQuestion) Answer() string { return q.AnswerText }

func (ProgrammingQuestion) isQuestion() {}
