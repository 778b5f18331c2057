package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/custodia-labs/studybuddy/internal/core/domain"
	"github.com/custodia-labs/studybuddy/internal/core/ports/driven"
	"github.com/custodia-labs/studybuddy/internal/core/ports/driving"
	"github.com/custodia-labs/studybuddy/internal/logger"
)

// Ensure StudyGuideService implements the interfaces.
var (
	_ driving.StudyGuideService = (*StudyGuideService)(nil)
	_ driven.PromptStoreAware   = (*StudyGuideService)(nil)
)

// Recommended exam length. Guides outside this range are accepted with a warning.
const (
	minExamQuestions = 10
	maxExamQuestions = 15
)

// guideKeys are the top-level keys every response must carry, in schema order.
var guideKeys = []string{
	"flashcards",
	"mcqs",
	"fillInTheBlanks",
	"whatIsThisCalled",
	"definitions",
	"programmingQuestions",
	"examSheet",
}

// StudyGuideService turns document text into a validated study guide with
// a single structured model call.
type StudyGuideService struct {
	model       driven.StructuredModel
	promptStore driven.PromptStore
	maxChars    int
}

// NewStudyGuideService creates a generator. A non-positive maxChars uses
// domain.DefaultMaxChars.
func NewStudyGuideService(model driven.StructuredModel, maxChars int) *StudyGuideService {
	if maxChars <= 0 {
		maxChars = domain.DefaultMaxChars
	}
	return &StudyGuideService{
		model:    model,
		maxChars: maxChars,
	}
}

// SetPromptStore sets the prompt store for loading a customised template.
func (s *StudyGuideService) SetPromptStore(store driven.PromptStore) {
	s.promptStore = store
}

// Generate builds the prompt, calls the model once and validates the result.
func (s *StudyGuideService) Generate(ctx context.Context, text string) (*domain.StudyGuide, error) {
	if strings.TrimSpace(text) == "" {
		return nil, domain.NewFailure(domain.ErrValidationFailure, domain.MsgEmptyText, nil)
	}
	if s.model == nil {
		return nil, s.fail(domain.ErrLLMUnavailable)
	}

	prompt := strings.Replace(s.template(), placeholder, Truncate(text, s.maxChars), 1)
	logger.Debug("generating study guide with %s (%d prompt characters)", s.model.ModelName(), len(prompt))

	raw, err := s.model.GenerateJSON(ctx, prompt, StudyGuideSchema())
	if err != nil {
		return nil, s.fail(err)
	}

	guide, err := DecodeStudyGuide(raw)
	if err != nil {
		return nil, s.fail(err)
	}

	if n := len(guide.ExamSheet); n < minExamQuestions || n > maxExamQuestions {
		logger.Warn("exam sheet has %d questions, expected %d-%d", n, minExamQuestions, maxExamQuestions)
	}
	logger.Debug("study guide: %d flashcards, %d mcqs, %d exam questions",
		len(guide.Flashcards), len(guide.MCQs), len(guide.ExamSheet))

	return guide, nil
}

// placeholder marks where the document text goes in the prompt template.
const placeholder = "%s"

func (s *StudyGuideService) template() string {
	if s.promptStore == nil {
		return driven.DefaultStudyGuidePrompt
	}
	tmpl, err := s.promptStore.Load(driven.PromptStudyGuide)
	if err != nil || strings.Count(tmpl, placeholder) != 1 {
		logger.Warn("using built-in study guide prompt: custom template unusable")
		return driven.DefaultStudyGuidePrompt
	}
	return tmpl
}

// fail logs the diagnostic cause and returns the generic generation failure.
func (s *StudyGuideService) fail(cause error) error {
	model := ""
	if s.model != nil {
		model = s.model.ModelName()
	}
	logger.Error("study guide generation failed", zap.String("model", model), zap.Error(cause))
	return domain.NewFailure(domain.ErrGenerationFailure, domain.MsgGeneration, cause)
}

// Truncate keeps the first max characters (runes) of text.
func Truncate(text string, maxChars int) string {
	if maxChars <= 0 {
		return text
	}
	n := 0
	for i := range text {
		if n == maxChars {
			return text[:i]
		}
		n++
	}
	return text
}

// DecodeStudyGuide parses a model response strictly and validates it.
// Every top-level key must be present and non-null; unknown fields are rejected.
func DecodeStudyGuide(raw string) (*domain.StudyGuide, error) {
	data := []byte(strings.TrimSpace(raw))

	var keys map[string]json.RawMessage
	if err := json.Unmarshal(data, &keys); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	for _, k := range guideKeys {
		v, ok := keys[k]
		if !ok {
			return nil, fmt.Errorf("response missing %q", k)
		}
		if bytes.Equal(bytes.TrimSpace(v), []byte("null")) {
			return nil, fmt.Errorf("response has null %q", k)
		}
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	var guide domain.StudyGuide
	if err := dec.Decode(&guide); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if dec.More() {
		return nil, errors.New("decode response: trailing data")
	}

	guide.Normalise()
	if err := ValidateStudyGuide(&guide); err != nil {
		return nil, err
	}
	return &guide, nil
}

// ValidateStudyGuide checks the invariants the schema cannot express.
func ValidateStudyGuide(g *domain.StudyGuide) error {
	for i, c := range g.Flashcards {
		if err := nonEmpty("flashcards", i, c.Term, c.Definition); err != nil {
			return err
		}
	}
	for i, q := range g.MCQs {
		if err := nonEmpty("mcqs", i, q.Question, q.AnswerText); err != nil {
			return err
		}
		if err := validateOptions("mcqs", i, q.Options); err != nil {
			return err
		}
		if q.AnswerIndex() < 0 {
			return fmt.Errorf("mcqs[%d]: answer %q is not one of the options", i, q.AnswerText)
		}
	}
	for i, q := range g.FillInTheBlanks {
		if err := nonEmpty("fillInTheBlanks", i, q.Question, q.AnswerText); err != nil {
			return err
		}
	}
	for i, q := range g.WhatIsThisCalled {
		if err := nonEmpty("whatIsThisCalled", i, q.Description, q.AnswerText); err != nil {
			return err
		}
	}
	for i, q := range g.Definitions {
		if err := nonEmpty("definitions", i, q.Term, q.Definition); err != nil {
			return err
		}
	}
	for i, q := range g.ProgrammingQuestions {
		if err := nonEmpty("programmingQuestions", i, q.Question, q.AnswerText); err != nil {
			return err
		}
	}
	return validateExam(g.ExamSheet)
}

func validateExam(exam []domain.ExamQuestion) error {
	for i, q := range exam {
		if q.QuestionNumber != i+1 {
			return fmt.Errorf("examSheet[%d]: questionNumber %d, want %d", i, q.QuestionNumber, i+1)
		}
		if !q.QuestionType.IsValid() {
			return fmt.Errorf("examSheet[%d]: unknown questionType %q", i, q.QuestionType)
		}
		if err := nonEmpty("examSheet", i, q.Question); err != nil {
			return err
		}
		if q.QuestionType == domain.QuestionMCQ {
			// Exam items may carry any number of options; practice MCQs have four.
			if len(q.Options) == 0 {
				return fmt.Errorf("examSheet[%d]: MCQ without options", i)
			}
			if err := nonEmpty("examSheet", i, q.Options...); err != nil {
				return err
			}
		} else if len(q.Options) > 0 {
			return fmt.Errorf("examSheet[%d]: options on %s question", i, q.QuestionType)
		}
	}
	return nil
}

func validateOptions(field string, i int, options []string) error {
	if len(options) != domain.MCQOptionCount {
		return fmt.Errorf("%s[%d]: %d options, want %d", field, i, len(options), domain.MCQOptionCount)
	}
	return nonEmpty(field, i, options...)
}

func nonEmpty(field string, i int, values ...string) error {
	for _, v := range values {
		if strings.TrimSpace(v) == "" {
			return fmt.Errorf("%s[%d]: empty field", field, i)
		}
	}
	return nil
}

// StudyGuideSchema returns the response schema sent with every generation.
func StudyGuideSchema() *driven.Schema {
	str := func(desc string) *driven.Schema {
		return &driven.Schema{Type: driven.SchemaString, Description: desc}
	}
	object := func(order []string, props map[string]*driven.Schema, required ...string) *driven.Schema {
		return &driven.Schema{
			Type:          driven.SchemaObject,
			Properties:    props,
			PropertyOrder: order,
			Required:      required,
		}
	}
	array := func(desc string, items *driven.Schema) *driven.Schema {
		return &driven.Schema{Type: driven.SchemaArray, Description: desc, Items: items}
	}
	pair := func(a, b string) *driven.Schema {
		return object([]string{a, b}, map[string]*driven.Schema{a: str(""), b: str("")}, a, b)
	}

	questionTypes := make([]string, 0, len(domain.QuestionTypes()))
	for _, t := range domain.QuestionTypes() {
		questionTypes = append(questionTypes, t.String())
	}

	props := map[string]*driven.Schema{
		"flashcards": array("Key terms and their definitions.", pair("term", "definition")),
		"mcqs": array("Multiple choice questions.", object(
			[]string{"question", "options", "answer"},
			map[string]*driven.Schema{
				"question": str(""),
				"options":  array("", str("")),
				"answer":   str(""),
			},
			"question", "options", "answer",
		)),
		"fillInTheBlanks": array("Sentences with a word missing.", object(
			[]string{"question", "answer"},
			map[string]*driven.Schema{
				"question": str("The sentence with a blank, often represented by ___."),
				"answer":   str(""),
			},
			"question", "answer",
		)),
		"whatIsThisCalled": array(
			"Questions where a description is given and the user must name the term.",
			pair("description", "answer"),
		),
		"definitions": array("Questions asking for the definition of a term.", pair("term", "definition")),
		"programmingQuestions": array(
			"Programming or code-related questions, if applicable to the text. Otherwise, this array should be empty.",
			object(
				[]string{"question", "answer"},
				map[string]*driven.Schema{
					"question": str(""),
					"answer":   str("An explanation or code snippet as the answer."),
				},
				"question", "answer",
			),
		),
		"examSheet": array(
			"A 30-minute exam sheet with a mix of 10-15 questions from the categories above.",
			object(
				[]string{"questionNumber", "questionType", "question", "options"},
				map[string]*driven.Schema{
					"questionNumber": {Type: driven.SchemaInteger},
					"questionType":   {Type: driven.SchemaString, Enum: questionTypes},
					"question":       str(""),
					"options":        array("Only for MCQ type questions.", str("")),
				},
				"questionNumber", "questionType", "question",
			),
		),
	}

	return object(guideKeys, props, guideKeys...)
}
