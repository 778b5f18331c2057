// Package render writes study guides for terminals, pipes and files.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/custodia-labs/studybuddy/internal/core/domain"
)

// Format selects how a guide is written.
type Format string

// Output formats.
const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// ParseFormat returns the format named by s.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatText, FormatJSON:
		return f, nil
	default:
		return "", fmt.Errorf("%w: unknown output format %q (want text or json)", domain.ErrInvalidInput, s)
	}
}

// Write writes the guide in the given format.
func Write(w io.Writer, g *domain.StudyGuide, f Format) error {
	if f == FormatJSON {
		return JSON(w, g)
	}
	return Text(w, g)
}

// JSON writes the guide as indented JSON with the wire field names.
func JSON(w io.Writer, g *domain.StudyGuide) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(g)
}

// Text writes a plain-text study sheet: one heading per non-empty section,
// answers under each item.
func Text(w io.Writer, g *domain.StudyGuide) error {
	tw := &textWriter{w: w}

	sections := g.Sections()
	if len(sections) == 0 {
		tw.printf("The study guide is empty.\n")
		return tw.err
	}

	for i, s := range sections {
		if i > 0 {
			tw.printf("\n")
		}
		title := s.Title()
		tw.printf("%s\n%s\n", title, strings.Repeat("=", len([]rune(title))))
		writeSection(tw, g, s)
	}
	return tw.err
}

func writeSection(tw *textWriter, g *domain.StudyGuide, s domain.Section) {
	switch s {
	case domain.SectionFlashcards:
		for _, c := range g.Flashcards {
			tw.printf("- %s: %s\n", c.Term, c.Definition)
		}
	case domain.SectionExamSheet:
		for _, q := range g.ExamSheet {
			tw.printf("%d. %s\n", q.QuestionNumber, q.Question)
			for j, o := range q.Options {
				tw.printf("   %c) %s\n", 'a'+rune(j), o)
			}
		}
	default:
		for i, q := range g.Questions(s) {
			writeQuestion(tw, i+1, q)
		}
	}
}

func writeQuestion(tw *textWriter, n int, q domain.Question) {
	switch q := q.(type) {
	case domain.MCQ:
		tw.printf("%d. %s\n", n, q.Question)
		for j, o := range q.Options {
			mark := " "
			if q.IsCorrect(o) {
				mark = "*"
			}
			tw.printf("  %s%c) %s\n", mark, 'a'+rune(j), o)
		}
	case domain.FillInTheBlank:
		tw.printf("%d. %s\n   Answer: %s\n", n, q.Question, q.AnswerText)
	case domain.WhatIsThisCalled:
		tw.printf("%d. %s\n   Answer: %s\n", n, q.Description, q.AnswerText)
	case domain.Definition:
		tw.printf("%d. %s\n   %s\n", n, q.Term, q.Definition)
	case domain.ProgrammingQuestion:
		tw.printf("%d. %s\n%s\n", n, q.Question, indent(q.AnswerText, "   "))
	}
}

func indent(s, prefix string) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	for i, l := range lines {
		lines[i] = prefix + l
	}
	return strings.Join(lines, "\n")
}

// textWriter keeps the first write error so rendering code stays linear.
type textWriter struct {
	w   io.Writer
	err error
}

func (t *textWriter) printf(format string, args ...any) {
	if t.err != nil {
		return
	}
	_, t.err = fmt.Fprintf(t.w, format, args...)
}
