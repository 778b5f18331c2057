// Package guide provides the tabbed study guide view for the TUI.
package guide

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/studybuddy/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/studybuddy/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/studybuddy/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/studybuddy/internal/core/domain"
)

// item identifies one question card.
type item struct {
	section domain.Section
	index   int
}

// View shows one section of a generated guide at a time.
type View struct {
	styles *styles.Styles
	keymap *keymap.KeyMap
	guide  *domain.StudyGuide
	name   string

	tabs   []domain.Section
	active int

	// Flashcards tab.
	card    int
	flipped bool

	// Question tabs, per section cursor and per card answers.
	cursor   map[domain.Section]int
	chosen   map[item]int
	revealed map[item]bool

	// Exam sheet scroll offset.
	offset int

	width  int
	height int
}

// NewView creates an empty guide view.
func NewView(s *styles.Styles, km *keymap.KeyMap) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}
	v := &View{
		styles: s,
		keymap: km,
		width:  80,
		height: 24,
	}
	v.SetGuide(nil, "")
	return v
}

// SetGuide shows g, titled with the document name, and resets all
// per-card state. The first tab is flashcards when it has items.
func (v *View) SetGuide(g *domain.StudyGuide, name string) {
	v.guide = g
	v.name = name
	v.tabs = nil
	v.active = 0
	v.card = 0
	v.flipped = false
	v.cursor = make(map[domain.Section]int)
	v.chosen = make(map[item]int)
	v.revealed = make(map[item]bool)
	v.offset = 0

	if g == nil {
		return
	}
	v.tabs = g.Sections()
	def := g.DefaultSection()
	for i, s := range v.tabs {
		if s == def {
			v.active = i
		}
	}
}

// Init initialises the guide view.
func (v *View) Init() tea.Cmd {
	return nil
}

// Update handles messages for the guide view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return v, nil
	}
	k := keyMsg.String()

	switch {
	case keymap.Matches(k, v.keymap.Back):
		return v, func() tea.Msg { return messages.ViewChanged{View: messages.ViewUpload} }
	case keymap.Matches(k, v.keymap.NextTab):
		v.SelectTab(v.active + 1)
		return v, nil
	case keymap.Matches(k, v.keymap.PrevTab):
		v.SelectTab(v.active - 1)
		return v, nil
	}

	section, ok := v.ActiveSection()
	if !ok {
		return v, nil
	}

	// Digits pick options on the multiple choice tab and switch tabs elsewhere.
	if section == domain.SectionMCQs && keymap.Matches(k, v.keymap.Choose) {
		v.choose(k)
		return v, nil
	}
	if n, err := strconv.Atoi(k); err == nil && n >= 1 && n <= len(v.tabs) {
		v.active = n - 1
		return v, nil
	}

	switch section {
	case domain.SectionFlashcards:
		v.updateFlashcards(k)
	case domain.SectionExamSheet:
		v.updateExam(k)
	default:
		v.updateQuestions(section, k)
	}
	return v, nil
}

// SelectTab activates tab i, wrapping around at both ends.
func (v *View) SelectTab(i int) {
	if len(v.tabs) == 0 {
		return
	}
	v.active = (i%len(v.tabs) + len(v.tabs)) % len(v.tabs)
}

func (v *View) updateFlashcards(k string) {
	n := len(v.guide.Flashcards)
	switch {
	case keymap.Matches(k, v.keymap.Flip):
		v.flipped = !v.flipped
	case keymap.Matches(k, v.keymap.Next):
		if v.card < n-1 {
			v.card++
			v.flipped = false
		}
	case keymap.Matches(k, v.keymap.Prev):
		if v.card > 0 {
			v.card--
			v.flipped = false
		}
	}
}

func (v *View) updateQuestions(section domain.Section, k string) {
	n := v.guide.Len(section)
	switch {
	case keymap.Matches(k, v.keymap.Down):
		if v.cursor[section] < n-1 {
			v.cursor[section]++
		}
	case keymap.Matches(k, v.keymap.Up):
		if v.cursor[section] > 0 {
			v.cursor[section]--
		}
	case keymap.Matches(k, v.keymap.Reveal):
		v.revealed[item{section, v.cursor[section]}] = true
	}
}

// choose records an MCQ option. Answers are fixed once revealed.
func (v *View) choose(k string) {
	n, err := strconv.Atoi(k)
	if err != nil || v.guide.Len(domain.SectionMCQs) == 0 {
		return
	}
	it := item{domain.SectionMCQs, v.cursor[domain.SectionMCQs]}
	if v.revealed[it] || n > len(v.guide.MCQs[it.index].Options) {
		return
	}
	v.chosen[it] = n - 1
}

func (v *View) updateExam(k string) {
	switch {
	case keymap.Matches(k, v.keymap.Down):
		if v.offset < len(v.guide.ExamSheet)-1 {
			v.offset++
		}
	case keymap.Matches(k, v.keymap.Up):
		if v.offset > 0 {
			v.offset--
		}
	}
}

// View renders the tab bar and the active section.
func (v *View) View() string {
	var b strings.Builder

	title := "Study guide"
	if v.name != "" {
		title += ": " + v.name
	}
	b.WriteString(v.styles.Title.Render(title))
	b.WriteString("\n\n")

	section, ok := v.ActiveSection()
	if !ok {
		b.WriteString(v.styles.Muted.Render("The model returned an empty study guide. Press esc to try another file."))
		return b.String()
	}

	b.WriteString(v.renderTabs())
	b.WriteString("\n\n")

	switch section {
	case domain.SectionFlashcards:
		b.WriteString(v.renderFlashcard())
	case domain.SectionExamSheet:
		b.WriteString(v.renderExam())
	default:
		b.WriteString(v.renderQuestions(section))
	}
	return b.String()
}

func (v *View) renderTabs() string {
	tabs := make([]string, len(v.tabs))
	for i, s := range v.tabs {
		label := fmt.Sprintf("%d %s", i+1, s.Title())
		if i == v.active {
			tabs[i] = v.styles.ActiveTab.Render(label)
		} else {
			tabs[i] = v.styles.Tab.Render(label)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (v *View) renderFlashcard() string {
	c := v.guide.Flashcards[v.card]

	face, hint := c.Term, "space to flip"
	style := v.styles.Subtitle
	if v.flipped {
		face, hint = c.Definition, "space to flip back"
		style = v.styles.Normal
	}

	card := v.styles.Card.Width(v.cardWidth()).Render(style.Render(face))
	counter := v.styles.Muted.Render(fmt.Sprintf("Card %d of %d · %s · ←/→ to move", v.card+1, len(v.guide.Flashcards), hint))
	return card + "\n" + counter
}

func (v *View) renderQuestions(section domain.Section) string {
	questions := v.guide.Questions(section)
	cursor := v.cursor[section]

	var b strings.Builder
	start, end := v.window(cursor, len(questions))
	for i := start; i < end; i++ {
		it := item{section, i}
		body := v.renderQuestion(it, questions[i])
		style := v.styles.Border.Width(v.cardWidth()).Padding(0, 1)
		if i == cursor {
			style = v.styles.Card.Width(v.cardWidth()).Padding(0, 1)
		}
		b.WriteString(style.Render(body))
		b.WriteString("\n")
	}
	b.WriteString(v.styles.Muted.Render(fmt.Sprintf("Question %d of %d", cursor+1, len(questions))))
	return b.String()
}

func (v *View) renderQuestion(it item, q domain.Question) string {
	var b strings.Builder
	prompt := q.Prompt()
	if d, ok := q.(domain.Definition); ok {
		prompt = fmt.Sprintf("What is the definition of %q?", d.Term)
	}
	b.WriteString(v.styles.Normal.Render(prompt))

	revealed := v.revealed[it]
	if mcq, ok := q.(domain.MCQ); ok {
		chosen, hasChoice := v.chosen[it]
		for i, o := range mcq.Options {
			b.WriteString("\n")
			b.WriteString(v.renderOption(i, o, mcq.IsCorrect(o), hasChoice && chosen == i, revealed))
		}
	}

	b.WriteString("\n")
	if revealed {
		b.WriteString(v.styles.Success.Render("Answer: "))
		b.WriteString(v.styles.Normal.Render(q.Answer()))
	} else {
		b.WriteString(v.styles.Muted.Render("enter to show answer"))
	}
	return b.String()
}

func (v *View) renderOption(i int, option string, correct, chosen, revealed bool) string {
	label := fmt.Sprintf("%d) %s", i+1, option)
	switch {
	case revealed && correct:
		return v.styles.Correct.Render("✓ " + label)
	case revealed && chosen:
		return v.styles.Wrong.Render("✗ " + label)
	case chosen:
		return v.styles.Selected.Render("› " + label)
	default:
		return v.styles.Normal.Render("  " + label)
	}
}

func (v *View) renderExam() string {
	var b strings.Builder
	b.WriteString(v.styles.Subtitle.Render("30-Minute Exam"))
	b.WriteString("\n\n")

	exam := v.guide.ExamSheet
	start, end := v.window(v.offset, len(exam))
	for _, q := range exam[start:end] {
		b.WriteString(v.styles.Normal.Render(fmt.Sprintf("%d. %s", q.QuestionNumber, q.Question)))
		b.WriteString("\n")
		if q.QuestionType == domain.QuestionMCQ {
			for _, o := range q.Options {
				b.WriteString(v.styles.Muted.Render("   • " + o))
				b.WriteString("\n")
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}

// window returns the visible slice of n items keeping cursor on screen.
// Cards take several lines, so height is divided conservatively.
func (v *View) window(cursor, n int) (int, int) {
	visible := (v.height - 8) / 6
	if visible < 1 {
		visible = 1
	}
	start := 0
	if cursor >= visible {
		start = cursor - visible + 1
	}
	end := start + visible
	if end > n {
		end = n
	}
	return start, end
}

func (v *View) cardWidth() int {
	w := v.width - 4
	if w > 100 {
		w = 100
	}
	if w < 20 {
		w = 20
	}
	return w
}

// Bindings returns the hints for the active tab.
func (v *View) Bindings() []key.Binding {
	section, ok := v.ActiveSection()
	switch {
	case !ok:
		return []key.Binding{v.keymap.Back, v.keymap.Quit}
	case section == domain.SectionFlashcards:
		return v.keymap.FlashcardHelp()
	case section == domain.SectionExamSheet:
		return v.keymap.ExamHelp()
	default:
		return v.keymap.QuestionHelp()
	}
}

// Tabs returns the visible sections in display order.
func (v *View) Tabs() []domain.Section {
	return v.tabs
}

// ActiveSection returns the section on screen, false when the guide is empty.
func (v *View) ActiveSection() (domain.Section, bool) {
	if len(v.tabs) == 0 {
		return 0, false
	}
	return v.tabs[v.active], true
}

// Card returns the flashcard index and whether it shows the definition.
func (v *View) Card() (int, bool) {
	return v.card, v.flipped
}

// Cursor returns the selected question of a section.
func (v *View) Cursor(s domain.Section) int {
	return v.cursor[s]
}

// Chosen returns the option picked for an MCQ, false if none.
func (v *View) Chosen(index int) (int, bool) {
	c, ok := v.chosen[item{domain.SectionMCQs, index}]
	return c, ok
}

// Revealed reports whether the answer of a question card is shown.
func (v *View) Revealed(s domain.Section, index int) bool {
	return v.revealed[item{s, index}]
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
}
