// Package tui provides the Bubble Tea quiz interface.
package tui

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dkaul/quizdeck/internal/game"
	"github.com/dkaul/quizdeck/internal/model"
)

type phase int

const (
	phaseModeSelect phase = iota
	phaseQuestion
	phaseFeedback
	phaseSummary
	phaseReview
)

// Model implements the Bubble Tea quiz UI.
type Model struct {
	engine    *game.Engine
	config    model.Config
	topic     string
	questions []model.Question
	answers   []model.Answer

	width  int
	height int

	phase         phase
	idx           int
	quizStreak    int
	questionStart time.Time
	bookmarkNext  bool

	confirmQuit bool
	reviewIdx   int

	result    *game.Result
	finishErr error
}

var (
	headerStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	questionStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	optionStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	correctStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#52C41A"))
	incorrectStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	noticeStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	footerStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
)

// NewModel constructs a quiz TUI model for an already loaded question set.
func NewModel(engine *game.Engine, cfg model.Config, topic string, questions []model.Question) *Model {
	return &Model{
		engine:    engine,
		config:    cfg,
		topic:     topic,
		questions: questions,
		answers:   make([]model.Answer, 0, len(questions)),
	}
}

// Result reports the quiz outcome once the program has exited, or nil
// when the quiz was abandoned.
func (m *Model) Result() *game.Result {
	return m.result
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	default:
		return m, nil
	}
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}
	if m.confirmQuit {
		switch msg.String() {
		case "y", "Y":
			return m, tea.Quit
		default:
			m.confirmQuit = false
			return m, nil
		}
	}

	switch m.phase {
	case phaseModeSelect:
		return m.handleModeSelectKey(msg)
	case phaseQuestion:
		return m.handleQuestionKey(msg)
	case phaseFeedback:
		return m.handleFeedbackKey(msg)
	case phaseSummary:
		return m.handleSummaryKey(msg)
	case phaseReview:
		return m.handleReviewKey(msg)
	}
	return m, nil
}

func (m *Model) handleModeSelectKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q":
		return m, tea.Quit
	case "1", "p":
		m.config.Mode = model.ModePractice
	case "2", "a":
		m.config.Mode = model.ModeAttempt
	case "enter":
		// Keep the configured default.
	default:
		return m, nil
	}
	m.phase = phaseQuestion
	m.questionStart = time.Now()
	return m, nil
}

func (m *Model) handleQuestionKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	switch key {
	case "esc":
		m.confirmQuit = true
		return m, nil
	case "s":
		m.recordAnswer(model.SkippedIndex)
		return m, nil
	case "b":
		m.bookmarkNext = !m.bookmarkNext
		return m, nil
	}
	if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
		choice := int(key[0] - '1')
		if choice < len(m.questions[m.idx].Options) {
			m.recordAnswer(choice)
		}
	}
	return m, nil
}

func (m *Model) recordAnswer(selected int) {
	q := m.questions[m.idx]
	correct := selected == q.CorrectIndex
	m.answers = append(m.answers, model.Answer{
		QuestionIndex: m.idx,
		SelectedIndex: selected,
		Correct:       correct,
		TimeTaken:     time.Since(m.questionStart).Seconds(),
		Bookmarked:    m.bookmarkNext,
	})
	if correct {
		m.quizStreak++
	} else {
		m.quizStreak = 0
	}
	m.bookmarkNext = false
	m.phase = phaseFeedback
}

func (m *Model) handleFeedbackKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.confirmQuit = true
		return m, nil
	case "enter", " ", "n":
		m.idx++
		if m.idx >= len(m.questions) {
			m.finishQuiz()
			m.phase = phaseSummary
			return m, nil
		}
		m.phase = phaseQuestion
		m.questionStart = time.Now()
	}
	return m, nil
}

func (m *Model) handleSummaryKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "r":
		if m.result != nil {
			m.phase = phaseReview
			m.reviewIdx = 0
		}
		return m, nil
	case "q", "enter", "esc":
		return m, tea.Quit
	}
	return m, nil
}

func (m *Model) handleReviewKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "left", "h":
		if m.reviewIdx > 0 {
			m.reviewIdx--
		}
	case "right", "l":
		if m.reviewIdx < len(m.answers)-1 {
			m.reviewIdx++
		}
	case "q", "esc":
		m.phase = phaseSummary
	}
	return m, nil
}

func (m *Model) finishQuiz() {
	ctx := context.Background()
	result, err := m.engine.FinishQuiz(ctx, m.topic, m.questions, m.answers, m.quizStreak, m.config.Mode, time.Now())
	if err != nil {
		logErrf("failed to save quiz: %v\n", err)
		m.finishErr = err
		return
	}
	m.result = &result
}

// View implements tea.Model.
func (m *Model) View() string {
	var content string
	switch {
	case m.confirmQuit:
		content = "Quit without saving this quiz? (y/N)"
	case m.phase == phaseModeSelect:
		content = m.viewModeSelect()
	case m.phase == phaseQuestion:
		content = m.viewQuestion(false)
	case m.phase == phaseFeedback:
		content = m.viewQuestion(true)
	case m.phase == phaseSummary:
		content = m.viewSummary()
	case m.phase == phaseReview:
		content = m.viewReview()
	}
	if m.width == 0 || m.height == 0 {
		return content
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

func (m *Model) contentWidth() int {
	if m.width == 0 {
		return 60
	}
	w := int(float64(m.width) * 0.70)
	if w < 20 {
		w = 20
	}
	return w
}

func (m *Model) viewModeSelect() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("%s  (%d questions)", m.topic, len(m.questions))))
	b.WriteString("\n\n")
	b.WriteString(questionStyle.Render("Choose a mode:"))
	b.WriteString("\n\n")
	practice := optionStyle
	attempt := optionStyle
	if m.config.Mode == model.ModeAttempt {
		attempt = noticeStyle
	} else {
		practice = noticeStyle
	}
	b.WriteString(practice.Render("1. practice  (no penalty for wrong answers)"))
	b.WriteByte('\n')
	b.WriteString(attempt.Render("2. attempt   (wrong answers cost 0.25 points)"))
	b.WriteString("\n\n")
	b.WriteString(footerStyle.Render("1/2 pick · enter default · q quit"))
	return b.String()
}

func (m *Model) viewQuestion(feedback bool) string {
	q := m.questions[m.idx]
	width := m.contentWidth()
	lang := m.config.Lang

	var b strings.Builder
	header := fmt.Sprintf("%s  %d/%d", m.topic, m.idx+1, len(m.questions))
	if m.quizStreak >= 3 {
		header += fmt.Sprintf("  streak %d", m.quizStreak)
	}
	if m.bookmarkNext {
		header += "  [bookmark]"
	}
	b.WriteString(headerStyle.Render(header))
	b.WriteString("\n\n")
	b.WriteString(questionStyle.Render(wrapText(q.Text.Get(lang), width)))
	b.WriteString("\n\n")

	var answered *model.Answer
	if feedback {
		answered = &m.answers[len(m.answers)-1]
	}
	for i, opt := range q.Options {
		line := fmt.Sprintf("%d. %s", i+1, opt.Get(lang))
		style := optionStyle
		if feedback {
			switch {
			case i == q.CorrectIndex:
				style = correctStyle
			case i == answered.SelectedIndex:
				style = incorrectStyle
			}
		}
		b.WriteString(style.Render(wrapText(line, width)))
		b.WriteByte('\n')
	}

	if feedback {
		b.WriteByte('\n')
		switch {
		case answered.Skipped():
			b.WriteString(footerStyle.Render("Skipped."))
		case answered.Correct:
			b.WriteString(correctStyle.Render("Correct!"))
		default:
			b.WriteString(incorrectStyle.Render("Incorrect."))
		}
		if expl := q.Explanation.Get(lang); expl != "" {
			b.WriteByte('\n')
			b.WriteString(questionStyle.Render(wrapText(expl, width)))
		}
		b.WriteString("\n\n")
		b.WriteString(footerStyle.Render("enter next · esc quit"))
	} else {
		b.WriteByte('\n')
		b.WriteString(footerStyle.Render("1-9 answer · s skip · b bookmark · esc quit"))
	}
	return b.String()
}

func (m *Model) viewSummary() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("Quiz complete"))
	b.WriteString("\n\n")

	if m.finishErr != nil {
		b.WriteString(incorrectStyle.Render(fmt.Sprintf("Could not save results: %v", m.finishErr)))
		b.WriteString("\n\n")
		b.WriteString(footerStyle.Render("q quit"))
		return b.String()
	}
	if m.result == nil {
		return b.String()
	}

	s := m.result.Summary
	lines := []string{
		fmt.Sprintf("Score: %d/%d", s.Score, s.TotalQuestions),
		fmt.Sprintf("Accuracy: %.1f%%", s.Accuracy),
		fmt.Sprintf("Net score: %.2f", s.NetScore),
		fmt.Sprintf("Skipped: %d", s.Skipped),
		fmt.Sprintf("XP earned: %d (total %d, level %d)", s.XPEarned, m.result.Xp.TotalXP, m.result.Xp.Level),
		fmt.Sprintf("Daily streak: %d", m.result.Streak.CurrentStreak),
	}
	for _, line := range lines {
		b.WriteString(questionStyle.Render(line))
		b.WriteByte('\n')
	}
	if m.result.LeveledUp {
		b.WriteByte('\n')
		b.WriteString(noticeStyle.Render(fmt.Sprintf("Level up! You reached level %d.", m.result.Xp.Level)))
		b.WriteByte('\n')
	}
	for _, ach := range m.result.Unlocked {
		b.WriteString(noticeStyle.Render(fmt.Sprintf("Achievement unlocked: %s", ach.Name.Get(m.config.Lang))))
		b.WriteByte('\n')
	}
	b.WriteByte('\n')
	b.WriteString(footerStyle.Render("r review · q quit"))
	return b.String()
}

func (m *Model) viewReview() string {
	width := m.contentWidth()
	lang := m.config.Lang
	ans := m.answers[m.reviewIdx]
	q := m.questions[ans.QuestionIndex]

	var b strings.Builder
	header := fmt.Sprintf("Review  %d/%d", m.reviewIdx+1, len(m.answers))
	if ans.Bookmarked {
		header += "  [bookmark]"
	}
	b.WriteString(headerStyle.Render(header))
	b.WriteString("\n\n")
	b.WriteString(questionStyle.Render(wrapText(q.Text.Get(lang), width)))
	b.WriteString("\n\n")
	for i, opt := range q.Options {
		line := fmt.Sprintf("%d. %s", i+1, opt.Get(lang))
		style := optionStyle
		switch {
		case i == q.CorrectIndex:
			style = correctStyle
		case i == ans.SelectedIndex:
			style = incorrectStyle
		}
		b.WriteString(style.Render(wrapText(line, width)))
		b.WriteByte('\n')
	}
	b.WriteByte('\n')
	switch {
	case ans.Skipped():
		b.WriteString(footerStyle.Render(fmt.Sprintf("Skipped after %.1fs", ans.TimeTaken)))
	case ans.Correct:
		b.WriteString(correctStyle.Render(fmt.Sprintf("Correct in %.1fs", ans.TimeTaken)))
	default:
		b.WriteString(incorrectStyle.Render(fmt.Sprintf("Incorrect after %.1fs", ans.TimeTaken)))
	}
	if expl := q.Explanation.Get(lang); expl != "" {
		b.WriteByte('\n')
		b.WriteString(questionStyle.Render(wrapText(expl, width)))
	}
	b.WriteString("\n\n")
	b.WriteString(footerStyle.Render("←/→ navigate · q back"))
	return b.String()
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
