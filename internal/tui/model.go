// Package tui presents a deck in the terminal. Key presses go through the
// same navigator as every other input adapter.
package tui

import (
	"fmt"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/dgallion1/minitut/internal/deck"
	"github.com/dgallion1/minitut/internal/dom"
	"github.com/dgallion1/minitut/internal/nav"
	"github.com/dgallion1/minitut/internal/tutorial"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	footerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	activeStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	chapterStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	tocStyle     = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, true, false, false).
			PaddingRight(1).
			MarginRight(1)
)

// Model is the bubbletea model of the terminal presenter.
type Model struct {
	tut        *tutorial.Tutorial
	log        *zap.Logger
	width      int
	height     int
	scroll     int
	tocVisible bool
	body       string
}

// New creates the presenter for a started tutorial. It becomes the
// renderer's viewport so every render scrolls back to the top.
func New(tut *tutorial.Tutorial, log *zap.Logger) *Model {
	if log == nil {
		log = zap.NewNop()
	}
	m := &Model{
		tut:        tut,
		log:        log,
		width:      80,
		height:     24,
		tocVisible: !tut.TOC.Collapsible() && tut.TOC.Len() > 0,
	}
	tut.Renderer.SetViewport(m)
	m.refresh()
	return m
}

// ScrollTo implements deck.Viewport.
func (m *Model) ScrollTo(_, y int) { m.scroll = max(y, 0) }

func (m *Model) Init() tea.Cmd { return nil }

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "t":
			m.toggleTOC()
			return m, nil
		case "down", "j":
			m.scroll++
			return m, nil
		case "up", "k":
			if m.scroll > 0 {
				m.scroll--
			}
			return m, nil
		}
		if k, ok := keyPress(msg); ok && m.tut.Nav.Handle(k) {
			m.refresh()
		}
	}
	return m, nil
}

// keyPress translates a terminal key into a navigation key press. The
// terminal has no focused element, so the target is the page body.
func keyPress(msg tea.KeyMsg) (nav.KeyPress, bool) {
	k := nav.KeyPress{Alt: msg.Alt}
	switch msg.Type {
	case tea.KeyLeft:
		k.Code = nav.KeyArrowLeft
	case tea.KeyRight:
		k.Code = nav.KeyArrowRight
	case tea.KeyEnter:
		k.Code = nav.KeyEnter
	case tea.KeyShiftLeft:
		k.Code, k.Shift = nav.KeyArrowLeft, true
	case tea.KeyShiftRight:
		k.Code, k.Shift = nav.KeyArrowRight, true
	case tea.KeyCtrlLeft:
		k.Code, k.Ctrl = nav.KeyArrowLeft, true
	case tea.KeyCtrlRight:
		k.Code, k.Ctrl = nav.KeyArrowRight, true
	default:
		return k, false
	}
	return k, true
}

func (m *Model) toggleTOC() {
	if m.tut.TOC.Collapsible() {
		m.tocVisible = m.tut.TOC.Toggle()
		return
	}
	m.tocVisible = !m.tocVisible
}

// refresh converts the visible section to Markdown.
func (m *Model) refresh() {
	sec := m.tut.Current()
	if sec == nil || !sec.Visible() {
		m.body = ""
		return
	}
	md, err := htmltomarkdown.ConvertNode(dom.Clone(sec.Node))
	if err != nil {
		m.log.Warn("convert section", zap.Int("index", sec.Index()), zap.Error(err))
		m.body = dom.TextContent(sec.Node)
		return
	}
	m.body = strings.TrimSpace(string(md))
}

func (m *Model) View() string {
	st := m.tut.Nav.State()

	header := titleStyle.Render(m.tut.Doc.Title())
	footer := footerStyle.Render(m.footer(st))

	content := m.body
	if st.Total == 0 {
		content = "(no sections)"
	}
	lines := strings.Split(content, "\n")
	avail := max(m.height-4, 1)
	if m.scroll > len(lines)-1 {
		m.scroll = max(len(lines)-1, 0)
	}
	lines = lines[m.scroll:]
	if len(lines) > avail {
		lines = lines[:avail]
	}
	body := strings.Join(lines, "\n")

	if m.tocVisible {
		body = lipgloss.JoinHorizontal(lipgloss.Top, tocStyle.Render(m.tocView(st.Current)), body)
	}
	return lipgloss.JoinVertical(lipgloss.Left, header, "", body, "", footer)
}

func (m *Model) footer(st nav.State) string {
	var prev, next string
	if s := m.tut.Doc.Section(st.Current - 1); s != nil && s.Title() != "" {
		prev = "‹ " + s.Title()
	}
	if s := m.tut.Doc.Section(st.Current + 1); s != nil && s.Title() != "" {
		next = s.Title() + " ›"
	}
	pos := fmt.Sprintf("%d/%d", st.Current, st.Total)
	return strings.Join([]string{prev, pos, next, "←/→ navigate · t contents · q quit"}, "  ")
}

func (m *Model) tocView(current int) string {
	var b strings.Builder
	for _, g := range m.tut.TOC.Groups {
		if g.Chapter {
			b.WriteString(chapterStyle.Render(g.Heading))
			b.WriteByte('\n')
		}
		for _, e := range g.Entries {
			line := fmt.Sprintf("%d. %s", e.Index, e.Title)
			if e.Index == current {
				line = activeStyle.Render("› " + line)
			} else {
				line = "  " + line
			}
			b.WriteString(line)
			b.WriteByte('\n')
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

var _ deck.Viewport = (*Model)(nil)

// Run starts the terminal program and blocks until the user quits.
func Run(tut *tutorial.Tutorial, log *zap.Logger, opts ...tea.ProgramOption) error {
	if _, err := tea.NewProgram(New(tut, log), opts...).Run(); err != nil {
		return fmt.Errorf("run terminal presenter: %w", err)
	}
	return nil
}
