// Package tui provides the interactive countdown screen using Bubble Tea.
package tui

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/iksnae/deepwork/internal"
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	faceStyle = lipgloss.NewStyle().
			Bold(true).
			Padding(1, 4).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62"))

	runningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	idleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	noticeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))
)

// tickMsg carries one scheduled second. gen ties it to the run that
// scheduled it so a pause and quick restart never doubles the tick rate.
type tickMsg struct {
	gen int
	at  time.Time
}

// completionLog is shared by model copies; the engine calls into it from
// inside Update.
type completionLog struct {
	last  *internal.Completion
	count int
}

// Model is the timer screen
type Model struct {
	app     *internal.App
	engine  *internal.Engine
	tickers *internal.ManualTickers
	done    *completionLog

	keys  keyMap
	help  help.Model
	input textinput.Model
	bar   progress.Model

	editing  bool
	tickGen  int
	err      error
	quitting bool
}

// New builds the screen around a fresh engine wired to app's store.
// initialSeconds configures the first session when positive.
func New(app *internal.App, initialSeconds int) (Model, error) {
	tickers := &internal.ManualTickers{}
	engine := app.NewEngine(tickers.New)
	if initialSeconds > 0 {
		if err := engine.Configure(initialSeconds); err != nil {
			return Model{}, err
		}
	}

	done := &completionLog{}
	engine.OnComplete(func(c internal.Completion) {
		done.last = &c
		done.count++
	})

	ti := textinput.New()
	ti.Placeholder = "HH:MM:SS"
	ti.CharLimit = 12
	ti.Width = 12
	ti.Prompt = "Duration: "

	bar := progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage())
	bar.Width = 36

	return Model{
		app:     app,
		engine:  engine,
		tickers: tickers,
		done:    done,
		keys:    defaultKeyMap(),
		help:    help.New(),
		input:   ti,
		bar:     bar,
	}, nil
}

// Engine exposes the session engine driven by the screen.
func (m Model) Engine() *internal.Engine {
	return m.engine
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return nil
}

func tickCmd(gen int) tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg{gen: gen, at: t}
	})
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		if msg.gen != m.tickGen {
			return m, nil
		}
		m.tickers.Fire(msg.at)
		if m.engine.State().Status == internal.StatusRunning {
			return m, tickCmd(m.tickGen)
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		if m.editing {
			return m.updateEditing(msg)
		}
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m Model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.err = nil
	switch {
	case key.Matches(msg, m.keys.Quit):
		if m.engine.State().Elapsed() > 0 {
			m.engine.Finish()
		}
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Toggle):
		if m.engine.State().Status == internal.StatusRunning {
			m.engine.Pause()
			m.tickGen++
			return m, nil
		}
		m.engine.Start()
		m.tickGen++
		return m, tickCmd(m.tickGen)

	case key.Matches(msg, m.keys.Reset):
		m.engine.Reset()
		m.tickGen++
		return m, nil

	case key.Matches(msg, m.keys.Finish):
		m.engine.Finish()
		m.tickGen++
		return m, nil

	case key.Matches(msg, m.keys.Edit):
		if m.engine.State().Status == internal.StatusRunning {
			m.err = internal.ErrSessionRunning
			return m, nil
		}
		m.editing = true
		m.input.SetValue(internal.FormatClock(m.engine.State().Initial))
		m.input.CursorEnd()
		return m, m.input.Focus()
	}
	return m, nil
}

func (m Model) updateEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.editing = false
		m.input.Blur()
		return m, nil

	case key.Matches(msg, m.keys.Accept):
		seconds, err := internal.ParseClock(m.input.Value())
		if err == nil {
			err = m.engine.Configure(seconds)
		}
		if err != nil {
			m.err = err
			return m, nil
		}
		m.err = nil
		m.editing = false
		m.input.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View implements tea.Model
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	state := m.engine.State()
	var b strings.Builder

	b.WriteString(titleStyle.Render("Deep Work"))
	b.WriteString("\n\n")
	b.WriteString(faceStyle.Render(internal.FormatClock(state.Remaining)))
	b.WriteString("\n")

	percent := 0.0
	if state.Initial > 0 {
		percent = float64(state.Elapsed()) / float64(state.Initial)
	}
	b.WriteString(m.bar.ViewAs(percent))
	b.WriteString("\n")

	if state.Status == internal.StatusRunning {
		b.WriteString(runningStyle.Render("● running"))
	} else {
		b.WriteString(idleStyle.Render("○ " + state.Status.String()))
	}
	b.WriteString("\n\n")

	if m.editing {
		b.WriteString(m.input.View())
		b.WriteString("\n")
	}

	if last := m.done.last; last != nil {
		b.WriteString(noticeStyle.Render(fmt.Sprintf("Recorded %s on %s",
			internal.FormatClock(last.Seconds), internal.DateKey(last.EndedAt))))
		b.WriteString("\n")
	}
	if !m.app.Store.Healthy() || !m.app.Persistent() {
		b.WriteString(warnStyle.Render("Stats may not be saved"))
		b.WriteString("\n")
	}
	if m.err != nil {
		b.WriteString(errorStyle.Render(m.err.Error()))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.editing {
		b.WriteString(m.help.View(editKeys{m.keys}))
	} else {
		b.WriteString(m.help.View(m.keys))
	}
	b.WriteString("\n")
	return b.String()
}

// Run starts the timer screen on the alternate screen. Log output is
// discarded while it is active.
func Run(app *internal.App, initialSeconds int) error {
	model, err := New(app, initialSeconds)
	if err != nil {
		return err
	}

	internal.SetLogOutput(io.Discard)
	defer internal.SetLogOutput(os.Stderr)

	p := tea.NewProgram(model, tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("timer screen failed: %w", err)
	}
	if m, ok := final.(Model); ok {
		if m.done.count > 0 {
			internal.PrintSuccess(fmt.Sprintf("%d session(s) recorded this run", m.done.count))
		} else {
			internal.PrintInfo("No session recorded")
		}
	}
	return nil
}
