package tui

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/iksnae/deepwork/internal"
)

var testNow = time.Date(2024, time.March, 4, 10, 0, 0, 0, time.UTC)

func newTestModel(t *testing.T, seconds int) (Model, *internal.App) {
	t.Helper()
	app := internal.NewMemoryApp()
	app.Clock = internal.FixedClock{At: testNow}
	m, err := New(app, seconds)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return m, app
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	if !ok {
		t.Fatalf("Update() returned %T", next)
	}
	return model, cmd
}

func tick(t *testing.T, m Model, n int) Model {
	t.Helper()
	for i := 0; i < n; i++ {
		m, _ = press(t, m, tickMsg{gen: m.tickGen, at: testNow})
	}
	return m
}

func TestNew_DefaultDuration(t *testing.T) {
	if _, err := New(internal.NewMemoryApp(), 0); err != nil {
		t.Errorf("New() with zero should keep the default, got %v", err)
	}
	m, _ := newTestModel(t, 0)
	if got := m.Engine().State().Initial; got != internal.DefaultSessionSeconds {
		t.Errorf("Initial = %d, want default", got)
	}
}

func TestModel_StartTicksAndPause(t *testing.T) {
	m, _ := newTestModel(t, 120)

	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeySpace})
	if cmd == nil {
		t.Fatal("start should schedule a tick")
	}
	if m.Engine().State().Status != internal.StatusRunning {
		t.Fatal("space should start the session")
	}

	m = tick(t, m, 30)
	if got := m.Engine().State().Remaining; got != 90 {
		t.Errorf("Remaining = %d, want 90", got)
	}

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeySpace})
	if m.Engine().State().Status != internal.StatusIdle {
		t.Fatal("space should pause a running session")
	}
	m = tick(t, m, 5)
	if got := m.Engine().State().Remaining; got != 90 {
		t.Errorf("Remaining after pause = %d, want 90", got)
	}
}

func TestModel_StaleTickIgnored(t *testing.T) {
	m, _ := newTestModel(t, 120)
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeySpace})
	stale := m.tickGen

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeySpace})
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeySpace})

	m, cmd := press(t, m, tickMsg{gen: stale, at: testNow})
	if cmd != nil {
		t.Error("a tick from an earlier run should not reschedule")
	}
	if got := m.Engine().State().Remaining; got != 120 {
		t.Errorf("Remaining = %d, want 120", got)
	}
}

func TestModel_RunToZeroRecords(t *testing.T) {
	m, app := newTestModel(t, 5)
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeySpace})
	m = tick(t, m, 5)

	state := m.Engine().State()
	if state.Status != internal.StatusIdle || state.Remaining != internal.DefaultSessionSeconds {
		t.Errorf("state after exhaustion = %+v", state)
	}
	if got, _ := app.Store.Lookup("2024-03-04"); got != 5 {
		t.Errorf("recorded = %d, want 5", got)
	}
	if !strings.Contains(m.View(), "Recorded 00:00:05 on 2024-03-04") {
		t.Errorf("View() should report the recorded session:\n%s", m.View())
	}
}

func TestModel_FinishAndReset(t *testing.T) {
	m, app := newTestModel(t, 600)
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeySpace})
	m = tick(t, m, 40)
	m, _ = press(t, m, runes("f"))

	if got, _ := app.Store.Lookup("2024-03-04"); got != 40 {
		t.Errorf("recorded after finish = %d, want 40", got)
	}

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeySpace})
	m = tick(t, m, 10)
	m, _ = press(t, m, runes("r"))
	if got, _ := app.Store.Lookup("2024-03-04"); got != 40 {
		t.Errorf("reset should not record, total = %d", got)
	}
	if m.Engine().State().Remaining != internal.DefaultSessionSeconds {
		t.Error("reset should re-arm the default length")
	}
}

func TestModel_EditDuration(t *testing.T) {
	m, _ := newTestModel(t, 0)

	m, _ = press(t, m, runes("e"))
	if !m.editing {
		t.Fatal("e should open the duration field while idle")
	}
	m.input.SetValue("00:25:00")
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	if m.editing {
		t.Error("enter should close the field")
	}
	if got := m.Engine().State().Remaining; got != 1500 {
		t.Errorf("Remaining = %d, want 1500", got)
	}
}

func TestModel_EditRejectsInvalid(t *testing.T) {
	m, _ := newTestModel(t, 0)
	m, _ = press(t, m, runes("e"))
	m.input.SetValue("00:00:00")
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	if !m.editing {
		t.Error("an invalid duration should keep the field open")
	}
	if !errors.Is(m.err, internal.ErrInvalidDuration) {
		t.Errorf("err = %v, want ErrInvalidDuration", m.err)
	}

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.editing {
		t.Error("esc should close the field")
	}
	if got := m.Engine().State().Remaining; got != internal.DefaultSessionSeconds {
		t.Errorf("Remaining = %d, want unchanged default", got)
	}
}

func TestModel_EditWhileRunning(t *testing.T) {
	m, _ := newTestModel(t, 0)
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeySpace})
	m, _ = press(t, m, runes("e"))

	if m.editing {
		t.Error("the field should not open while running")
	}
	if !errors.Is(m.err, internal.ErrSessionRunning) {
		t.Errorf("err = %v, want ErrSessionRunning", m.err)
	}
}

func TestModel_QuitRecordsElapsed(t *testing.T) {
	m, app := newTestModel(t, 300)
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeySpace})
	m = tick(t, m, 12)

	m, cmd := press(t, m, runes("q"))
	if cmd == nil {
		t.Fatal("q should quit")
	}
	if got, _ := app.Store.Lookup("2024-03-04"); got != 12 {
		t.Errorf("recorded on quit = %d, want 12", got)
	}
	if m.View() != "" {
		t.Error("View() should be empty after quitting")
	}
}

func TestModel_QuitIdleRecordsNothing(t *testing.T) {
	m, app := newTestModel(t, 300)
	press(t, m, runes("q"))
	if len(app.Store.Records()) != 0 {
		t.Errorf("records = %+v, want none", app.Store.Records())
	}
}

func TestModel_ViewWarnsWhenNotPersistent(t *testing.T) {
	m, _ := newTestModel(t, 0)
	view := m.View()
	if !strings.Contains(view, "01:00:00") {
		t.Errorf("View() should show the remaining time:\n%s", view)
	}
	if !strings.Contains(view, "Stats may not be saved") {
		t.Errorf("memory-only app should warn:\n%s", view)
	}
}
