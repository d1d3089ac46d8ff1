package main

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func pressEnter(t *testing.T, m replModel, line string) replModel {
	t.Helper()
	m.textInput.SetValue(line)
	model, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	rm, ok := model.(replModel)
	if !ok {
		t.Fatalf("unexpected model type %T", model)
	}
	return rm
}

func TestUpdateQuitCommandReturnsQuit(t *testing.T) {
	m := newREPLModel()
	m.textInput.SetValue(":quit")

	model, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	rm, ok := model.(replModel)
	if !ok {
		t.Fatalf("unexpected model type %T", model)
	}

	if !rm.quitting {
		t.Fatalf("quitting flag not set")
	}
	if cmd == nil {
		t.Fatalf("expected tea.Quit command")
	}
	if msg := cmd(); msg != nil {
		if _, ok := msg.(tea.QuitMsg); !ok {
			t.Fatalf("expected QuitMsg, got %T", msg)
		}
	}
}

func TestUpdateHelpCommandToggles(t *testing.T) {
	m := pressEnter(t, newREPLModel(), ":help")
	if !m.showHelp {
		t.Fatalf("help toggle should be enabled")
	}
	if m.textInput.Value() != "" {
		t.Fatalf("input not cleared after command")
	}
}

func TestEvaluateAssignmentStoresGlobal(t *testing.T) {
	m := pressEnter(t, newREPLModel(), "x = 40 + 2")
	v, ok := m.globals.Get("x")
	if !ok {
		t.Fatalf("x not bound in globals")
	}
	if v.Number() != 42 {
		t.Fatalf("x = %s", v.String())
	}
}

func TestEvaluatePrintShowsOutput(t *testing.T) {
	m := pressEnter(t, newREPLModel(), "print 'hi'")
	if len(m.history) != 1 {
		t.Fatalf("history length = %d", len(m.history))
	}
	entry := m.history[0]
	if entry.isErr {
		t.Fatalf("unexpected error entry: %s", entry.output)
	}
	if entry.output != "hi" {
		t.Fatalf("output = %q", entry.output)
	}
}

func TestEvaluateErrorIsMarked(t *testing.T) {
	m := pressEnter(t, newREPLModel(), "print 1 / 0")
	if len(m.history) != 1 || !m.history[0].isErr {
		t.Fatalf("expected error entry, got %#v", m.history)
	}
}

func TestBlockEntryBuffersUntilEmptyLine(t *testing.T) {
	m := newREPLModel()

	m = pressEnter(t, m, "if 1 < 2:")
	if len(m.pending) != 1 {
		t.Fatalf("block header not buffered")
	}
	if m.textInput.Prompt != replContinuePrompt {
		t.Fatalf("continuation prompt not shown")
	}
	if len(m.history) != 0 {
		t.Fatalf("nothing should run yet")
	}

	m = pressEnter(t, m, "  x = 1")
	if len(m.pending) != 2 {
		t.Fatalf("continuation line not buffered")
	}

	m = pressEnter(t, m, "")
	if len(m.pending) != 0 {
		t.Fatalf("block not flushed on empty line")
	}
	if m.textInput.Prompt != replPrompt {
		t.Fatalf("prompt not restored")
	}
	if v, ok := m.globals.Get("x"); !ok || v.Number() != 1 {
		t.Fatalf("block did not execute: %#v", m.globals)
	}
}

func TestClassDefinedInEarlierSubmissionIsInstantiable(t *testing.T) {
	m := newREPLModel()
	m = pressEnter(t, m, "class Pair:")
	m = pressEnter(t, m, "  def __init__(self, a):")
	m = pressEnter(t, m, "    self.a = a")
	m = pressEnter(t, m, "")
	m = pressEnter(t, m, "p = Pair(7)")
	m = pressEnter(t, m, "print p.a")
	last := m.history[len(m.history)-1]
	if last.isErr || last.output != "7" {
		t.Fatalf("unexpected entry: %#v", last)
	}
}

func TestGlobalsPersistAcrossSubmissions(t *testing.T) {
	m := pressEnter(t, newREPLModel(), "x = 1")
	m = pressEnter(t, m, "x = x + 1")
	if v, _ := m.globals.Get("x"); v.Number() != 2 {
		t.Fatalf("x = %s", v.String())
	}
}

func TestResetCommandClearsGlobals(t *testing.T) {
	m := pressEnter(t, newREPLModel(), "x = 1")
	m = pressEnter(t, m, ":reset")
	if len(m.globals) != 0 {
		t.Fatalf("globals not cleared")
	}
}
