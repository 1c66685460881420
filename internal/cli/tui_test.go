package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/artifactscout/pkg/version"
)

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestVersionListModel(t *testing.T) {
	m := NewVersionListModel("g:a", version.ParseAll([]string{"1.0", "2.0", "1.5"}))
	if strings.Join(m.Versions, ",") != "2.0,1.5,1.0" {
		t.Fatalf("Versions = %v, want newest first", m.Versions)
	}

	var model tea.Model = m
	for _, k := range []string{"down", "j", "j", "up"} {
		model, _ = model.Update(key(k))
	}
	model, cmd := model.Update(key("enter"))
	if cmd == nil {
		t.Error("enter should quit")
	}
	if got := model.(VersionListModel).Selected; got != "1.5" {
		t.Errorf("Selected = %q, want 1.5", got)
	}
}

func TestVersionListModel_QuitWithoutSelection(t *testing.T) {
	var model tea.Model = NewVersionListModel("g:a", version.ParseAll([]string{"1.0"}))
	model, cmd := model.Update(key("q"))
	if cmd == nil || model.(VersionListModel).Selected != "" {
		t.Errorf("q should quit without selection")
	}
}

func TestVersionListModel_View(t *testing.T) {
	m := NewVersionListModel("org.example:lib", version.ParseAll([]string{"1.0", "2.0"}))
	view := m.View()
	for _, want := range []string{"org.example:lib", "2.0", "1.0", "[1/2]"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q:\n%s", want, view)
		}
	}
}
