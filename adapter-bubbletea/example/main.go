package main

import (
	"log"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	viewer "github.com/ionut-t/wrapview/adapter-bubbletea"
)

type Model struct {
	viewer viewer.Model
}

func (m Model) Init() tea.Cmd {
	return m.viewer.Init()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.viewer.SetSize(msg.Width-4, msg.Height-2)

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		}
	}

	viewerModel, cmd := m.viewer.Update(msg)
	m.viewer = viewerModel.(viewer.Model)

	return m, cmd
}

func (m Model) View() string {
	return lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1).
		Render(m.viewer.View())
}

func languageForFile(file string) string {
	switch strings.TrimPrefix(filepath.Ext(file), ".") {
	case "go":
		return "go"
	case "md":
		return "markdown"
	case "sql":
		return "sql"
	default:
		return "plaintext"
	}
}

func main() {
	file := "main.go"
	if len(os.Args) > 1 {
		file = os.Args[1]
	}

	v := viewer.New(80, 24)
	v.Focus()
	v.SetLanguage(languageForFile(file), "catppuccin-mocha")

	if content, err := os.ReadFile(file); err == nil {
		v.SetContent(content)
	}

	p := tea.NewProgram(Model{viewer: v}, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		log.Fatalf("Error running Bubble Tea program: %v", err)
	}
}
