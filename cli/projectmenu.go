// Package main provides the per-vertical project list view.
package main

import (
	"fmt"
	"os/exec"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Indhu-DataAI/TransformX/models"
)

type VerticalModel struct {
	vertical models.Vertical
	choices  list.Model
}

type projectItem struct {
	project models.Project
}

func (i projectItem) Title() string {
	if i.project.Status == models.StatusDevelopment {
		return i.project.Name + " (in development)"
	}
	return i.project.Name
}

func (i projectItem) Description() string {
	desc := i.project.Description
	if len(i.project.Tags) > 0 {
		desc += " · " + strings.Join(i.project.Tags, ", ")
	}
	return desc
}

func (i projectItem) FilterValue() string { return i.project.Name }

func NewVerticalModel(vertical models.Vertical) VerticalModel {
	items := make([]list.Item, 0, len(vertical.Projects))
	for _, p := range vertical.Projects {
		items = append(items, projectItem{project: p})
	}

	l := list.New(items, list.NewDefaultDelegate(), 80, 18)
	l.Title = vertical.Title
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)

	return VerticalModel{
		vertical: vertical,
		choices:  l,
	}
}

func (m VerticalModel) Update(msg tea.Msg) (VerticalModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.choices.SetSize(msg.Width, 18)
		return m, nil
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, key.NewBinding(key.WithKeys("enter"))):
			if item, ok := m.choices.SelectedItem().(projectItem); ok {
				return m, func() tea.Msg {
					return navigateToProjectMsg{project: item.project}
				}
			}
			return m, nil
		case key.Matches(msg, key.NewBinding(key.WithKeys("esc"))):
			return m, func() tea.Msg {
				return NavigateMsg{view: ViewMainMenu}
			}
		}
	}

	var cmd tea.Cmd
	m.choices, cmd = m.choices.Update(msg)
	return m, cmd
}

func (m VerticalModel) View() string {
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("240")).
		MarginLeft(2)
	return RenderHeader() + m.choices.View() + "\n" + helpStyle.Render("enter: open • esc: back")
}

// ExternalModel shows an externally hosted project: the web portal embeds
// these in an iframe; here the URL is surfaced and can be opened in the
// browser.
type ExternalModel struct {
	project models.Project
	opened  bool
}

func NewExternalModel(project models.Project) ExternalModel {
	return ExternalModel{project: project}
}

func (m ExternalModel) Update(msg tea.Msg) (ExternalModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "esc":
			return m, func() tea.Msg {
				return NavigateMsg{view: ViewVertical}
			}
		case "o":
			url := strings.TrimSpace(m.project.AppURL)
			if url != "" {
				_ = exec.Command("xdg-open", url).Start()
				m.opened = true
			}
			return m, nil
		}
	}
	return m, nil
}

func (m ExternalModel) View() string {
	titleStyle := lipgloss.NewStyle().
		Foreground(lipgloss.AdaptiveColor{Light: "#5A56E0", Dark: "#7571F9"}).
		Bold(true).
		MarginLeft(2)

	bodyStyle := lipgloss.NewStyle().MarginLeft(2).MarginTop(1)
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginLeft(2).MarginTop(2)

	body := fmt.Sprintf("%s\n\n%s", m.project.Description, strings.TrimSpace(m.project.AppURL))
	if m.opened {
		body += "\n\nOpened in your browser."
	}

	return RenderHeader() +
		titleStyle.Render(m.project.Name) + "\n" +
		bodyStyle.Render(body) + "\n" +
		helpStyle.Render("o: open in browser • esc: back")
}
