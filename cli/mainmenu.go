// Package main provides the main menu view for the TransformX portal.
//
// This file implements the MainMenuModel which lists the business verticals
// and navigates into the selected vertical's project list.
package main

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Indhu-DataAI/TransformX/models"
)

type MainMenuModel struct {
	choices list.Model
}

type verticalItem struct {
	vertical models.Vertical
}

func (i verticalItem) Title() string { return i.vertical.Title }
func (i verticalItem) Description() string {
	return fmt.Sprintf("%s (%d projects)", i.vertical.Description, len(i.vertical.Projects))
}
func (i verticalItem) FilterValue() string { return i.vertical.Title }

type quitItem struct{}

func (quitItem) Title() string       { return "Quit" }
func (quitItem) Description() string { return "Exit the portal" }
func (quitItem) FilterValue() string { return "Quit" }

func NewMainMenuModel(cat *models.Catalog) MainMenuModel {
	items := make([]list.Item, 0, len(cat.Verticals)+1)
	for _, v := range cat.Verticals {
		items = append(items, verticalItem{vertical: v})
	}
	items = append(items, quitItem{})

	l := list.New(items, list.NewDefaultDelegate(), 80, 18)
	l.Title = "Business Verticals"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)

	return MainMenuModel{
		choices: l,
	}
}

func (m MainMenuModel) Init() tea.Cmd {
	return nil
}

func (m MainMenuModel) Update(msg tea.Msg) (MainMenuModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.choices.SetSize(msg.Width, 18)
		return m, nil
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, key.NewBinding(key.WithKeys("enter"))):
			switch item := m.choices.SelectedItem().(type) {
			case verticalItem:
				return m, func() tea.Msg {
					return navigateToVerticalMsg{vertical: item.vertical}
				}
			case quitItem:
				return m, tea.Quit
			}
			return m, nil
		case key.Matches(msg, key.NewBinding(key.WithKeys("q", "esc"))):
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.choices, cmd = m.choices.Update(msg)
	return m, cmd
}

func (m MainMenuModel) View() string {
	return RenderHeader() + m.choices.View()
}
