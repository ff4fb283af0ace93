// Package main provides the RAG Evaluator view.
//
// The view is a thin reflection of the evaluation session: the health gate,
// busy guard, and file validation live in the session manager, and this
// model only dispatches operations as commands and renders the outcome.
package main

import (
	"context"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Indhu-DataAI/TransformX/models"
	"github.com/Indhu-DataAI/TransformX/session"
)

var agentTypes = []struct {
	value models.AgentType
	label string
}{
	{models.AgentQA, "Question Answering"},
	{models.AgentSummarization, "Text Summarization"},
	{models.AgentMultiturn, "Multi-turn Conversation"},
}

type EvaluatorModel struct {
	project models.Project
	sess    *session.EvaluationSession

	agentIdx   int
	modelInput textinput.Model
	pathInput  textinput.Model
	focusIndex int

	spin     spinner.Model
	checking bool
	running  bool
	errText  string
	notice   string
}

type healthCheckedMsg struct {
	state session.HealthState
}

type evalDoneMsg struct {
	result *models.EvaluationResult
	err    error
}

type downloadDoneMsg struct {
	path string
	err  error
}

func NewEvaluatorModel(project models.Project, sess *session.EvaluationSession) EvaluatorModel {
	modelInput := textinput.New()
	modelInput.Placeholder = "gpt-4o-mini"
	modelInput.SetValue("gpt-4o-mini")
	modelInput.CharLimit = 100
	modelInput.Width = 40

	pathInput := textinput.New()
	pathInput.Placeholder = "./dataset.json"
	pathInput.CharLimit = 300
	pathInput.Width = 40

	spin := spinner.New()
	spin.Spinner = spinner.Dot

	return EvaluatorModel{
		project:    project,
		sess:       sess,
		modelInput: modelInput,
		pathInput:  pathInput,
		spin:       spin,
		checking:   true,
	}
}

func (m EvaluatorModel) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, checkHealth(m.sess))
}

func checkHealth(sess *session.EvaluationSession) tea.Cmd {
	return func() tea.Msg {
		return healthCheckedMsg{state: sess.Start(context.Background())}
	}
}

func runEvaluation(sess *session.EvaluationSession, agent models.AgentType, model, path string) tea.Cmd {
	return func() tea.Msg {
		if err := sess.SetConfig(agent, model); err != nil {
			return evalDoneMsg{err: err}
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return evalDoneMsg{err: fmt.Errorf("failed to read dataset: %w", err)}
		}
		contentType := mime.TypeByExtension(filepath.Ext(path))
		if err := sess.SelectFile(filepath.Base(path), contentType, data); err != nil {
			return evalDoneMsg{err: err}
		}

		result, err := sess.Run(context.Background())
		return evalDoneMsg{result: result, err: err}
	}
}

func downloadResults(sess *session.EvaluationSession) tea.Cmd {
	return func() tea.Msg {
		f, err := os.Create(session.DownloadFileName)
		if err != nil {
			return downloadDoneMsg{err: err}
		}
		defer f.Close()

		if err := sess.Download(context.Background(), f); err != nil {
			return downloadDoneMsg{err: err}
		}
		return downloadDoneMsg{path: session.DownloadFileName}
	}
}

func (m EvaluatorModel) Update(msg tea.Msg) (EvaluatorModel, tea.Cmd) {
	switch msg := msg.(type) {
	case healthCheckedMsg:
		m.checking = false
		return m, nil

	case evalDoneMsg:
		m.running = false
		if msg.err != nil && msg.result == nil {
			m.errText = msg.err.Error()
		}
		return m, nil

	case downloadDoneMsg:
		if msg.err != nil {
			m.errText = msg.err.Error()
		} else {
			m.notice = "Saved " + msg.path
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, func() tea.Msg {
				return NavigateMsg{view: ViewVertical}
			}

		case "tab", "shift+tab", "up", "down":
			if msg.String() == "up" || msg.String() == "shift+tab" {
				m.focusIndex--
			} else {
				m.focusIndex++
			}
			if m.focusIndex > 2 {
				m.focusIndex = 0
			} else if m.focusIndex < 0 {
				m.focusIndex = 2
			}
			var cmds []tea.Cmd
			m.modelInput.Blur()
			m.pathInput.Blur()
			if m.focusIndex == 1 {
				cmds = append(cmds, m.modelInput.Focus())
			} else if m.focusIndex == 2 {
				cmds = append(cmds, m.pathInput.Focus())
			}
			return m, tea.Batch(cmds...)

		case "left", "right":
			if m.focusIndex == 0 {
				if msg.String() == "left" {
					m.agentIdx = (m.agentIdx + len(agentTypes) - 1) % len(agentTypes)
				} else {
					m.agentIdx = (m.agentIdx + 1) % len(agentTypes)
				}
				return m, nil
			}

		case "ctrl+r", "enter":
			if msg.String() == "enter" && m.focusIndex != 2 {
				break
			}
			if m.running {
				return m, nil
			}
			path := strings.TrimSpace(m.pathInput.Value())
			if path == "" {
				m.errText = "Dataset file path is required"
				return m, nil
			}
			m.running = true
			m.errText = ""
			m.notice = ""
			return m, tea.Batch(
				m.spin.Tick,
				runEvaluation(m.sess, agentTypes[m.agentIdx].value, strings.TrimSpace(m.modelInput.Value()), path),
			)

		case "ctrl+h":
			m.checking = true
			return m, tea.Batch(m.spin.Tick, checkHealth(m.sess))

		case "d":
			// Download only outside text inputs
			if m.focusIndex == 0 && m.sess.State() == session.RunSuccess {
				return m, downloadResults(m.sess)
			}
		}
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.modelInput, cmd = m.modelInput.Update(msg)
	cmds = append(cmds, cmd)
	m.pathInput, cmd = m.pathInput.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m EvaluatorModel) View() string {
	titleStyle := lipgloss.NewStyle().
		Foreground(lipgloss.AdaptiveColor{Light: "#5A56E0", Dark: "#7571F9"}).
		Bold(true).
		MarginLeft(2)
	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("205")).MarginLeft(2).MarginTop(1)
	valueStyle := lipgloss.NewStyle().MarginLeft(2)
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginLeft(2).MarginTop(1)
	errorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("196")).MarginLeft(2).MarginTop(1)
	okStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("42")).MarginLeft(2).MarginTop(1)

	var b strings.Builder
	b.WriteString(RenderHeader())
	b.WriteString(titleStyle.Render("RAG Evaluator — " + m.project.Name))
	b.WriteString("\n")

	// Health line
	switch {
	case m.checking:
		b.WriteString(valueStyle.Render(m.spin.View() + " Checking backend status..."))
	case m.sess.Health() == session.HealthHealthy:
		b.WriteString(okStyle.Render("● Backend service is running"))
	default:
		b.WriteString(errorStyle.Render("● Backend service is not available"))
	}
	b.WriteString("\n")

	// Configuration
	agentLabel := agentTypes[m.agentIdx].label
	if m.focusIndex == 0 {
		agentLabel = "◄ " + agentLabel + " ►"
	}
	b.WriteString(labelStyle.Render("Agent Type:") + "\n")
	b.WriteString(valueStyle.Render(agentLabel) + "\n")
	b.WriteString(labelStyle.Render("Model Name:") + "\n")
	b.WriteString(valueStyle.Render(m.modelInput.View()) + "\n")
	b.WriteString(labelStyle.Render("Dataset File (JSON):") + "\n")
	b.WriteString(valueStyle.Render(m.pathInput.View()) + "\n")

	// Results panel
	if m.running {
		b.WriteString("\n" + valueStyle.Render(m.spin.View()+" Running evaluation..."))
	} else if m.errText != "" {
		b.WriteString("\n" + errorStyle.Render("✗ "+m.errText))
	} else if result := m.sess.Result(); result != nil {
		b.WriteString("\n" + m.renderResult(result))
	}
	if m.notice != "" {
		b.WriteString("\n" + okStyle.Render(m.notice))
	}

	b.WriteString("\n" + helpStyle.Render("tab: navigate • ←/→: agent type • enter/ctrl+r: run • d: download • ctrl+h: recheck health • esc: back"))
	return b.String()
}

func (m EvaluatorModel) renderResult(result *models.EvaluationResult) string {
	errorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("196")).MarginLeft(2)
	if !result.Succeeded() {
		return errorStyle.Render("✗ Evaluation Failed: " + result.Error)
	}

	var b strings.Builder

	// Metric cards
	if len(result.Metrics) > 0 {
		cardStyle := lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 2).
			MarginLeft(2)

		names := make([]string, 0, len(result.Metrics))
		for name := range result.Metrics {
			names = append(names, name)
		}
		sort.Strings(names)

		cards := make([]string, 0, len(names))
		for _, name := range names {
			label := strings.ToUpper(strings.ReplaceAll(name, "_", " "))
			cards = append(cards, cardStyle.Render(label+"\n"+session.FormatMetric(result.Metrics[name])))
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cards...))
		b.WriteString("\n")
	}

	// Result table preview
	if preview := session.Preview(result); preview != nil {
		headerStyle := lipgloss.NewStyle().Bold(true)
		rowStyle := lipgloss.NewStyle()
		tableStyle := lipgloss.NewStyle().MarginLeft(2)

		var table strings.Builder
		table.WriteString(fmt.Sprintf("Detailed Results (%d items)\n", preview.TotalRows))
		table.WriteString(headerStyle.Render(strings.Join(preview.Columns, " | ")))
		table.WriteString("\n")
		for _, row := range preview.Rows {
			table.WriteString(rowStyle.Render(strings.Join(row, " | ")))
			table.WriteString("\n")
		}
		if preview.Truncated {
			table.WriteString(fmt.Sprintf("Showing first %d of %d results. Download for complete data.\n",
				len(preview.Rows), preview.TotalRows))
		}
		b.WriteString(tableStyle.Render(table.String()))
	}

	return b.String()
}
