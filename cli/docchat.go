// Package main provides the Document Chat view.
//
// Two phases: upload (pick a .pdf/.docx, extract and ingest it) and chat
// (multi-turn QA over the ingested document). All gating lives in the
// DocQASession; this model dispatches operations as commands and re-renders
// the transcript.
package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Indhu-DataAI/TransformX/models"
	"github.com/Indhu-DataAI/TransformX/session"
)

type DocChatModel struct {
	project models.Project
	sess    *session.DocQASession

	pathInput  textinput.Model
	msgInput   textinput.Model
	transcript viewport.Model
	spin       spinner.Model

	uploading bool
	asking    bool
	errText   string
	width     int
}

type uploadDoneMsg struct {
	err error
}

type answerMsg struct {
	err error
}

func NewDocChatModel(project models.Project, sess *session.DocQASession) DocChatModel {
	pathInput := textinput.New()
	pathInput.Placeholder = "./report.pdf or ./notes.docx"
	pathInput.CharLimit = 300
	pathInput.Width = 50
	pathInput.Focus()

	msgInput := textinput.New()
	msgInput.Placeholder = "Type your question..."
	msgInput.CharLimit = 500
	msgInput.Width = 60

	spin := spinner.New()
	spin.Spinner = spinner.Dot

	vp := viewport.New(80, 14)

	return DocChatModel{
		project:    project,
		sess:       sess,
		pathInput:  pathInput,
		msgInput:   msgInput,
		transcript: vp,
		spin:       spin,
		width:      80,
	}
}

func (m DocChatModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spin.Tick)
}

func uploadDocument(sess *session.DocQASession, path string) tea.Cmd {
	return func() tea.Msg {
		if err := sess.SelectFile(path); err != nil {
			return uploadDoneMsg{err: err}
		}
		return uploadDoneMsg{err: sess.Upload(context.Background())}
	}
}

func sendQuestion(sess *session.DocQASession, text string) tea.Cmd {
	return func() tea.Msg {
		_, err := sess.Send(context.Background(), text)
		return answerMsg{err: err}
	}
}

func (m DocChatModel) Update(msg tea.Msg) (DocChatModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.transcript.Width = msg.Width - 4
		return m, nil

	case uploadDoneMsg:
		m.uploading = false
		if msg.err != nil {
			m.errText = msg.err.Error()
			return m, nil
		}
		m.errText = ""
		m.msgInput.Focus()
		m.refreshTranscript()
		return m, textinput.Blink

	case answerMsg:
		m.asking = false
		// The session appends a fallback assistant turn on failure, so the
		// transcript is re-rendered either way.
		m.refreshTranscript()
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

		case "ctrl+n":
			if m.sess.State() == session.DocStateReady {
				if err := m.sess.NewChat(); err == nil {
					m.refreshTranscript()
				}
			}
			return m, nil

		case "enter":
			if m.sess.State() == session.DocStateReady {
				text := m.msgInput.Value()
				if strings.TrimSpace(text) == "" || m.asking {
					return m, nil
				}
				m.msgInput.SetValue("")
				m.asking = true
				// User turn is appended synchronously by Send; show it as
				// soon as the command resolves.
				return m, tea.Batch(m.spin.Tick, sendQuestion(m.sess, text))
			}

			if m.uploading {
				return m, nil
			}
			path := strings.TrimSpace(m.pathInput.Value())
			if path == "" {
				m.errText = "Please select a file first."
				return m, nil
			}
			m.uploading = true
			m.errText = ""
			return m, tea.Batch(m.spin.Tick, uploadDocument(m.sess, path))
		}
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	if m.sess.State() == session.DocStateReady {
		m.msgInput, cmd = m.msgInput.Update(msg)
		cmds = append(cmds, cmd)
		m.transcript, cmd = m.transcript.Update(msg)
		cmds = append(cmds, cmd)
	} else {
		m.pathInput, cmd = m.pathInput.Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

func (m *DocChatModel) refreshTranscript() {
	userStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true)
	botStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	timeStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

	var b strings.Builder
	for _, msg := range m.sess.Messages() {
		label := botStyle.Render("Assistant")
		if msg.Sender == models.SenderUser {
			label = userStyle.Render("You")
		}
		b.WriteString(fmt.Sprintf("%s %s\n%s\n\n",
			label,
			timeStyle.Render(msg.Timestamp.Format("15:04:05")),
			msg.Text))
	}

	m.transcript.SetContent(b.String())
	m.transcript.GotoBottom()
}

func (m DocChatModel) View() string {
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
	b.WriteString(titleStyle.Render("Chat with your Document — " + m.project.Name))
	b.WriteString("\n")

	if m.sess.State() != session.DocStateReady {
		b.WriteString(labelStyle.Render("Document File (.pdf or .docx):") + "\n")
		b.WriteString(valueStyle.Render(m.pathInput.View()) + "\n")

		if m.uploading {
			b.WriteString(valueStyle.Render(m.spin.View()+" "+m.sess.StatusMessage()) + "\n")
		} else if m.errText != "" {
			b.WriteString(errorStyle.Render("✗ "+m.errText) + "\n")
		} else if status := m.sess.StatusMessage(); status != "" {
			if m.sess.State() == session.DocStateUploadFailed {
				b.WriteString(errorStyle.Render("✗ "+status) + "\n")
			} else {
				b.WriteString(okStyle.Render(status) + "\n")
			}
		}

		b.WriteString(helpStyle.Render("enter: upload • esc: back"))
		return b.String()
	}

	borderStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		MarginLeft(2).
		Padding(0, 1)

	b.WriteString(borderStyle.Render(m.transcript.View()))
	b.WriteString("\n")

	if m.asking {
		b.WriteString(valueStyle.Render(m.spin.View()+" Thinking...") + "\n")
	}

	b.WriteString(valueStyle.Render(m.msgInput.View()) + "\n")
	b.WriteString(helpStyle.Render("enter: send • ctrl+n: new chat • esc: back"))
	return b.String()
}
