// Package main provides the TransformX portal CLI.
//
// The portal lists AI accelerator projects grouped by business vertical.
// Externally hosted projects open at their URL; the RAG Evaluator and
// Document Chat accelerators run in-process as interactive workflows backed
// by the session managers. The TUI uses the Bubble Tea framework with a
// view-based navigation system: main menu (verticals), project list,
// evaluator, and document chat.
package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	transformx "github.com/Indhu-DataAI/TransformX"
	"github.com/Indhu-DataAI/TransformX/catalog"
	"github.com/Indhu-DataAI/TransformX/extract"
	"github.com/Indhu-DataAI/TransformX/models"
	"github.com/Indhu-DataAI/TransformX/services"
	"github.com/Indhu-DataAI/TransformX/session"
)

var (
	verbose bool
	logger  *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "transformx",
	Short: "TransformX - AI accelerator portal",
	Long: `TransformX lists AI accelerator projects grouped by business vertical.

Run without arguments to start the interactive portal. The RAG Evaluator and
Document Chat accelerators run in-process; other projects open at their URL.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		logger, err = initLogger(verbose)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPortal()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.AddCommand(evalCmd)
	rootCmd.AddCommand(projectsCmd)
}

func main() {
	// .env may carry TRANSFORMX_<PROJECT>_API overrides
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type ViewState int

const (
	ViewMainMenu ViewState = iota
	ViewVertical
	ViewEvaluator
	ViewDocChat
	ViewExternal
)

type NavigateMsg struct {
	view ViewState
}

type navigateToVerticalMsg struct {
	vertical models.Vertical
}

type navigateToProjectMsg struct {
	project models.Project
}

type Model struct {
	currentView ViewState
	cat         *models.Catalog
	mainMenu    MainMenuModel
	vertical    VerticalModel
	evaluator   EvaluatorModel
	docChat     DocChatModel
	external    ExternalModel
	quitting    bool
}

func newModel(cat *models.Catalog) Model {
	return Model{
		currentView: ViewMainMenu,
		cat:         cat,
		mainMenu:    NewMainMenuModel(cat),
	}
}

func (m Model) Init() tea.Cmd {
	return m.mainMenu.Init()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case NavigateMsg:
		m.currentView = msg.view
		return m, nil

	case navigateToVerticalMsg:
		m.vertical = NewVerticalModel(msg.vertical)
		m.currentView = ViewVertical
		return m, nil

	case navigateToProjectMsg:
		return m.openProject(msg.project)

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	switch m.currentView {
	case ViewMainMenu:
		m.mainMenu, cmd = m.mainMenu.Update(msg)
	case ViewVertical:
		m.vertical, cmd = m.vertical.Update(msg)
	case ViewEvaluator:
		m.evaluator, cmd = m.evaluator.Update(msg)
	case ViewDocChat:
		m.docChat, cmd = m.docChat.Update(msg)
	case ViewExternal:
		m.external, cmd = m.external.Update(msg)
	}
	return m, cmd
}

// openProject wires the selected project: in-process accelerators get a
// gateway client and a fresh session, everything else shows its URL.
func (m Model) openProject(project models.Project) (tea.Model, tea.Cmd) {
	if project.Integration != models.IntegrationComponent {
		m.external = NewExternalModel(project)
		m.currentView = ViewExternal
		return m, nil
	}

	client := transformx.New(project.API)
	switch project.ID {
	case catalog.ProjectRAGEvaluator:
		sess := session.NewEvaluationSession(project.ID, services.NewEvaluationService(client), logger)
		m.evaluator = NewEvaluatorModel(project, sess)
		m.currentView = ViewEvaluator
		return m, m.evaluator.Init()
	case catalog.ProjectTextSummarizer:
		extractor := extract.AutoExtractor{Remote: extract.NewRemoteExtractor(client)}
		sess := session.NewDocQASession(services.NewDocQAService(client), extractor, logger)
		m.docChat = NewDocChatModel(project, sess)
		m.currentView = ViewDocChat
		return m, m.docChat.Init()
	}

	// Component project without an in-process implementation
	m.external = NewExternalModel(project)
	m.currentView = ViewExternal
	return m, nil
}

func (m Model) View() string {
	if m.quitting {
		return "\n  Goodbye!\n\n"
	}

	switch m.currentView {
	case ViewVertical:
		return m.vertical.View()
	case ViewEvaluator:
		return m.evaluator.View()
	case ViewDocChat:
		return m.docChat.View()
	case ViewExternal:
		return m.external.View()
	default:
		return m.mainMenu.View()
	}
}

func runPortal() error {
	cat, err := catalog.Load()
	if err != nil {
		return err
	}

	logger.Info("portal started", zap.Int("verticals", len(cat.Verticals)))

	p := tea.NewProgram(newModel(cat), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("portal error: %w", err)
	}
	return nil
}
