package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/Indhu-DataAI/TransformX/catalog"
	"github.com/Indhu-DataAI/TransformX/models"
)

var projectsCmd = &cobra.Command{
	Use:   "projects",
	Short: "List accelerator projects by vertical",
	RunE:  runProjects,
}

var (
	verticalStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	devStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

func runProjects(cmd *cobra.Command, args []string) error {
	cat, err := catalog.Load()
	if err != nil {
		return err
	}
	writeProjects(cmd.OutOrStdout(), cat)
	return nil
}

func writeProjects(w io.Writer, cat *models.Catalog) {
	for _, vertical := range cat.Verticals {
		fmt.Fprintln(w, verticalStyle.Render(vertical.Title))
		for _, project := range vertical.Projects {
			line := fmt.Sprintf("  %-24s %s", project.ID, project.Name)
			if project.Status == models.StatusDevelopment {
				line += devStyle.Render("  (in development)")
			}
			fmt.Fprintln(w, line)
			if project.Integration == models.IntegrationComponent {
				fmt.Fprintf(w, "    runs in-process, backend: %s\n", project.API)
			} else if project.AppURL != "" {
				fmt.Fprintf(w, "    %s\n", project.AppURL)
			}
		}
		fmt.Fprintln(w)
	}
}
