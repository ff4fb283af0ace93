package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// Build information - these are set via ldflags during build
var (
	version   = "dev"
	gitCommit = "unknown"
)

func RenderHeader() string {
	titleStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#7D56F4")).
		Bold(true).
		MarginTop(1).
		MarginLeft(2)

	subtitleStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#888888")).
		MarginLeft(2).
		MarginBottom(1)

	versionInfo := fmt.Sprintf("v%s", version)
	if gitCommit != "unknown" && len(gitCommit) > 7 {
		versionInfo += fmt.Sprintf(" (%s)", gitCommit[:7])
	}

	title := titleStyle.Render("TransformX Portal")
	subtitle := subtitleStyle.Render(fmt.Sprintf("%s · AI accelerators by vertical", versionInfo))

	return fmt.Sprintf("%s\n%s\n", title, subtitle)
}
