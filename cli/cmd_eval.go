// Package main provides the headless evaluation command.
//
// `transformx eval` runs one evaluation without the TUI: health gate,
// dataset submission, metric/preview rendering, optional export. Missing
// configuration is collected interactively with a huh form.
package main

import (
	"context"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	transformx "github.com/Indhu-DataAI/TransformX"
	"github.com/Indhu-DataAI/TransformX/catalog"
	"github.com/Indhu-DataAI/TransformX/models"
	"github.com/Indhu-DataAI/TransformX/services"
	"github.com/Indhu-DataAI/TransformX/session"
)

var (
	evalProject string
	evalAgent   string
	evalModel   string
	evalFile    string
	evalOutput  string
)

var evalCmd = &cobra.Command{
	Use:   "eval",
	Short: "Run one evaluation against a project backend",
	Long: `Runs a single evaluation: checks backend health, submits the dataset
file with the chosen agent type and model, and prints metrics and a result
preview. Use --output to export the canonical result set as JSON.`,
	RunE: runEval,
}

func init() {
	evalCmd.Flags().StringVarP(&evalProject, "project", "p", catalog.ProjectRAGEvaluator, "project id")
	evalCmd.Flags().StringVarP(&evalAgent, "agent", "a", "", "agent type (qa, summarization, multiturn)")
	evalCmd.Flags().StringVarP(&evalModel, "model", "m", "", "model name")
	evalCmd.Flags().StringVarP(&evalFile, "file", "f", "", "dataset file (JSON)")
	evalCmd.Flags().StringVarP(&evalOutput, "output", "o", "", "write the exported result set to this file")
}

func runEval(cmd *cobra.Command, args []string) error {
	cat, err := catalog.Load()
	if err != nil {
		return err
	}
	project, ok := catalog.Find(cat, evalProject)
	if !ok {
		return fmt.Errorf("unknown project %q", evalProject)
	}
	if project.API == "" {
		return fmt.Errorf("project %q has no backend API configured", evalProject)
	}

	if err := promptMissingEvalFlags(); err != nil {
		return err
	}

	client := transformx.New(project.API)
	sess := session.NewEvaluationSession(project.ID, services.NewEvaluationService(client), logger)

	ctx := context.Background()
	fmt.Println("Checking backend status...")
	if state := sess.Start(ctx); state != session.HealthHealthy {
		return fmt.Errorf("backend service is not available (%s)", project.API)
	}
	fmt.Println("Backend service is running")

	if err := sess.SetConfig(models.AgentType(evalAgent), evalModel); err != nil {
		return err
	}

	data, err := os.ReadFile(evalFile)
	if err != nil {
		return fmt.Errorf("failed to read dataset: %w", err)
	}
	contentType := mime.TypeByExtension(filepath.Ext(evalFile))
	if err := sess.SelectFile(filepath.Base(evalFile), contentType, data); err != nil {
		return err
	}

	fmt.Println("Running evaluation...")
	result, err := sess.Run(ctx)
	if result == nil {
		return err
	}
	logger.Info("evaluation finished",
		zap.String("project", project.ID),
		zap.String("status", result.Status))

	printResult(result)
	if !result.Succeeded() {
		return fmt.Errorf("evaluation failed")
	}

	if evalOutput != "" {
		f, err := os.Create(evalOutput)
		if err != nil {
			return err
		}
		defer f.Close()
		if err := sess.Download(ctx, f); err != nil {
			return err
		}
		fmt.Printf("Saved %s\n", evalOutput)
	}

	return nil
}

func promptMissingEvalFlags() error {
	var fields []huh.Field

	if evalAgent == "" {
		fields = append(fields, huh.NewSelect[string]().
			Title("Agent Type").
			Options(
				huh.NewOption("Question Answering", string(models.AgentQA)),
				huh.NewOption("Text Summarization", string(models.AgentSummarization)),
				huh.NewOption("Multi-turn Conversation", string(models.AgentMultiturn)),
			).
			Value(&evalAgent))
	}
	if evalModel == "" {
		fields = append(fields, huh.NewSelect[string]().
			Title("Model Name").
			Options(
				huh.NewOption("GPT-4o Mini", "gpt-4o-mini"),
				huh.NewOption("GPT-4", "gpt-4"),
				huh.NewOption("GPT-3.5 Turbo", "gpt-3.5-turbo"),
			).
			Value(&evalModel))
	}
	if evalFile == "" {
		fields = append(fields, huh.NewInput().
			Title("Dataset File (JSON)").
			Placeholder("./dataset.json").
			Value(&evalFile))
	}

	if len(fields) == 0 {
		return nil
	}
	return huh.NewForm(huh.NewGroup(fields...)).Run()
}

func printResult(result *models.EvaluationResult) {
	if !result.Succeeded() {
		fmt.Printf("Evaluation Failed: %s\n", result.Error)
		return
	}

	if len(result.Metrics) > 0 {
		fmt.Println("\nPerformance Metrics:")
		names := make([]string, 0, len(result.Metrics))
		for name := range result.Metrics {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			label := strings.ToUpper(strings.ReplaceAll(name, "_", " "))
			fmt.Printf("  %-30s %s\n", label, session.FormatMetric(result.Metrics[name]))
		}
	}

	if preview := session.Preview(result); preview != nil {
		fmt.Printf("\nDetailed Results (%d items):\n", preview.TotalRows)
		fmt.Println("  " + strings.Join(preview.Columns, " | "))
		for _, row := range preview.Rows {
			fmt.Println("  " + strings.Join(row, " | "))
		}
		if preview.Truncated {
			fmt.Printf("  Showing first %d of %d results. Export for complete data.\n",
				len(preview.Rows), preview.TotalRows)
		}
	}
}
