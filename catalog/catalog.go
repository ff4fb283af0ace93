// Package catalog holds the portal's vertical/project data: a built-in
// catalog mirroring the TransformX portal, an optional transformx.yml
// override, and per-project backend URL overrides from the environment.
// Adding a project is data, not code: the session managers are
// parameterized by project configuration.
package catalog

import (
	"fmt"
	"os"
	"strings"

	"github.com/Indhu-DataAI/TransformX/models"
	"gopkg.in/yaml.v3"
)

// ConfigFilename is looked up in the working directory by Load
const ConfigFilename = "transformx.yml"

// Well-known ids of the in-process accelerators
const (
	ProjectRAGEvaluator   = "rag-evaluator"
	ProjectTextSummarizer = "text-summarizer"
)

// Default returns the built-in catalog
func Default() *models.Catalog {
	return &models.Catalog{
		Verticals: []models.Vertical{
			{
				ID:          "rai-hub",
				Title:       "Responsible AI",
				Description: "From outputs to insights, Responsible AI made measurable.",
				Projects: []models.Project{
					{
						ID:          ProjectRAGEvaluator,
						Name:        "RAG Evaluator",
						Description: "Evaluate your RAG systems with comprehensive metrics",
						API:         "https://rag-evaluator-api.onrender.com",
						Integration: models.IntegrationComponent,
						Status:      models.StatusActive,
						Tags:        []string{"responsible-ai", "evaluation"},
					},
					{
						ID:          "rai-hub-legacy",
						Name:        "Responsible AI (RAI) Hub",
						Description: "AI-powered interface design and development assistant",
						AppURL:      "https://deep-eval.onrender.com/",
						Integration: models.IntegrationIframe,
						Status:      models.StatusActive,
						Tags:        []string{"responsible-ai", "legacy"},
					},
				},
			},
			{
				ID:          "ai-sdlc",
				Title:       "AI at SDLC",
				Description: "Accelerate software development with AI-powered tools",
				Projects: []models.Project{
					{
						ID:          "ui-assistant",
						Name:        "UI Code Refactorer",
						Description: "AI-powered interface design and development assistant",
						AppURL:      "https://ui-code-gen.onrender.com/",
						Integration: models.IntegrationIframe,
						Status:      models.StatusActive,
						Tags:        []string{"ui", "development"},
					},
					{
						ID:          "api-code-assistant",
						Name:        "API Code Assistant",
						Description: "Intelligent API development and integration support",
						AppURL:      "https://api-code-gen-azo4.onrender.com/",
						Integration: models.IntegrationIframe,
						Status:      models.StatusActive,
						Tags:        []string{"api"},
					},
					{
						ID:          "ui-code-assistant",
						Name:        "UI Code Generator",
						Description: "AI-powered interface design and development assistant",
						AppURL:      "https://ui-code-generator-7jmj.onrender.com/",
						Integration: models.IntegrationIframe,
						Status:      models.StatusActive,
						Tags:        []string{"ui", "development"},
					},
				},
			},
			{
				ID:          "local-model",
				Title:       "BCT AI Studio",
				Description: "Enabling AI innovation with secure, offline and local execution.",
				Projects: []models.Project{
					{
						ID:          ProjectTextSummarizer,
						Name:        "Document Chat",
						Description: "Upload a PDF or DOCX file and chat with your document",
						API:         "https://text-summarizer-api.onrender.com",
						Integration: models.IntegrationComponent,
						Status:      models.StatusActive,
						Tags:        []string{"AI-studio", "document-qa"},
					},
					{
						ID:          "model",
						Name:        "On-Premise LLM Service",
						Description: "Run and manage AI models locally with full control and privacy",
						AppURL:      "https://on-prem-service.onrender.com/",
						Integration: models.IntegrationIframe,
						Status:      models.StatusActive,
						Tags:        []string{"AI-studio", "legacy"},
					},
				},
			},
			{
				ID:          "ml-flow",
				Title:       "BCT ML Studio",
				Description: "Build. Train. Experiment. Export.",
				Projects: []models.Project{
					{
						ID:          "ml-flow",
						Name:        "ML Platform",
						Description: "From data to model, ready for your use",
						AppURL:      "https://ml-platform-train.onrender.com",
						Integration: models.IntegrationIframe,
						Status:      models.StatusActive,
						Tags:        []string{"ML-studio", "legacy"},
					},
					{
						ID:          "bottleneck",
						Name:        "Service Performance Bottleneck Predictor",
						Description: "Track. Analyze. Optimize performance.",
						AppURL:      "http://localhost:8501",
						Integration: models.IntegrationIframe,
						Status:      models.StatusActive,
						Tags:        []string{"ML-studio", "legacy"},
					},
					{
						ID:          "anomaly",
						Name:        "Anomaly Detection",
						Description: "Track. Analyze. Optimize performance.",
						AppURL:      "https://anomaly-detection-pyto.onrender.com/",
						Integration: models.IntegrationIframe,
						Status:      models.StatusActive,
						Tags:        []string{"ML-studio", "legacy"},
					},
				},
			},
		},
	}
}

// Load returns the catalog: transformx.yml in the working directory when
// present, the built-in catalog otherwise. Backend URL overrides from the
// environment (TRANSFORMX_<PROJECT_ID>_API) apply either way.
func Load() (*models.Catalog, error) {
	cat, err := LoadFile(ConfigFilename)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, err
		}
		cat = Default()
	}
	applyEnvOverrides(cat)
	return cat, nil
}

// LoadFile parses a catalog from a yaml file
func LoadFile(path string) (*models.Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cat models.Catalog
	if err := yaml.Unmarshal(data, &cat); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	return &cat, nil
}

// Find looks up a project by id
func Find(cat *models.Catalog, id string) (*models.Project, bool) {
	for vi := range cat.Verticals {
		for pi := range cat.Verticals[vi].Projects {
			if cat.Verticals[vi].Projects[pi].ID == id {
				return &cat.Verticals[vi].Projects[pi], true
			}
		}
	}
	return nil, false
}

// applyEnvOverrides replaces project API base URLs with
// TRANSFORMX_<PROJECT_ID>_API values when set; dashes map to underscores.
func applyEnvOverrides(cat *models.Catalog) {
	for vi := range cat.Verticals {
		for pi := range cat.Verticals[vi].Projects {
			p := &cat.Verticals[vi].Projects[pi]
			key := "TRANSFORMX_" + strings.ToUpper(strings.ReplaceAll(p.ID, "-", "_")) + "_API"
			if v := os.Getenv(key); v != "" {
				p.API = v
			}
		}
	}
}
