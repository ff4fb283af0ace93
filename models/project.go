// Package models provides clean data structures for the TransformX portal.
package models

// IntegrationMode determines how a project is presented: opened at an
// external URL (the web portal embeds these in an iframe) or hosted as an
// in-process interactive workflow.
type IntegrationMode string

const (
	IntegrationIframe    IntegrationMode = "iframe"
	IntegrationComponent IntegrationMode = "component"
)

// ProjectStatus is the lifecycle status of a project
type ProjectStatus string

const (
	StatusActive      ProjectStatus = "active"
	StatusDevelopment ProjectStatus = "development"
)

// Project identifies one accelerator exposed through the portal. Projects
// are owned by the catalog and immutable after creation.
type Project struct {
	ID          string          `json:"id" yaml:"id"`
	Name        string          `json:"name" yaml:"name"`
	Description string          `json:"description,omitempty" yaml:"description,omitempty"`
	API         string          `json:"api,omitempty" yaml:"api,omitempty"`
	AppURL      string          `json:"app_url,omitempty" yaml:"app_url,omitempty"`
	Integration IntegrationMode `json:"integration_type" yaml:"integration_type"`
	Status      ProjectStatus   `json:"status" yaml:"status"`
	Tags        []string        `json:"tags,omitempty" yaml:"tags,omitempty"`
}

// Vertical is a named grouping of related projects (business domain)
type Vertical struct {
	ID          string    `json:"id" yaml:"id"`
	Title       string    `json:"title" yaml:"title"`
	Description string    `json:"description,omitempty" yaml:"description,omitempty"`
	Projects    []Project `json:"projects" yaml:"projects"`
}

// Catalog is the root structure of transformx.yml
type Catalog struct {
	Verticals []Vertical `json:"verticals" yaml:"verticals"`
}
