// Package shortcut is a small client for the Shortcut (formerly Clubhouse)
// REST API: enough to find stories by external link and to create stories.
package shortcut

import (
	"net/http"
	"time"
)

// API configuration constants.
const (
	// DefaultAPIEndpoint is the Shortcut REST API endpoint.
	DefaultAPIEndpoint = "https://api.app.shortcut.com/api/v3"

	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 30 * time.Second

	// maxResponseSize caps how much of a response body is read.
	maxResponseSize = 10 * 1024 * 1024
)

// Story types understood by Shortcut.
const (
	StoryTypeFeature = "feature"
	StoryTypeBug     = "bug"
	StoryTypeChore   = "chore"
)

// Client provides methods to interact with the Shortcut REST API.
type Client struct {
	APIToken   string
	Endpoint   string // REST API endpoint URL (defaults to DefaultAPIEndpoint)
	HTTPClient *http.Client
}

// Story is a full story as returned by the create endpoint.
type Story struct {
	ID            int64    `json:"id"`
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	AppURL        string   `json:"app_url"`
	StoryType     string   `json:"story_type"`
	ProjectID     *int64   `json:"project_id"`
	Labels        []Label  `json:"labels"`
	ExternalLinks []string `json:"external_links"`
	CreatedAt     string   `json:"created_at"`
}

// StorySlim is the reduced story shape returned by list and search endpoints.
type StorySlim struct {
	ID            int64    `json:"id"`
	Name          string   `json:"name"`
	AppURL        string   `json:"app_url"`
	StoryType     string   `json:"story_type"`
	ExternalLinks []string `json:"external_links"`
	Archived      bool     `json:"archived"`
}

// Label represents a label in Shortcut.
type Label struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// CreateLabelParams names a label to attach on creation. Shortcut creates
// the label if it does not exist yet.
type CreateLabelParams struct {
	Name string `json:"name"`
}

// CreateStoryParams represents parameters for creating a story.
type CreateStoryParams struct {
	Name          string              `json:"name"`
	StoryType     string              `json:"story_type"`
	Description   string              `json:"description,omitempty"`
	ProjectID     int64               `json:"project_id,omitempty"`
	Labels        []CreateLabelParams `json:"labels,omitempty"`
	ExternalLinks []string            `json:"external_links,omitempty"`
	ExternalID    string              `json:"external_id,omitempty"` // the record's ID in the tool it was imported from
}

// apiError is the error body Shortcut sends with 4xx responses.
type apiError struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}
