// Package config builds the run configuration from the environment, an
// optional YAML file and command-line flags.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/tilt-dev/exterminator/internals/domain"
	"github.com/tilt-dev/exterminator/internals/git"
	"github.com/tilt-dev/exterminator/internals/shortcut"
)

// Configuration keys.
const (
	KeyShortcutToken    = "shortcut.token"
	KeyShortcutEndpoint = "shortcut.endpoint"
	KeyProjectID        = "shortcut.project_id"
	KeyLabel            = "shortcut.label"
	KeyGitHubToken      = "github.token"
	KeyGitHubBaseURL    = "github.base_url"
	KeyGitLabToken      = "gitlab.token"
	KeyGitLabBaseURL    = "gitlab.base_url"
	KeyRepo             = "repo"
	KeySlackToken       = "slack.token"
	KeySlackChannel     = "slack.channel"
	KeyDryRun           = "dry_run"
)

// Defaults for the single project the tool was written for.
const (
	DefaultRepo      = "tilt-dev/tilt"
	DefaultProjectID = 6
	DefaultLabel     = "exterminator"
)

// envBindings lists, per key, the environment variables that set it. The
// first one that is set wins.
var envBindings = map[string][]string{
	KeyShortcutToken:    {"SHORTCUT_API_TOKEN", "CLUBHOUSE_API_TOKEN"},
	KeyShortcutEndpoint: {"SHORTCUT_API_ENDPOINT"},
	KeyProjectID:        {"SHORTCUT_PROJECT_ID"},
	KeyLabel:            {"SHORTCUT_LABEL"},
	KeyGitHubToken:      {"GITHUB_API_TOKEN", "GITHUB_TOKEN"},
	KeyGitHubBaseURL:    {"GITHUB_API_URL"},
	KeyGitLabToken:      {"GITLAB_TOKEN"},
	KeyGitLabBaseURL:    {"GITLAB_BASE_URL"},
	KeyRepo:             {"EXTERMINATOR_REPO"},
	KeySlackToken:       {"SLACK_BOT_TOKEN"},
	KeySlackChannel:     {"SLACK_NOTIFY_CHANNEL"},
	KeyDryRun:           {"EXTERMINATOR_DRY_RUN"},
}

type Config struct {
	ShortcutToken    string
	ShortcutEndpoint string
	ProjectID        int64
	Label            string

	GitHubToken   string
	GitHubBaseURL string
	GitLabToken   string
	GitLabBaseURL string

	// Repo is where bare issue numbers are looked up.
	Repo git.RepoInfo

	SlackToken   string
	SlackChannel string

	DryRun bool

	// Warnings are problems that do not stop a run.
	Warnings []string
}

// New returns a viper instance with defaults and environment bindings set.
// Flags can be bound on top of it before calling Load.
func New() *viper.Viper {
	v := viper.New()
	v.SetDefault(KeyShortcutEndpoint, shortcut.DefaultAPIEndpoint)
	v.SetDefault(KeyProjectID, DefaultProjectID)
	v.SetDefault(KeyLabel, DefaultLabel)
	v.SetDefault(KeyGitLabBaseURL, "https://gitlab.com")
	v.SetDefault(KeyRepo, DefaultRepo)
	v.SetDefault(KeyDryRun, false)

	for key, envs := range envBindings {
		_ = v.BindEnv(append([]string{key}, envs...)...)
	}
	return v
}

// ReadFile merges a YAML config file into v. An empty path is a no-op.
func ReadFile(v *viper.Viper, path string) error {
	if path == "" {
		return nil
	}
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("%w: read config %s: %v", domain.ErrConfiguration, path, err)
	}
	return nil
}

// Load validates the settings in v and returns them as a Config.
func Load(v *viper.Viper) (Config, error) {
	cfg := Config{
		ShortcutToken:    strings.TrimSpace(v.GetString(KeyShortcutToken)),
		ShortcutEndpoint: v.GetString(KeyShortcutEndpoint),
		ProjectID:        v.GetInt64(KeyProjectID),
		Label:            strings.TrimSpace(v.GetString(KeyLabel)),
		GitHubToken:      strings.TrimSpace(v.GetString(KeyGitHubToken)),
		GitHubBaseURL:    v.GetString(KeyGitHubBaseURL),
		GitLabToken:      strings.TrimSpace(v.GetString(KeyGitLabToken)),
		GitLabBaseURL:    v.GetString(KeyGitLabBaseURL),
		SlackToken:       strings.TrimSpace(v.GetString(KeySlackToken)),
		SlackChannel:     strings.TrimSpace(v.GetString(KeySlackChannel)),
		DryRun:           v.GetBool(KeyDryRun),
	}

	if cfg.ShortcutToken == "" {
		return Config{}, fmt.Errorf("%w: please set the SHORTCUT_API_TOKEN env variable", domain.ErrConfiguration)
	}
	if cfg.ProjectID <= 0 {
		return Config{}, fmt.Errorf("%w: shortcut project id must be positive, got %d", domain.ErrConfiguration, cfg.ProjectID)
	}
	if cfg.Label == "" {
		return Config{}, fmt.Errorf("%w: story label cannot be empty", domain.ErrConfiguration)
	}
	if cfg.SlackToken != "" && cfg.SlackChannel == "" {
		return Config{}, fmt.Errorf("%w: SLACK_BOT_TOKEN is set but SLACK_NOTIFY_CHANNEL is not", domain.ErrConfiguration)
	}

	repo, err := git.ParseRepoURL(v.GetString(KeyRepo))
	if err != nil {
		return Config{}, fmt.Errorf("%w: repo: %v", domain.ErrConfiguration, err)
	}
	cfg.Repo = repo

	if cfg.GitHubToken == "" {
		cfg.Warnings = append(cfg.Warnings,
			"no GITHUB_API_TOKEN found in your env. Consider setting one to keep you from getting rate-limited.")
	}

	return cfg, nil
}
