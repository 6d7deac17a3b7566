package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tilt-dev/exterminator/internals/domain"
	"github.com/tilt-dev/exterminator/internals/git"
	"github.com/tilt-dev/exterminator/internals/shortcut"
)

// clearEnv blanks every variable Load reads so the host environment cannot
// leak into a test. Viper treats an empty variable as unset.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, envs := range envBindings {
		for _, e := range envs {
			t.Setenv(e, "")
		}
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("SHORTCUT_API_TOKEN", "sc-token")

	cfg, err := Load(New())
	require.NoError(t, err)

	assert.Equal(t, "sc-token", cfg.ShortcutToken)
	assert.Equal(t, shortcut.DefaultAPIEndpoint, cfg.ShortcutEndpoint)
	assert.Equal(t, int64(DefaultProjectID), cfg.ProjectID)
	assert.Equal(t, DefaultLabel, cfg.Label)
	assert.Equal(t, "https://gitlab.com", cfg.GitLabBaseURL)
	assert.Equal(t, git.PlatformGitHub, cfg.Repo.Platform)
	assert.Equal(t, "tilt-dev", cfg.Repo.Owner)
	assert.Equal(t, "tilt", cfg.Repo.Repo)
	assert.False(t, cfg.DryRun)
	require.Len(t, cfg.Warnings, 1)
	assert.Contains(t, cfg.Warnings[0], "GITHUB_API_TOKEN")
}

func TestLoad_ClubhouseTokenFallback(t *testing.T) {
	clearEnv(t)
	t.Setenv("CLUBHOUSE_API_TOKEN", "legacy-token")

	cfg, err := Load(New())
	require.NoError(t, err)
	assert.Equal(t, "legacy-token", cfg.ShortcutToken)
}

func TestLoad_MissingShortcutToken(t *testing.T) {
	clearEnv(t)

	_, err := Load(New())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConfiguration)
	assert.Contains(t, err.Error(), "SHORTCUT_API_TOKEN")
}

func TestLoad_GitHubTokenSilencesWarning(t *testing.T) {
	clearEnv(t)
	t.Setenv("SHORTCUT_API_TOKEN", "sc-token")
	t.Setenv("GITHUB_TOKEN", "gh-token")

	cfg, err := Load(New())
	require.NoError(t, err)
	assert.Equal(t, "gh-token", cfg.GitHubToken)
	assert.Empty(t, cfg.Warnings)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"zero project", map[string]string{"SHORTCUT_PROJECT_ID": "0"}},
		{"bad repo", map[string]string{"EXTERMINATOR_REPO": "not-a-repo"}},
		{"slack without channel", map[string]string{"SLACK_BOT_TOKEN": "xoxb"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv("SHORTCUT_API_TOKEN", "sc-token")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := Load(New())
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrConfiguration)
		})
	}
}

func TestReadFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("SHORTCUT_API_TOKEN", "sc-token")

	path := filepath.Join(t.TempDir(), "exterminator.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
repo: https://gitlab.com/acme/widgets
shortcut:
  project_id: 12
  label: triage
slack:
  token: xoxb-1
  channel: C123
`), 0o644))

	v := New()
	require.NoError(t, ReadFile(v, path))

	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, int64(12), cfg.ProjectID)
	assert.Equal(t, "triage", cfg.Label)
	assert.Equal(t, git.PlatformGitLab, cfg.Repo.Platform)
	assert.Equal(t, "acme", cfg.Repo.Owner)
	assert.Equal(t, "C123", cfg.SlackChannel)
	assert.Equal(t, "sc-token", cfg.ShortcutToken, "env still applies alongside the file")
}

func TestReadFile_Missing(t *testing.T) {
	err := ReadFile(New(), filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorIs(t, err, domain.ErrConfiguration)

	assert.NoError(t, ReadFile(New(), ""))
}
