package git

import (
	"context"
	"fmt"
	"strings"
)

type Factory struct {
	githubToken   string
	githubBaseURL string
	gitlabToken   string
	gitlabBaseURL string
}

type FactoryOption func(*Factory)

func WithGitHubBaseURL(baseURL string) FactoryOption {
	return func(f *Factory) { f.githubBaseURL = baseURL }
}

func WithGitLabBaseURL(baseURL string) FactoryOption {
	return func(f *Factory) {
		if baseURL != "" {
			f.gitlabBaseURL = strings.TrimSuffix(baseURL, "/")
		}
	}
}

// NewFactory takes optional tokens for both platforms; an empty token means
// anonymous access.
func NewFactory(githubToken, gitlabToken string, opts ...FactoryOption) *Factory {
	f := &Factory{
		githubToken:   githubToken,
		gitlabToken:   gitlabToken,
		gitlabBaseURL: "https://gitlab.com",
	}
	for _, o := range opts {
		o(f)
	}
	return f
}

func (f *Factory) TrackerFor(ctx context.Context, info RepoInfo) (Tracker, error) {
	switch info.Platform {
	case PlatformGitHub:
		return NewGitHubTracker(ctx, f.githubToken, info, f.githubBaseURL)

	case PlatformGitLab:
		baseURL := f.gitlabBaseURL
		// Self-hosted instances serve the API from the same host as the issue.
		if info.Host != "" && info.Host != "gitlab.com" && !strings.Contains(baseURL, info.Host) {
			baseURL = "https://" + info.Host
		}
		return NewGitLabTracker(f.gitlabToken, baseURL, info)
	}

	return nil, fmt.Errorf("unsupported platform: %s", info.Platform)
}
