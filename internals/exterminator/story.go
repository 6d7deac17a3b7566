package exterminator

import (
	"context"

	"github.com/tilt-dev/exterminator/internals/git"
	"github.com/tilt-dev/exterminator/internals/shortcut"
)

type StoryCreator interface {
	CreateStory(ctx context.Context, params shortcut.CreateStoryParams) (*shortcut.Story, error)
}

type StoryOptions struct {
	ProjectID int64
	Label     string // attached to every story this tool creates
}

// StoryType is "bug" when the issue carries a label named exactly "bug",
// and "feature" otherwise.
func StoryType(issue git.Issue) string {
	if issue.HasLabel("bug") {
		return shortcut.StoryTypeBug
	}
	return shortcut.StoryTypeFeature
}

// BuildStory mirrors a source issue as a story. The issue URL becomes the
// story's only external link, which is what FindExisting matches on later.
// The tracker's global issue ID is kept as the story's external ID.
func BuildStory(issue git.Issue, repo git.RepoInfo, opts StoryOptions) shortcut.CreateStoryParams {
	return shortcut.CreateStoryParams{
		Name:          issue.Title,
		StoryType:     StoryType(issue),
		Description:   git.CleanBody(issue.Body, repo),
		ProjectID:     opts.ProjectID,
		Labels:        []shortcut.CreateLabelParams{{Name: opts.Label}},
		ExternalLinks: []string{issue.URL},
		ExternalID:    issue.ID,
	}
}

// CreateStory persists params, or with dryRun returns what would have been
// created without touching the network.
func CreateStory(ctx context.Context, creator StoryCreator, params shortcut.CreateStoryParams, dryRun bool) (*shortcut.Story, error) {
	if dryRun {
		return previewStory(params), nil
	}
	return creator.CreateStory(ctx, params)
}

func previewStory(params shortcut.CreateStoryParams) *shortcut.Story {
	projectID := params.ProjectID
	story := &shortcut.Story{
		Name:          params.Name,
		Description:   params.Description,
		StoryType:     params.StoryType,
		ProjectID:     &projectID,
		ExternalLinks: params.ExternalLinks,
	}
	for _, l := range params.Labels {
		story.Labels = append(story.Labels, shortcut.Label{Name: l.Name})
	}
	return story
}
