package exterminator

import (
	"context"

	"github.com/tilt-dev/exterminator/internals/git"
	"github.com/tilt-dev/exterminator/internals/shortcut"
)

type StoryFinder interface {
	StoriesByExternalLink(ctx context.Context, link string) ([]shortcut.StorySlim, error)
}

// FindExisting returns the first story linked to the issue URL, or nil.
// Links are compared as exact strings; Shortcut's own matching is looser.
func FindExisting(ctx context.Context, finder StoryFinder, issue git.Issue) (*shortcut.StorySlim, error) {
	stories, err := finder.StoriesByExternalLink(ctx, issue.URL)
	if err != nil {
		return nil, err
	}
	for i := range stories {
		for _, link := range stories[i].ExternalLinks {
			if link == issue.URL {
				return &stories[i], nil
			}
		}
	}
	return nil, nil
}
