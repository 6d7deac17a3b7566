package exterminator

import (
	"context"
	"io"
	"log/slog"

	"github.com/tilt-dev/exterminator/internals/git"
	"github.com/tilt-dev/exterminator/internals/shortcut"
)

var tiltRepo = git.RepoInfo{
	Platform: git.PlatformGitHub,
	Host:     "github.com",
	Owner:    "tilt-dev",
	Repo:     "tilt",
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakeTracker struct {
	info   git.RepoInfo
	issues map[int]git.Issue
	err    error
	calls  []int
}

func (t *fakeTracker) RepoInfo() git.RepoInfo { return t.info }

func (t *fakeTracker) GetIssue(_ context.Context, number int) (git.Issue, error) {
	t.calls = append(t.calls, number)
	if t.err != nil {
		return git.Issue{}, t.err
	}
	return t.issues[number], nil
}

type fakeFactory struct {
	tracker   *fakeTracker
	err       error
	requested []git.RepoInfo
}

func (f *fakeFactory) TrackerFor(_ context.Context, info git.RepoInfo) (git.Tracker, error) {
	f.requested = append(f.requested, info)
	if f.err != nil {
		return nil, f.err
	}
	f.tracker.info = info
	return f.tracker, nil
}

type fakeStories struct {
	candidates []shortcut.StorySlim
	findErr    error
	createErr  error
	created    *shortcut.Story

	lookups []string
	creates []shortcut.CreateStoryParams
}

func (s *fakeStories) StoriesByExternalLink(_ context.Context, link string) ([]shortcut.StorySlim, error) {
	s.lookups = append(s.lookups, link)
	return s.candidates, s.findErr
}

func (s *fakeStories) CreateStory(_ context.Context, params shortcut.CreateStoryParams) (*shortcut.Story, error) {
	s.creates = append(s.creates, params)
	if s.createErr != nil {
		return nil, s.createErr
	}
	if s.created != nil {
		return s.created, nil
	}
	return &shortcut.Story{
		ID:            1234,
		Name:          params.Name,
		StoryType:     params.StoryType,
		AppURL:        "https://app.shortcut.com/tilt/story/1234",
		ExternalLinks: params.ExternalLinks,
	}, nil
}

type fakeNotifier struct {
	err  error
	sent []StoryCreatedMessage
}

func (n *fakeNotifier) NotifyStoryCreated(_ context.Context, msg StoryCreatedMessage) error {
	n.sent = append(n.sent, msg)
	return n.err
}
