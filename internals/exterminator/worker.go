// Package exterminator mirrors one source-tracker issue into Shortcut.
package exterminator

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/tilt-dev/exterminator/internals/git"
	"github.com/tilt-dev/exterminator/internals/shortcut"
)

type State int

const (
	StateResolving State = iota
	StateFetching
	StateFound
	StateCreating
	StateDone
	StateFailed
)

func (s State) String() string {
	return [...]string{"resolving", "fetching", "found", "creating", "done", "failed"}[s]
}

type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeFound
	OutcomeCreated
	OutcomePreview // dry run: nothing was written
)

func (o Outcome) String() string {
	return [...]string{"none", "found", "created", "preview"}[o]
}

type Result struct {
	State   State
	Outcome Outcome
	Ref     git.IssueRef
	Issue   git.Issue

	Existing *shortcut.StorySlim        // set for OutcomeFound
	Params   shortcut.CreateStoryParams // set for OutcomeCreated and OutcomePreview
	Story    *shortcut.Story            // created story, or the preview in a dry run
}

// URL is the Shortcut URL of the found or created story; empty for previews.
func (r Result) URL() string {
	switch {
	case r.Existing != nil:
		return r.Existing.AppURL
	case r.Story != nil:
		return r.Story.AppURL
	}
	return ""
}

type TrackerFactory interface {
	TrackerFor(ctx context.Context, info git.RepoInfo) (git.Tracker, error)
}

type Stories interface {
	StoryFinder
	StoryCreator
}

type Notifier interface {
	NotifyStoryCreated(ctx context.Context, msg StoryCreatedMessage) error
}

type StoryCreatedMessage struct {
	StoryURL   string
	StoryName  string
	StoryType  string
	IssueURL   string
	IssueTitle string
}

type Options struct {
	DefaultRepo git.RepoInfo // where bare issue numbers live
	Story       StoryOptions
	DryRun      bool
}

type Worker struct {
	factory  TrackerFactory
	stories  Stories
	notifier Notifier // optional
	opts     Options
	log      *slog.Logger
}

func NewWorker(factory TrackerFactory, stories Stories, notifier Notifier, opts Options, log *slog.Logger) *Worker {
	return &Worker{factory: factory, stories: stories, notifier: notifier, opts: opts, log: log}
}

// Sync makes sure a story exists for the issue rawRef points at. rawRef is
// an issue number in the default repository or a full issue URL.
func (w *Worker) Sync(ctx context.Context, rawRef string) (Result, error) {
	res := Result{State: StateResolving}
	fail := func(err error) (Result, error) {
		w.log.Debug("sync failed", "from", res.State, "err", err)
		res.State = StateFailed
		return res, err
	}

	ref, err := git.ParseIssueRef(rawRef, w.opts.DefaultRepo)
	if err != nil {
		return fail(fmt.Errorf("resolve: %w", err))
	}
	res.Ref = ref

	w.transition(&res, StateFetching)
	tracker, err := w.factory.TrackerFor(ctx, ref.RepoInfo)
	if err != nil {
		return fail(fmt.Errorf("build tracker: %w", err))
	}
	issue, err := tracker.GetIssue(ctx, ref.Number)
	if err != nil {
		return fail(fmt.Errorf("fetch issue %s: %w", ref, err))
	}
	res.Issue = issue
	w.log.Info("fetched issue", "issue", ref.String(), "title", issue.Title, "labels", issue.Labels)

	existing, err := FindExisting(ctx, w.stories, issue)
	if err != nil {
		return fail(fmt.Errorf("look up story for %s: %w", issue.URL, err))
	}
	if existing != nil {
		res.Existing = existing
		res.Outcome = OutcomeFound
		w.transition(&res, StateFound)
		w.transition(&res, StateDone)
		return res, nil
	}

	w.transition(&res, StateCreating)
	res.Params = BuildStory(issue, ref.RepoInfo, w.opts.Story)
	story, err := CreateStory(ctx, w.stories, res.Params, w.opts.DryRun)
	if err != nil {
		return fail(fmt.Errorf("create story: %w", err))
	}
	res.Story = story

	if w.opts.DryRun {
		res.Outcome = OutcomePreview
	} else {
		res.Outcome = OutcomeCreated
		w.log.Info("story created", "url", story.AppURL, "issue", ref.String())
		w.notify(ctx, res)
	}

	w.transition(&res, StateDone)
	return res, nil
}

func (w *Worker) transition(res *Result, to State) {
	w.log.Debug("sync state", "from", res.State, "to", to)
	res.State = to
}

func (w *Worker) notify(ctx context.Context, res Result) {
	if w.notifier == nil {
		return
	}
	err := w.notifier.NotifyStoryCreated(ctx, StoryCreatedMessage{
		StoryURL:   res.Story.AppURL,
		StoryName:  res.Story.Name,
		StoryType:  res.Story.StoryType,
		IssueURL:   res.Issue.URL,
		IssueTitle: res.Issue.Title,
	})
	if err != nil {
		// The story exists either way.
		w.log.Warn("failed to send Slack notification", "err", err)
	}
}
