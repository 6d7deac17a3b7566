package git

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	gitlab "gitlab.com/gitlab-org/api/client-go"

	"github.com/tilt-dev/exterminator/internals/domain"
)

type GitLabTracker struct {
	gl   *gitlab.Client
	info RepoInfo
}

func NewGitLabTracker(token, baseURL string, info RepoInfo) (*GitLabTracker, error) {
	gl, err := gitlab.NewClient(token, gitlab.WithBaseURL(baseURL+"/api/v4"))
	if err != nil {
		return nil, fmt.Errorf("%w: gitlab client: %v", domain.ErrConfiguration, err)
	}
	return &GitLabTracker{gl: gl, info: info}, nil
}

func (t *GitLabTracker) RepoInfo() RepoInfo { return t.info }

func (t *GitLabTracker) pid() string {
	return t.info.Owner + "/" + t.info.Repo
}

func (t *GitLabTracker) GetIssue(ctx context.Context, number int) (Issue, error) {
	issue, resp, err := t.gl.Issues.GetIssue(t.pid(), int64(number), gitlab.WithContext(ctx))
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusNotFound {
			return Issue{}, fmt.Errorf("%w: gitlab issue %s#%d", domain.ErrNotFound, t.pid(), number)
		}
		return Issue{}, fmt.Errorf("%w: gitlab get issue: %v", domain.ErrTransport, err)
	}

	out := Issue{
		ID:     strconv.FormatInt(int64(issue.ID), 10),
		Number: int(issue.IID), // IID is the project-scoped issue number
		Title:  issue.Title,
		Body:   issue.Description,
		URL:    issue.WebURL,
		Labels: []string(issue.Labels),
	}
	if err := out.validate(); err != nil {
		return Issue{}, fmt.Errorf("gitlab issue %s#%d: %w", t.pid(), number, err)
	}
	return out, nil
}
