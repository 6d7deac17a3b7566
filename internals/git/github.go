package git

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/google/go-github/v60/github"
	"golang.org/x/oauth2"

	"github.com/tilt-dev/exterminator/internals/domain"
)

type GitHubTracker struct {
	gh   *github.Client
	info RepoInfo
}

// NewGitHubTracker builds a tracker for one repository. An empty token gives
// an anonymous client, which GitHub rate-limits much more aggressively.
// baseURL overrides the API root; when empty, hosts other than github.com are
// treated as GitHub Enterprise installs.
func NewGitHubTracker(ctx context.Context, token string, info RepoInfo, baseURL string) (*GitHubTracker, error) {
	var httpClient *http.Client
	if token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		httpClient = oauth2.NewClient(ctx, ts)
	}
	gh := github.NewClient(httpClient)

	switch {
	case baseURL != "":
		u, err := url.Parse(strings.TrimSuffix(baseURL, "/") + "/")
		if err != nil {
			return nil, fmt.Errorf("%w: github base URL %q: %v", domain.ErrConfiguration, baseURL, err)
		}
		gh.BaseURL = u
	case info.Host != "" && info.Host != "github.com":
		api := "https://" + info.Host + "/api/v3/"
		var err error
		gh, err = gh.WithEnterpriseURLs(api, api)
		if err != nil {
			return nil, fmt.Errorf("%w: github enterprise host %q: %v", domain.ErrConfiguration, info.Host, err)
		}
	}

	return &GitHubTracker{gh: gh, info: info}, nil
}

func (t *GitHubTracker) RepoInfo() RepoInfo { return t.info }

func (t *GitHubTracker) GetIssue(ctx context.Context, number int) (Issue, error) {
	issue, resp, err := t.gh.Issues.Get(ctx, t.info.Owner, t.info.Repo, number)
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusNotFound {
			return Issue{}, fmt.Errorf("%w: github issue %s/%s#%d", domain.ErrNotFound, t.info.Owner, t.info.Repo, number)
		}
		var rateErr *github.RateLimitError
		if errors.As(err, &rateErr) {
			return Issue{}, fmt.Errorf("%w: github rate limit exceeded (resets %s); set GITHUB_API_TOKEN", domain.ErrTransport, rateErr.Rate.Reset)
		}
		return Issue{}, fmt.Errorf("%w: github get issue: %v", domain.ErrTransport, err)
	}

	out := Issue{
		ID:     strconv.FormatInt(issue.GetID(), 10),
		Number: issue.GetNumber(),
		Title:  issue.GetTitle(),
		Body:   issue.GetBody(),
		URL:    issue.GetHTMLURL(),
	}
	for _, l := range issue.Labels {
		out.Labels = append(out.Labels, l.GetName())
	}
	if err := out.validate(); err != nil {
		return Issue{}, fmt.Errorf("github issue %s/%s#%d: %w", t.info.Owner, t.info.Repo, number, err)
	}
	return out, nil
}

// validate rejects responses that are missing the fields a story is built from.
func (i Issue) validate() error {
	var missing []string
	if i.URL == "" {
		missing = append(missing, "url")
	}
	if i.Title == "" {
		missing = append(missing, "title")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: response missing %s", domain.ErrTransport, strings.Join(missing, ", "))
	}
	return nil
}
