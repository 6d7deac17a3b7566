package git

import (
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/tilt-dev/exterminator/internals/domain"
)

type RepoInfo struct {
	Platform Platform
	Host     string // e.g. "github.com" or "gitlab.mycompany.com"
	Owner    string
	Repo     string
	RawURL   string
}

// WebURL is the browser URL of the repository, without a trailing slash.
func (r RepoInfo) WebURL() string {
	return "https://" + r.Host + "/" + r.Owner + "/" + r.Repo
}

func (r RepoInfo) String() string { return r.Owner + "/" + r.Repo }

// IssueRef identifies one issue in one repository.
type IssueRef struct {
	RepoInfo
	Number int
}

func (r IssueRef) String() string {
	return fmt.Sprintf("%s/%s#%d", r.Owner, r.Repo, r.Number)
}

var (
	// GitLab puts a "/-/" separator between the project path and the resource.
	gitlabIssueRe = regexp.MustCompile(`^https?://([^/]+)/(.+)/([^/]+)/-/issues/(\d+)/?(?:[?#].*)?$`)
	// GitHub paths, and the older GitLab form without the separator. The host
	// decides which one it is.
	issueRe = regexp.MustCompile(`^https?://([^/]+)/(.+)/([^/]+)/(issues|pull)/(\d+)/?(?:[?#].*)?$`)
)

// ParseIssueRef resolves either a bare issue number, which refers to an issue
// in defaultRepo, or a full issue URL.
func ParseIssueRef(raw string, defaultRepo RepoInfo) (IssueRef, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return IssueRef{}, fmt.Errorf("%w: empty issue reference", domain.ErrResolution)
	}

	if n, err := strconv.Atoi(raw); err == nil {
		if n <= 0 {
			return IssueRef{}, fmt.Errorf("%w: issue number must be positive, got %d", domain.ErrResolution, n)
		}
		if defaultRepo.Owner == "" || defaultRepo.Repo == "" {
			return IssueRef{}, fmt.Errorf("%w: no default repository configured for issue #%d", domain.ErrResolution, n)
		}
		return IssueRef{RepoInfo: defaultRepo, Number: n}, nil
	}

	if m := gitlabIssueRe.FindStringSubmatch(raw); m != nil {
		return issueRefFromMatch(PlatformGitLab, raw, m[1], m[2], m[3], m[4])
	}
	if m := issueRe.FindStringSubmatch(raw); m != nil {
		host, owner, kind := strings.ToLower(m[1]), m[2], m[4]
		if isGitLabHost(host) {
			if kind != "issues" {
				return IssueRef{}, fmt.Errorf("%w: %q is not a gitlab issue", domain.ErrResolution, raw)
			}
			return issueRefFromMatch(PlatformGitLab, raw, host, owner, m[3], m[5])
		}
		if strings.Contains(owner, "/") {
			return IssueRef{}, fmt.Errorf("%w: github repository must be owner/repo: %q", domain.ErrResolution, raw)
		}
		return issueRefFromMatch(PlatformGitHub, raw, host, owner, m[3], m[5])
	}

	return IssueRef{}, fmt.Errorf(
		"%w: %q is neither an issue number nor a URL like https://github.com/<owner>/<repo>/issues/<number>",
		domain.ErrResolution, raw,
	)
}

func issueRefFromMatch(platform Platform, raw, host, owner, repo, number string) (IssueRef, error) {
	n, err := strconv.Atoi(number)
	if err != nil || n <= 0 {
		return IssueRef{}, fmt.Errorf("%w: bad issue number in %q", domain.ErrResolution, raw)
	}
	host = strings.ToLower(host)
	return IssueRef{
		RepoInfo: RepoInfo{
			Platform: platform,
			Host:     host,
			Owner:    owner,
			Repo:     repo,
			RawURL:   "https://" + host + "/" + owner + "/" + repo,
		},
		Number: n,
	}, nil
}

// ParseRepoURL accepts a repository URL (https or ssh) or an "owner/repo"
// shorthand, which is taken to live on github.com.
func ParseRepoURL(rawURL string) (RepoInfo, error) {
	rawURL = strings.TrimSpace(rawURL)

	if strings.HasPrefix(rawURL, "git@") {
		rawURL = normaliseSSH(rawURL)
	} else if !strings.Contains(rawURL, "://") {
		rawURL = "https://github.com/" + strings.Trim(rawURL, "/")
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return RepoInfo{}, fmt.Errorf("invalid URL %q: %w", rawURL, err)
	}

	host := strings.ToLower(u.Hostname())
	platform, err := detectPlatform(host)
	if err != nil {
		return RepoInfo{}, err
	}

	path := strings.TrimPrefix(u.Path, "/")
	path = strings.TrimSuffix(strings.TrimSuffix(path, "/"), ".git")

	parts := strings.Split(path, "/")

	switch platform {
	case PlatformGitHub:
		if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
			return RepoInfo{}, fmt.Errorf("github repository must be owner/repo: %q", rawURL)
		}
		return RepoInfo{
			Platform: PlatformGitHub,
			Host:     host,
			Owner:    parts[0],
			Repo:     parts[1],
			RawURL:   rawURL,
		}, nil

	case PlatformGitLab:
		if len(parts) < 2 || parts[len(parts)-1] == "" {
			return RepoInfo{}, fmt.Errorf("gitlab URL must have at least namespace and repo: %q", rawURL)
		}
		return RepoInfo{
			Platform: PlatformGitLab,
			Host:     host,
			Owner:    strings.Join(parts[:len(parts)-1], "/"),
			Repo:     parts[len(parts)-1],
			RawURL:   rawURL,
		}, nil
	}

	return RepoInfo{}, fmt.Errorf("unsupported platform for host %q", host)
}

func detectPlatform(host string) (Platform, error) {
	switch {
	case host == "github.com" || strings.HasSuffix(host, ".github.com"):
		return PlatformGitHub, nil
	case host == "gitlab.com" || strings.Contains(host, "gitlab"):
		return PlatformGitLab, nil
	default:
		return 0, fmt.Errorf("cannot determine platform from host %q: expected a github.com or gitlab domain", host)
	}
}

// isGitLabHost reports whether host is recognizably a GitLab install. Unknown
// hosts are not GitLab; they are taken to be GitHub Enterprise.
func isGitLabHost(host string) bool {
	p, err := detectPlatform(host)
	return err == nil && p == PlatformGitLab
}

func normaliseSSH(s string) string {
	s = strings.TrimPrefix(s, "git@")
	s = strings.Replace(s, ":", "/", 1)
	return "https://" + s
}
