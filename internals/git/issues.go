package git

import "context"

type Tracker interface {
	GetIssue(ctx context.Context, number int) (Issue, error)
	RepoInfo() RepoInfo
}

type Issue struct {
	ID     string // tracker-global ID, as a string so GitHub and GitLab share a shape
	Number int
	Title  string
	Body   string // Markdown
	URL    string
	Labels []string // label names
}

func (i Issue) HasLabel(name string) bool {
	for _, l := range i.Labels {
		if l == name {
			return true
		}
	}
	return false
}

type Platform int

const (
	PlatformGitHub Platform = iota
	PlatformGitLab
)

func (p Platform) String() string {
	switch p {
	case PlatformGitHub:
		return "github"
	case PlatformGitLab:
		return "gitlab"
	default:
		return "unknown"
	}
}
