package git

import (
	"regexp"
	"strings"
)

var issueRefRe = regexp.MustCompile(`(?i)#(\d+)`)

// CleanBody turns "#123" shorthand in an issue body into explicit Markdown
// links back to the source repository. Left alone, trackers like Shortcut
// render "#123" as a link to one of their own records.
//
// Pull requests get an issues/ link too; the source tracker redirects it.
// Running CleanBody twice wraps the links twice.
func CleanBody(body string, repo RepoInfo) string {
	base := strings.ReplaceAll(repo.WebURL(), "$", "$$")
	return issueRefRe.ReplaceAllString(body, "[#${1}]("+base+"/issues/${1})")
}
