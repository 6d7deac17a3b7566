package git

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanBody(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{
			name: "single reference",
			body: "see #10",
			want: "see [#10](https://github.com/tilt-dev/tilt/issues/10)",
		},
		{
			name: "several references",
			body: "dup of #1, related to #22 and #333.",
			want: "dup of [#1](https://github.com/tilt-dev/tilt/issues/1), " +
				"related to [#22](https://github.com/tilt-dev/tilt/issues/22) and " +
				"[#333](https://github.com/tilt-dev/tilt/issues/333).",
		},
		{
			name: "no references",
			body: "# Heading\n\nplain text",
			want: "# Heading\n\nplain text",
		},
		{
			name: "empty",
			body: "",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanBody(tt.body, tiltRepo))
		})
	}
}

func TestCleanBody_LinkCountMatchesReferences(t *testing.T) {
	body := "#1 #2 text #3\n- #44\n(#555)"
	got := CleanBody(body, tiltRepo)

	linkRe := regexp.MustCompile(`\[#(\d+)\]\(https://github\.com/tilt-dev/tilt/issues/(\d+)\)`)
	links := linkRe.FindAllStringSubmatch(got, -1)

	assert.Len(t, links, 5)
	for _, l := range links {
		assert.Equal(t, l[1], l[2], "link text and target must keep the same number")
	}
}

func TestCleanBody_UsesSourceRepository(t *testing.T) {
	repo := RepoInfo{Platform: PlatformGitLab, Host: "gitlab.com", Owner: "acme/platform", Repo: "widgets"}
	got := CleanBody("fixes #4", repo)
	assert.Equal(t, "fixes [#4](https://gitlab.com/acme/platform/widgets/issues/4)", got)
}

func TestCleanBody_NotIdempotent(t *testing.T) {
	once := CleanBody("see #10", tiltRepo)
	twice := CleanBody(once, tiltRepo)
	assert.NotEqual(t, once, twice)
	assert.Equal(t, 1, strings.Count(twice, "[[#10]("))
}
