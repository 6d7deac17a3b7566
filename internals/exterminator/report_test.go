package exterminator

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tilt-dev/exterminator/internals/shortcut"
)

func TestReport_Found(t *testing.T) {
	var buf bytes.Buffer
	err := Report(&buf, Result{
		State:    StateDone,
		Outcome:  OutcomeFound,
		Existing: &shortcut.StorySlim{AppURL: "https://app.shortcut.com/tilt/story/7"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Found existing Shortcut story:\nhttps://app.shortcut.com/tilt/story/7\n", buf.String())
}

func TestReport_Created(t *testing.T) {
	var buf bytes.Buffer
	err := Report(&buf, Result{
		State:   StateDone,
		Outcome: OutcomeCreated,
		Story:   &shortcut.Story{ID: 99, AppURL: "https://app.shortcut.com/tilt/story/99"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Created new Shortcut story:\nhttps://app.shortcut.com/tilt/story/99\n", buf.String())
}

func TestReport_Preview(t *testing.T) {
	params := shortcut.CreateStoryParams{
		Name:          "Fix crash",
		StoryType:     shortcut.StoryTypeFeature,
		Description:   "see [#10](https://github.com/tilt-dev/tilt/issues/10)",
		ProjectID:     6,
		Labels:        []shortcut.CreateLabelParams{{Name: "exterminator"}},
		ExternalLinks: []string{issueURL},
	}

	var buf bytes.Buffer
	require.NoError(t, Report(&buf, Result{State: StateDone, Outcome: OutcomePreview, Params: params}))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "Running in dry run mode, so not writing to Shortcut\n"), out)
	assert.Contains(t, out, "Shortcut story that would have been created:")

	payload := out[strings.Index(out, "{"):]
	var got shortcut.CreateStoryParams
	require.NoError(t, json.Unmarshal([]byte(payload), &got))
	assert.Equal(t, params, got)
}

func TestReport_NoOutcome(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, Report(&buf, Result{State: StateFailed}))
	assert.Empty(t, buf.String())
}
