package exterminator

import (
	"context"
	"fmt"

	"github.com/slack-go/slack"

	"github.com/tilt-dev/exterminator/internals/shortcut"
)

type SlackNotifier struct {
	client    *slack.Client
	channelID string // channel to announce new stories in
}

func NewSlackNotifier(botToken, channelID string, opts ...slack.Option) *SlackNotifier {
	return &SlackNotifier{
		client:    slack.New(botToken, opts...),
		channelID: channelID,
	}
}

func (n *SlackNotifier) NotifyStoryCreated(ctx context.Context, msg StoryCreatedMessage) error {
	text := fmt.Sprintf(
		"%s *New Shortcut %s from a tracked issue*\n"+
			"*<%s|%s>*\n"+
			"Issue: <%s|%s>",
		storyEmoji(msg.StoryType), msg.StoryType,
		msg.StoryURL, msg.StoryName,
		msg.IssueURL, msg.IssueTitle,
	)

	_, _, err := n.client.PostMessageContext(ctx, n.channelID,
		slack.MsgOptionText(text, false),
	)
	if err != nil {
		return fmt.Errorf("slack notify: %w", err)
	}
	return nil
}

func storyEmoji(storyType string) string {
	switch storyType {
	case shortcut.StoryTypeBug:
		return ":bug:"
	case shortcut.StoryTypeFeature:
		return ":sparkles:"
	default:
		return ":memo:"
	}
}
