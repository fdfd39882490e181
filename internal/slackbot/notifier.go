package slackbot

import (
	"context"

	"github.com/rotisserie/eris"
	"github.com/slack-go/slack"
)

// slackAPI is the slice of the Slack Web API the notifier uses.
type slackAPI interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}

// Notifier posts job progress messages through the Slack Web API.
type Notifier struct {
	api slackAPI
}

// NewNotifier creates a Notifier authenticated with the bot token.
func NewNotifier(botToken string) *Notifier {
	return &Notifier{api: slack.New(botToken)}
}

// Notify posts one message to the channel.
func (n *Notifier) Notify(ctx context.Context, channelID, message string) error {
	if _, _, err := n.api.PostMessageContext(ctx, channelID, slack.MsgOptionText(message, false)); err != nil {
		return eris.Wrapf(err, "slackbot: post message to %s", channelID)
	}
	return nil
}
