package notify

import (
	"context"

	"github.com/slack-go/slack"
)

type PosterFunc func(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)

func (f PosterFunc) PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error) {
	return f(ctx, channelID, options...)
}

func NewSlackWithPoster(api PosterFunc, channelID string) (*Slack, error) {
	return newSlack(api, channelID)
}
