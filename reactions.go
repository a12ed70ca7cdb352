package slackmsg

import (
	"context"
	"net/url"

	"github.com/jamesprial/go-slack-messages/internal"
	"github.com/jamesprial/go-slack-messages/pkg/types"
)

// Reactions adds, removes and lists emoji reactions on messages.
type Reactions struct {
	dispatcher Dispatcher
	validator  *internal.Validator
}

// NewReactions creates a standalone Reactions authenticated with token.
func NewReactions(token string, opts ...Option) (*Reactions, error) {
	client, err := NewClient(token, opts...)
	if err != nil {
		return nil, err
	}
	return client.Reactions, nil
}

// AddReaction reacts with emoji to the message identified by timestamp in
// channel. emoji is the bare name ("tada", "thumbsup::skin-tone-2"),
// without surrounding colons.
func (r *Reactions) AddReaction(ctx context.Context, channel, timestamp, emoji string) (types.Envelope, error) {
	return r.react(ctx, EndpointAddReaction, channel, timestamp, emoji)
}

// RemoveReaction removes the caller's emoji reaction from a message.
func (r *Reactions) RemoveReaction(ctx context.Context, channel, timestamp, emoji string) (types.Envelope, error) {
	return r.react(ctx, EndpointRemoveReaction, channel, timestamp, emoji)
}

// ListReactions returns the reactions on the message identified by
// timestamp in channel.
func (r *Reactions) ListReactions(ctx context.Context, channel, timestamp string) (types.Envelope, error) {
	if err := internal.First(
		r.validator.ValidateChannel(channel),
		r.validator.ValidateTimestamp("timestamp", timestamp),
	); err != nil {
		return nil, err
	}

	endpoint := internal.EncodeQuery(EndpointGetReactions, url.Values{
		"channel":   {channel},
		"timestamp": {timestamp},
	})
	return r.dispatcher.Execute(ctx, types.MethodGet, endpoint, nil)
}

func (r *Reactions) react(ctx context.Context, endpoint, channel, timestamp, emoji string) (types.Envelope, error) {
	if err := internal.First(
		r.validator.ValidateChannel(channel),
		r.validator.ValidateTimestamp("timestamp", timestamp),
		r.validator.ValidateEmojiName(emoji),
	); err != nil {
		return nil, err
	}

	return r.dispatcher.Execute(ctx, types.MethodPost, endpoint, types.Payload{
		"channel":   channel,
		"timestamp": timestamp,
		"name":      emoji,
	})
}

// AddReaction reacts to a message. See Reactions.AddReaction.
func (c *Client) AddReaction(ctx context.Context, channel, timestamp, emoji string) (types.Envelope, error) {
	return c.Reactions.AddReaction(ctx, channel, timestamp, emoji)
}

// RemoveReaction removes a reaction. See Reactions.RemoveReaction.
func (c *Client) RemoveReaction(ctx context.Context, channel, timestamp, emoji string) (types.Envelope, error) {
	return c.Reactions.RemoveReaction(ctx, channel, timestamp, emoji)
}

// ListReactions lists a message's reactions. See Reactions.ListReactions.
func (c *Client) ListReactions(ctx context.Context, channel, timestamp string) (types.Envelope, error) {
	return c.Reactions.ListReactions(ctx, channel, timestamp)
}
