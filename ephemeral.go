package slackmsg

import (
	"context"

	"github.com/jamesprial/go-slack-messages/internal"
	"github.com/jamesprial/go-slack-messages/pkg/types"
)

// EphemeralSender posts messages that only one user in a channel can see.
type EphemeralSender struct {
	dispatcher Dispatcher
	validator  *internal.Validator
}

// NewEphemeralSender creates a standalone EphemeralSender authenticated with token.
func NewEphemeralSender(token string, opts ...Option) (*EphemeralSender, error) {
	client, err := NewClient(token, opts...)
	if err != nil {
		return nil, err
	}
	return client.Ephemeral, nil
}

// SendEphemeralMessage posts text to channel, visible only to user.
// Ephemeral messages are not persisted and cannot be updated or deleted.
func (e *EphemeralSender) SendEphemeralMessage(ctx context.Context, channel, user, text string) (types.Envelope, error) {
	if err := internal.First(
		e.validator.ValidateChannel(channel),
		e.validator.ValidateRequired("user", user),
		e.validator.ValidateText(text),
	); err != nil {
		return nil, err
	}

	return e.dispatcher.Execute(ctx, types.MethodPost, EndpointPostEphemeral, types.Payload{
		"channel": channel,
		"user":    user,
		"text":    text,
	})
}

// SendEphemeralMessage posts a message visible to one user. See
// EphemeralSender.SendEphemeralMessage.
func (c *Client) SendEphemeralMessage(ctx context.Context, channel, user, text string) (types.Envelope, error) {
	return c.Ephemeral.SendEphemeralMessage(ctx, channel, user, text)
}
