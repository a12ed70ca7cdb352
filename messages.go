package slackmsg

import (
	"context"

	"github.com/jamesprial/go-slack-messages/internal"
	"github.com/jamesprial/go-slack-messages/pkg/types"
)

// MessageSender posts, updates and deletes messages in a channel.
type MessageSender struct {
	dispatcher Dispatcher
	validator  *internal.Validator
}

// NewMessageSender creates a standalone MessageSender authenticated with token.
// Client.Messages is the same facade sharing the client's dispatcher.
func NewMessageSender(token string, opts ...Option) (*MessageSender, error) {
	client, err := NewClient(token, opts...)
	if err != nil {
		return nil, err
	}
	return client.Messages, nil
}

// SendMessage posts text to channel.
//
// The returned envelope is the API response as decoded, including a
// rejected call ("ok": false); use env.Err() to turn a rejection into an
// error. A successful post carries the new message's "ts", which
// identifies it for UpdateMessage, DeleteMessage and reactions.
func (m *MessageSender) SendMessage(ctx context.Context, channel, text string) (types.Envelope, error) {
	if err := internal.First(
		m.validator.ValidateChannel(channel),
		m.validator.ValidateText(text),
	); err != nil {
		return nil, err
	}

	return m.dispatcher.Execute(ctx, types.MethodPost, EndpointPostMessage, types.Payload{
		"channel": channel,
		"text":    text,
	})
}

// UpdateMessage replaces the text of the message identified by ts in channel.
func (m *MessageSender) UpdateMessage(ctx context.Context, channel, text, ts string) (types.Envelope, error) {
	if err := internal.First(
		m.validator.ValidateChannel(channel),
		m.validator.ValidateText(text),
		m.validator.ValidateTimestamp("ts", ts),
	); err != nil {
		return nil, err
	}

	return m.dispatcher.Execute(ctx, types.MethodPost, EndpointUpdateMessage, types.Payload{
		"channel": channel,
		"text":    text,
		"ts":      ts,
	})
}

// DeleteMessage deletes the message identified by ts in channel.
func (m *MessageSender) DeleteMessage(ctx context.Context, channel, ts string) (types.Envelope, error) {
	if err := internal.First(
		m.validator.ValidateChannel(channel),
		m.validator.ValidateTimestamp("ts", ts),
	); err != nil {
		return nil, err
	}

	return m.dispatcher.Execute(ctx, types.MethodPost, EndpointDeleteMessage, types.Payload{
		"channel": channel,
		"ts":      ts,
	})
}

// SendMessage posts text to channel. See MessageSender.SendMessage.
func (c *Client) SendMessage(ctx context.Context, channel, text string) (types.Envelope, error) {
	return c.Messages.SendMessage(ctx, channel, text)
}

// UpdateMessage replaces the text of a message. See MessageSender.UpdateMessage.
func (c *Client) UpdateMessage(ctx context.Context, channel, text, ts string) (types.Envelope, error) {
	return c.Messages.UpdateMessage(ctx, channel, text, ts)
}

// DeleteMessage deletes a message. See MessageSender.DeleteMessage.
func (c *Client) DeleteMessage(ctx context.Context, channel, ts string) (types.Envelope, error) {
	return c.Messages.DeleteMessage(ctx, channel, ts)
}
