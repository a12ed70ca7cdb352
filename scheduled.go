package slackmsg

import (
	"context"
	"net/url"
	"time"

	"github.com/jamesprial/go-slack-messages/internal"
	"github.com/jamesprial/go-slack-messages/pkg/types"
)

// ScheduledMessages queues messages for later delivery and manages the queue.
type ScheduledMessages struct {
	dispatcher Dispatcher
	validator  *internal.Validator
}

// NewScheduledMessages creates a standalone ScheduledMessages authenticated with token.
func NewScheduledMessages(token string, opts ...Option) (*ScheduledMessages, error) {
	client, err := NewClient(token, opts...)
	if err != nil {
		return nil, err
	}
	return client.Scheduled, nil
}

// ScheduleMessage queues text for delivery to channel at postAt. The time is
// sent as whole unix seconds ("post_at"); sub-second precision is dropped.
//
// The response carries a "scheduled_message_id" that DeleteScheduledMessage
// accepts.
func (s *ScheduledMessages) ScheduleMessage(ctx context.Context, channel, text string, postAt time.Time) (types.Envelope, error) {
	unix := postAt.Unix()
	if err := internal.First(
		s.validator.ValidateChannel(channel),
		s.validator.ValidateText(text),
		s.validator.ValidatePostAt(unix),
	); err != nil {
		return nil, err
	}

	return s.dispatcher.Execute(ctx, types.MethodPost, EndpointScheduleMessage, types.Payload{
		"channel": channel,
		"text":    text,
		"post_at": unix,
	})
}

// ListScheduledMessages returns the messages queued for channel. The
// listing is returned as sent by the API, a single page; following any
// pagination cursor is left to the caller.
func (s *ScheduledMessages) ListScheduledMessages(ctx context.Context, channel string) (types.Envelope, error) {
	if err := s.validator.ValidateChannel(channel); err != nil {
		return nil, err
	}

	endpoint := internal.EncodeQuery(EndpointListScheduledMessages, url.Values{"channel": {channel}})
	return s.dispatcher.Execute(ctx, types.MethodGet, endpoint, nil)
}

// DeleteScheduledMessage removes a queued message before it is posted.
func (s *ScheduledMessages) DeleteScheduledMessage(ctx context.Context, channel, scheduledMessageID string) (types.Envelope, error) {
	if err := internal.First(
		s.validator.ValidateChannel(channel),
		s.validator.ValidateRequired("scheduled_message_id", scheduledMessageID),
	); err != nil {
		return nil, err
	}

	return s.dispatcher.Execute(ctx, types.MethodPost, EndpointDeleteScheduledMessage, types.Payload{
		"channel":              channel,
		"scheduled_message_id": scheduledMessageID,
	})
}

// ScheduleMessage queues a message. See ScheduledMessages.ScheduleMessage.
func (c *Client) ScheduleMessage(ctx context.Context, channel, text string, postAt time.Time) (types.Envelope, error) {
	return c.Scheduled.ScheduleMessage(ctx, channel, text, postAt)
}

// ListScheduledMessages lists queued messages. See ScheduledMessages.ListScheduledMessages.
func (c *Client) ListScheduledMessages(ctx context.Context, channel string) (types.Envelope, error) {
	return c.Scheduled.ListScheduledMessages(ctx, channel)
}

// DeleteScheduledMessage removes a queued message. See ScheduledMessages.DeleteScheduledMessage.
func (c *Client) DeleteScheduledMessage(ctx context.Context, channel, scheduledMessageID string) (types.Envelope, error) {
	return c.Scheduled.DeleteScheduledMessage(ctx, channel, scheduledMessageID)
}
