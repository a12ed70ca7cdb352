package slackmsg

import (
	"context"
	"time"

	"github.com/jamesprial/go-slack-messages/pkg/types"
)

// MessageSenderAPI posts, edits and deletes channel messages.
type MessageSenderAPI interface {
	SendMessage(ctx context.Context, channel, text string) (types.Envelope, error)
	UpdateMessage(ctx context.Context, channel, text, ts string) (types.Envelope, error)
	DeleteMessage(ctx context.Context, channel, ts string) (types.Envelope, error)
}

// EphemeralSenderAPI posts messages visible to a single user.
type EphemeralSenderAPI interface {
	SendEphemeralMessage(ctx context.Context, channel, user, text string) (types.Envelope, error)
}

// ScheduledMessagesAPI manages messages queued for later delivery.
type ScheduledMessagesAPI interface {
	ScheduleMessage(ctx context.Context, channel, text string, postAt time.Time) (types.Envelope, error)
	ListScheduledMessages(ctx context.Context, channel string) (types.Envelope, error)
	DeleteScheduledMessage(ctx context.Context, channel, scheduledMessageID string) (types.Envelope, error)
}

// ReactionsAPI adds, removes and lists emoji reactions on a message.
type ReactionsAPI interface {
	AddReaction(ctx context.Context, channel, timestamp, emoji string) (types.Envelope, error)
	RemoveReaction(ctx context.Context, channel, timestamp, emoji string) (types.Envelope, error)
	ListReactions(ctx context.Context, channel, timestamp string) (types.Envelope, error)
}

var (
	_ MessageSenderAPI     = (*MessageSender)(nil)
	_ EphemeralSenderAPI   = (*EphemeralSender)(nil)
	_ ScheduledMessagesAPI = (*ScheduledMessages)(nil)
	_ ReactionsAPI         = (*Reactions)(nil)

	_ MessageSenderAPI     = (*Client)(nil)
	_ EphemeralSenderAPI   = (*Client)(nil)
	_ ScheduledMessagesAPI = (*Client)(nil)
	_ ReactionsAPI         = (*Client)(nil)
)
