// Package slackmsg is a small Go client for the messaging subset of a chat
// platform's Web API: posting, editing and deleting messages, ephemeral
// messages, scheduled messages, and emoji reactions.
//
// # Overview
//
// Every operation is one authenticated HTTP call. The client builds the
// request (bearer token, JSON content type, JSON body or query string),
// sends it once through an injectable transport, and decodes the response
// into a types.Envelope, a map holding whatever JSON object the API
// returned.
//
// # Quick Start
//
//	client, err := slackmsg.NewClient(os.Getenv("SLACK_TOKEN"))
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	env, err := client.SendMessage(ctx, "C03D0SLK3QC", "Hello!")
//	if err != nil {
//		log.Fatal(err) // transport or decode failure
//	}
//	if err := env.Err(); err != nil {
//		log.Fatal(err) // the API rejected the call, e.g. channel_not_found
//	}
//
//	fmt.Println(env.Summary()) // ok channel=C03D0SLK3QC ts=1700000000.000100
//
// # Operations
//
// Operations are grouped into four facades, each also available standalone:
//
//   - Client.Messages (MessageSender): SendMessage, UpdateMessage, DeleteMessage
//   - Client.Ephemeral (EphemeralSender): SendEphemeralMessage
//   - Client.Scheduled (ScheduledMessages): ScheduleMessage, ListScheduledMessages, DeleteScheduledMessage
//   - Client.Reactions (Reactions): AddReaction, RemoveReaction, ListReactions
//
// Client exposes every operation directly as well, so a *Client satisfies
// MessageSenderAPI, EphemeralSenderAPI, ScheduledMessagesAPI and
// ReactionsAPI. Depend on the narrowest interface you need.
//
// # Responses
//
// A call that reaches the API and gets a JSON object back succeeds, even
// when the API reports "ok": false. Inspect the envelope:
//
//	env.OK()          // "ok" field
//	env.ErrorCode()   // "error" field, e.g. "not_in_channel"
//	env.String("ts")  // any string field
//	env.Map("message")
//	env.Err()         // *errors.APIError when not ok, else nil
//
// # Error Handling
//
// Returned errors are one of:
//
//	var transportErr *errors.TransportError // no usable response: network failure, unreadable body
//	var decodeErr *errors.DecodeError       // a response arrived but was not a JSON object
//	var configErr *errors.ConfigError       // bad configuration or parameter; nothing was sent
//
// Use errors.As, or errors.IsTransport and errors.IsDecode from pkg/errors.
// The HTTP status is not interpreted: an error status whose body is a JSON
// object, such as a rate-limit reply, is returned as an envelope. Failed
// calls are never retried.
//
// # Transport
//
// By default requests go through an *http.Client with DefaultTimeout.
// Supply your own with WithHTTPClient to control timeouts, proxies and TLS:
//
//	client, err := slackmsg.NewClient(token,
//		slackmsg.WithHTTPClient(&http.Client{Timeout: 10 * time.Second}),
//		slackmsg.WithLogger(slog.Default()),
//	)
//
// Cancellation and deadlines also follow the context passed to each call.
package slackmsg
