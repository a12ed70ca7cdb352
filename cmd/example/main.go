// Command example drives every operation of the chat client from the
// command line. The token is read from SLACK_TOKEN, which may also be set
// in a .env file in the working directory or in a YAML file given with
// --config.
//
//	example --action post --channel C123 --text "hello"
//	example --action react --channel C123 --ts 1700000000.000100 --emoji tada
//	example --action schedule --channel C123 --text "later" --in 1h
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/pflag"

	slackmsg "github.com/jamesprial/go-slack-messages"
	"github.com/jamesprial/go-slack-messages/pkg/types"
)

const tokenEnv = "SLACK_TOKEN"

type options struct {
	action      string
	channel     string
	text        string
	user        string
	ts          string
	emoji       string
	scheduledID string
	in          time.Duration
	baseURL     string
	configPath  string
	debug       bool
}

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	var opts options

	flagSet := pflag.NewFlagSet("example", pflag.ContinueOnError)
	flagSet.SetOutput(stderr)
	flagSet.StringVarP(&opts.action, "action", "a", "post",
		"one of: post, update, delete, ephemeral, schedule, list-scheduled, delete-scheduled, react, unreact, reactions")
	flagSet.StringVarP(&opts.channel, "channel", "c", "", "channel ID")
	flagSet.StringVarP(&opts.text, "text", "t", "", "message text")
	flagSet.StringVar(&opts.user, "user", "", "recipient user ID for ephemeral messages")
	flagSet.StringVar(&opts.ts, "ts", "", "message timestamp")
	flagSet.StringVarP(&opts.emoji, "emoji", "e", "", "reaction name without colons")
	flagSet.StringVar(&opts.scheduledID, "scheduled-id", "", "scheduled message ID")
	flagSet.DurationVar(&opts.in, "in", time.Hour, "delay before a scheduled message is posted")
	flagSet.StringVar(&opts.baseURL, "base-url", slackmsg.DefaultBaseURL, "chat API base URL")
	flagSet.StringVar(&opts.configPath, "config", "", "optional YAML file with token, base_url, channel and timeout")
	flagSet.BoolVar(&opts.debug, "debug", false, "log requests to stderr")

	if err := flagSet.Parse(args); err != nil {
		return err
	}
	if extra := flagSet.Args(); len(extra) > 0 {
		return errors.Errorf("unexpected argument: %s", extra[0])
	}

	file := &fileConfig{}
	if opts.configPath != "" {
		loaded, err := loadFileConfig(opts.configPath)
		if err != nil {
			return err
		}
		file = loaded
	}
	if !flagSet.Changed("base-url") && file.BaseURL != "" {
		opts.baseURL = file.BaseURL
	}
	if opts.channel == "" {
		opts.channel = file.Channel
	}

	token := os.Getenv(tokenEnv)
	if token == "" {
		token = file.Token
	}
	if token == "" {
		return errors.Errorf("%s is not set", tokenEnv)
	}

	timeout := slackmsg.DefaultTimeout
	if file.Timeout > 0 {
		timeout = time.Duration(file.Timeout)
	}

	level := slog.LevelWarn
	if opts.debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	client, err := slackmsg.NewClient(token,
		slackmsg.WithBaseURL(opts.baseURL),
		slackmsg.WithHTTPClient(&http.Client{Timeout: timeout}),
		slackmsg.WithLogger(logger),
	)
	if err != nil {
		return errors.Wrap(err, "creating client")
	}

	env, err := dispatch(ctx, client, opts)
	if err != nil {
		return errors.Wrapf(err, "%s", opts.action)
	}

	fmt.Fprintln(stdout, env.Summary())
	if apiErr := env.Err(); apiErr != nil {
		return errors.WithMessage(apiErr, opts.action)
	}
	return nil
}

func dispatch(ctx context.Context, client *slackmsg.Client, opts options) (types.Envelope, error) {
	switch strings.ToLower(opts.action) {
	case "post":
		return client.SendMessage(ctx, opts.channel, opts.text)
	case "update":
		return client.UpdateMessage(ctx, opts.channel, opts.text, opts.ts)
	case "delete":
		return client.DeleteMessage(ctx, opts.channel, opts.ts)
	case "ephemeral":
		return client.SendEphemeralMessage(ctx, opts.channel, opts.user, opts.text)
	case "schedule":
		return client.ScheduleMessage(ctx, opts.channel, opts.text, time.Now().Add(opts.in))
	case "list-scheduled":
		return client.ListScheduledMessages(ctx, opts.channel)
	case "delete-scheduled":
		return client.DeleteScheduledMessage(ctx, opts.channel, opts.scheduledID)
	case "react":
		return client.AddReaction(ctx, opts.channel, opts.ts, opts.emoji)
	case "unreact":
		return client.RemoveReaction(ctx, opts.channel, opts.ts, opts.emoji)
	case "reactions":
		return client.ListReactions(ctx, opts.channel, opts.ts)
	default:
		return nil, errors.Errorf("unknown action %q", opts.action)
	}
}
