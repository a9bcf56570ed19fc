package transport

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/slack-go/slack"
	"github.com/slack-go/slack/slackevents"
	"github.com/slack-go/slack/socketmode"

	"caddie/internal/sequencer"
	"caddie/internal/telemetry"
)

// slackSender is the slice of the Slack client the adapter posts through.
type slackSender interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
	UploadFileV2Context(ctx context.Context, params slack.UploadFileV2Parameters) (*slack.FileSummary, error)
}

// Slack drives the wizard over Socket Mode. Direct messages carry the whole
// conversation; channel mentions work too, with the mention stripped. Slack
// has no reply keyboards, so offered options are rendered as text lines.
type Slack struct {
	api     slackSender
	socket  *socketmode.Client
	core    Core
	logger  *slog.Logger
	metrics *telemetry.Metrics
}

// NewSlack builds the Socket Mode adapter. botToken is the xoxb- bot token,
// appToken the xapp- app-level token Socket Mode requires.
func NewSlack(botToken, appToken string, core Core, logger *slog.Logger, m *telemetry.Metrics) (*Slack, error) {
	if botToken == "" {
		return nil, errors.New("SLACK_BOT_USER_TOKEN is not set")
	}
	if !strings.HasPrefix(appToken, "xapp-") {
		return nil, errors.New("SLACK_APP_TOKEN must be an app-level token (xapp-...)")
	}
	if logger == nil {
		logger = slog.Default()
	}
	api := slack.New(botToken, slack.OptionAppLevelToken(appToken))
	return &Slack{
		api:     api,
		socket:  socketmode.New(api),
		core:    core,
		logger:  logger,
		metrics: m,
	}, nil
}

// Run connects to Socket Mode and handles events until the context is
// canceled.
func (s *Slack) Run(ctx context.Context) error {
	go s.handleEventsLoop(ctx, s.socket.Events, func(req socketmode.Request) {
		s.socket.Ack(req)
	})
	if err := s.socket.RunContext(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("slack socket mode: %w", err)
	}
	return ctx.Err()
}

func (s *Slack) handleEventsLoop(ctx context.Context, events <-chan socketmode.Event, ack func(socketmode.Request)) {
	for {
		select {
		case <-ctx.Done():
			return
		case evt, ok := <-events:
			if !ok {
				return
			}
			switch evt.Type {
			case socketmode.EventTypeConnecting:
				s.logger.Info("Connecting to Slack Socket Mode...")
			case socketmode.EventTypeConnectionError:
				s.logger.Warn("Slack connection failed, retrying", "error", evt.Data)
			case socketmode.EventTypeConnected:
				s.logger.Info("Connected to Slack Socket Mode")
			case socketmode.EventTypeEventsAPI:
				apiEvent, ok := evt.Data.(slackevents.EventsAPIEvent)
				if !ok {
					continue
				}
				if evt.Request != nil {
					ack(*evt.Request)
				}
				s.handleEventsAPI(ctx, apiEvent)
			}
		}
	}
}

var mentionPrefix = regexp.MustCompile(`^<@[^>]+>\s*`)

func (s *Slack) handleEventsAPI(ctx context.Context, e slackevents.EventsAPIEvent) {
	if e.Type != slackevents.CallbackEvent {
		return
	}
	switch ev := e.InnerEvent.Data.(type) {
	case *slackevents.MessageEvent:
		// The wizard runs in DMs; channel traffic arrives as mentions. BotID
		// marks our own echo, SubType marks edits and joins.
		if ev.ChannelType != "im" || ev.BotID != "" || ev.User == "" || ev.SubType != "" {
			return
		}
		s.metrics.RecordTransportEvent("slack", "message")
		s.deliver(ctx, ev.Channel, Dispatch(s.core, ev.User, ev.Text))
	case *slackevents.AppMentionEvent:
		if ev.BotID != "" || ev.User == "" {
			return
		}
		s.metrics.RecordTransportEvent("slack", "mention")
		line := mentionPrefix.ReplaceAllString(ev.Text, "")
		s.deliver(ctx, ev.Channel, Dispatch(s.core, ev.User, line))
	}
}

func (s *Slack) deliver(ctx context.Context, channel string, reply sequencer.Reply) {
	if _, _, err := s.api.PostMessageContext(ctx, channel, slack.MsgOptionText(renderText(reply), false)); err != nil {
		s.logger.Error("Slack post failed", "channel", channel, "error", err)
		return
	}
	for _, att := range reply.Attachments {
		_, err := s.api.UploadFileV2Context(ctx, slack.UploadFileV2Parameters{
			Channel:  channel,
			Filename: att.Name,
			Title:    att.Name,
			FileSize: len(att.Data),
			Reader:   bytes.NewReader(att.Data),
		})
		if err != nil {
			s.logger.Error("Slack upload failed", "channel", channel, "file", att.Name, "error", err)
		}
	}
}

// renderText folds the offered options into the message body.
func renderText(r sequencer.Reply) string {
	opts := Options(r)
	if len(opts) == 0 {
		return r.Text
	}
	var b strings.Builder
	b.WriteString(r.Text)
	b.WriteString("\n\nOptions:")
	for _, o := range opts {
		b.WriteString("\n• ")
		b.WriteString(o)
	}
	return b.String()
}
