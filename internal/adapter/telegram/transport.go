package telegram

import (
	"context"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/bornholm/go-x/slogx"
	"github.com/bornholm/remindme/internal/core/model"
	"github.com/bornholm/remindme/internal/core/port"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/pkg/errors"
	"golang.org/x/time/rate"
)

type Options struct {
	// Long polling timeout, in seconds
	Timeout int

	// Outbound requests rate
	RateLimitInterval time.Duration
	RateLimitBurst    int
}

type OptionFunc func(opts *Options)

func NewOptions(funcs ...OptionFunc) *Options {
	opts := &Options{
		Timeout:           30,
		RateLimitInterval: 40 * time.Millisecond,
		RateLimitBurst:    25,
	}
	for _, fn := range funcs {
		fn(opts)
	}
	return opts
}

func WithTimeout(timeout int) OptionFunc {
	return func(opts *Options) {
		opts.Timeout = timeout
	}
}

func WithRateLimit(interval time.Duration, burst int) OptionFunc {
	return func(opts *Options) {
		opts.RateLimitInterval = interval
		opts.RateLimitBurst = burst
	}
}

// Transport exchanges messages with users of a Telegram bot, receiving
// updates through long polling.
type Transport struct {
	bot     *tgbotapi.BotAPI
	limiter *rate.Limiter
	timeout int
}

// Send implements port.Messenger.
func (t *Transport) Send(ctx context.Context, recipient model.OwnerID, message port.Message) (*port.MessageRef, error) {
	chatID, err := parseChatID(recipient)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	config := tgbotapi.NewMessage(chatID, message.Text)
	if len(message.Menu) > 0 {
		config.ReplyMarkup = toKeyboard(message.Menu)
	}

	if err := t.limiter.Wait(ctx); err != nil {
		return nil, errors.WithStack(err)
	}

	sent, err := t.bot.Send(config)
	if err != nil {
		return nil, errors.Wrapf(err, "could not send message to chat '%d'", chatID)
	}

	return &port.MessageRef{
		Recipient: recipient,
		ID:        strconv.Itoa(sent.MessageID),
	}, nil
}

// Edit implements port.Messenger.
func (t *Transport) Edit(ctx context.Context, ref port.MessageRef, message port.Message) error {
	chatID, err := parseChatID(ref.Recipient)
	if err != nil {
		return errors.WithStack(err)
	}

	messageID, err := strconv.Atoi(ref.ID)
	if err != nil {
		return errors.Wrapf(err, "invalid message id '%s'", ref.ID)
	}

	var config tgbotapi.Chattable
	if len(message.Menu) > 0 {
		config = tgbotapi.NewEditMessageTextAndMarkup(chatID, messageID, message.Text, toKeyboard(message.Menu))
	} else {
		config = tgbotapi.NewEditMessageText(chatID, messageID, message.Text)
	}

	if err := t.limiter.Wait(ctx); err != nil {
		return errors.WithStack(err)
	}

	if _, err := t.bot.Request(config); err != nil {
		// Selecting the same menu twice yields an identical message
		if isNotModified(err) {
			return nil
		}

		return errors.Wrapf(err, "could not edit message '%d' of chat '%d'", messageID, chatID)
	}

	return nil
}

// Acknowledge implements port.Messenger.
func (t *Transport) Acknowledge(ctx context.Context, callbackID string, notice string) error {
	if err := t.limiter.Wait(ctx); err != nil {
		return errors.WithStack(err)
	}

	if _, err := t.bot.Request(tgbotapi.NewCallback(callbackID, notice)); err != nil {
		return errors.Wrapf(err, "could not answer callback '%s'", callbackID)
	}

	return nil
}

// Listen implements port.Listener.
func (t *Transport) Listen(ctx context.Context, handler port.EventHandler) error {
	config := tgbotapi.NewUpdate(0)
	config.Timeout = t.timeout

	updates := t.bot.GetUpdatesChan(config)
	defer t.bot.StopReceivingUpdates()

	slog.InfoContext(ctx, "listening for telegram updates", slog.String("bot", t.bot.Self.UserName))

	for {
		select {
		case <-ctx.Done():
			return nil

		case update, ok := <-updates:
			if !ok {
				return nil
			}

			event, ok := toEvent(update)
			if !ok {
				continue
			}

			if err := handler.HandleEvent(ctx, event); err != nil {
				slog.ErrorContext(ctx, "could not handle telegram update",
					slog.Int("updateID", update.UpdateID),
					slogx.Error(err),
				)
			}
		}
	}
}

func NewTransport(bot *tgbotapi.BotAPI, funcs ...OptionFunc) *Transport {
	opts := NewOptions(funcs...)
	return &Transport{
		bot:     bot,
		limiter: rate.NewLimiter(rate.Every(opts.RateLimitInterval), opts.RateLimitBurst),
		timeout: opts.Timeout,
	}
}

var (
	_ port.Messenger = &Transport{}
	_ port.Listener  = &Transport{}
)

func parseChatID(owner model.OwnerID) (int64, error) {
	chatID, err := strconv.ParseInt(string(owner), 10, 64)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid telegram chat id '%s'", owner)
	}

	return chatID, nil
}

func isNotModified(err error) bool {
	var apiErr *tgbotapi.Error
	if !errors.As(err, &apiErr) {
		return false
	}

	return strings.Contains(apiErr.Message, "message is not modified")
}
