package bot

import (
	"context"
	"log/slog"
	"sync"

	"github.com/bornholm/go-x/slogx"
	"github.com/bornholm/remindme/internal/core/port"
	"github.com/bornholm/remindme/internal/core/service"
	"github.com/pkg/errors"
)

type Runner interface {
	Run(ctx context.Context) error
}

type Options struct {
	Runners       map[string]Runner
	ErrorReporter func(ctx context.Context, err error)
}

type OptionFunc func(opts *Options)

func NewOptions(funcs ...OptionFunc) *Options {
	opts := &Options{
		Runners:       map[string]Runner{},
		ErrorReporter: func(ctx context.Context, err error) {},
	}
	for _, fn := range funcs {
		fn(opts)
	}
	return opts
}

// WithRunner runs an additional process, such as the ops http server, for
// the lifetime of the bot
func WithRunner(name string, runner Runner) OptionFunc {
	return func(opts *Options) {
		opts.Runners[name] = runner
	}
}

func WithErrorReporter(reporter func(ctx context.Context, err error)) OptionFunc {
	return func(opts *Options) {
		opts.ErrorReporter = reporter
	}
}

// Bot runs the chat listener along with the reminder sweeper. The first
// process to stop stops the others.
type Bot struct {
	listener    port.Listener
	handler     port.EventHandler
	sweeper     *service.Sweeper
	runners     map[string]Runner
	reportError func(ctx context.Context, err error)
}

func (b *Bot) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		wg       sync.WaitGroup
		errOnce  sync.Once
		firstErr error
	)

	run := func(name string, fn func(ctx context.Context) error) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer cancel()

			slog.DebugContext(ctx, "starting process", slog.String("process", name))

			if err := fn(ctx); err != nil {
				err = errors.Wrapf(err, "%s stopped", name)
				errOnce.Do(func() { firstErr = err })
			}

			slog.DebugContext(ctx, "process stopped", slog.String("process", name))
		}()
	}

	run("listener", func(ctx context.Context) error {
		return b.listener.Listen(ctx, port.EventHandlerFunc(b.handleEvent))
	})

	run("sweeper", b.sweeper.Run)

	for name, runner := range b.runners {
		run(name, runner.Run)
	}

	wg.Wait()

	return firstErr
}

func (b *Bot) handleEvent(ctx context.Context, event port.Event) error {
	if err := b.handler.HandleEvent(ctx, event); err != nil {
		err = errors.WithStack(err)
		b.reportError(ctx, err)
		slog.ErrorContext(ctx, "could not handle chat event", slog.String("kind", string(event.Kind)), slogx.Error(err))
	}

	// Errors are reported here, the listener keeps going
	return nil
}

func New(listener port.Listener, handler port.EventHandler, sweeper *service.Sweeper, funcs ...OptionFunc) *Bot {
	opts := NewOptions(funcs...)
	return &Bot{
		listener:    listener,
		handler:     handler,
		sweeper:     sweeper,
		runners:     opts.Runners,
		reportError: opts.ErrorReporter,
	}
}
