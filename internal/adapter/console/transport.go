package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"github.com/bornholm/go-x/slogx"
	"github.com/bornholm/remindme/internal/core/model"
	"github.com/bornholm/remindme/internal/core/port"
	"github.com/pkg/errors"
)

const (
	commandPrefix = "/"
	actionPrefix  = "!"
)

// Transport is a single user chat over line oriented streams. Lines
// starting with "/" are commands, lines starting with "!" select a menu
// action of the last displayed menu, anything else is plain text.
type Transport struct {
	in    io.Reader
	out   io.Writer
	owner model.OwnerID

	mutex       sync.Mutex
	nextID      int
	lastMessage *port.MessageRef
}

// Send implements port.Messenger.
func (t *Transport) Send(ctx context.Context, recipient model.OwnerID, message port.Message) (*port.MessageRef, error) {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	t.nextID++

	ref := &port.MessageRef{Recipient: recipient, ID: strconv.Itoa(t.nextID)}

	if err := t.render(message); err != nil {
		return nil, errors.WithStack(err)
	}

	t.lastMessage = ref

	return ref, nil
}

// Edit implements port.Messenger.
func (t *Transport) Edit(ctx context.Context, ref port.MessageRef, message port.Message) error {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	if err := t.render(message); err != nil {
		return errors.WithStack(err)
	}

	t.lastMessage = &ref

	return nil
}

// Acknowledge implements port.Messenger.
func (t *Transport) Acknowledge(ctx context.Context, callbackID string, notice string) error {
	if notice == "" {
		return nil
	}

	t.mutex.Lock()
	defer t.mutex.Unlock()

	if _, err := fmt.Fprintf(t.out, "(%s)\n", notice); err != nil {
		return errors.WithStack(err)
	}

	return nil
}

func (t *Transport) render(message port.Message) error {
	var sb strings.Builder

	sb.WriteString(message.Text)
	sb.WriteString("\n")

	for _, row := range message.Menu {
		for i, b := range row {
			if i > 0 {
				sb.WriteString("  ")
			}
			fmt.Fprintf(&sb, "[%s%s] %s", actionPrefix, b.Action, b.Label)
		}
		sb.WriteString("\n")
	}

	sb.WriteString("\n")

	if _, err := io.WriteString(t.out, sb.String()); err != nil {
		return errors.WithStack(err)
	}

	return nil
}

// Listen implements port.Listener. It returns once the input is exhausted
// or ctx is canceled.
func (t *Transport) Listen(ctx context.Context, handler port.EventHandler) error {
	lines := make(chan string)
	errs := make(chan error, 1)

	go func() {
		defer close(lines)

		scanner := bufio.NewScanner(t.in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}

		if err := scanner.Err(); err != nil {
			errs <- errors.WithStack(err)
		}
	}()

	callbacks := 0

	for {
		select {
		case <-ctx.Done():
			return nil

		case err := <-errs:
			return err

		case line, ok := <-lines:
			if !ok {
				select {
				case err := <-errs:
					return err
				default:
					return nil
				}
			}

			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}

			event := t.toEvent(line, &callbacks)

			if err := handler.HandleEvent(ctx, event); err != nil {
				slog.ErrorContext(ctx, "could not handle console input", slogx.Error(err))
			}
		}
	}
}

func (t *Transport) toEvent(line string, callbacks *int) port.Event {
	if command, found := strings.CutPrefix(line, commandPrefix); found {
		return port.Event{Kind: port.EventKindCommand, Sender: t.owner, Text: command}
	}

	if action, found := strings.CutPrefix(line, actionPrefix); found {
		*callbacks++

		t.mutex.Lock()
		message := t.lastMessage
		t.mutex.Unlock()

		return port.Event{
			Kind:       port.EventKindCallback,
			Sender:     t.owner,
			Action:     action,
			CallbackID: strconv.Itoa(*callbacks),
			Message:    message,
		}
	}

	return port.Event{Kind: port.EventKindText, Sender: t.owner, Text: line}
}

func NewTransport(in io.Reader, out io.Writer, owner model.OwnerID) *Transport {
	return &Transport{
		in:    in,
		out:   out,
		owner: owner,
	}
}

var (
	_ port.Messenger = &Transport{}
	_ port.Listener  = &Transport{}
)
