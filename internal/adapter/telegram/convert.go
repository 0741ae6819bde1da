package telegram

import (
	"strconv"

	"github.com/bornholm/remindme/internal/core/model"
	"github.com/bornholm/remindme/internal/core/port"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func toKeyboard(menu port.Menu) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(menu))

	for _, row := range menu {
		buttons := make([]tgbotapi.InlineKeyboardButton, 0, len(row))
		for _, b := range row {
			buttons = append(buttons, tgbotapi.NewInlineKeyboardButtonData(b.Label, b.Action))
		}

		rows = append(rows, tgbotapi.NewInlineKeyboardRow(buttons...))
	}

	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// toEvent converts an update into a chat event. It returns false for
// updates the bot does not react to.
func toEvent(update tgbotapi.Update) (port.Event, bool) {
	switch {
	case update.CallbackQuery != nil:
		query := update.CallbackQuery
		if query.From == nil {
			return port.Event{}, false
		}

		event := port.Event{
			Kind:       port.EventKindCallback,
			Sender:     toOwnerID(query.From.ID),
			Action:     query.Data,
			CallbackID: query.ID,
		}

		if query.Message != nil && query.Message.Chat != nil {
			event.Message = &port.MessageRef{
				Recipient: toOwnerID(query.Message.Chat.ID),
				ID:        strconv.Itoa(query.Message.MessageID),
			}
		}

		return event, true

	case update.Message != nil:
		message := update.Message
		if message.From == nil {
			return port.Event{}, false
		}

		if message.IsCommand() {
			return port.Event{
				Kind:   port.EventKindCommand,
				Sender: toOwnerID(message.From.ID),
				Text:   message.Command(),
			}, true
		}

		if message.Text == "" {
			return port.Event{}, false
		}

		return port.Event{
			Kind:   port.EventKindText,
			Sender: toOwnerID(message.From.ID),
			Text:   message.Text,
		}, true
	}

	return port.Event{}, false
}

func toOwnerID(id int64) model.OwnerID {
	return model.OwnerID(strconv.FormatInt(id, 10))
}
