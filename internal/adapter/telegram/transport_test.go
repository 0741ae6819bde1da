package telegram

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/bornholm/remindme/internal/core/port"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/pkg/errors"
)

type apiCall struct {
	Method string
	Params map[string]string
}

type fakeAPI struct {
	mutex sync.Mutex
	calls []apiCall

	// responses maps api methods to their json result
	responses map[string]string
	failures  map[string]string
}

func (f *fakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	method := r.URL.Path[strings.LastIndex(r.URL.Path, "/")+1:]

	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	params := map[string]string{}
	for key := range r.PostForm {
		params[key] = r.PostForm.Get(key)
	}

	f.mutex.Lock()
	f.calls = append(f.calls, apiCall{Method: method, Params: params})
	f.mutex.Unlock()

	w.Header().Set("Content-Type", "application/json")

	if description, exists := f.failures[method]; exists {
		w.Write([]byte(`{"ok":false,"error_code":400,"description":` + quote(description) + `}`))
		return
	}

	result, exists := f.responses[method]
	if !exists {
		result = "true"
	}

	w.Write([]byte(`{"ok":true,"result":` + result + `}`))
}

func (f *fakeAPI) lastCall(t *testing.T, method string) apiCall {
	t.Helper()

	f.mutex.Lock()
	defer f.mutex.Unlock()

	for i := len(f.calls) - 1; i >= 0; i-- {
		if f.calls[i].Method == method {
			return f.calls[i]
		}
	}

	t.Fatalf("no call to '%s'", method)

	return apiCall{}
}

func quote(s string) string {
	data, _ := json.Marshal(s)
	return string(data)
}

func newTestTransport(t *testing.T, api *fakeAPI) *Transport {
	t.Helper()

	if api.responses == nil {
		api.responses = map[string]string{}
	}

	api.responses["getMe"] = `{"id":1,"is_bot":true,"first_name":"remindme","username":"remindme_bot"}`

	server := httptest.NewServer(api)
	t.Cleanup(server.Close)

	bot, err := tgbotapi.NewBotAPIWithClient("token", server.URL+"/bot%s/%s", server.Client())
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	return NewTransport(bot)
}

func TestTransportSend(t *testing.T) {
	api := &fakeAPI{
		responses: map[string]string{
			"sendMessage": `{"message_id":42,"date":0,"chat":{"id":1001,"type":"private"}}`,
		},
	}

	transport := newTestTransport(t, api)

	message := port.Message{
		Text: "⏰ Reminder: Stretch",
		Menu: port.Menu{{{Label: "✅ I did it!", Action: "done_7"}}},
	}

	ref, err := transport.Send(context.Background(), "1001", message)
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := "42", ref.ID; e != g {
		t.Errorf("ref.ID: expected '%v', got '%v'", e, g)
	}

	call := api.lastCall(t, "sendMessage")

	if e, g := "1001", call.Params["chat_id"]; e != g {
		t.Errorf("chat_id: expected '%v', got '%v'", e, g)
	}

	if e, g := message.Text, call.Params["text"]; e != g {
		t.Errorf("text: expected '%v', got '%v'", e, g)
	}

	var markup tgbotapi.InlineKeyboardMarkup
	if err := json.Unmarshal([]byte(call.Params["reply_markup"]), &markup); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := 1, len(markup.InlineKeyboard); e != g {
		t.Fatalf("len(markup.InlineKeyboard): expected '%v', got '%v'", e, g)
	}

	button := markup.InlineKeyboard[0][0]

	if button.CallbackData == nil || *button.CallbackData != "done_7" {
		t.Errorf("button.CallbackData: expected 'done_7', got '%v'", button.CallbackData)
	}
}

func TestTransportSendInvalidRecipient(t *testing.T) {
	transport := newTestTransport(t, &fakeAPI{})

	if _, err := transport.Send(context.Background(), "not-a-chat", port.Message{Text: "hello"}); err == nil {
		t.Errorf("err: expected an error, got nil")
	}
}

func TestTransportEditNotModified(t *testing.T) {
	api := &fakeAPI{
		failures: map[string]string{
			"editMessageText": "Bad Request: message is not modified",
		},
	}

	transport := newTestTransport(t, api)

	ref := port.MessageRef{Recipient: "1001", ID: "42"}

	if err := transport.Edit(context.Background(), ref, port.Message{Text: "Choose an action:"}); err != nil {
		t.Errorf("%+v", errors.WithStack(err))
	}

	call := api.lastCall(t, "editMessageText")

	if e, g := "42", call.Params["message_id"]; e != g {
		t.Errorf("message_id: expected '%v', got '%v'", e, g)
	}
}

func TestTransportAcknowledge(t *testing.T) {
	api := &fakeAPI{}
	transport := newTestTransport(t, api)

	if err := transport.Acknowledge(context.Background(), "cb-1", "❌ Task not found."); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	call := api.lastCall(t, "answerCallbackQuery")

	if e, g := "cb-1", call.Params["callback_query_id"]; e != g {
		t.Errorf("callback_query_id: expected '%v', got '%v'", e, g)
	}

	if e, g := "❌ Task not found.", call.Params["text"]; e != g {
		t.Errorf("text: expected '%v', got '%v'", e, g)
	}
}

func TestToEvent(t *testing.T) {
	type testCase struct {
		Name          string
		Update        tgbotapi.Update
		ExpectedOK    bool
		ExpectedEvent port.Event
	}

	user := &tgbotapi.User{ID: 1001}
	chat := &tgbotapi.Chat{ID: 1001}

	testCases := []testCase{
		{
			Name: "command",
			Update: tgbotapi.Update{Message: &tgbotapi.Message{
				From:     user,
				Chat:     chat,
				Text:     "/start",
				Entities: []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: 6}},
			}},
			ExpectedOK:    true,
			ExpectedEvent: port.Event{Kind: port.EventKindCommand, Sender: "1001", Text: "start"},
		},
		{
			Name: "text",
			Update: tgbotapi.Update{Message: &tgbotapi.Message{
				From: user,
				Chat: chat,
				Text: "Buy milk at 18:30",
			}},
			ExpectedOK:    true,
			ExpectedEvent: port.Event{Kind: port.EventKindText, Sender: "1001", Text: "Buy milk at 18:30"},
		},
		{
			Name: "sticker",
			Update: tgbotapi.Update{Message: &tgbotapi.Message{
				From: user,
				Chat: chat,
			}},
			ExpectedOK: false,
		},
		{
			Name:       "empty",
			Update:     tgbotapi.Update{},
			ExpectedOK: false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			event, ok := toEvent(tc.Update)

			if e, g := tc.ExpectedOK, ok; e != g {
				t.Fatalf("ok: expected '%v', got '%v'", e, g)
			}

			if !ok {
				return
			}

			if e, g := tc.ExpectedEvent, event; e != g {
				t.Errorf("event: expected '%v', got '%v'", e, g)
			}
		})
	}

	callback := tgbotapi.Update{CallbackQuery: &tgbotapi.CallbackQuery{
		ID:      "cb-1",
		From:    user,
		Data:    "task_3",
		Message: &tgbotapi.Message{MessageID: 42, Chat: chat},
	}}

	event, ok := toEvent(callback)
	if !ok {
		t.Fatalf("callback: expected event")
	}

	if e, g := port.EventKindCallback, event.Kind; e != g {
		t.Errorf("event.Kind: expected '%v', got '%v'", e, g)
	}

	if e, g := "task_3", event.Action; e != g {
		t.Errorf("event.Action: expected '%v', got '%v'", e, g)
	}

	if event.Message == nil {
		t.Fatalf("event.Message: expected a message ref, got nil")
	}

	if e, g := (port.MessageRef{Recipient: "1001", ID: "42"}), *event.Message; e != g {
		t.Errorf("event.Message: expected '%v', got '%v'", e, g)
	}
}
