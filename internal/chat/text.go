package chat

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
)

const (
	textWelcome = "👋 Hi! I am your personal planner.\n\n" +
		"⏰ I remind you on time: \"at 18:00\" or \"in 10 minutes\"\n" +
		"✅ I let you close a task with \"I did it!\"\n" +
		"🧹 I clean up what is done so it does not get in the way\n\n" +
		"Just write what needs to be done, I take care of the rest.\n\n" +
		"Ready? Press a button or write your first task 👇"

	textChooseAction       = "Choose an action:"
	textNoTasks            = "You have no active tasks."
	textTaskList           = "📌 Your tasks:"
	textTaskNotFound       = "❌ Task not found."
	textAlreadyRemoved     = "❌ Task was already removed."
	textConfirmDelete      = "🗑 Delete this task permanently?"
	textTaskDeleted        = "🗑 Task deleted."
	textTaskDone           = "🎉 Great! Task completed and removed.\nWell done! 💪"
	textDoneAlreadyRemoved = "🎉 Great! This task is already off your list.\nWell done! 💪"
	textEditPrompt         = "✏️ Write the new description:"
	textAddPrompt          = "✍️ Write a new task.\n\n" +
		"You can add a time:\n" +
		"• Buy bread at 18:30\n" +
		"• Call mom in 10 minutes\n" +
		"• Gym tomorrow at 9:00"

	textEmptyDescription = "❌ Task text cannot be empty."
	textInvalidTime      = "❌ I could not understand this time. Use H:MM with hours from 0 to 23 and minutes from 0 to 59."
	textTemporaryFailure = "⚠️ Something went wrong, please try again."
	textUnknownCommand   = "🤔 Unknown command."
	textUnknownAction    = "🤔 This button is not supported anymore."
	textSlowDown         = "🐢 Slow down a little."
	textNoReminder       = "🕒 No reminder"
)

const dueLayout = "02.01 at 15:04"

func formatDue(dueAt time.Time) string {
	return dueAt.Format(dueLayout)
}

func textAdded(description string, dueAt *time.Time, implicit bool) string {
	text := fmt.Sprintf("✅ Task added: %s", description)
	if implicit {
		text = fmt.Sprintf("✅ Added: %s", description)
	}

	return text + reminderSuffix(dueAt)
}

func textUpdated(description string, dueAt *time.Time) string {
	return fmt.Sprintf("✅ Updated:\n%s", description) + reminderSuffix(dueAt)
}

func reminderSuffix(dueAt *time.Time) string {
	if dueAt == nil {
		return ""
	}

	return fmt.Sprintf("\n⏰ I will remind you on %s", formatDue(*dueAt))
}

func textTaskDetail(description string, dueAt *time.Time, now time.Time) string {
	status := textNoReminder
	if dueAt != nil {
		status = fmt.Sprintf("⏰ Reminder on %s (%s)", formatDue(*dueAt), humanize.RelTime(*dueAt, now, "ago", "from now"))
	}

	return fmt.Sprintf("📋 %s\n\n%s", description, status)
}

func textReminder(description string) string {
	return fmt.Sprintf("⏰ Reminder: %s\n\nIf you already did it, press the button below.", description)
}
