package chat

import (
	"github.com/bornholm/remindme/internal/core/model"
	"github.com/bornholm/remindme/internal/core/port"
)

const maxTaskLabelLength = 30

func button(label string, action Action) port.Button {
	return port.Button{Label: label, Action: action.String()}
}

func mainMenu() port.Menu {
	return port.Menu{
		{button("📋 My tasks", NewAction(ActionMyTasks))},
		{button("➕ Add task", NewAction(ActionAddTask))},
	}
}

func backToMainMenu() port.Menu {
	return port.Menu{
		{button("🏠 Main menu", NewAction(ActionBack))},
	}
}

func tasksMenu(tasks []model.Task) port.Menu {
	menu := make(port.Menu, 0, len(tasks)+1)

	for _, t := range tasks {
		menu = append(menu, []port.Button{
			button(taskLabel(t), NewTaskAction(ActionShowTask, t.ID())),
		})
	}

	menu = append(menu, []port.Button{button("⬅️ Back", NewAction(ActionBack))})

	return menu
}

func taskMenu(taskID model.TaskID) port.Menu {
	return port.Menu{
		{button("✏️ Edit", NewTaskAction(ActionEditTask, taskID))},
		{button("🗑 Delete", NewTaskAction(ActionDeleteTask, taskID))},
		{button("✅ Done", NewTaskAction(ActionDoneTask, taskID))},
		{button("⬅️ Back", NewAction(ActionMyTasks))},
	}
}

func confirmDeleteMenu(taskID model.TaskID) port.Menu {
	return port.Menu{
		{button("✅ Yes", NewTaskAction(ActionConfirmDelete, taskID))},
		{button("❌ No", NewTaskAction(ActionShowTask, taskID))},
	}
}

func reminderMenu(taskID model.TaskID) port.Menu {
	return port.Menu{
		{button("✅ I did it!", NewTaskAction(ActionDoneTask, taskID))},
	}
}

// taskLabel returns the list label of a task, truncated to fit a button
func taskLabel(t model.Task) string {
	label := []rune(t.Description())
	if len(label) > maxTaskLabelLength {
		label = append(label[:maxTaskLabelLength-3], []rune("...")...)
	}

	if model.HasReminder(t) {
		return "⏰ " + string(label)
	}

	return string(label)
}
