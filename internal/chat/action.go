package chat

import (
	"strings"

	"github.com/bornholm/remindme/internal/core/model"
	"github.com/pkg/errors"
)

var ErrUnknownAction = errors.New("unknown action")

type ActionKind string

const (
	ActionBack          ActionKind = "back"
	ActionMyTasks       ActionKind = "my_tasks"
	ActionAddTask       ActionKind = "add_task"
	ActionShowTask      ActionKind = "task_"
	ActionEditTask      ActionKind = "edit_"
	ActionDeleteTask    ActionKind = "delete_"
	ActionConfirmDelete ActionKind = "confirm_delete_"
	ActionDoneTask      ActionKind = "done_"
)

// Action is a decoded menu selection
type Action struct {
	Kind   ActionKind
	TaskID model.TaskID
}

func (a Action) String() string {
	if a.hasTask() {
		return string(a.Kind) + a.TaskID.String()
	}

	return string(a.Kind)
}

func (a Action) hasTask() bool {
	return strings.HasSuffix(string(a.Kind), "_")
}

func NewAction(kind ActionKind) Action {
	return Action{Kind: kind}
}

func NewTaskAction(kind ActionKind, taskID model.TaskID) Action {
	return Action{Kind: kind, TaskID: taskID}
}

var taskActions = []ActionKind{
	ActionShowTask,
	ActionEditTask,
	ActionConfirmDelete,
	ActionDeleteTask,
	ActionDoneTask,
}

func ParseAction(data string) (Action, error) {
	switch kind := ActionKind(data); kind {
	case ActionBack, ActionMyTasks, ActionAddTask:
		return NewAction(kind), nil
	}

	for _, kind := range taskActions {
		raw, found := strings.CutPrefix(data, string(kind))
		if !found {
			continue
		}

		taskID, err := model.ParseTaskID(raw)
		if err != nil {
			return Action{}, errors.Wrapf(ErrUnknownAction, "invalid task id in '%s'", data)
		}

		return NewTaskAction(kind, taskID), nil
	}

	return Action{}, errors.Wrapf(ErrUnknownAction, "'%s'", data)
}
