package model

type ConversationMode string

const (
	ConversationModeIdle            ConversationMode = "idle"
	ConversationModeAwaitingNewTask ConversationMode = "awaiting_new_task"
	ConversationModeEditing         ConversationMode = "editing"
)

// Conversation is the transient per-user mode deciding how the next free
// text message is interpreted. TaskID is only meaningful in editing mode.
type Conversation struct {
	Mode   ConversationMode
	TaskID TaskID
}

func (c Conversation) IsIdle() bool {
	return c.Mode == "" || c.Mode == ConversationModeIdle
}

func IdleConversation() Conversation {
	return Conversation{Mode: ConversationModeIdle}
}

func AwaitingNewTaskConversation() Conversation {
	return Conversation{Mode: ConversationModeAwaitingNewTask}
}

func EditingConversation(taskID TaskID) Conversation {
	return Conversation{Mode: ConversationModeEditing, TaskID: taskID}
}
