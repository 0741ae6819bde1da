package main

import (
	"github.com/bornholm/remindme/internal/command"
	"github.com/bornholm/remindme/internal/command/console"
	"github.com/bornholm/remindme/internal/command/run"
	"github.com/bornholm/remindme/internal/command/tasks"

	// Adapters
	_ "github.com/bornholm/remindme/internal/adapter/memory"
)

func main() {
	command.Main(
		"remindme", "A chat bot keeping track of your tasks and reminding you of them",
		run.Command(),
		console.Command(),
		tasks.Command(),
	)
}
