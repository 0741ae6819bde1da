package tasks

import (
	"github.com/urfave/cli/v2"
)

func Command() *cli.Command {
	return &cli.Command{
		Name:  "tasks",
		Usage: "Inspect stored tasks",
		Subcommands: []*cli.Command{
			List(),
		},
	}
}
