package tasks

import (
	"io"
	"time"

	"github.com/bornholm/remindme/internal/command/common"
	"github.com/bornholm/remindme/internal/core/model"
	"github.com/bornholm/remindme/internal/setup"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"
)

const flagOwner = "owner"

type taskEntry struct {
	ID               int64      `yaml:"id"`
	Description      string     `yaml:"description"`
	CreatedAt        time.Time  `yaml:"createdAt"`
	DueAt            *time.Time `yaml:"dueAt,omitempty"`
	DeliveryAttempts int        `yaml:"deliveryAttempts,omitempty"`
}

type taskList struct {
	Owner string      `yaml:"owner"`
	Tasks []taskEntry `yaml:"tasks"`
}

func List() *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "List the tasks of a user as YAML",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     flagOwner,
				Aliases:  []string{"o"},
				Usage:    "Identifier of the task owner (telegram user id)",
				Required: true,
			},
		},
		Action: func(cCtx *cli.Context) error {
			ctx := cCtx.Context

			conf, err := common.LoadConfig(cCtx)
			if err != nil {
				return errors.WithStack(err)
			}

			manager, err := setup.NewTaskManagerFromConfig(ctx, conf)
			if err != nil {
				return errors.Wrap(err, "could not create task manager")
			}

			owner := model.OwnerID(cCtx.String(flagOwner))

			tasks, err := manager.ListTasks(ctx, owner)
			if err != nil {
				return errors.WithStack(err)
			}

			if err := writeTasks(cCtx.App.Writer, owner, tasks); err != nil {
				return errors.WithStack(err)
			}

			return nil
		},
	}
}

func writeTasks(w io.Writer, owner model.OwnerID, tasks []model.Task) error {
	list := taskList{
		Owner: string(owner),
		Tasks: make([]taskEntry, 0, len(tasks)),
	}

	for _, t := range tasks {
		list.Tasks = append(list.Tasks, taskEntry{
			ID:               int64(t.ID()),
			Description:      t.Description(),
			CreatedAt:        t.CreatedAt(),
			DueAt:            t.DueAt(),
			DeliveryAttempts: t.DeliveryAttempts(),
		})
	}

	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)

	if err := encoder.Encode(list); err != nil {
		return errors.WithStack(err)
	}

	if err := encoder.Close(); err != nil {
		return errors.WithStack(err)
	}

	return nil
}
