package main

import (
	"github.com/go-home-io/viomise/systems/viomi"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Poll the vacuum once and print its state",
	Long: `Polls the vacuum the same way the server does.
Mop mode is corrected when it doesn't match the installed box.`,
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(_ *cobra.Command, _ []string) error {
	log := newLogger()
	client, err := newClient(log)
	if err != nil {
		return err
	}

	vacuum := viomi.NewVacuum(&viomi.ConstructVacuum{
		Host:   flagHost,
		Client: client,
		Logger: log,
	})

	ctx, cancel := commandContext()
	defer cancel()

	state := vacuum.Update(ctx)
	if !state.Available {
		return errors.New("vacuum didn't answer")
	}

	return printJSON(state)
}
