package main

import (
	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Print device identity",
	RunE:  runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(_ *cobra.Command, _ []string) error {
	client, err := newClient(newLogger())
	if err != nil {
		return err
	}

	ctx, cancel := commandContext()
	defer cancel()

	info, err := client.Info(ctx)
	if err != nil {
		return err
	}

	return printJSON(info)
}
