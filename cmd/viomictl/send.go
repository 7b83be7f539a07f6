package main

import (
	"encoding/json"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var sendCmd = &cobra.Command{
	Use:   "send <method> [json params]",
	Short: "Send raw miIO command",
	Example: `  viomictl send get_prop '["run_state", "battary_life"]'
  viomictl send set_resetpos '[1]'`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runSend,
}

func init() {
	rootCmd.AddCommand(sendCmd)
}

func runSend(_ *cobra.Command, args []string) error {
	params := make([]interface{}, 0)
	if len(args) > 1 {
		if err := json.Unmarshal([]byte(args[1]), &params); err != nil {
			return errors.Wrap(err, "params must be a JSON list")
		}
	}

	client, err := newClient(newLogger())
	if err != nil {
		return err
	}

	ctx, cancel := commandContext()
	defer cancel()

	res, err := client.RawCommand(ctx, args[0], params)
	if err != nil {
		return err
	}

	return printJSON(res)
}
