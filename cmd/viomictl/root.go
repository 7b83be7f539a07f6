package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/go-home-io/viomise/plugins/common"
	"github.com/go-home-io/viomise/systems/logger"
	"github.com/go-home-io/viomise/systems/miio"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

const (
	envHost  = "VIOMI_HOST"
	envToken = "VIOMI_TOKEN"
)

var (
	flagHost    string
	flagToken   string
	flagTimeout time.Duration
	flagVerbose bool
)

var rootCmd = &cobra.Command{
	Use:   "viomictl",
	Short: "Viomi SE vacuum command line client",
	Long: `viomictl talks to a Viomi SE vacuum over the local miIO protocol.
Host and token are read from flags, environment or a .env file.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagHost, "host", "", "Vacuum address (env: "+envHost+")")
	rootCmd.PersistentFlags().StringVar(&flagToken, "token", "", "32 hex characters device token (env: "+envToken+")")
	rootCmd.PersistentFlags().DurationVar(&flagTimeout, "timeout", 5*time.Second, "Single call timeout")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Print protocol debug messages")
}

func execute() {
	godotenv.Load() // nolint: errcheck
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newLogger() common.ILoggerProvider {
	return logger.NewConsoleLogger(flagVerbose)
}

// Opens a device client from flags or environment.
func newClient(log common.ILoggerProvider) (*miio.Client, error) {
	host := flagHost
	if host == "" {
		host = os.Getenv(envHost)
	}

	token := flagToken
	if token == "" {
		token = os.Getenv(envToken)
	}

	if host == "" || token == "" {
		return nil, errors.New("host and token are required")
	}

	return miio.NewClient(&miio.ConstructClient{
		Host:    host,
		Token:   token,
		Timeout: flagTimeout,
		Logger:  log,
	})
}

func commandContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 3*flagTimeout)
}

func printJSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}
