package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

type rootOptions struct {
	server string
	user   string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "schedctl",
		Short:         "Manage availability and meeting requests on a scheduler server",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&opts.server, "server", envOr("SCHEDCTL_SERVER", "http://localhost:8080"), "scheduler API base URL")
	cmd.PersistentFlags().StringVar(&opts.user, "user", envOr("SCHEDCTL_USER", ""), "acting user id (server default when empty)")

	client := func() *Client { return NewClient(opts.server, opts.user) }

	cmd.AddCommand(
		newAvailabilityCmd(client),
		newMeetingCmd(client),
		newCalendarCmd(client),
		newWatchCmd(opts),
	)
	return cmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
