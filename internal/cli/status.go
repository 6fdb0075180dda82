package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check that the server is up",
		Long:  "Calls the health endpoint of the server and reports the number of live sessions.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStatus(cmd.OutOrStdout())
		},
	}
}

func runStatus(out io.Writer) error {
	serverURL, err := getServerURL()
	if err != nil {
		return err
	}
	c, err := newAPIClient()
	if err != nil {
		return err
	}

	health, herr := c.Health()
	if isJSON() {
		if herr != nil {
			return herr
		}
		return printJSON(out, health)
	}

	if _, err := fmt.Fprintf(out, "Server:   %s\n", serverURL); err != nil {
		return err
	}
	if herr != nil {
		_, err = fmt.Fprintf(out, "Status:   ✗ cannot reach server (%v)\n", herr)
		return err
	}
	_, err = fmt.Fprintf(out, "Status:   ✓ %s\nSessions: %d\n", health.Status, health.Sessions)
	return err
}
