package cli

import (
	"github.com/spf13/cobra"
)

func newPagesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pages",
		Short: "List the screens of a running server",
		Long:  "Fetches the screen list and navigation graph from a running server.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newAPIClient()
			if err != nil {
				return err
			}
			resp, err := c.Pages()
			if err != nil {
				return err
			}
			if isJSON() {
				return printJSON(cmd.OutOrStdout(), resp)
			}
			return printPageTable(cmd.OutOrStdout(), resp)
		},
	}
}
