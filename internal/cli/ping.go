package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func NewPingCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Open the configured database and check the connection",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			conn, db, err := rootOpts.connect(cmd.Context(), true)
			if err != nil {
				return err
			}
			defer conn.Close()
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s %s ok\n", db.Connector, conn.Dialect().Name())
			return err
		},
	}
}
