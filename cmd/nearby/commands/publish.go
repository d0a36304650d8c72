package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"nearby/internal/crypto"
)

// publishCmd prepares a session and publishes its token. The session ends
// when the command exits, so the id is only useful for checking the directory.
func publishCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "publish",
		Short: "Publish a local token to the directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			c := appCtx.Coordinator
			if err := c.Prepare(); err != nil {
				return err
			}
			defer c.Invalidate()
			if !c.Supported() {
				return errUnsupported
			}

			id, err := c.PublishLocalToken(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Published token id %d (fingerprint %s)\n", id, crypto.Fingerprint(c.LocalToken()))
			return nil
		},
	}
}
