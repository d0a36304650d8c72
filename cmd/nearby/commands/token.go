package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"nearby/internal/crypto"
)

func tokenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "token",
		Short: "Print a fresh local discovery token",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := appCtx.Capability.Open(nil)
			if err != nil {
				return err
			}
			defer sess.Invalidate()

			tok, err := sess.LocalToken()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Fingerprint: %s\n", crypto.Fingerprint(tok))
			fmt.Fprintf(out, "Token: %s\n", tok.Base64())
			return nil
		},
	}
}
