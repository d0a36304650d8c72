package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"nearby/internal/crypto"
	"nearby/internal/domain"
)

func fetchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fetch <id>",
		Short: "Fetch the token published under id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			tok, err := appCtx.Directory.Fetch(cmd.Context(), id)
			if err != nil {
				return fmt.Errorf("fetching token %d: %w", id, err)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Fingerprint: %s\n", crypto.Fingerprint(tok))
			fmt.Fprintf(out, "Token: %s\n", tok.Base64())
			return nil
		},
	}
}

func parseID(raw string) (domain.TokenID, error) {
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid token id %q", raw)
	}
	return domain.TokenID(n), nil
}
