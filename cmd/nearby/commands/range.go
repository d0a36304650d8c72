package commands

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"nearby/internal/crypto"
	"nearby/internal/domain"
)

var errUnsupported = errors.New("ranging is not supported on this device")

// rangeCmd runs the whole flow: prepare, publish, resolve the peer, start,
// then print distances until interrupted or the session is invalidated.
func rangeCmd() *cobra.Command {
	var peer string
	cmd := &cobra.Command{
		Use:   "range",
		Short: "Range with a peer through the directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runRange(ctx, cmd.InOrStdin(), cmd.OutOrStdout(), peer)
		},
	}
	cmd.Flags().StringVar(&peer, "peer", "", "peer token id (read from stdin when empty)")
	return cmd
}

func runRange(ctx context.Context, in io.Reader, out io.Writer, peer string) error {
	c := appCtx.Coordinator
	if err := c.Prepare(); err != nil {
		return err
	}
	defer c.Invalidate()
	if !c.Supported() {
		return errUnsupported
	}

	id, err := c.PublishLocalToken(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Local token id: %d (fingerprint %s)\n", id, crypto.Fingerprint(c.LocalToken()))

	if peer == "" {
		fmt.Fprint(out, "Peer token id: ")
		line, err := bufio.NewReader(in).ReadString('\n')
		if err != nil && !(errors.Is(err, io.EOF) && line != "") {
			return fmt.Errorf("reading peer id: %w", err)
		}
		peer = strings.TrimSpace(line)
	}
	peerID, err := parseID(peer)
	if err != nil {
		return err
	}
	if err := c.ResolvePeer(ctx, peerID); err != nil {
		return err
	}
	fmt.Fprintf(out, "Peer token resolved (fingerprint %s)\n", crypto.Fingerprint(c.PeerToken()))

	samples, life := c.Distances(), c.Lifecycle()
	if err := c.Start(); err != nil {
		return err
	}

	for {
		select {
		case s, ok := <-samples:
			if !ok {
				samples = nil
				continue
			}
			fmt.Fprintf(out, "%s  %.2f m\n", s.At.Format(time.TimeOnly), s.Meters)
		case ev, ok := <-life:
			if !ok {
				return nil
			}
			fmt.Fprintf(out, "%s  %s\n", ev.At.Format(time.TimeOnly), describe(ev))
			if ev.Kind == domain.EventInvalidated {
				return ev.Err
			}
		case <-ctx.Done():
			return nil
		}
	}
}

func describe(ev domain.LifecycleEvent) string {
	switch ev.Kind {
	case domain.EventRemoved:
		return fmt.Sprintf("peer removed (%s)", ev.Reason)
	case domain.EventInvalidated:
		if ev.Err != nil {
			return fmt.Sprintf("session invalidated: %v", ev.Err)
		}
		return "session invalidated"
	default:
		return "session " + ev.Kind.String()
	}
}
