package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"go.klb.dev/pbsnap/internal/ipc"
	"go.klb.dev/pbsnap/internal/item"
	"go.klb.dev/pbsnap/internal/pasteboard"
	"go.klb.dev/pbsnap/internal/snapshot"
	"go.klb.dev/pbsnap/internal/wire"
)

func newReadCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "read",
		Short: "Print one normalized clipboard snapshot as JSON",
		Long: `Reads the current pasteboard, classifies it, and prints the item as JSON.
Prints "null" when nothing classifiable is on the clipboard (this is not an
error; on unsupported platforms it is the permanent result).

If a pbsnap daemon is running, the snapshot is requested over its local
socket; otherwise the pasteboard is read in-process.`,
		Args:    cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, _ []string) error { return bindViper(cmd, v) },
		RunE:    func(_ *cobra.Command, _ []string) error { return runRead(v) },
	}

	cmd.Flags().Bool("compact", false, "single-line JSON output")
	addConfigFlag(cmd)

	return cmd
}

func runRead(v *viper.Viper) error {
	it, err := fetchSnapshot()
	if err != nil {
		return err
	}
	return printJSON(it, v.GetBool("compact"))
}

// fetchSnapshot prefers a running daemon and falls back to an in-process
// read. A nil item with a nil error means "nothing classifiable".
func fetchSnapshot() (*item.Item, error) {
	if ipc.IsRunning() {
		conn, err := ipc.Dial()
		if err == nil {
			defer conn.Close()
			c := wire.New(conn, nil)
			if err := c.WriteRequest(&wire.Request{Op: wire.OpRead}); err != nil {
				return nil, fmt.Errorf("daemon request: %w", err)
			}
			resp, err := c.ReadResponse()
			if err != nil {
				return nil, fmt.Errorf("daemon response: %w", err)
			}
			if resp.Error != "" {
				return nil, fmt.Errorf("daemon: %s", resp.Error)
			}
			return resp.Item, nil
		}
	}
	return snapshot.NewReader(pasteboard.New()).Read(), nil
}

func printJSON(v any, compact bool) error {
	enc := json.NewEncoder(os.Stdout)
	if !compact {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}
