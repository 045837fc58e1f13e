package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"go.klb.dev/pbsnap/internal/ipc"
	"go.klb.dev/pbsnap/internal/pasteboard"
	"go.klb.dev/pbsnap/internal/snapshot"
	"go.klb.dev/pbsnap/internal/wire"
)

func newCountCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "count",
		Short: "Print the clipboard change counter",
		Long: `Prints the OS clipboard change counter. The absolute value carries no
meaning; only inequality between two reads signals that the clipboard
changed. Unsupported platforms print 0 forever.`,
		Args:    cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, _ []string) error { return bindViper(cmd, v) },
		RunE:    func(_ *cobra.Command, _ []string) error { return runCount() },
	}

	addConfigFlag(cmd)
	return cmd
}

func runCount() error {
	if ipc.IsRunning() {
		conn, err := ipc.Dial()
		if err == nil {
			defer conn.Close()
			c := wire.New(conn, nil)
			if err := c.WriteRequest(&wire.Request{Op: wire.OpCount}); err != nil {
				return fmt.Errorf("daemon request: %w", err)
			}
			resp, err := c.ReadResponse()
			if err != nil {
				return fmt.Errorf("daemon response: %w", err)
			}
			if resp.Error != "" {
				return fmt.Errorf("daemon: %s", resp.Error)
			}
			var cc int64
			if resp.ChangeCount != nil {
				cc = *resp.ChangeCount
			}
			fmt.Println(cc)
			return nil
		}
	}
	fmt.Println(snapshot.NewReader(pasteboard.New()).ChangeCount())
	return nil
}
