package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"go.klb.dev/pbsnap/internal/ipc"
	"go.klb.dev/pbsnap/internal/item"
	"go.klb.dev/pbsnap/internal/monitor"
	"go.klb.dev/pbsnap/internal/pasteboard"
	"go.klb.dev/pbsnap/internal/snapshot"
	"go.klb.dev/pbsnap/internal/wire"
)

func newWatchCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Emit an item per clipboard change as NDJSON",
		Long: `Polls the clipboard change counter and prints one JSON line per observed
mutation until interrupted.

If a pbsnap daemon is running, this subscribes to its monitor over the local
socket; otherwise a poll loop runs in-process with the given interval.`,
		Args:    cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, _ []string) error { return bindViper(cmd, v) },
		RunE:    func(_ *cobra.Command, _ []string) error { return runWatch(v) },
	}

	f := cmd.Flags()
	f.Int("interval", 500, "poll interval in milliseconds (in-process mode)")
	f.StringSlice("exclude-app", nil, "bundle ids to discard (in-process mode, repeatable)")
	f.Bool("local", false, "poll in-process even when a daemon is running")
	addLoggingFlags(cmd)
	addConfigFlag(cmd)

	return cmd
}

func runWatch(v *viper.Viper) error {
	setupLogging(v)

	if !v.GetBool("local") && ipc.IsRunning() {
		return watchDaemon()
	}
	return watchLocal(v)
}

// watchDaemon streams items from a running daemon's monitor.
func watchDaemon() error {
	conn, err := ipc.Dial()
	if err != nil {
		return fmt.Errorf("daemon dial: %w", err)
	}
	defer conn.Close()

	c := wire.New(conn, nil)
	if err := c.WriteRequest(&wire.Request{Op: wire.OpSubscribe}); err != nil {
		return fmt.Errorf("subscribe: %w", err)
	}

	enc := json.NewEncoder(os.Stdout)
	for {
		resp, err := c.ReadResponse()
		if err != nil {
			return fmt.Errorf("stream: %w", err)
		}
		if resp.Error != "" {
			return fmt.Errorf("daemon: %s", resp.Error)
		}
		if resp.Item != nil {
			if err := enc.Encode(resp.Item); err != nil {
				return err
			}
		}
	}
}

// watchLocal runs the poll loop in-process.
func watchLocal(v *viper.Viper) error {
	reader := snapshot.NewReader(pasteboard.New())
	mon := monitor.New(reader, item.MonitorConfig{
		PollIntervalMS:    v.GetInt("interval"),
		ExcludedBundleIDs: v.GetStringSlice("exclude-app"),
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := mon.Start(ctx); err != nil {
		return err
	}
	defer mon.Stop()

	enc := json.NewEncoder(os.Stdout)
	for {
		select {
		case <-ctx.Done():
			return nil
		case it := <-mon.Events():
			if err := enc.Encode(it); err != nil {
				return err
			}
		}
	}
}
