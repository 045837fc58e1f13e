// pbsnap: normalized snapshots of the system pasteboard.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version is set at build time via -ldflags "-X main.Version=x.y.z".
var Version = "dev"

func main() {
	root := &cobra.Command{
		Use:   "pbsnap",
		Short: "Snapshot and classify the system pasteboard",
		Long: `pbsnap reads the OS pasteboard and produces one normalized record per
snapshot: a content-type tag chosen by a fixed priority order (file > image >
link > text > rich text), the payloads that were present, URLs detected in
plain text, and the source application.

"pbsnap read" and "pbsnap count" are one-shot queries. "pbsnap watch" polls
the OS change counter and emits an item per clipboard mutation. "pbsnap serve"
runs a daemon exposing the same operations over a local socket and HTTP.

On platforms without a pasteboard facility every read yields null and the
change counter is a constant 0; that is a valid steady state, not an error.

Config file search order (first found wins):
  /etc/pbsnap/pbsnap.toml
  $HOME/.config/pbsnap/pbsnap.toml
  path supplied via --config

All flags can be set via PBSNAP_<FLAG> env vars or config-file keys.`,
		SilenceUsage: true,
	}

	root.AddCommand(
		newServeCmd(),
		newReadCmd(),
		newCountCmd(),
		newWatchCmd(),
		newVersionCmd(),
	)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Printf("pbsnap %s\n", Version)
		},
	}
}
