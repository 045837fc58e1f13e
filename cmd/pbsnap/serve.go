package main

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"sync"

	"github.com/soheilhy/cmux"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"go.klb.dev/pbsnap/internal/crypto"
	"go.klb.dev/pbsnap/internal/ipc"
	"go.klb.dev/pbsnap/internal/item"
	"go.klb.dev/pbsnap/internal/monitor"
	"go.klb.dev/pbsnap/internal/pasteboard"
	"go.klb.dev/pbsnap/internal/snapshot"
	"go.klb.dev/pbsnap/internal/wire"
)

func newServeCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the snapshot daemon",
		Long: `Starts the pbsnap daemon. CLI commands (read, count, watch) talk to it
over a local Unix socket. With --addr set, the same wire protocol and a small
HTTP API share one TCP port:

  GET /v1/snapshot     current item as JSON, 204 when nothing classifiable
  GET /v1/changecount  {"change_count": N}

A non-empty --token encrypts TCP wire connections with a key derived from it.
The local socket is owner-restricted by the OS and stays unencrypted.`,
		Args:    cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, _ []string) error { return bindViper(cmd, v) },
		RunE:    func(_ *cobra.Command, _ []string) error { return runServe(v) },
	}

	f := cmd.Flags()
	f.String("addr", "", "TCP listen address (empty = local socket only)")
	f.String("token", "", "shared secret for TCP wire encryption (empty = plaintext)")
	f.Int("interval", 500, "monitor poll interval in milliseconds")
	f.StringSlice("exclude-app", nil, "bundle ids whose snapshots the monitor discards (repeatable)")
	addLoggingFlags(cmd)
	addConfigFlag(cmd)

	return cmd
}

func runServe(v *viper.Viper) error {
	setupLogging(v)

	addr := v.GetString("addr")
	token := v.GetString("token")

	var key *[crypto.KeySize]byte
	if token != "" {
		var err error
		key, err = crypto.DeriveKey(token)
		if err != nil {
			return fmt.Errorf("key derivation: %w", err)
		}
	}

	pb := pasteboard.New()
	reader := snapshot.NewReader(pb)
	cfg := item.MonitorConfig{
		PollIntervalMS:    v.GetInt("interval"),
		ExcludedBundleIDs: v.GetStringSlice("exclude-app"),
	}
	mon := monitor.New(reader, cfg)

	slog.Info("pbsnap daemon starting",
		"version", Version,
		"backend", pb.Name(),
		"addr", addr,
		"encrypted", key != nil,
	)

	if err := mon.Start(context.Background()); err != nil {
		return err
	}

	srv := &server{reader: reader, backend: pb.Name(), subs: make(map[*subscriber]struct{})}
	go srv.fanout(mon.Events())

	ipcLn, err := ipc.Listen()
	if err != nil {
		slog.Warn("IPC socket unavailable", "err", err)
	} else {
		slog.Info("IPC socket listening", "path", ipc.SocketPath())
		// Local socket: no encryption, the OS restricts it to the owner.
		go srv.serveListener(ipcLn, nil)
	}

	if addr == "" {
		if ipcLn == nil {
			return fmt.Errorf("nothing to serve: IPC unavailable and no --addr")
		}
		select {}
	}

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	slog.Info("listening", "addr", ln.Addr())

	m := cmux.New(ln)
	httpLn := m.Match(cmux.HTTP1Fast())
	wireLn := m.Match(cmux.Any())

	go serveHTTP(httpLn, reader)
	go srv.serveListener(wireLn, key)

	return m.Serve()
}

// subscriber is one SUBSCRIBE connection's delivery channel.
type subscriber struct {
	ch chan *item.Item
}

// server answers wire requests against a single Reader and fans monitor
// events out to subscribers.
type server struct {
	reader  *snapshot.Reader
	backend string

	mu   sync.Mutex
	subs map[*subscriber]struct{}
}

// fanout forwards every monitored item to all current subscribers.
// Slow subscribers drop items rather than blocking the rest.
func (s *server) fanout(events <-chan *item.Item) {
	for it := range events {
		s.mu.Lock()
		for sub := range s.subs {
			select {
			case sub.ch <- it:
			default:
			}
		}
		s.mu.Unlock()
	}
}

func (s *server) subscribe() *subscriber {
	sub := &subscriber{ch: make(chan *item.Item, 16)}
	s.mu.Lock()
	s.subs[sub] = struct{}{}
	s.mu.Unlock()
	return sub
}

func (s *server) unsubscribe(sub *subscriber) {
	s.mu.Lock()
	delete(s.subs, sub)
	s.mu.Unlock()
}

func (s *server) serveListener(ln net.Listener, key *[crypto.KeySize]byte) {
	for {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		go s.handleConn(wire.New(conn, key))
	}
}

func (s *server) handleConn(c *wire.Conn) {
	defer c.Close()
	log := slog.With("peer", c.RemoteAddr())

	for {
		req, err := c.ReadRequest()
		if err != nil {
			return
		}
		switch req.Op {
		case wire.OpRead:
			it := s.reader.Read()
			if err := c.WriteResponse(&wire.Response{Op: wire.OpRead, Item: it, Backend: s.backend}); err != nil {
				return
			}
		case wire.OpCount:
			cc := s.reader.ChangeCount()
			if err := c.WriteResponse(&wire.Response{Op: wire.OpCount, ChangeCount: &cc, Backend: s.backend}); err != nil {
				return
			}
		case wire.OpSubscribe:
			log.Debug("subscriber attached")
			s.stream(c)
			log.Debug("subscriber detached")
			return
		default:
			if err := c.WriteResponse(&wire.Response{Error: fmt.Sprintf("unknown op %q", req.Op)}); err != nil {
				return
			}
		}
	}
}

// stream pushes monitored items to the connection until a write fails.
func (s *server) stream(c *wire.Conn) {
	sub := s.subscribe()
	defer s.unsubscribe(sub)

	for it := range sub.ch {
		if err := c.WriteResponse(&wire.Response{Op: wire.OpSubscribe, Item: it, Backend: s.backend}); err != nil {
			return
		}
	}
}
