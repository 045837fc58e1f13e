// Package ipc manages the local Unix-socket channel that pbsnap CLI
// commands use to talk to a running daemon instead of reading the
// pasteboard themselves. Unix sockets only; on platforms without them the
// daemon logs a warning and serves TCP/HTTP alone.
package ipc

import (
	"net"
	"os"
	"path/filepath"
)

// SocketPath returns the path for the IPC socket:
// $PBSNAP_SOCKET if set, else $XDG_RUNTIME_DIR/pbsnap.sock, else
// $TMPDIR/pbsnap.sock.
func SocketPath() string {
	if s := os.Getenv("PBSNAP_SOCKET"); s != "" {
		return s
	}
	if dir := os.Getenv("XDG_RUNTIME_DIR"); dir != "" {
		return filepath.Join(dir, "pbsnap.sock")
	}
	return filepath.Join(os.TempDir(), "pbsnap.sock")
}

// IsRunning reports whether a daemon appears to be listening on the IPC
// socket. Cheap dial-and-close; no data is exchanged.
func IsRunning() bool {
	c, err := net.Dial("unix", SocketPath())
	if err != nil {
		return false
	}
	_ = c.Close()
	return true
}

// Dial connects to the daemon's IPC socket.
func Dial() (net.Conn, error) {
	return net.Dial("unix", SocketPath())
}

// Listen binds the IPC socket, removing a stale socket file from a
// previous crashed run first.
func Listen() (net.Listener, error) {
	path := SocketPath()
	_ = os.Remove(path)
	return net.Listen("unix", path)
}
