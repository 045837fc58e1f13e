// Package wire implements the pbsnap daemon protocol: newline-delimited
// JSON over a net.Conn, optionally encrypted with NaCl secretbox.
//
// Unencrypted frames:
//
//	<json>\n
//
// Encrypted frames:
//
//	<base64(nonce+ciphertext)>\n
//
// The encrypted form is a single base64 blob per line so the framing logic
// is identical either way — one line, one message.
package wire

import (
	"bufio"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net"
	"time"

	"go.klb.dev/pbsnap/internal/crypto"
	"go.klb.dev/pbsnap/internal/item"
)

// Op identifies a request kind.
type Op string

const (
	// OpRead asks for one normalized snapshot of the current clipboard.
	OpRead Op = "READ"
	// OpCount asks for the clipboard change counter.
	OpCount Op = "COUNT"
	// OpSubscribe asks the daemon to push a response for every clipboard
	// mutation its monitor observes, until the connection closes.
	OpSubscribe Op = "SUBSCRIBE"
)

// Request is the client→daemon envelope.
type Request struct {
	Op Op `json:"op"`
}

// Response is the daemon→client envelope. Item is null when the clipboard
// held nothing classifiable; ChangeCount is present only for COUNT.
type Response struct {
	Op          Op         `json:"op"`
	Item        *item.Item `json:"item,omitempty"`
	ChangeCount *int64     `json:"change_count,omitempty"`
	Backend     string     `json:"backend,omitempty"`
	Error       string     `json:"error,omitempty"`
}

const (
	// MaxFrameSize bounds a single frame (16 MiB); image payloads are the
	// only thing that gets near it.
	MaxFrameSize = 16 * 1024 * 1024

	writeDeadline = 5 * time.Second
)

// Conn wraps a net.Conn with line framing and optional encryption.
type Conn struct {
	conn net.Conn
	br   *bufio.Reader
	key  *[crypto.KeySize]byte // nil = plaintext
}

// New wraps conn. A non-nil key seals every outgoing frame and opens every
// incoming one.
func New(conn net.Conn, key *[crypto.KeySize]byte) *Conn {
	return &Conn{
		conn: conn,
		br:   bufio.NewReaderSize(conn, 64*1024),
		key:  key,
	}
}

// Close closes the underlying connection.
func (c *Conn) Close() error { return c.conn.Close() }

// RemoteAddr returns the remote network address.
func (c *Conn) RemoteAddr() net.Addr { return c.conn.RemoteAddr() }

// SetReadDeadline sets the read deadline d from now; zero clears it.
func (c *Conn) SetReadDeadline(d time.Duration) {
	if d == 0 {
		_ = c.conn.SetReadDeadline(time.Time{})
	} else {
		_ = c.conn.SetReadDeadline(time.Now().Add(d))
	}
}

// WriteRequest frames and sends req.
func (c *Conn) WriteRequest(req *Request) error { return c.writeFrame(req) }

// WriteResponse frames and sends resp.
func (c *Conn) WriteResponse(resp *Response) error { return c.writeFrame(resp) }

// ReadRequest reads one frame and decodes it as a Request.
func (c *Conn) ReadRequest() (*Request, error) {
	raw, err := c.readFrame()
	if err != nil {
		return nil, err
	}
	var req Request
	if err := json.Unmarshal(raw, &req); err != nil {
		return nil, fmt.Errorf("request decode: %w", err)
	}
	return &req, nil
}

// ReadResponse reads one frame and decodes it as a Response.
func (c *Conn) ReadResponse() (*Response, error) {
	raw, err := c.readFrame()
	if err != nil {
		return nil, err
	}
	var resp Response
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("response decode: %w", err)
	}
	return &resp, nil
}

func (c *Conn) writeFrame(v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode: %w", err)
	}

	var line []byte
	if c.key != nil {
		sealed, err := crypto.Seal(raw, c.key)
		if err != nil {
			return fmt.Errorf("encrypt: %w", err)
		}
		line = append([]byte(base64.StdEncoding.EncodeToString(sealed)), '\n')
	} else {
		line = append(raw, '\n')
	}

	_ = c.conn.SetWriteDeadline(time.Now().Add(writeDeadline))
	_, err = c.conn.Write(line)
	_ = c.conn.SetWriteDeadline(time.Time{})
	return err
}

func (c *Conn) readFrame() ([]byte, error) {
	line, err := c.br.ReadBytes('\n')
	if err != nil {
		return nil, err
	}
	if len(line) > MaxFrameSize {
		return nil, fmt.Errorf("frame too large (%d bytes)", len(line))
	}
	line = line[:len(line)-1]

	if c.key == nil {
		return line, nil
	}
	sealed, err := base64.StdEncoding.DecodeString(string(line))
	if err != nil {
		return nil, fmt.Errorf("base64 decode: %w", err)
	}
	raw, err := crypto.Open(sealed, c.key)
	if err != nil {
		return nil, fmt.Errorf("decrypt: %w", err)
	}
	return raw, nil
}
