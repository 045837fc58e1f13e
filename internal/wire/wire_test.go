package wire

import (
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.klb.dev/pbsnap/internal/crypto"
	"go.klb.dev/pbsnap/internal/item"
)

func pipePair(t *testing.T, key *[crypto.KeySize]byte) (*Conn, *Conn) {
	t.Helper()
	a, b := net.Pipe()
	t.Cleanup(func() {
		_ = a.Close()
		_ = b.Close()
	})
	return New(a, key), New(b, key)
}

func TestRequestRoundTrip(t *testing.T) {
	client, server := pipePair(t, nil)

	go func() {
		_ = client.WriteRequest(&Request{Op: OpRead})
	}()

	req, err := server.ReadRequest()
	require.NoError(t, err)
	assert.Equal(t, OpRead, req.Op)
}

func TestResponseCarriesItem(t *testing.T) {
	client, server := pipePair(t, nil)

	it := item.New()
	it.ContentType = item.Link
	it.PlainText = item.String("https://example.com")
	it.DetectedURLs = []string{"https://example.com"}

	go func() {
		_ = server.WriteResponse(&Response{Op: OpRead, Item: it, Backend: "fake"})
	}()

	resp, err := client.ReadResponse()
	require.NoError(t, err)
	require.NotNil(t, resp.Item)
	assert.Equal(t, item.Link, resp.Item.ContentType)
	assert.Equal(t, "https://example.com", *resp.Item.PlainText)
	assert.Equal(t, "fake", resp.Backend)
}

func TestResponseNullItem(t *testing.T) {
	client, server := pipePair(t, nil)

	go func() {
		_ = server.WriteResponse(&Response{Op: OpRead})
	}()

	resp, err := client.ReadResponse()
	require.NoError(t, err)
	assert.Nil(t, resp.Item)
}

func TestEncryptedRoundTrip(t *testing.T) {
	key, err := crypto.DeriveKey("shared-token")
	require.NoError(t, err)
	client, server := pipePair(t, key)

	cc := int64(42)
	go func() {
		_ = server.WriteResponse(&Response{Op: OpCount, ChangeCount: &cc})
	}()

	resp, err := client.ReadResponse()
	require.NoError(t, err)
	require.NotNil(t, resp.ChangeCount)
	assert.Equal(t, int64(42), *resp.ChangeCount)
}

func TestKeyMismatchFails(t *testing.T) {
	goodKey, err := crypto.DeriveKey("right")
	require.NoError(t, err)
	badKey, err := crypto.DeriveKey("wrong")
	require.NoError(t, err)

	a, b := net.Pipe()
	t.Cleanup(func() {
		_ = a.Close()
		_ = b.Close()
	})
	client, server := New(a, goodKey), New(b, badKey)

	go func() {
		_ = client.WriteRequest(&Request{Op: OpCount})
	}()

	_, err = server.ReadRequest()
	assert.Error(t, err)
}
