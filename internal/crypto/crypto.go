// Package crypto provides symmetric encryption for the pbsnap wire
// protocol. A secretbox key is derived from the shared token with
// HKDF-SHA256, and each sealed message carries its random 24-byte nonce
// prepended to the ciphertext:
//
//	[ nonce ][ ciphertext ]
//
// With an empty token the wire layer passes a nil key and frames travel
// as plain JSON; this package is then never consulted.
package crypto

import (
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"
	"golang.org/x/crypto/nacl/secretbox"
)

// KeySize is the secretbox key length in bytes.
const KeySize = 32

const nonceSize = 24

var hkdfInfo = []byte("pbsnap-wire-v1")

// DeriveKey derives a secretbox key from token with HKDF-SHA256. Client
// and daemon derive identical keys from identical tokens.
func DeriveKey(token string) (*[KeySize]byte, error) {
	var key [KeySize]byte
	h := hkdf.New(sha256.New, []byte(token), nil, hkdfInfo)
	if _, err := io.ReadFull(h, key[:]); err != nil {
		return nil, fmt.Errorf("derive key: %w", err)
	}
	return &key, nil
}

// Seal encrypts plaintext under key and returns nonce+ciphertext.
func Seal(plaintext []byte, key *[KeySize]byte) ([]byte, error) {
	var nonce [nonceSize]byte
	if _, err := io.ReadFull(rand.Reader, nonce[:]); err != nil {
		return nil, fmt.Errorf("nonce: %w", err)
	}
	return secretbox.Seal(nonce[:], plaintext, &nonce, key), nil
}

// Open decrypts nonce+ciphertext produced by Seal.
func Open(sealed []byte, key *[KeySize]byte) ([]byte, error) {
	if len(sealed) < nonceSize {
		return nil, errors.New("sealed message too short")
	}
	var nonce [nonceSize]byte
	copy(nonce[:], sealed[:nonceSize])
	plain, ok := secretbox.Open(nil, sealed[nonceSize:], &nonce, key)
	if !ok {
		return nil, errors.New("decryption failed (token mismatch?)")
	}
	return plain, nil
}
