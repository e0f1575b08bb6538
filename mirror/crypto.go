package mirror

import (
	"crypto/cipher"
	"crypto/rand"
	"errors"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"
)

// KeySize is the required token cipher key length in bytes.
const KeySize = chacha20poly1305.KeySize

var errRecordTooShort = errors.New("mirror record shorter than nonce")

// tokenCipher seals tokens before they reach durable storage.
// XChaCha20-Poly1305 with a random nonce prefixed to the box.
type tokenCipher struct {
	aead cipher.AEAD
}

func newTokenCipher(key []byte) (*tokenCipher, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("token cipher key must be %d bytes, got %d", KeySize, len(key))
	}
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, fmt.Errorf("creating token cipher: %w", err)
	}
	return &tokenCipher{aead: aead}, nil
}

func (tc *tokenCipher) seal(plain string) ([]byte, error) {
	nonce := make([]byte, tc.aead.NonceSize(), tc.aead.NonceSize()+len(plain)+tc.aead.Overhead())
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("generating nonce: %w", err)
	}
	return tc.aead.Seal(nonce, nonce, []byte(plain), nil), nil
}

func (tc *tokenCipher) open(box []byte) (string, error) {
	ns := tc.aead.NonceSize()
	if len(box) < ns {
		return "", errRecordTooShort
	}
	plain, err := tc.aead.Open(nil, box[:ns], box[ns:], nil)
	if err != nil {
		return "", fmt.Errorf("opening sealed token: %w", err)
	}
	return string(plain), nil
}
