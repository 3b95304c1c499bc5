package oram

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"

	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/hkdf"
)

// masterKeySize is the size, in bytes, of the client's random master secret
// before subkey derivation.
const masterKeySize = 32

// deriveSubkey derives a chacha20poly1305.KeySize subkey from master using
// HKDF-SHA256, domain-separated by info. Splitting one master secret into an
// encryption subkey and a separate HMAC subkey follows the hardening
// guidance of not reusing one key for both jobs.
func deriveSubkey(master, info []byte) ([]byte, error) {
	reader := hkdf.New(sha256.New, master, nil, info)
	sub := make([]byte, chacha20poly1305.KeySize)
	if _, err := io.ReadFull(reader, sub); err != nil {
		return nil, fmt.Errorf("oram: failed to derive subkey: %w", err)
	}
	return sub, nil
}

// aeadEncrypt encrypts plaintext under key using XChaCha20-Poly1305 with a
// fresh random nonce, so re-encrypting identical plaintext yields an
// unlinkable ciphertext. The nonce is prepended to the returned blob.
func aeadEncrypt(key, plaintext []byte) ([]byte, error) {
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, fmt.Errorf("oram: failed to construct aead: %w", err)
	}
	nonce := make([]byte, aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("oram: failed to generate nonce: %w", err)
	}
	return aead.Seal(nonce, nonce, plaintext, nil), nil
}

// aeadDecrypt reverses aeadEncrypt.
func aeadDecrypt(key, blob []byte) ([]byte, error) {
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, fmt.Errorf("oram: failed to construct aead: %w", err)
	}
	if len(blob) < aead.NonceSize() {
		return nil, fmt.Errorf("oram: ciphertext shorter than nonce")
	}
	nonce, ciphertext := blob[:aead.NonceSize()], blob[aead.NonceSize():]
	plaintext, err := aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("oram: failed to decrypt: %w", err)
	}
	return plaintext, nil
}

// computeTag returns the hex-encoded HMAC-SHA256 over id and data, keyed by
// macKey.
func computeTag(macKey []byte, id int64, data string) string {
	mac := hmac.New(sha256.New, macKey)
	mac.Write([]byte(fmt.Sprintf("%d", id)))
	mac.Write([]byte(data))
	return hex.EncodeToString(mac.Sum(nil))
}
