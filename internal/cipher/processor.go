// Package cipher encrypts sensitive extracted values with a session-scoped
// key. Keys derive from the session secret via PBKDF2 and are never written
// outside the in-memory session.
package cipher

import (
	"crypto/aes"
	stdcipher "crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/crypto/pbkdf2"

	"fiscoex/internal/domain"
)

// Prefix marks an encrypted rendering of a value.
const Prefix = "ENC:"

// SaltSize is the PBKDF2 salt length in bytes.
const SaltSize = 16

// Stats counts cipher activity for auditing.
type Stats struct {
	EncryptedFields   int `json:"encrypted_fields"`
	BlockedInjections int `json:"blocked_injections"`
}

// Processor encrypts and decrypts individual field values with AES-256-GCM.
type Processor struct {
	aead stdcipher.AEAD

	mu    sync.Mutex
	stats Stats
}

// NewSalt returns a fresh random PBKDF2 salt.
func NewSalt() ([]byte, error) {
	salt := make([]byte, SaltSize)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("%w: generating salt: %v", domain.ErrCipherFailure, err)
	}
	return salt, nil
}

// DeriveKey stretches the session secret into a cipher key with
// PBKDF2-SHA256.
func DeriveKey(secret string, salt []byte, iterations, keyLen int) []byte {
	return pbkdf2.Key([]byte(secret), salt, iterations, keyLen, sha256.New)
}

// NewProcessor creates a Processor from a derived key. The key must be a
// valid AES key length (16, 24 or 32 bytes).
func NewProcessor(key []byte) (*Processor, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCipherFailure, err)
	}
	aead, err := stdcipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCipherFailure, err)
	}
	return &Processor{aead: aead}, nil
}

// EncryptValue renders a sensitive value as Prefix + base64(nonce|ciphertext).
// Values matching an injection pattern are replaced with BlockedValue instead
// of being encrypted; empty and "0" values pass through untouched, as does a
// value that is already encrypted.
func (p *Processor) EncryptValue(v string) (string, error) {
	if strings.HasPrefix(v, Prefix) {
		return v, nil
	}
	if DetectInjection(v) {
		p.mu.Lock()
		p.stats.BlockedInjections++
		p.mu.Unlock()
		return BlockedValue, nil
	}

	clean := Sanitize(v)
	if clean == "" || clean == "0" {
		return clean, nil
	}

	nonce := make([]byte, p.aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("%w: generating nonce: %v", domain.ErrCipherFailure, err)
	}
	sealed := p.aead.Seal(nonce, nonce, []byte(clean), nil)

	p.mu.Lock()
	p.stats.EncryptedFields++
	p.mu.Unlock()

	return Prefix + base64.StdEncoding.EncodeToString(sealed), nil
}

// DecryptValue inverts EncryptValue. Values without the ENC: prefix pass
// through unchanged; an undecodable or tampered payload fails with
// domain.ErrCipherFailure.
func (p *Processor) DecryptValue(v string) (string, error) {
	if !strings.HasPrefix(v, Prefix) {
		return v, nil
	}
	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(v, Prefix))
	if err != nil {
		return "", fmt.Errorf("%w: decoding ciphertext: %v", domain.ErrCipherFailure, err)
	}
	if len(raw) < p.aead.NonceSize() {
		return "", fmt.Errorf("%w: ciphertext too short", domain.ErrCipherFailure)
	}
	nonce, sealed := raw[:p.aead.NonceSize()], raw[p.aead.NonceSize():]
	plain, err := p.aead.Open(nil, nonce, sealed, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrCipherFailure, err)
	}
	return string(plain), nil
}

// HashIndex returns a short SHA-256 digest of a plaintext value, emitted
// alongside encrypted fields so records stay searchable without decryption.
func HashIndex(v string) string {
	sum := sha256.Sum256([]byte(v))
	return hex.EncodeToString(sum[:])[:16]
}

// Stats returns a copy of the processor's counters.
func (p *Processor) Stats() Stats {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.stats
}
