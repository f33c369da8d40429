package crypto

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/blake2b"
)

// VisitorKey вычисляет псевдоним посетителя для хранения в ledger.
// Keyed BLAKE2b-256 от visitorID с серверным секретом: сырые идентификаторы
// из cookie не попадают в базу, а один и тот же посетитель всегда дает один ключ.
func VisitorKey(secret []byte, visitorID string) (string, error) {
	if len(secret) == 0 {
		return "", fmt.Errorf("visitor secret cannot be empty")
	}
	if visitorID == "" {
		return "", fmt.Errorf("visitor id cannot be empty")
	}

	// blake2b принимает ключ не длиннее 64 байт
	key := secret
	if len(key) > blake2b.Size {
		sum := sha256.Sum256(secret)
		key = sum[:]
	}

	h, err := blake2b.New256(key)
	if err != nil {
		return "", fmt.Errorf("failed to init blake2b: %w", err)
	}
	h.Write([]byte(visitorID))

	return hex.EncodeToString(h.Sum(nil)), nil
}

// Keyer derives visitor keys with a fixed secret.
type Keyer struct {
	secret []byte
}

// NewKeyer creates a Keyer. The secret is copied.
func NewKeyer(secret []byte) (*Keyer, error) {
	if len(secret) == 0 {
		return nil, fmt.Errorf("visitor secret cannot be empty")
	}
	s := make([]byte, len(secret))
	copy(s, secret)
	return &Keyer{secret: s}, nil
}

// Key returns the ledger key for visitorID.
func (k *Keyer) Key(visitorID string) (string, error) {
	return VisitorKey(k.secret, visitorID)
}
