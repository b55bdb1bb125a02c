package credentials

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"math/big"

	"golang.org/x/crypto/argon2"
)

const (
	// KeyLength is the full length of a generated credential. The first
	// PublicPartLength characters are the lookup key, the rest is the secret.
	KeyLength        = 64
	PublicPartLength = 32
	SaltLength       = 16

	charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// argon2id parameters
const (
	argonTime    = 1
	argonMemory  = 64 * 1024
	argonThreads = 4
	argonKeyLen  = 32
)

var randomInt = func(max int64) (int64, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(max))
	if err != nil {
		return 0, err
	}
	return n.Int64(), nil
}

// Generate produces a fresh credential and returns the public lookup part and
// the plaintext secret part separately. The full token handed to a client is
// the concatenation of the two.
func Generate() (publicPart, secretPlain string, err error) {
	raw, err := randomString(KeyLength)
	if err != nil {
		return "", "", fmt.Errorf("failed to generate credential: %w", err)
	}
	return raw[:PublicPartLength], raw[PublicPartLength:], nil
}

// Hash derives an argon2id hash of the secret with a fresh random salt.
// The plaintext secret must never be persisted.
func Hash(secretPlain string) (hash, salt string, err error) {
	salt, err = randomString(SaltLength)
	if err != nil {
		return "", "", fmt.Errorf("failed to generate salt: %w", err)
	}
	return hashWithSalt(secretPlain, salt), salt, nil
}

// Verify recomputes the hash with the stored salt and compares in constant time.
func Verify(secretPlain, hash, salt string) bool {
	computed := hashWithSalt(secretPlain, salt)
	return subtle.ConstantTimeCompare([]byte(computed), []byte(hash)) == 1
}

func hashWithSalt(secret, salt string) string {
	sum := argon2.IDKey([]byte(secret), []byte(salt), argonTime, argonMemory, argonThreads, argonKeyLen)
	return base64.RawStdEncoding.EncodeToString(sum)
}

func randomString(n int) (string, error) {
	out := make([]byte, n)
	for i := range out {
		idx, err := randomInt(int64(len(charset)))
		if err != nil {
			return "", err
		}
		out[i] = charset[idx]
	}
	return string(out), nil
}
