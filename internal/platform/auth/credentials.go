package auth

import (
	"crypto/sha512"
	"encoding/hex"
	"strings"

	"github.com/alexedwards/argon2id"
	"golang.org/x/crypto/pbkdf2"

	"github.com/forgeline/storefront/pkg/logger"
)

// Parameters for the hash+salt credential shape. The stored hash is the
// hex encoding of a PBKDF2-HMAC-SHA512 key derived with these values.
const (
	pbkdf2Iterations = 10000
	pbkdf2KeyLen     = 64
)

// devFallbackPassword is used only when no hash and no plaintext
// password are configured. Meant for local development.
const devFallbackPassword = "admin123"

// Credentials holds the admin credential configuration. The three
// shapes are mutually exclusive and checked in order: hash+salt,
// plaintext, development fallback.
type Credentials struct {
	Hash  string
	Salt  string
	Plain string
}

// Verify compares a submitted password against the configured
// credential. It never returns an error for a wrong password and never
// logs the submitted password.
func (c Credentials) Verify(submitted string) bool {
	switch {
	case c.Hash != "":
		if strings.HasPrefix(c.Hash, "$argon2id$") {
			ok, err := argon2id.ComparePasswordAndHash(submitted, c.Hash)
			if err != nil {
				logger.Warn("Malformed argon2id admin hash", "error", err)
				return false
			}
			return ok
		}
		derived := pbkdf2.Key([]byte(submitted), []byte(c.Salt), pbkdf2Iterations, pbkdf2KeyLen, sha512.New)
		return hex.EncodeToString(derived) == c.Hash
	case c.Plain != "":
		return submitted == c.Plain
	default:
		logger.Warn("No admin password configured, using development fallback")
		return submitted == devFallbackPassword
	}
}
