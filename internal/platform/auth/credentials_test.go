package auth

import (
	"crypto/sha512"
	"encoding/hex"
	"testing"

	"github.com/alexedwards/argon2id"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/pbkdf2"
)

func pbkdf2Hex(password, salt string) string {
	return hex.EncodeToString(pbkdf2.Key([]byte(password), []byte(salt), pbkdf2Iterations, pbkdf2KeyLen, sha512.New))
}

func TestVerifyHashAndSalt(t *testing.T) {
	creds := Credentials{
		Hash: pbkdf2Hex("s3cret-pass", "pepper"),
		Salt: "pepper",
	}

	require.True(t, creds.Verify("s3cret-pass"))
	require.False(t, creds.Verify("wrong"))
	require.False(t, creds.Verify(""))
}

func TestVerifyArgon2idHash(t *testing.T) {
	hash, err := argon2id.CreateHash("s3cret-pass", argon2id.DefaultParams)
	require.NoError(t, err)

	creds := Credentials{Hash: hash}
	require.True(t, creds.Verify("s3cret-pass"))
	require.False(t, creds.Verify("wrong"))
}

func TestVerifyMalformedArgon2idHash(t *testing.T) {
	creds := Credentials{Hash: "$argon2id$garbage"}
	require.False(t, creds.Verify("anything"))
}

func TestVerifyPlaintext(t *testing.T) {
	creds := Credentials{Plain: "letmein"}

	require.True(t, creds.Verify("letmein"))
	require.False(t, creds.Verify("letmeout"))
}

func TestVerifyHashTakesPriorityOverPlaintext(t *testing.T) {
	creds := Credentials{
		Hash:  pbkdf2Hex("hashed-pass", "salt"),
		Salt:  "salt",
		Plain: "plain-pass",
	}

	require.True(t, creds.Verify("hashed-pass"))
	require.False(t, creds.Verify("plain-pass"))
}

func TestVerifyDevFallback(t *testing.T) {
	creds := Credentials{}

	require.True(t, creds.Verify(devFallbackPassword))
	require.False(t, creds.Verify("anything-else"))
}

func TestVerifyRepeatedFailuresStayIndependent(t *testing.T) {
	creds := Credentials{Plain: "letmein"}

	// No lockout: every attempt is judged on its own.
	for i := 0; i < 3; i++ {
		require.False(t, creds.Verify("wrong"))
	}
	require.True(t, creds.Verify("letmein"))
}
