// Package password provides password hashing and verification with argon2id,
// executed on a bounded worker pool so the deliberately expensive hash
// computation never runs on a request-serving goroutine.
package password

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"

	"github.com/usguri/almoxarifado-go/apperror"
)

// OWASP-recommended argon2id parameters.
const (
	argon2Time    = 1         // iterations
	argon2Memory  = 64 * 1024 // 64 MB
	argon2Threads = 4         // parallelism
	argon2SaltLen = 16        // salt length in bytes
	argon2KeyLen  = 32        // output length in bytes
)

// Hasher hashes and verifies passwords with argon2id. The zero value is ready
// to use. Hash strings are self-describing PHC format:
// $argon2id$v=19$m=65536,t=1,p=4$<salt>$<digest>.
type Hasher struct{}

// Hash derives an argon2id hash of the password with a fresh random salt.
// Two calls with the same password produce different hash strings.
func (h Hasher) Hash(password string) (string, error) {
	if password == "" {
		return "", apperror.NewValidationError("password: cannot be empty", nil)
	}

	salt := make([]byte, argon2SaltLen)
	if _, err := rand.Read(salt); err != nil {
		// A failing entropy source is an internal fault, never exposed verbatim.
		return "", apperror.NewInternalError("failed to hash password", err)
	}

	digest := argon2.IDKey([]byte(password), salt, argon2Time, argon2Memory, argon2Threads, argon2KeyLen)

	encoded := fmt.Sprintf(
		"$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		argon2Memory,
		argon2Time,
		argon2Threads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(digest),
	)
	return encoded, nil
}

// Verify recomputes the hash with the parameters embedded in encodedHash and
// compares in constant time. A mismatched password returns (false, nil); a
// malformed or corrupt stored hash is an internal fault, distinguished from a
// plain mismatch.
func (h Hasher) Verify(password, encodedHash string) (bool, error) {
	parts := strings.Split(encodedHash, "$")
	if len(parts) != 6 {
		return false, apperror.NewInternalError("invalid stored hash format", nil)
	}
	if parts[1] != "argon2id" {
		return false, apperror.NewInternalError(fmt.Sprintf("unsupported hash algorithm: %s", parts[1]), nil)
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return false, apperror.NewInternalError("invalid stored hash version", err)
	}

	var memory, time, threads uint32
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &time, &threads); err != nil {
		return false, apperror.NewInternalError("invalid stored hash parameters", err)
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return false, apperror.NewInternalError("invalid stored hash salt", err)
	}
	expected, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return false, apperror.NewInternalError("invalid stored hash digest", err)
	}

	// Threads must fit in uint8; a larger value would silently truncate.
	if threads == 0 || threads > 255 {
		return false, apperror.NewInternalError(fmt.Sprintf("invalid threads parameter: %d", threads), nil)
	}
	keyLen := len(expected)
	if keyLen <= 0 || keyLen > 1<<30 {
		return false, apperror.NewInternalError(fmt.Sprintf("invalid digest length: %d", keyLen), nil)
	}

	computed := argon2.IDKey([]byte(password), salt, time, memory, uint8(threads), uint32(keyLen))

	return subtle.ConstantTimeCompare(computed, expected) == 1, nil
}
