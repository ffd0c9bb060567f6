package argon

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

// Fixed argon2id parameters for operator access codes. One code per
// deployment, so there is no need for tunable per-user params.
const (
	memory      = 64 * 1024
	iterations  = 2
	parallelism = 1
	saltLength  = 16
	keyLength   = 32
)

// HashAccessCode hashes the operator access code into the standard
// $argon2id$ encoded form.
func HashAccessCode(code string) (string, error) {
	if strings.TrimSpace(code) == "" {
		return "", errors.New("access code is required")
	}

	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}

	hash := argon2.IDKey([]byte(code), salt, iterations, memory, parallelism, keyLength)
	return fmt.Sprintf("$argon2id$v=19$m=%d,t=%d,p=%d$%s$%s",
		memory, iterations, parallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(hash)), nil
}

// VerifyAccessCode compares a candidate code against an encoded hash,
// honoring the parameters embedded in the hash.
func VerifyAccessCode(code, encodedHash string) (bool, error) {
	parts := strings.Split(encodedHash, "$")
	if len(parts) != 6 {
		return false, errors.New("invalid hash format")
	}
	if parts[1] != "argon2id" {
		return false, errors.New("invalid hash variant")
	}

	var m, t uint32
	var p uint8
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &m, &t, &p); err != nil {
		return false, errors.New("invalid hash parameters")
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return false, errors.New("invalid salt")
	}
	hash, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return false, errors.New("invalid hash")
	}

	other := argon2.IDKey([]byte(code), salt, t, m, p, uint32(len(hash)))
	return subtle.ConstantTimeCompare(hash, other) == 1, nil
}

// IsEncodedHash reports whether the configured value is already an
// encoded argon2id hash rather than a plaintext code.
func IsEncodedHash(v string) bool {
	return strings.HasPrefix(v, "$argon2id$")
}
