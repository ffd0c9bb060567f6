package login

import (
	"crypto/rand"
	"encoding/base64"
)

// newSessionToken mints an opaque session id with 256 bits of entropy.
func newSessionToken() string {
	buf := make([]byte, 32)
	_, _ = rand.Read(buf)
	return base64.RawURLEncoding.EncodeToString(buf)
}
