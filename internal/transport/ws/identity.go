package ws

import (
	"fmt"
	"hash/fnv"
	"net"
	"net/http"

	"github.com/google/uuid"

	"github.com/heartmarshall/wall-backend/internal/config"
)

// identityKey derives the presence record key for a connection.
//
// "session" issues a fresh random token per connection, so every open tab
// counts as one visitor. "fingerprint" hashes stable request traits, so
// reconnects and duplicate tabs from the same device collapse into one
// record. A deployment uses exactly one strategy; mixing them would count
// the same visitor twice.
func identityKey(strategy string, r *http.Request) string {
	if strategy == config.PresenceIdentityFingerprint {
		return fingerprint(r)
	}
	return uuid.NewString()
}

// fingerprint hashes the user agent and the remote host (port stripped, so
// the key survives reconnects).
func fingerprint(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}

	h := fnv.New64a()
	h.Write([]byte(r.UserAgent())) //nolint:errcheck
	h.Write([]byte{0})             //nolint:errcheck
	h.Write([]byte(host))          //nolint:errcheck
	return fmt.Sprintf("fp-%016x", h.Sum64())
}
