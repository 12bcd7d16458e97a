package vault

import (
	"crypto/sha256"
	"os"
	"os/user"
	"runtime"
	"strings"
)

// Fingerprint returns a deterministic digest of stable host attributes:
// hostname, OS username, platform, and CPU architecture. It is used only as
// key-derivation input and is not a secret. Attributes the OS cannot report
// contribute empty strings, so Fingerprint never fails.
func Fingerprint() []byte {
	hostname, _ := os.Hostname()

	username := ""
	if current, err := user.Current(); err == nil {
		username = current.Username
	}

	digest := sha256.Sum256([]byte(strings.Join([]string{
		hostname,
		username,
		runtime.GOOS,
		runtime.GOARCH,
	}, "|")))

	return digest[:]
}
