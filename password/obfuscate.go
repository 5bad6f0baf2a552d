package password

import (
	"encoding/base64"
	"strings"
)

const versionPrefix = "v1$"

// keystream is a fixed repeating pad. Changing it invalidates nothing at
// runtime (stored values are never decoded by the app) but would break
// [reveal] for values written by older builds.
var keystream = []byte("partsclient.local.session.pad")

// Obfuscate applies the reversible local-storage transform to plaintext.
// It is deterministic, never fails, and its output is safe to store as
// opaque text. It is not encryption.
func Obfuscate(plaintext string) string {
	data := []byte(plaintext)
	for i := range data {
		data[i] ^= keystream[i%len(keystream)]
	}
	return versionPrefix + base64.RawURLEncoding.EncodeToString(data)
}

// reveal inverts Obfuscate. Nothing in the SDK uses the revealed value; it
// exists to state the reversibility contract in tests.
func reveal(obfuscated string) (string, bool) {
	raw, ok := strings.CutPrefix(obfuscated, versionPrefix)
	if !ok {
		return "", false
	}
	data, err := base64.RawURLEncoding.DecodeString(raw)
	if err != nil {
		return "", false
	}
	for i := range data {
		data[i] ^= keystream[i%len(keystream)]
	}
	return string(data), true
}
