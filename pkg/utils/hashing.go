package utils

import (
	"bytes"
	"encoding/hex"
	"encoding/json"

	"golang.org/x/crypto/blake2b"
)

// Fingerprint hashes a JSON document after compacting it, so whitespace
// differences between two exports of the same record do not matter.
func Fingerprint(raw json.RawMessage) (string, error) {
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return "", err
	}
	sum := blake2b.Sum256(buf.Bytes())
	return hex.EncodeToString(sum[:]), nil
}
