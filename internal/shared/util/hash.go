package util

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
)

// Fingerprint returns a deterministic digest over the exact résumé bytes and
// job description text. It keys the report cache, so identical submissions
// collapse onto one pipeline run. The résumé length is framed into the hash
// so shifting bytes between the two inputs cannot collide.
func Fingerprint(resume []byte, jobText string) string {
	h := sha256.New()
	var frame [8]byte
	binary.BigEndian.PutUint64(frame[:], uint64(len(resume)))
	h.Write(frame[:])
	h.Write(resume)
	h.Write([]byte(jobText))
	return hex.EncodeToString(h.Sum(nil))
}
