// Package hash computes content fingerprints for uploaded files.
package hash

import (
	"crypto/md5"
	"encoding/hex"
)

// Content returns the hex MD5 digest of data. The digest is used to detect
// re-uploads of identical bytes for the same owner, not for security, so
// MD5-strength collision resistance is sufficient.
func Content(data []byte) string {
	sum := md5.Sum(data)
	return hex.EncodeToString(sum[:])
}
