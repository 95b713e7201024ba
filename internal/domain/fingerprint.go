package domain

import (
	"fmt"

	"github.com/zeebo/xxh3"
)

// Fingerprint derives the non-cryptographic content fingerprint recorded
// with every proof and notarized on the ledger.
func Fingerprint(cid string, timestamp int64, originalName string) string {
	data := fmt.Sprintf("%s-%d-%s", cid, timestamp, originalName)
	return fmt.Sprintf("proof-%x", xxh3.HashString(data))
}
