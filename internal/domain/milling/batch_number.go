package milling

import (
	"crypto/rand"
	"fmt"
	"time"
)

const base36Chars = "0123456789abcdefghijklmnopqrstuvwxyz"

// NewConversionBatchNumber builds a conversion batch number of the form
// BATCH_<14-digit-compact-timestamp>_<4-char-base36>, e.g.
// BATCH_20250114093045_k7x2.
func NewConversionBatchNumber(now time.Time) string {
	return fmt.Sprintf("BATCH_%s_%s", now.Format("20060102150405"), randomBase36(4))
}

// PurchaseBatchNumber builds a paddy purchase batch number of the form
// B<YYYYMMDD>-<NNN>, where seq is the per-day sequence starting at 1.
func PurchaseBatchNumber(day time.Time, seq int) string {
	return fmt.Sprintf("B%s-%03d", day.Format("20060102"), seq)
}

func randomBase36(n int) string {
	buf := make([]byte, n)
	_, _ = rand.Read(buf)
	for i, b := range buf {
		buf[i] = base36Chars[int(b)%len(base36Chars)]
	}
	return string(buf)
}
