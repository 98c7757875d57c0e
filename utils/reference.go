// utils/reference.go
package utils

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// GenRepaymentRef builds a unique external reference for a repayment
// posted without one, e.g. RP-2026-9F3A21C4.
func GenRepaymentRef(t time.Time) string {
	tail := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))[:8]
	return fmt.Sprintf("RP-%d-%s", t.Year(), tail)
}
