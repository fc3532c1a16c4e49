package utils

import (
	"math"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// GetUUID mints the random part of scan and sale ids.
func GetUUID() string {
	return uuid.New().String()
}

// --- Validation ---

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// IsValidEmail performs the standard shape check used before a receipt is
// addressed. It is intentionally loose; deliverability is the SMTP
// provider's problem.
func IsValidEmail(email string) bool {
	return emailRe.MatchString(strings.TrimSpace(email))
}

// --- Money ---

// Round2 rounds to two decimal places. Prices are plain float64 throughout,
// rounded wherever a figure leaves the process.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
