package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"math/big"
	"strconv"
	"strings"
	"time"
)

// NewSession returns an opaque session identifier: 256 bits of hex.
func NewSession() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// NewReference derives a one-time reference bound to a profile id, used for
// signup verification links. The id prefix keeps codes distinct across
// profiles even on the same clock tick.
func NewReference(id int64) (string, error) {
	s, err := NewSession()
	if err != nil {
		return "", err
	}
	return strconv.FormatInt(id, 16) + "-" + s[:32], nil
}

// NewOTPCode returns a random 7-digit numeric one-time code.
func NewOTPCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(9000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%07d", n.Int64()+1000000), nil
}

// Obfuscate masks an OTP code for display/transport: first and last digit
// kept, everything in between starred. The raw code only travels by email.
func Obfuscate(code string) string {
	if len(code) <= 2 {
		return strings.Repeat("*", len(code))
	}
	return code[:1] + strings.Repeat("*", len(code)-2) + code[len(code)-1:]
}

// HourDiff returns fractional hours elapsed since t. A nil timestamp counts
// as "long ago" so first-attempt logic treats it as expired.
func HourDiff(t *time.Time) float64 {
	if t == nil {
		return 1 << 20
	}
	return time.Since(*t).Hours()
}
