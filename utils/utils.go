package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// hashCode derives an opaque uppercase hex code from the given parts plus
// the current time. These codes are lookup keys, not security tokens.
func hashCode(parts ...interface{}) string {
	input := fmt.Sprintf("%v|%d", parts, time.Now().UnixNano())
	sum := sha256.Sum256([]byte(input))
	return strings.ToUpper(hex.EncodeToString(sum[:]))
}

// GenerateEnrollmentCode builds a human-quotable enrollment code.
func GenerateEnrollmentCode(studentProfileID, courseID uint) string {
	return "ENR-" + hashCode(studentProfileID, courseID)[:12]
}

// GenerateTransactionID builds a payment transaction id.
func GenerateTransactionID(studentProfileID, courseID uint) string {
	return "TXN-" + hashCode(studentProfileID, courseID)[:16]
}

// GenerateVerificationCode returns the certificate verification code.
// Unlike the enrollment/transaction codes this one must not be derivable
// from its inputs, so it is a random UUID.
func GenerateVerificationCode() string {
	return uuid.NewString()
}

// RoundPercent converts done/total into a whole-number percentage.
func RoundPercent(done, total int64) int {
	if total <= 0 {
		return 0
	}
	return int((float64(done)/float64(total))*100 + 0.5)
}
