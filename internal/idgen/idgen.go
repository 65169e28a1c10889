// Package idgen produces the human-readable entity identifiers used by the
// stores, shaped PREFIX-TIMESTAMP-SUFFIX: a 3-letter entity tag, a 14-digit
// yyyyMMddHHmmss stamp and a random decimal suffix in [0, 1000).
//
// Two identifiers generated for the same entity kind within the same second
// can collide when they draw the same suffix; the generator does not check
// against existing data. Callers that need guaranteed uniqueness can use the
// UUID form, which Validate also accepts.
package idgen

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	PrefixClient   = "CLI"
	PrefixVehicle  = "VEI"
	PrefixEmployee = "FUN"
	PrefixRental   = "ALU"

	timestampLayout = "20060102150405"
)

// New generates an identifier with the given 3-letter prefix.
func New(prefix string) string {
	timestamp := time.Now().Format(timestampLayout)
	suffix := rand.Intn(1000)
	return fmt.Sprintf("%s-%s-%d", strings.ToUpper(prefix), timestamp, suffix)
}

// NewClientID generates a CLI-yyyyMMddHHmmss-XXX identifier.
func NewClientID() string { return New(PrefixClient) }

// NewVehicleID generates a VEI-yyyyMMddHHmmss-XXX identifier.
func NewVehicleID() string { return New(PrefixVehicle) }

// NewEmployeeID generates a FUN-yyyyMMddHHmmss-XXX identifier.
func NewEmployeeID() string { return New(PrefixEmployee) }

// NewRentalID generates an ALU-yyyyMMddHHmmss-XXX identifier.
func NewRentalID() string { return New(PrefixRental) }

// NewProtocol generates a millisecond-resolution protocol number for
// documents (yyyyMMddHHmmssSSS).
func NewProtocol() string {
	now := time.Now()
	return now.Format(timestampLayout) + fmt.Sprintf("%03d", now.Nanosecond()/1e6)
}

// Validate reports whether id is a well-formed identifier: either the
// sequential PREFIX-TIMESTAMP-SUFFIX shape or a canonical UUID.
func Validate(id string) bool {
	if strings.TrimSpace(id) == "" {
		return false
	}
	if _, err := uuid.Parse(id); err == nil {
		return true
	}
	parts := strings.Split(id, "-")
	if len(parts) != 3 {
		return false
	}
	return isUpperAlpha(parts[0], 3) && isDigits(parts[1], 14) && isShortDigits(parts[2])
}

// Prefix extracts the entity tag from a sequential identifier, or "" when
// the identifier has no segments.
func Prefix(id string) string {
	if strings.Contains(id, "-") {
		return strings.SplitN(id, "-", 2)[0]
	}
	return ""
}

// Timestamp extracts the yyyyMMddHHmmss segment from a sequential
// identifier, or "" when absent.
func Timestamp(id string) string {
	parts := strings.Split(id, "-")
	if len(parts) >= 2 {
		return parts[1]
	}
	return ""
}

func isUpperAlpha(s string, length int) bool {
	if len(s) != length {
		return false
	}
	for _, r := range s {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}

func isDigits(s string, length int) bool {
	if len(s) != length {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func isShortDigits(s string) bool {
	if len(s) < 1 || len(s) > 3 {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
