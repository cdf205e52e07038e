package match

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// RefKind tells which lookup column a reference token addresses.
type RefKind int

const (
	RefByID RefKind = iota
	RefByNumber
)

var ErrInvalidRef = errors.New("invalid match reference")

// Ref is a parsed match reference: either the UUID primary identifier or the
// sequential match number.
type Ref struct {
	Kind   RefKind
	ID     string
	Number int64
}

// ParseRef classifies a caller-supplied token. A token that contains a hyphen
// and is exactly 36 characters long is treated as a UUID and routed to the
// primary-identifier lookup without further shape validation; a malformed one
// simply misses in the store. Every other token must parse as a base-10
// match number.
func ParseRef(token string) (Ref, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return Ref{}, fmt.Errorf("%w: empty token", ErrInvalidRef)
	}

	if strings.Contains(token, "-") && len(token) == 36 {
		return Ref{Kind: RefByID, ID: token}, nil
	}

	number, err := strconv.ParseInt(token, 10, 64)
	if err != nil {
		return Ref{}, fmt.Errorf("%w: %q is neither a match id nor a match number", ErrInvalidRef, token)
	}

	return Ref{Kind: RefByNumber, Number: number}, nil
}
