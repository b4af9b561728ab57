package token

import "fmt"

// Type classifies a token.
type Type string

// Supported token types.
const (
	Access  Type = "access"
	Refresh Type = "refresh"
)

// ParseType parses a token type.
func ParseType(s string) (Type, error) {
	switch t := Type(s); t {
	case Access, Refresh:
		return t, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidType, s)
	}
}

func (t Type) valid() bool {
	return t == Access || t == Refresh
}
