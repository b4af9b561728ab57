package token

import (
	"errors"
	"fmt"
)

// Construction errors.
var (
	ErrInvalidExpiry  = errors.New("invalid token expiry")
	ErrInvalidWarnFor = errors.New("invalid token warning period")
	ErrInvalidType    = errors.New("invalid token type")
)

// Status errors.
// They are never returned by an operation, only carried by the failure results of
// Token.Expired, Token.Revoked and Token.Usable.
var (
	ErrExpired = errors.New("token expired")
	ErrRevoked = errors.New("token revoked")
)

// ExpiredError is the failure of a token that reached its expiry.
type ExpiredError struct {
	Type  Type
	Value string
}

func (e *ExpiredError) Error() string {
	return fmt.Sprintf("%s token %s expired", e.Type, e.Value)
}

// Is makes ExpiredError match ErrExpired.
func (e *ExpiredError) Is(target error) bool {
	return target == ErrExpired
}

// RevokedError is the failure of a revoked token.
type RevokedError struct {
	Type  Type
	Value string
}

func (e *RevokedError) Error() string {
	return fmt.Sprintf("%s token %s revoked", e.Type, e.Value)
}

// Is makes RevokedError match ErrRevoked.
func (e *RevokedError) Is(target error) bool {
	return target == ErrRevoked
}
