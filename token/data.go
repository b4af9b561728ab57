package token

import (
	"encoding/json"
	"time"
)

// Data is the minimal form of a token: what it is and until when it is valid.
type Data struct {
	Value   string
	Expires time.Time
	Type    Type
}

// PlainObject carries every field of a token for in-process consumption.
type PlainObject struct {
	Value   string
	Expires time.Time
	WarnFor time.Duration
	Type    Type
}

// Serializable is the wire form of a token.
// Expires is a Unix timestamp and WarnFor a duration, both in milliseconds.
type Serializable struct {
	Value   string `json:"value" yaml:"value" mapstructure:"value"`
	Expires int64  `json:"expires" yaml:"expires" mapstructure:"expires"`
	WarnFor int64  `json:"warnFor" yaml:"warnFor" mapstructure:"warnFor"`
	Type    string `json:"type" yaml:"type" mapstructure:"type"`
}

// ToData returns the minimal form of t.
func (t *Token) ToData() Data {
	return Data{
		Value:   t.value,
		Expires: t.expires,
		Type:    t.typ,
	}
}

// ToPlainObject returns every field of t.
func (t *Token) ToPlainObject() PlainObject {
	return PlainObject{
		Value:   t.value,
		Expires: t.expires,
		WarnFor: t.warnFor,
		Type:    t.typ,
	}
}

// ToSerializable returns the wire form of t.
func (t *Token) ToSerializable() Serializable {
	return Serializable{
		Value:   t.value,
		Expires: t.expires.UnixMilli(),
		WarnFor: t.warnFor.Milliseconds(),
		Type:    string(t.typ),
	}
}

// MarshalJSON implements json.Marshaler.
func (t *Token) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.ToSerializable())
}

// Options returns the options a copy of t can be created from.
func (s Serializable) Options() (Options, error) {
	typ, err := ParseType(s.Type)
	if err != nil {
		return Options{}, err
	}

	expires, err := ParseExpires(s.Expires)
	if err != nil {
		return Options{}, err
	}

	return Options{
		Value:   s.Value,
		Expires: expires,
		WarnFor: time.Duration(s.WarnFor) * time.Millisecond,
		Type:    typ,
	}, nil
}

// FromSerializable creates a new Token from its wire form.
func FromSerializable(s Serializable, options ...Option) (*Token, error) {
	opts, err := s.Options()
	if err != nil {
		return nil, err
	}

	return New(opts, options...)
}
