package config

import (
	"fmt"
	"time"

	"github.com/gofrs/uuid"
	"golang.org/x/exp/maps"

	"github.com/distribution-auth/tokenlife/token"
)

// expiresIn is an entry key holding an expiry relative to the time the configuration is read.
const expiresIn = "expiresIn"

// Clock tells the time relative expiries are resolved against.
type Clock interface {
	Now() time.Time
}

// TokenOptions returns the options of every configured token.
//
// Entries without a value get a random one.
func (c Config) TokenOptions(clock Clock) ([]token.Options, error) {
	options := make([]token.Options, 0, len(c.Tokens))

	for i, entry := range c.Tokens {
		opts, err := c.tokenOptions(clock, entry)
		if err != nil {
			return nil, fmt.Errorf("token[%d]: %w", i, err)
		}

		options = append(options, opts)
	}

	return options, nil
}

func (c Config) tokenOptions(clock Clock, entry map[string]interface{}) (token.Options, error) {
	entry = maps.Clone(entry)
	if entry == nil {
		entry = make(map[string]interface{})
	}

	if _, ok := entry["value"]; !ok {
		id, err := uuid.NewV4()
		if err != nil {
			return token.Options{}, err
		}

		entry["value"] = id.String()
	}

	if _, ok := entry["warnFor"]; !ok && c.Defaults.WarnFor != 0 {
		entry["warnFor"] = c.Defaults.WarnFor
	}

	if _, ok := entry["type"]; !ok && c.Defaults.Type != "" {
		entry["type"] = c.Defaults.Type
	}

	if raw, ok := entry[expiresIn]; ok {
		if _, ok := entry["expires"]; ok {
			return token.Options{}, fmt.Errorf("expires and %s are mutually exclusive", expiresIn)
		}

		s, ok := raw.(string)
		if !ok {
			return token.Options{}, fmt.Errorf("%s: expected a duration string, got %T", expiresIn, raw)
		}

		d, err := time.ParseDuration(s)
		if err != nil {
			return token.Options{}, fmt.Errorf("%s: %w", expiresIn, err)
		}

		delete(entry, expiresIn)
		entry["expires"] = clock.Now().Add(d)
	}

	opts, err := token.Decode(entry)
	if err != nil {
		return token.Options{}, err
	}

	if err := opts.Validate(); err != nil {
		return token.Options{}, err
	}

	return opts, nil
}
