package token

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
)

// maxEpochMillis bounds the timestamps ParseExpires accepts to 100 million days around the epoch.
const maxEpochMillis = 8.64e15

var expiresLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02",
}

// ParseExpires normalizes an expiry into an instant.
//
// Accepted forms are time.Time, RFC 3339 strings (date-only and zone-less strings are read as UTC)
// and numbers holding milliseconds since the Unix epoch.
func ParseExpires(v interface{}) (time.Time, error) {
	switch v := v.(type) {
	case time.Time:
		if v.IsZero() {
			return time.Time{}, fmt.Errorf("%w: zero time", ErrInvalidExpiry)
		}

		return v, nil

	case *time.Time:
		if v == nil {
			return time.Time{}, fmt.Errorf("%w: nil time", ErrInvalidExpiry)
		}

		return ParseExpires(*v)

	case string:
		return parseExpiresString(v)

	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidExpiry, v)
		}

		return parseExpiresMillis(f)
	}

	rv := reflect.ValueOf(v)

	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return parseExpiresMillis(float64(rv.Int()))

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return parseExpiresMillis(float64(rv.Uint()))

	case reflect.Float32, reflect.Float64:
		return parseExpiresMillis(rv.Float())
	}

	return time.Time{}, fmt.Errorf("%w: unsupported type %T", ErrInvalidExpiry, v)
}

func parseExpiresString(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("%w: empty string", ErrInvalidExpiry)
	}

	for _, layout := range expiresLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("%w: cannot parse %q", ErrInvalidExpiry, s)
}

func parseExpiresMillis(ms float64) (time.Time, error) {
	if math.IsNaN(ms) || math.IsInf(ms, 0) || math.Abs(ms) > maxEpochMillis {
		return time.Time{}, fmt.Errorf("%w: %v is out of range", ErrInvalidExpiry, ms)
	}

	sec := math.Floor(ms / 1000)
	nsec := math.Round((ms - sec*1000) * float64(time.Millisecond))

	return time.Unix(int64(sec), int64(nsec)), nil
}

// parseWarnFor reads numbers as milliseconds and strings as Go durations.
func parseWarnFor(v interface{}) (time.Duration, error) {
	switch v := v.(type) {
	case time.Duration:
		return v, nil

	case string:
		d, err := time.ParseDuration(strings.TrimSpace(v))
		if err != nil {
			return 0, fmt.Errorf("%w: %v", ErrInvalidWarnFor, err)
		}

		return d, nil

	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrInvalidWarnFor, v)
		}

		return parseWarnForMillis(f)
	}

	rv := reflect.ValueOf(v)

	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return parseWarnForMillis(float64(rv.Int()))

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return parseWarnForMillis(float64(rv.Uint()))

	case reflect.Float32, reflect.Float64:
		return parseWarnForMillis(rv.Float())
	}

	return 0, fmt.Errorf("%w: unsupported type %T", ErrInvalidWarnFor, v)
}

func parseWarnForMillis(ms float64) (time.Duration, error) {
	if math.IsNaN(ms) || math.IsInf(ms, 0) || math.Abs(ms) > float64(math.MaxInt64/int64(time.Millisecond)) {
		return 0, fmt.Errorf("%w: %v is out of range", ErrInvalidWarnFor, ms)
	}

	return time.Duration(math.Round(ms * float64(time.Millisecond))), nil
}

var (
	timeType     = reflect.TypeOf(time.Time{})
	durationType = reflect.TypeOf(time.Duration(0))
	typeType     = reflect.TypeOf(Type(""))
)

func decodeHook(_ reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
	switch to {
	case timeType:
		return ParseExpires(data)
	case durationType:
		return parseWarnFor(data)
	case typeType:
		s, ok := data.(string)
		if !ok {
			if t, ok := data.(Type); ok {
				s = string(t)
			} else {
				return nil, fmt.Errorf("%w: unsupported type %T", ErrInvalidType, data)
			}
		}

		return ParseType(s)
	}

	return data, nil
}

// Decode reads token options from raw data, such as a decoded JSON or YAML document.
//
// Recognized keys are value, expires (see ParseExpires), warnFor (milliseconds or a Go duration string)
// and type.
func Decode(raw map[string]interface{}) (Options, error) {
	var opts Options

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:  decodeHook,
		ErrorUnused: true,
		Result:      &opts,
	})
	if err != nil {
		return Options{}, err
	}

	if err := decoder.Decode(raw); err != nil {
		return Options{}, fmt.Errorf("decoding token options: %w", err)
	}

	return opts, nil
}

// FromMap creates a Token from raw data.
func FromMap(raw map[string]interface{}, options ...Option) (*Token, error) {
	opts, err := Decode(raw)
	if err != nil {
		return nil, err
	}

	return New(opts, options...)
}
