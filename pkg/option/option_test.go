package option

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSome(t *testing.T) {
	o := Some("value")

	assert.True(t, o.HasValue())
	assert.Equal(t, "value", o.Value())
}

func TestNone(t *testing.T) {
	o := None[int]()

	assert.False(t, o.HasValue())
	assert.Equal(t, 0, o.Value())
}
