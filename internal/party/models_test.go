package party

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidTransition(t *testing.T) {
	cases := []struct {
		from, to string
		ok       bool
	}{
		{StatusPending, StatusLive, true},
		{StatusPending, StatusEnded, true},
		{StatusLive, StatusEnded, true},
		{StatusLive, StatusPending, false},
		{StatusEnded, StatusLive, false},
		{StatusEnded, StatusPending, false},
		{StatusEnded, StatusEnded, false},
		{StatusPending, StatusPending, false},
		{StatusLive, StatusLive, false},
	}

	for _, c := range cases {
		assert.Equalf(t, c.ok, validTransition(c.from, c.to), "%s -> %s", c.from, c.to)
	}
}

func TestValidStatus(t *testing.T) {
	assert.True(t, validStatus(StatusPending))
	assert.True(t, validStatus(StatusLive))
	assert.True(t, validStatus(StatusEnded))
	assert.False(t, validStatus("Paused"))
	assert.False(t, validStatus(""))
	assert.False(t, validStatus("live"))
}
