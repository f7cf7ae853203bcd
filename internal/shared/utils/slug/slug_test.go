package slug

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMake(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Himalayan Escape", "himalayan-escape"},
		{"  Goa: Sun & Sand!  ", "goa-sun-sand"},
		{"10-Day Ladakh Circuit", "10-day-ladakh-circuit"},
		{"---", ""},
		{"Café Trail", "café-trail"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Make(tc.in), "input %q", tc.in)
	}
}

func TestIsValid(t *testing.T) {
	assert.True(t, IsValid("himalayan-escape"))
	assert.False(t, IsValid("Himalayan Escape"))
	assert.False(t, IsValid(""))
}
