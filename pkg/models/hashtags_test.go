package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatHashtags(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want Hashtags
	}{
		{"mixed prefixes and spacing", "a, #b ,c", Hashtags{"#a", "#b", "#c"}},
		{"empty input", "", Hashtags{}},
		{"only separators", " , ,, ", Hashtags{}},
		{"keeps duplicates in order", "go,#go, go", Hashtags{"#go", "#go", "#go"}},
		{"single tag", "jazz", Hashtags{"#jazz"}},
		{"inner spaces kept", "live music", Hashtags{"#live music"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, FormatHashtags(tc.in))
		})
	}
}

func TestFormatHashtagsAlwaysPrefixed(t *testing.T) {
	for _, tag := range FormatHashtags("x,#y,  z  ,##w") {
		assert.Equal(t, byte('#'), tag[0], tag)
	}
}

func TestHashtagsColumnRoundTrip(t *testing.T) {
	value, err := Hashtags{"#music", "#live"}.Value()
	require.NoError(t, err)
	assert.Equal(t, "#music,#live", value)

	var fromString Hashtags
	require.NoError(t, fromString.Scan("#music,#live"))
	assert.Equal(t, Hashtags{"#music", "#live"}, fromString)

	var fromBytes Hashtags
	require.NoError(t, fromBytes.Scan([]byte("#jazz")))
	assert.Equal(t, Hashtags{"#jazz"}, fromBytes)

	var empty Hashtags
	require.NoError(t, empty.Scan(nil))
	assert.Empty(t, empty)

	var bad Hashtags
	assert.Error(t, bad.Scan(42))
}
