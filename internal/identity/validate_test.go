package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidEmail(t *testing.T) {
	accept := []string{
		"a@b.co",
		"first.last+tag@sub.example.org",
		"alice@client.io",
	}
	reject := []string{
		"a@b",
		"noatsign.com",
		"@b.com",
		"a@b.c",
		"a@@b.com",
		"a@b@c.com",
		"a b@c.com",
		"a@b.c0",
		"",
	}

	for _, s := range accept {
		assert.True(t, ValidEmail(s), "should accept %q", s)
	}
	for _, s := range reject {
		assert.False(t, ValidEmail(s), "should reject %q", s)
	}
}

func TestValidateText(t *testing.T) {
	assert.ErrorIs(t, ValidateText(""), ErrEmptyField)
	assert.ErrorIs(t, ValidateText("   \t"), ErrEmptyField)
	assert.ErrorIs(t, ValidateText("Work:Acme"), ErrFieldSeparator)
	assert.NoError(t, ValidateText("Alice Work"))
}

func TestValidateEmail(t *testing.T) {
	assert.ErrorIs(t, ValidateEmail(" "), ErrEmptyField)
	assert.ErrorIs(t, ValidateEmail("a@b"), ErrInvalidEmail)
	assert.ErrorIs(t, ValidateEmail("a:b@c.com"), ErrFieldSeparator)
	assert.NoError(t, ValidateEmail("alice@home.org"))
}

func TestRecord_Validate(t *testing.T) {
	rec := Record{FullName: "Alice C", Email: "alice@client.io", Label: "Client"}
	require.NoError(t, rec.Validate())

	rec.Label = ""
	require.ErrorIs(t, rec.Validate(), ErrEmptyField)
}

func TestParseLine(t *testing.T) {
	rec, ok := ParseLine("3:Alice C:alice@client.io:Client")
	require.True(t, ok)
	assert.Equal(t, Record{Ordinal: "3", FullName: "Alice C", Email: "alice@client.io", Label: "Client"}, rec)
	assert.Equal(t, "3:Alice C:alice@client.io:Client", rec.Line())
	assert.Equal(t, "3) Client (alice@client.io)", rec.String())

	_, ok = ParseLine("3:Alice C:alice@client.io")
	assert.False(t, ok)
}
