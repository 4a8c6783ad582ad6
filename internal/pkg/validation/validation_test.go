package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidEmail(t *testing.T) {
	assert.True(t, IsValidEmail("a@b.com"))
	assert.True(t, IsValidEmail("joao.silva@quinta.example.pt"))
	assert.False(t, IsValidEmail("not-an-email"))
	assert.False(t, IsValidEmail("a b@c.com"))
	assert.False(t, IsValidEmail("a@b"))
	assert.False(t, IsValidEmail(""))
}

func TestIsValidPassword(t *testing.T) {
	assert.True(t, IsValidPassword("Galo-abcd-1234!"))
	assert.True(t, IsValidPassword("abc123!@"))
	assert.False(t, IsValidPassword("short1!"))
	assert.False(t, IsValidPassword("onlyletters!"))
	assert.False(t, IsValidPassword("12345678!"))
	assert.False(t, IsValidPassword("abcd1234"))
}

func TestNormalizeNIF(t *testing.T) {
	nif, ok := NormalizeNIF("123 456 789")
	assert.True(t, ok)
	assert.Equal(t, "123456789", nif)

	nif, ok = NormalizeNIF("PT-123.456.789")
	assert.True(t, ok)
	assert.Equal(t, "123456789", nif)

	// Optional: empty input is valid-empty.
	nif, ok = NormalizeNIF("   ")
	assert.True(t, ok)
	assert.Equal(t, "", nif)

	_, ok = NormalizeNIF("12345")
	assert.False(t, ok)
	_, ok = NormalizeNIF("1234567890")
	assert.False(t, ok)
}
