package phone

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	assert.Equal(t, "+16502530000", Normalize("(650) 253-0000", "US"))
	assert.Equal(t, "+16502530000", Normalize("+1 650-253-0000", "GB"))
	assert.Equal(t, "12345", Normalize(" 12345 ", "US"))
	assert.Equal(t, "", Normalize("   ", "US"))
}

func TestDigits(t *testing.T) {
	assert.Equal(t, "12025550143", Digits("+1 (202) 555-0143"))
}
