package shortcode

import (
	"bytes"
	"errors"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var hexCode = regexp.MustCompile(`^[0-9a-f]{8}$`)

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("entropy exhausted")
}

func TestGenerator_Generate_Format(t *testing.T) {
	g := NewGenerator()
	require.NoError(t, g.Probe())

	for i := 0; i < 100; i++ {
		code := g.Generate()
		assert.Len(t, code, CodeLength)
		assert.Regexp(t, hexCode, code)
	}
}

func TestGenerator_Generate_UsesSource(t *testing.T) {
	g := NewGeneratorFromReader(bytes.NewReader([]byte{0xde, 0xad, 0xbe, 0xef, 0x00, 0x01, 0x02, 0x03}))

	assert.Equal(t, "deadbeef", g.Generate())
	assert.Equal(t, "00010203", g.Generate())
}

func TestGenerator_Generate_PanicsWithoutEntropy(t *testing.T) {
	g := NewGeneratorFromReader(failingReader{})

	assert.Error(t, g.Probe())
	assert.Panics(t, func() { g.Generate() })
}

func TestValidateCustom(t *testing.T) {
	tests := []struct {
		name string
		code string
		want error
	}{
		{"字母数字", "mycode", nil},
		{"数字", "2024", nil},
		{"空", "", ErrEmptyCode},
		{"过长", strings.Repeat("a", MaxCustomLength+1), ErrCodeTooLong},
		{"控制字符", "ab\x00cd", ErrInvalidCharacter},
		{"换行", "ab\ncd", ErrInvalidCharacter},
		{"空格", "ab cd", ErrInvalidCharacter},
		{"斜杠", "ab/cd", ErrInvalidCharacter},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCustom(tt.code)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
