package cellwidth

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aretext/vtext/text/utf8"
)

func TestGraphemeClusterWidth(t *testing.T) {
	testCases := []struct {
		name          string
		gc            []rune
		expectedWidth int
	}{
		{
			name:          "empty",
			gc:            []rune{},
			expectedWidth: 0,
		},
		{
			name:          "ascii printable",
			gc:            []rune{'a'},
			expectedWidth: 1,
		},
		{
			name:          "tab",
			gc:            []rune{'\t'},
			expectedWidth: 4,
		},
		{
			name:          "full width east-asian character",
			gc:            []rune{'界'},
			expectedWidth: 2,
		},
		{
			name:          "combining accent mark",
			gc:            []rune{'a', '̀'},
			expectedWidth: 1,
		},
		{
			name:          "trademark symbol",
			gc:            []rune{'™'},
			expectedWidth: 1,
		},
		{
			name:          "thai",
			gc:            []rune{3588, 3657, 3635},
			expectedWidth: 2,
		},
		{
			name:          "emoticon (blowing a kiss)",
			gc:            []rune{'\U0001f618'},
			expectedWidth: 2,
		},
		{
			name:          "emoji (airplane)",
			gc:            []rune{'✈'},
			expectedWidth: 1,
		},
		{
			name:          "emoji zero-width joiner (female vampire)",
			gc:            []rune{'\U0001f9db', '‍', '♀'},
			expectedWidth: 2,
		},
		{
			name:          "region (usa)",
			gc:            []rune{'\U0001f1fa', '\U0001f1f8'},
			expectedWidth: 2,
		},
		{
			name:          "emoji presentation selector",
			gc:            []rune{'ℹ', '️'},
			expectedWidth: 2,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			sizer := New(4, utf8.WidthMethodUnicode)
			width := sizer.GraphemeClusterWidth(tc.gc)
			assert.Equal(t, tc.expectedWidth, width)
		})
	}
}

func TestGraphemeClusterWidthWcwidthIgnoresCombiningMarkWidth(t *testing.T) {
	sizer := New(4, utf8.WidthMethodWcwidth)

	// wcwidth semantics sum each rune's own width, and a combining mark's
	// width is zero: a base rune plus a combining mark is sized as the base
	// rune's width.
	width := sizer.GraphemeClusterWidth([]rune{'a', '̀'})
	assert.Equal(t, 1, width)
}

func TestTabWidthIsStaticRegardlessOfOffset(t *testing.T) {
	sizer := New(4, utf8.WidthMethodUnicode)
	// Unlike dynamic tab-stop alignment, every tab is exactly tabWidth wide
	// no matter where it appears in a line.
	assert.Equal(t, 4, sizer.GraphemeClusterWidth([]rune{'\t'}))
}
