package address

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplit(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{name: "empty", input: "", want: []string{""}},
		{name: "single field", input: "11", want: []string{"11"}},
		{name: "only delimiters", input: "..", want: []string{"", "", ""}},
		{name: "trailing delimiter", input: "11.", want: []string{"11", ""}},
		{name: "leading delimiter", input: ".11", want: []string{"", "11"}},
		{name: "two fields", input: "11.22", want: []string{"11", "22"}},
		{name: "letters", input: "a.b.c", want: []string{"a", "b", "c"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Split(tt.input, OctetDelimiter))
		})
	}
}

func TestSplitRoundTrip(t *testing.T) {
	inputs := []string{"", ".", "..", "1.2.3.4", "1..2", ".a.", "no delimiter", "a\tb\t\tc"}

	for _, delim := range []rune{OctetDelimiter, FieldDelimiter} {
		for _, s := range inputs {
			fields := Split(s, delim)
			assert.Len(t, fields, strings.Count(s, string(delim))+1, "split(%q, %q)", s, delim)
			assert.Equal(t, s, strings.Join(fields, string(delim)))
		}
	}
}

func TestParseLine(t *testing.T) {
	tests := []struct {
		name string
		line string
		want Address
	}{
		{name: "with metadata", line: "192.168.1.1\tsome-host\t42", want: Address{"192", "168", "1", "1"}},
		{name: "without metadata", line: "10.0.0.5", want: Address{"10", "0", "0", "5"}},
		{name: "short address", line: "10.0\tB", want: Address{"10", "0"}},
		{name: "long address", line: "1.2.3.4.5", want: Address{"1", "2", "3", "4", "5"}},
		{name: "empty line", line: "", want: Address{""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLine(tt.line))
		})
	}
}

func TestAddressString(t *testing.T) {
	assert.Equal(t, "46.70.29.76", Address{"46", "70", "29", "76"}.String())
	assert.Equal(t, "", Address{""}.String())
}

func TestReadPool(t *testing.T) {
	pool, err := ReadPool(strings.NewReader("192.168.1.1\tA\n10.0.0.5\tB\n10.0.0.250\tC\n"))
	require.NoError(t, err)
	assert.Equal(t, Pool{
		{"192", "168", "1", "1"},
		{"10", "0", "0", "5"},
		{"10", "0", "0", "250"},
	}, pool)
}

func TestReadPoolEmpty(t *testing.T) {
	pool, err := ReadPool(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, pool)
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("broken pipe")
}

func TestReadPoolError(t *testing.T) {
	_, err := ReadPool(failingReader{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken pipe")
}
