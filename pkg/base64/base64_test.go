package base64

import (
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncodeDecode(t *testing.T) {
	tests := []struct {
		Name  string
		Input []byte
	}{
		{
			Name:  "plaintext",
			Input: []byte("hello world"),
		},
		{
			Name:  "exponent",
			Input: []byte{0x01, 0x00, 0x01},
		},
		{
			Name: "random bytes",
			Input: func() []byte {
				numBytes := 32
				buff := make([]byte, numBytes)

				n, err := rand.Read(buff)
				require.NoError(t, err)
				require.Equal(t, n, numBytes)

				t.Logf("random bytes for test: %x", buff)

				return buff
			}(),
		},
	}

	for _, test := range tests {
		t.Run(test.Name, func(t *testing.T) {
			encoded := Encode(test.Input)
			require.NotEmpty(t, encoded)
			require.NotContains(t, encoded, "=")

			decoded, err := Decode(encoded)
			require.NoError(t, err)
			require.Equal(t, test.Input, decoded)
		})
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		Name  string
		Input string
	}{
		{Name: "empty", Input: ""},
		{Name: "padded", Input: "aGVsbG8="},
		{Name: "standard alphabet", Input: "a+b/"},
		{Name: "impossible length", Input: "a"},
		{Name: "dot", Input: "ab.c"},
	}

	for _, test := range tests {
		t.Run(test.Name, func(t *testing.T) {
			_, err := Decode(test.Input)
			require.Error(t, err)
		})
	}

	_, err := Decode("")
	require.ErrorIs(t, err, ErrEmptyInput)
}

func TestDecodeURLAlphabet(t *testing.T) {
	decoded, err := Decode("-_8")
	require.NoError(t, err)
	require.Equal(t, []byte{0xfb, 0xff}, decoded)

	decoded, err = Decode("AQAB")
	require.NoError(t, err)
	require.Equal(t, []byte{0x01, 0x00, 0x01}, decoded)
}
