package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeIsUnpadded(t *testing.T) {
	tests := []struct {
		name  string
		input []byte
		want  string
	}{
		{"SimpleString", []byte("hello world"), "aGVsbG8gd29ybGQ"},
		{"Empty", []byte(""), ""},
		{"OneByte", []byte("a"), "YQ"},
		{"TwoBytes", []byte("ab"), "YWI"},
		{"ThreeBytes", []byte("abc"), "YWJj"},
		{"BinaryUsesURLAlphabet", []byte{0, 1, 2, 3, 255, 254}, "AAECA__-"},
		{"SubmodelURI", []byte("https://example.com/sm/TungstenInsertGasType/150LMT2/TechnicalData/1/0"), "aHR0cHM6Ly9leGFtcGxlLmNvbS9zbS9UdW5nc3Rlbkluc2VydEdhc1R5cGUvMTUwTE1UMi9UZWNobmljYWxEYXRhLzEvMA"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Encode(tt.input))
			assert.Equal(t, tt.want, EncodeString(string(tt.input)))
		})
	}
}

func TestDecodeToleratesUpstreamVariants(t *testing.T) {
	// Upstream services are not consistent about padding or the standard
	// alphabet; Decode accepts all of them.
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"Unpadded", "aGVsbG8gd29ybGQ", "hello world"},
		{"Padded", "aGVsbG8gd29ybGQ=", "hello world"},
		{"PaddedShort", "YQ==", "a"},
		{"PaddedTwoBytes", "YWI=", "ab"},
		{"URLAlphabet", "aGVsbG8td29ybGRfdGVzdA", "hello-world_test"},
		{"StandardAlphabet", "AAECA//+", string([]byte{0, 1, 2, 3, 255, 254})},
		{"Empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeString(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecodeRejectsInvalidInput(t *testing.T) {
	_, err := Decode("!@#$%^")
	require.Error(t, err)

	_, err = DecodeString("not base64!")
	require.Error(t, err)
}

func TestEncodeDecodeRoundtrip(t *testing.T) {
	tests := []string{
		"",
		"a",
		"ab",
		"abc",
		"hello world",
		"Hello, 世界!",
		"https://example.com/aas/TungstenInsertGasType/150LMT2/1/0",
		"Special chars: !@#$%^&*()_+-=[]{}|;':\",./<>?",
	}

	for _, tt := range tests {
		encoded := EncodeString(tt)
		decoded, err := DecodeString(encoded)
		require.NoError(t, err)
		assert.Equal(t, tt, decoded)
	}
}
