/*******************************************************************************
* Copyright (C) 2026 the Eclipse BaSyx Authors and Fraunhofer IESE
*
* Permission is hereby granted, free of charge, to any person obtaining
* a copy of this software and associated documentation files (the
* "Software"), to deal in the Software without restriction, including
* without limitation the rights to use, copy, modify, merge, publish,
* distribute, sublicense, and/or sell copies of the Software, and to
* permit persons to whom the Software is furnished to do so, subject to
* the following conditions:
*
* The above copyright notice and this permission notice shall be
* included in all copies or substantial portions of the Software.
*
* THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND,
* EXPRESS OR IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF
* MERCHANTABILITY, FITNESS FOR A PARTICULAR PURPOSE AND
* NONINFRINGEMENT. IN NO EVENT SHALL THE AUTHORS OR COPYRIGHT HOLDERS BE
* LIABLE FOR ANY CLAIM, DAMAGES OR OTHER LIABILITY, WHETHER IN AN ACTION
* OF CONTRACT, TORT OR OTHERWISE, ARISING FROM, OUT OF OR IN CONNECTION
* WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE SOFTWARE.
*
* SPDX-License-Identifier: MIT
******************************************************************************/

package common

import (
	"encoding/base64"
	"strings"
)

// Submodel identifiers are URIs and travel inside URL paths, so every
// identifier is base64url-encoded (RFC 4648, unpadded) before it is put on
// the wire.

// Encode returns the unpadded base64url encoding of data.
func Encode(data []byte) string {
	return base64.RawURLEncoding.EncodeToString(data)
}

// Decode decodes an unpadded base64url string. Padded and standard-alphabet
// input is accepted too; upstream services are not consistent about either.
func Decode(encoded string) ([]byte, error) {
	normalized := strings.ReplaceAll(encoded, "+", "-")
	normalized = strings.ReplaceAll(normalized, "/", "_")
	normalized = strings.TrimRight(normalized, "=")
	return base64.RawURLEncoding.DecodeString(normalized)
}

// EncodeString encodes a string with Encode.
func EncodeString(data string) string {
	return Encode([]byte(data))
}

// DecodeString decodes a base64url string back to a string.
func DecodeString(encoded string) (string, error) {
	data, err := Decode(encoded)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
