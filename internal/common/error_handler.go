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
	"errors"
	"strings"
)

// Message is the JSON error document returned by the explorer API.
type Message struct {
	MessageType   string `json:"messageType"`
	Text          string `json:"text"`
	Code          string `json:"code,omitempty"`
	CorrelationID string `json:"correlationId,omitempty"`
	Timestamp     string `json:"timestamp,omitempty"`
}

// NewMessage builds an error document from an error.
func NewMessage(messageType string, err error, code string, correlationID string, timestamp string) *Message {
	return &Message{
		MessageType:   messageType,
		Text:          err.Error(),
		Code:          code,
		CorrelationID: correlationID,
		Timestamp:     timestamp,
	}
}

// Error prefixes tagging the explorer's failure taxonomy. The prefix travels
// with the error text so failures keep their class across package
// boundaries without a custom type per class.
const (
	prefixValidation  = "400 Validation: "
	prefixFetch       = "502 Fetch: "
	prefixEmptyResult = "404 Empty: "
	prefixPartialLoad = "206 Partial: "
)

// NewErrValidation marks a request rejected before any network call, e.g. a
// missing required filter value.
func NewErrValidation(message string) error {
	return errors.New(prefixValidation + message)
}

// NewErrFetch marks a transport failure or non-2xx upstream response.
func NewErrFetch(message string) error {
	return errors.New(prefixFetch + message)
}

// NewErrEmptyResult marks a successful call that produced zero items.
func NewErrEmptyResult(message string) error {
	return errors.New(prefixEmptyResult + message)
}

// NewErrPartialLoad marks a failed continuation page; earlier pages stay
// usable.
func NewErrPartialLoad(message string) error {
	return errors.New(prefixPartialLoad + message)
}

// IsErrValidation reports whether err is a validation failure.
func IsErrValidation(err error) bool {
	return err != nil && strings.HasPrefix(err.Error(), prefixValidation)
}

// IsErrFetch reports whether err is an upstream fetch failure.
func IsErrFetch(err error) bool {
	return err != nil && strings.HasPrefix(err.Error(), prefixFetch)
}

// IsErrEmptyResult reports whether err is an empty-result failure.
func IsErrEmptyResult(err error) bool {
	return err != nil && strings.HasPrefix(err.Error(), prefixEmptyResult)
}

// IsErrPartialLoad reports whether err is a partial-load failure.
func IsErrPartialLoad(err error) bool {
	return err != nil && strings.HasPrefix(err.Error(), prefixPartialLoad)
}

// ErrorText strips the taxonomy prefix for user-facing display.
func ErrorText(err error) string {
	if err == nil {
		return ""
	}
	text := err.Error()
	for _, p := range []string{prefixValidation, prefixFetch, prefixEmptyResult, prefixPartialLoad} {
		if strings.HasPrefix(text, p) {
			return strings.TrimPrefix(text, p)
		}
	}
	return text
}
