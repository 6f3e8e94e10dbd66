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

package tree

import (
	"strings"

	"github.com/eclipse-basyx/basyx-aas-explorer/internal/common/model"
)

// semanticUnitPatterns maps keyword fragments of a semantic id to display
// units. Ordered: the first matching fragment wins.
var semanticUnitPatterns = []struct {
	fragment string
	unit     string
}{
	{"voltage", "V"},
	{"current", "A"},
	{"frequency", "Hz"},
	{"capacity", "KVA"},
	{"power", "KW"},
	{"weight", "kg"},
	{"dimension", "mm"},
	{"width", "mm"},
	{"height", "mm"},
	{"depth", "mm"},
	{"time", "sec"},
	{"temperature", "°C"},
	{"percentage", "%"},
	{"dutycycle", "%"},
}

func unitFromSemanticID(ref *model.Reference) string {
	value := strings.ToLower(ref.FirstKeyValue())
	if value == "" {
		return ""
	}
	for _, p := range semanticUnitPatterns {
		if strings.Contains(value, p.fragment) {
			return p.unit
		}
	}
	return ""
}

func unitFromIdShort(idShort string) string {
	if idShort == "" {
		return ""
	}
	id := strings.ToLower(idShort)
	switch {
	case strings.Contains(id, "voltage"):
		return "V"
	case strings.Contains(id, "current"):
		return "A"
	case strings.Contains(id, "frequency"):
		return "Hz"
	case strings.Contains(id, "rate"), strings.Contains(id, "duty"):
		return "%"
	case strings.Contains(id, "weight"):
		return "kg"
	case strings.Contains(id, "time"):
		return "sec"
	case strings.Contains(id, "capacity"):
		if strings.Contains(id, "kva") {
			return "KVA"
		}
		if strings.Contains(id, "kw") {
			return "KW"
		}
	}
	return ""
}

// InferUnit derives the display unit of a property. The semantic id is the
// most reliable source, then an explicit unit field, then the idShort
// naming convention.
func InferUnit(el *model.SubmodelElement) string {
	if unit := unitFromSemanticID(el.SemanticID); unit != "" {
		return unit
	}
	if el.Unit != "" {
		return el.Unit
	}
	return unitFromIdShort(el.IdShort)
}
