package tree

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eclipse-basyx/basyx-aas-explorer/internal/common/model"
)

func property(idShort, value string) model.SubmodelElement {
	raw, _ := json.Marshal(value)
	return model.SubmodelElement{
		ModelType: model.ModelTypeProperty,
		IdShort:   idShort,
		Value:     json.RawMessage(raw),
	}
}

func TestTransformPropertyWithValueAndUnit(t *testing.T) {
	elements := []model.SubmodelElement{property("RatedOutputCurrent", "350")}

	nodes := TransformElements(elements, "sm1", ElementOptions{})
	require.Len(t, nodes, 1)

	assert.Equal(t, "sm1_RatedOutputCurrent", nodes[0].ID)
	assert.Equal(t, "RatedOutputCurrent: 350 A", nodes[0].Name)
	assert.Equal(t, KindProperty, nodes[0].Kind)
	assert.True(t, nodes[0].HasValue)
	assert.False(t, nodes[0].Matched)
}

func TestTransformPropertyWithoutValue(t *testing.T) {
	elements := []model.SubmodelElement{{
		ModelType: model.ModelTypeProperty,
		IdShort:   "SerialNumber",
	}}

	nodes := TransformElements(elements, "sm1", ElementOptions{})
	require.Len(t, nodes, 1)

	// The bare idShort stays the name; no value, no match.
	assert.Equal(t, "SerialNumber", nodes[0].Name)
	assert.False(t, nodes[0].HasValue)
}

func TestTransformNumericLiteralValue(t *testing.T) {
	elements := []model.SubmodelElement{{
		ModelType: model.ModelTypeProperty,
		IdShort:   "NetWeight",
		Value:     json.RawMessage("42"),
	}}

	nodes := TransformElements(elements, "sm1", ElementOptions{})
	require.Len(t, nodes, 1)
	assert.Equal(t, "NetWeight: 42 kg", nodes[0].Name)
}

func TestSearchTermMatchesPropertyValue(t *testing.T) {
	elements := []model.SubmodelElement{
		property("RatedOutputCurrent", "350"),
		property("InputPowerVoltage", "400"),
	}

	nodes := TransformElements(elements, "sm1", ElementOptions{SearchTerm: "350"})
	require.Len(t, nodes, 2)

	assert.True(t, nodes[0].Matched)
	assert.False(t, nodes[1].Matched)
}

func TestMultiLanguagePropertyLanguagePreference(t *testing.T) {
	value, _ := json.Marshal([]model.LangStringTextType{
		{Language: "de", Text: "Schweißgerät"},
		{Language: "en", Text: "Welding machine"},
		{Language: "ja", Text: "溶接機"},
	})
	mlp := model.SubmodelElement{
		ModelType: model.ModelTypeMultiLanguageProperty,
		IdShort:   "ProductName",
		Value:     value,
	}

	tests := []struct {
		name     string
		language string
		want     string
	}{
		{"Preferred", "ja", "ProductName: 溶接機"},
		{"FallbackToEnglish", "fr", "ProductName: Welding machine"},
		{"DefaultEnglish", "", "ProductName: Welding machine"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nodes := TransformElements([]model.SubmodelElement{mlp}, "sm1", ElementOptions{Language: tt.language})
			require.Len(t, nodes, 1)
			assert.Equal(t, tt.want, nodes[0].Name)
			assert.True(t, nodes[0].HasValue)
		})
	}
}

func TestMultiLanguagePropertyFirstEntryFallback(t *testing.T) {
	value, _ := json.Marshal([]model.LangStringTextType{
		{Language: "de", Text: "Schweißgerät"},
	})
	mlp := model.SubmodelElement{
		ModelType: model.ModelTypeMultiLanguageProperty,
		IdShort:   "ProductName",
		Value:     value,
	}

	nodes := TransformElements([]model.SubmodelElement{mlp}, "sm1", ElementOptions{Language: "en"})
	require.Len(t, nodes, 1)
	assert.Equal(t, "ProductName: Schweißgerät", nodes[0].Name)
}

func TestCollectionRecursionAndMatchPropagation(t *testing.T) {
	inner, _ := json.Marshal([]model.SubmodelElement{
		property("RatedOutputCurrent", "350"),
		property("SerialNumber", "SN-1"),
	})
	elements := []model.SubmodelElement{{
		ModelType: model.ModelTypeCollection,
		IdShort:   "ElectricalData",
		Value:     inner,
	}}

	nodes := TransformElements(elements, "sm1", ElementOptions{SearchTerm: "350"})
	require.Len(t, nodes, 1)

	collection := nodes[0]
	assert.Equal(t, KindCollection, collection.Kind)
	require.Len(t, collection.Children, 2)
	assert.Equal(t, "sm1_ElectricalData_RatedOutputCurrent", collection.Children[0].ID)
	assert.True(t, collection.Children[0].Matched)
	// The match propagates to the collection itself.
	assert.True(t, collection.Matched)
}

func TestNonArrayCollectionValue(t *testing.T) {
	elements := []model.SubmodelElement{{
		ModelType: model.ModelTypeCollection,
		IdShort:   "Oddball",
		Value:     json.RawMessage(`"scalar"`),
	}}

	nodes := TransformElements(elements, "sm1", ElementOptions{})
	require.Len(t, nodes, 1)
	assert.Equal(t, "Oddball: (non-array collection)", nodes[0].Name)
	assert.Empty(t, nodes[0].Children)
}

func TestFileNodeMatchesOnPathOrName(t *testing.T) {
	file := model.SubmodelElement{
		ModelType: model.ModelTypeFile,
		IdShort:   "Manual",
		Value:     json.RawMessage(`"/docs/manual_v2.pdf"`),
	}

	nodes := TransformElements([]model.SubmodelElement{file}, "sm1", ElementOptions{SearchTerm: "manual_v2"})
	require.Len(t, nodes, 1)
	assert.True(t, nodes[0].Matched)

	nodes = TransformElements([]model.SubmodelElement{file}, "sm1", ElementOptions{SearchTerm: "MANUAL"})
	require.Len(t, nodes, 1)
	assert.True(t, nodes[0].Matched)
}

func TestMissingIdShortGetsPositionalID(t *testing.T) {
	elements := []model.SubmodelElement{
		{ModelType: model.ModelTypeProperty},
		{ModelType: model.ModelTypeProperty},
	}

	nodes := TransformElements(elements, "sm1", ElementOptions{})
	require.Len(t, nodes, 2)
	assert.Equal(t, "sm1_element_0", nodes[0].ID)
	assert.Equal(t, "sm1_element_1", nodes[1].ID)
	assert.Equal(t, "Unnamed", nodes[0].Name)
}

func TestUnknownModelTypeBecomesGenericElement(t *testing.T) {
	elements := []model.SubmodelElement{{
		ModelType: "Capability",
		IdShort:   "Welding",
	}}

	nodes := TransformElements(elements, "sm1", ElementOptions{})
	require.Len(t, nodes, 1)
	assert.Equal(t, KindElement, nodes[0].Kind)
}
