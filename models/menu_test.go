package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMenuItem_ExtraFieldsPassThrough(t *testing.T) {
	src := `{"id":7,"name":"Truffle Pasta","description":"Black truffle, cream","category":"Mains","price":24.5,"image":"/img/pasta.jpg","featured":true}`

	var item MenuItem
	require.NoError(t, json.Unmarshal([]byte(src), &item))

	assert.Equal(t, "Truffle Pasta", item.Name)
	assert.Equal(t, "Black truffle, cream", item.Description)
	assert.Equal(t, "Mains", item.Category)
	assert.True(t, item.Featured())
	assert.Equal(t, "24.5", item.Field("price"))
	assert.Equal(t, "/img/pasta.jpg", item.Field("image"))
	assert.Empty(t, item.Field("missing"))

	out, err := json.Marshal(item)
	require.NoError(t, err)
	assert.JSONEq(t, src, string(out))
}

func TestMenuItem_NonStringSearchFieldKeptVerbatim(t *testing.T) {
	src := `{"name":"Soup","description":null,"category":3}`

	var item MenuItem
	require.NoError(t, json.Unmarshal([]byte(src), &item))
	assert.Equal(t, "Soup", item.Name)
	assert.Empty(t, item.Description)
	assert.Empty(t, item.Category)

	out, err := json.Marshal(item)
	require.NoError(t, err)
	assert.JSONEq(t, src, string(out))
}

func TestMenuItem_MarshalWithoutExtra(t *testing.T) {
	out, err := json.Marshal(MenuItem{Name: "Lemon Tart", Description: "Citrus dessert", Category: "Desserts"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"Lemon Tart","description":"Citrus dessert","category":"Desserts"}`, string(out))
	assert.False(t, MenuItem{}.Featured())
}

func TestMenuItem_RejectsNonObject(t *testing.T) {
	var item MenuItem
	assert.Error(t, json.Unmarshal([]byte(`"just a string"`), &item))
}

func TestCategory_StringAndObjectForms(t *testing.T) {
	src := `{"categories":["Mains",{"name":"Desserts","image":"/img/d.jpg"}],"items":[]}`

	var doc MenuDocument
	require.NoError(t, json.Unmarshal([]byte(src), &doc))
	require.Len(t, doc.Categories, 2)
	assert.Equal(t, "Mains", doc.Categories[0].Name)
	assert.Equal(t, "Desserts", doc.Categories[1].Name)

	out, err := json.Marshal(doc)
	require.NoError(t, err)
	assert.JSONEq(t, src, string(out))
}

func TestMenuDocument_NilSlicesMarshalAsArrays(t *testing.T) {
	out, err := json.Marshal(MenuDocument{})
	require.NoError(t, err)
	assert.JSONEq(t, `{"categories":[],"items":[]}`, string(out))

	out, err = json.Marshal(EmptyMenu())
	require.NoError(t, err)
	assert.JSONEq(t, `{"categories":[],"items":[]}`, string(out))
}

func TestCategory_UnknownShapesPassThrough(t *testing.T) {
	src := `{"categories":["Mains",3,{"name":7}],"items":[{"name":"Steak","category":"Mains"}]}`

	var doc MenuDocument
	require.NoError(t, json.Unmarshal([]byte(src), &doc))
	require.Len(t, doc.Categories, 3)
	assert.Equal(t, "Mains", doc.Categories[0].Name)
	assert.Empty(t, doc.Categories[1].Name)
	assert.Empty(t, doc.Categories[2].Name)
	require.Len(t, doc.Items, 1)

	out, err := json.Marshal(doc)
	require.NoError(t, err)
	assert.JSONEq(t, src, string(out))
}
