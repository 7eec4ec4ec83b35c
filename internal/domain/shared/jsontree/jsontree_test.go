package jsontree

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindFirstLocatesDeeplyNestedKey(t *testing.T) {
	doc := []byte(`{
		"metadata": {"locale": "it"},
		"sections": {
			"sidebar": {"title": "x"},
			"checkout": {
				"quote": {
					"priceBreakdown": {"priceItems": [1, 2]}
				}
			}
		}
	}`)

	root, err := Parse(doc)
	require.NoError(t, err)

	node, ok := FindFirst(root, "priceBreakdown")
	require.True(t, ok)
	obj, ok := node.(*Object)
	require.True(t, ok)
	items, ok := obj.Get("priceItems")
	require.True(t, ok)
	assert.Len(t, items.([]any), 2)
}

func TestFindFirstMissingKeyReturnsFalse(t *testing.T) {
	root, err := Parse([]byte(`{"a": {"b": [{"c": 1}]}}`))
	require.NoError(t, err)

	_, ok := FindFirst(root, "priceBreakdown")
	assert.False(t, ok)
}

func TestFindFirstDocumentOrderWins(t *testing.T) {
	// The key occurs twice: deep inside the first member and at the top
	// level further down the document. The first occurrence in serialized
	// order wins, even though it is the deeper one.
	doc := []byte(`{
		"wrapper": {"target": "deep"},
		"target": "shallow"
	}`)

	root, err := Parse(doc)
	require.NoError(t, err)

	v, ok := FindFirst(root, "target")
	require.True(t, ok)
	assert.Equal(t, "deep", v)
}

func TestFindFirstDescendsIntoArrays(t *testing.T) {
	root, err := Parse([]byte(`{"list": [{"skip": 0}, {"target": 7}]}`))
	require.NoError(t, err)

	v, ok := FindFirst(root, "target")
	require.True(t, ok)
	assert.Equal(t, json.Number("7"), v)
}

func TestParsePreservesMemberOrder(t *testing.T) {
	root, err := Parse([]byte(`{"z": 1, "a": 2, "m": 3}`))
	require.NoError(t, err)

	obj := root.(*Object)
	keys := make([]string, 0, len(obj.Members))
	for _, m := range obj.Members {
		keys = append(keys, m.Key)
	}
	assert.Equal(t, []string{"z", "a", "m"}, keys)
}

func TestParseRejectsMalformedDocument(t *testing.T) {
	_, err := Parse([]byte(`{"a": `))
	assert.Error(t, err)
}
