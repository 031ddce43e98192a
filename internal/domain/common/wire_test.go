package common

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestID_UnmarshalJSON(t *testing.T) {
	var v struct {
		A ID `json:"a"`
		B ID `json:"b"`
		C ID `json:"c"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"a":"x-1","b":42,"c":null}`), &v))
	assert.Equal(t, ID("x-1"), v.A)
	assert.Equal(t, ID("42"), v.B)
	assert.Equal(t, ID(""), v.C)

	var bad ID
	assert.Error(t, json.Unmarshal([]byte(`{"nested":true}`), &bad))
}

func TestRef_RoundTripShapes(t *testing.T) {
	var fromString, fromObject Ref
	require.NoError(t, json.Unmarshal([]byte(`"Engineering"`), &fromString))
	require.NoError(t, json.Unmarshal([]byte(`{"id":7,"name":"Engineering","description":"R&D"}`), &fromObject))

	assert.Equal(t, "Engineering", fromString.Name)
	assert.Equal(t, ID("7"), fromObject.ID)
	assert.Equal(t, "R&D", fromObject.Description)
	assert.True(t, fromObject.SameName(" engineering "))

	out, err := json.Marshal(fromObject)
	require.NoError(t, err)
	assert.JSONEq(t, `"Engineering"`, string(out))
}
