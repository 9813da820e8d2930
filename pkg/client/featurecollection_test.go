package client

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeFeatureCollection_KeepsForeignMembers(t *testing.T) {
	body := `{"type":"FeatureCollection","features":[
		{"type":"Feature","id":"S1","collection":"C","geometry":null,"properties":{"path":229},"tile":"229_124"}
	],"context":{"returned":1}}`

	fc, err := DecodeFeatureCollection(strings.NewReader(body))
	require.NoError(t, err)
	require.Equal(t, 1, fc.Len())
	assert.Equal(t, "229_124", fc.Features[0].AdditionalFields["tile"])

	data, err := json.Marshal(fc)
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"FeatureCollection","features":[
		{"type":"Feature","id":"S1","collection":"C","geometry":null,"properties":{"path":229},"tile":"229_124"}
	]}`, string(data))
}

func TestDecodeFeatureCollection_NumericID(t *testing.T) {
	body := `{"type":"FeatureCollection","features":[
		{"type":"Feature","id":"S1","geometry":null,"properties":{}},
		{"type":"Feature","id":7,"geometry":null,"properties":{}}
	]}`

	fc, err := DecodeFeatureCollection(strings.NewReader(body))
	require.NoError(t, err)
	require.Equal(t, 2, fc.Len())
	assert.Equal(t, "S1", fc.Features[0].Id)
	assert.Equal(t, "7", fc.Features[1].Id)
}
