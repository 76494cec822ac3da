package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderReadsLegacyRecords(t *testing.T) {
	legacy := `{"id":"1717000000000","clientName":"Ravi","clientPhone":"","clientAddress":"",
		"menuName":"Breakfast","menuPrice":150,"items":["Idli","Vada"],"quantity":5,
		"totalAmount":750,"date":"2024-05-29T16:26:40.000Z"}`

	var o Order
	require.NoError(t, json.Unmarshal([]byte(legacy), &o))
	assert.Empty(t, o.MenuID)
	assert.Equal(t, 750.0, o.TotalAmount)

	ts, ok := o.Time()
	require.True(t, ok)
	assert.Equal(t, 2024, ts.Year())

	out, err := json.Marshal(o)
	require.NoError(t, err)
	assert.NotContains(t, string(out), "menuId")
}

func TestOrderTimeRejectsGarbage(t *testing.T) {
	_, ok := Order{Date: "yesterday"}.Time()
	assert.False(t, ok)
}
