package types

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("1985-07-17")
	require.NoError(t, err)
	assert.Equal(t, 1985, d.Year())
	assert.Equal(t, time.July, d.Month())
	assert.Equal(t, 17, d.Day())

	_, err = ParseDate("17/07/1985")
	assert.Error(t, err)
}

func TestDateJSONRoundTrip(t *testing.T) {
	d := NewDate(2020, time.January, 2)

	data, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2020-01-02"`, string(data))

	var back Date
	require.NoError(t, json.Unmarshal(data, &back))
	assert.True(t, back.Equal(d.Time))
}

func TestDateJSONNull(t *testing.T) {
	var d Date
	data, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, "null", string(data))

	var back Date
	require.NoError(t, json.Unmarshal([]byte("null"), &back))
	assert.True(t, back.IsZero())
}

func TestDateInStruct(t *testing.T) {
	type payload struct {
		PublishDate *Date `json:"publishDate"`
	}

	var p payload
	require.NoError(t, json.Unmarshal([]byte(`{"publishDate":"1985-07-17"}`), &p))
	require.NotNil(t, p.PublishDate)
	assert.Equal(t, "1985-07-17", p.PublishDate.String())

	var empty payload
	require.NoError(t, json.Unmarshal([]byte(`{}`), &empty))
	assert.Nil(t, empty.PublishDate)
}
