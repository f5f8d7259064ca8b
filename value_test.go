package serpyco

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseJSON_PreservesIntFloatDistinction(t *testing.T) {
	v, err := ParseJSON([]byte(`{"a": 1, "b": 1.5, "c": [1, 2.0, "s"], "d": null}`))
	require.NoError(t, err)
	obj := v.(ValueMap)
	assert.Equal(t, int64(1), obj["a"])
	assert.Equal(t, 1.5, obj["b"])

	arr := obj["c"].([]Value)
	assert.Equal(t, int64(1), arr[0])
	assert.Equal(t, 2.0, arr[1])
	assert.Equal(t, "s", arr[2])
	assert.Nil(t, obj["d"])
}

func TestPrintJSON_RejectsRawBytes(t *testing.T) {
	_, err := PrintJSON([]byte("raw"))
	assert.ErrorIs(t, err, ErrInvalidValue)

	_, err = PrintJSON([]Value{"ok", []byte("raw")})
	assert.ErrorIs(t, err, ErrInvalidValue)
}

func TestPrintJSON_RoundTripsThroughParseJSON(t *testing.T) {
	original := ValueMap{"name": "ann", "age": int64(30), "score": 1.5}
	data, err := PrintJSON(original)
	require.NoError(t, err)

	back, err := ParseJSON(data)
	require.NoError(t, err)
	assert.Equal(t, original, back)
}

func TestTypeName(t *testing.T) {
	assert.Equal(t, "null", TypeName(nil))
	assert.Equal(t, "boolean", TypeName(true))
	assert.Equal(t, "integer", TypeName(int64(1)))
	assert.Equal(t, "integer", TypeName(2.0))
	assert.Equal(t, "number", TypeName(2.5))
	assert.Equal(t, "string", TypeName("s"))
	assert.Equal(t, "array", TypeName([]Value{}))
	assert.Equal(t, "object", TypeName(ValueMap{}))
}

func TestEqual_NumericCoercion(t *testing.T) {
	assert.True(t, Equal(int64(3), 3.0))
	assert.False(t, Equal(int64(3), 4.0))
	assert.True(t, Equal("a", "a"))
	assert.False(t, Equal("a", "b"))
}
