package serpyco

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchema_MarshalJSON_AdditionalPropertiesBool(t *testing.T) {
	schema := &Schema{Type: "object", AdditionalPropertiesBool: BoolPtr(false)}
	data, err := json.Marshal(schema)
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, false, out["additionalProperties"])
}

func TestSchema_MarshalJSON_AdditionalPropertiesSchema(t *testing.T) {
	schema := &Schema{Type: "object", AdditionalPropertiesSchema: &Schema{Type: "string"}}
	data, err := json.Marshal(schema)
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, json.Unmarshal(data, &out))
	nested, ok := out["additionalProperties"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "string", nested["type"])
}

func TestSchema_UnmarshalJSON_AdditionalPropertiesBool(t *testing.T) {
	var schema Schema
	require.NoError(t, json.Unmarshal([]byte(`{"type":"object","additionalProperties":false}`), &schema))
	require.NotNil(t, schema.AdditionalPropertiesBool)
	assert.False(t, *schema.AdditionalPropertiesBool)
	assert.Nil(t, schema.AdditionalPropertiesSchema)
}

func TestSchema_UnmarshalJSON_AdditionalPropertiesSchema(t *testing.T) {
	var schema Schema
	require.NoError(t, json.Unmarshal([]byte(`{"type":"object","additionalProperties":{"type":"integer"}}`), &schema))
	require.NotNil(t, schema.AdditionalPropertiesSchema)
	assert.Equal(t, "integer", schema.AdditionalPropertiesSchema.Type)
	assert.Nil(t, schema.AdditionalPropertiesBool)
}

func TestSchema_UnmarshalJSON_ItemsSchemaVsTuple(t *testing.T) {
	var homogeneous Schema
	require.NoError(t, json.Unmarshal([]byte(`{"type":"array","items":{"type":"string"}}`), &homogeneous))
	require.NotNil(t, homogeneous.Items)
	assert.Equal(t, "string", homogeneous.Items.Type)
	assert.Empty(t, homogeneous.TupleItems)

	var tuple Schema
	require.NoError(t, json.Unmarshal([]byte(`{"type":"array","items":[{"type":"string"},{"type":"integer"}]}`), &tuple))
	require.Len(t, tuple.TupleItems, 2)
	assert.Equal(t, "string", tuple.TupleItems[0].Type)
	assert.Equal(t, "integer", tuple.TupleItems[1].Type)
}

func TestSchemaMap_MarshalDeterministicOrder(t *testing.T) {
	sm := SchemaMap{"zeta": {Type: "string"}, "alpha": {Type: "integer"}}
	data1, err := json.Marshal(sm)
	require.NoError(t, err)
	data2, err := json.Marshal(sm)
	require.NoError(t, err)
	assert.Equal(t, string(data1), string(data2))
}
