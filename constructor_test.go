package serpyco

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructorDSL_ObjectBuildsPropertiesAndRequired(t *testing.T) {
	schema := Object(
		Prop("name", String(MinLen(1))),
		Prop("age", Integer(Min(0), Max(150))),
		MustDefine("name"),
		AdditionalProps(false),
	)

	assert.Equal(t, "object", schema.Type)
	require.NotNil(t, schema.Properties)
	props := *schema.Properties
	assert.Equal(t, "string", props["name"].Type)
	assert.Equal(t, 1, *props["name"].MinLength)
	assert.Equal(t, "integer", props["age"].Type)
	assert.Equal(t, 0.0, *props["age"].Minimum)
	assert.Equal(t, 150.0, *props["age"].Maximum)
	assert.Equal(t, []string{"name"}, schema.Required)
	assert.Equal(t, false, *schema.AdditionalPropertiesBool)
}

func TestConstructorDSL_ArrayWithItemsAndBounds(t *testing.T) {
	schema := Array(WithItems(String()), MinItemCount(1), MaxItemCount(3))
	assert.Equal(t, "array", schema.Type)
	assert.Equal(t, "string", schema.Items.Type)
	assert.Equal(t, 1, *schema.MinItems)
	assert.Equal(t, 3, *schema.MaxItems)
}

func TestConstructorDSL_TupleItems(t *testing.T) {
	schema := Array(WithTupleItems(String(), Integer()))
	require.Len(t, schema.TupleItems, 2)
	assert.Equal(t, "string", schema.TupleItems[0].Type)
	assert.Equal(t, "integer", schema.TupleItems[1].Type)
}

func TestConstructorDSL_EnumAnyOfRefSchemas(t *testing.T) {
	enum := EnumSchema("red", "green", "blue")
	assert.Equal(t, []Value{"red", "green", "blue"}, enum.Enum)

	anyOf := AnyOfSchema(String(), Null())
	assert.Len(t, anyOf.AnyOf, 2)

	ref := RefSchema("#/definitions/Foo")
	assert.Equal(t, "#/definitions/Foo", ref.Ref)
}

func TestConstructorDSL_BuiltinEncodersUseSharedBuilder(t *testing.T) {
	temporal := builtinTemporalEncoder.JSONSchema()
	assert.Equal(t, "string", temporal.Type)
	assert.Equal(t, FormatDateTime, temporal.Format)
	assert.Equal(t, dateTimePattern, temporal.Pattern)

	id := builtinUUIDEncoder.JSONSchema()
	assert.Equal(t, "string", id.Type)
	assert.Equal(t, FormatUUID, id.Format)
}
