package serpyco

import (
	"reflect"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefname_Formula(t *testing.T) {
	assert.Equal(t, "pkg.User", defname("pkg.User", nil, nil, nil))
	assert.Equal(t, "pkg.Box[string]", defname("pkg.Box", []string{"string"}, nil, nil))
	assert.Equal(t, "pkg.User_only_age_name", defname("pkg.User", nil, []string{"name", "age"}, nil))
	assert.Equal(t, "pkg.User_exclude_age", defname("pkg.User", nil, nil, []string{"age"}))
}

func TestView_ExcludeWinsOverOnly(t *testing.T) {
	v := View{Only: []string{"name", "age"}, Exclude: []string{"age"}}
	assert.True(t, v.includes("name"))
	assert.False(t, v.includes("age"))
	assert.False(t, v.includes("email"))
}

type compilerUser struct {
	Name  string `serpyco:"min_length=1"`
	Age   int    `serpyco:"minimum=0,maximum=150"`
	Email *string
}

func TestCompiler_CompileRecord_RequiredAndOptional(t *testing.T) {
	record, err := BuildRecord(reflect.TypeOf(compilerUser{}))
	require.NoError(t, err)

	compiler := NewCompiler(CompilerConfig{})
	schema, err := compiler.Compile(record, View{}, false)
	require.NoError(t, err)

	assert.Equal(t, "object", schema.Type)
	assert.Equal(t, "compilerUser", schema.Comment)
	assert.ElementsMatch(t, []string{"Name", "Age"}, schema.Required)
	assert.NotContains(t, schema.Required, "Email")

	nameProp := (*schema.Properties)["Name"]
	require.NotNil(t, nameProp)
	assert.Equal(t, "string", nameProp.Type)
	require.NotNil(t, nameProp.MinLength)
	assert.Equal(t, 1, *nameProp.MinLength)

	emailProp := (*schema.Properties)["Email"]
	require.NotNil(t, emailProp)
	require.Len(t, emailProp.AnyOf, 2)
	assert.Equal(t, "null", emailProp.AnyOf[1].Type)
}

func TestCompiler_NonStrictDefaultsAdditionalPropertiesTrue(t *testing.T) {
	record, err := BuildRecord(reflect.TypeOf(compilerUser{}))
	require.NoError(t, err)
	compiler := NewCompiler(CompilerConfig{})
	schema, err := compiler.Compile(record, View{}, false)
	require.NoError(t, err)
	require.NotNil(t, schema.AdditionalPropertiesBool)
	assert.True(t, *schema.AdditionalPropertiesBool)
}

func TestCompiler_StrictForbidsAdditionalProperties(t *testing.T) {
	record, err := BuildRecord(reflect.TypeOf(compilerUser{}))
	require.NoError(t, err)
	compiler := NewCompiler(CompilerConfig{Strict: true})
	schema, err := compiler.Compile(record, View{}, false)
	require.NoError(t, err)
	require.NotNil(t, schema.AdditionalPropertiesBool)
	assert.False(t, *schema.AdditionalPropertiesBool)
}

func TestCompiler_ManyWrapsInArray(t *testing.T) {
	record, err := BuildRecord(reflect.TypeOf(compilerUser{}))
	require.NoError(t, err)
	compiler := NewCompiler(CompilerConfig{})
	schema, err := compiler.Compile(record, View{}, true)
	require.NoError(t, err)
	assert.Equal(t, "array", schema.Type)
	require.NotNil(t, schema.Items)
	assert.Equal(t, "object", schema.Items.Type)
	assert.Equal(t, "http://json-schema.org/draft-04/schema#", schema.SchemaURI)
}

type treeNode struct {
	Value    string
	Children []*treeNode
}

func TestCompiler_CyclicRecordUsesRefAndDefinitions(t *testing.T) {
	record, err := BuildRecord(reflect.TypeOf(treeNode{}))
	require.NoError(t, err)
	compiler := NewCompiler(CompilerConfig{})
	schema, err := compiler.Compile(record, View{}, false)
	require.NoError(t, err)

	childrenProp := (*schema.Properties)["Children"]
	require.NotNil(t, childrenProp)
	assert.Equal(t, "array", childrenProp.Type)
	require.NotNil(t, childrenProp.Items)
	require.Len(t, childrenProp.Items.AnyOf, 2)
	assert.Equal(t, "#", childrenProp.Items.AnyOf[0].Ref)
}

type childRecord struct {
	Label string
}

type parentRecord struct {
	First  childRecord
	Second childRecord
}

func TestCompiler_SharedNestedRecordDefinitionReused(t *testing.T) {
	record, err := BuildRecord(reflect.TypeOf(parentRecord{}))
	require.NoError(t, err)
	compiler := NewCompiler(CompilerConfig{})
	schema, err := compiler.Compile(record, View{}, false)
	require.NoError(t, err)

	first := (*schema.Properties)["First"]
	second := (*schema.Properties)["Second"]
	require.NotEmpty(t, first.Ref)
	assert.Equal(t, first.Ref, second.Ref)
	require.Len(t, schema.Definitions, 1)
}

type stringSet struct {
	Color colorEnum `serpyco:"allowed_values=[0,1]"`
}

func TestCompiler_AllowedValuesIntersectsEnum(t *testing.T) {
	record, err := BuildRecord(reflect.TypeOf(stringSet{}))
	require.NoError(t, err)
	compiler := NewCompiler(CompilerConfig{})
	schema, err := compiler.Compile(record, View{}, false)
	require.NoError(t, err)

	colorProp := (*schema.Properties)["Color"]
	require.NotNil(t, colorProp)
	assert.Len(t, colorProp.Enum, 2)
}

type mapHolder struct {
	Tags map[string]string
}

func TestCompiler_MapTypeCompilesSchemaValuedAdditionalProperties(t *testing.T) {
	record, err := BuildRecord(reflect.TypeOf(mapHolder{}))
	require.NoError(t, err)
	compiler := NewCompiler(CompilerConfig{})
	schema, err := compiler.Compile(record, View{}, false)
	require.NoError(t, err)

	tagsProp := (*schema.Properties)["Tags"]
	require.NotNil(t, tagsProp)
	assert.Equal(t, "object", tagsProp.Type)
	require.NotNil(t, tagsProp.AdditionalPropertiesSchema)
	assert.Equal(t, "string", tagsProp.AdditionalPropertiesSchema.Type)
}

func TestCompiler_ViewOnlyRestrictsFields(t *testing.T) {
	record, err := BuildRecord(reflect.TypeOf(compilerUser{}))
	require.NoError(t, err)
	compiler := NewCompiler(CompilerConfig{})
	schema, err := compiler.Compile(record, View{Only: []string{"Name"}}, false)
	require.NoError(t, err)
	assert.Len(t, *schema.Properties, 1)
	_, ok := (*schema.Properties)["Name"]
	assert.True(t, ok)
}

type addressWithExtra struct {
	Street string
	City   string
}

type houseWithSubview struct {
	Owner   string
	Address addressWithExtra `serpyco:"only=[Street]"`
}

func TestCompiler_FieldLevelOnlyRestrictsNestedRecordFields(t *testing.T) {
	record, err := BuildRecord(reflect.TypeOf(houseWithSubview{}))
	require.NoError(t, err)
	compiler := NewCompiler(CompilerConfig{})
	schema, err := compiler.Compile(record, View{}, false)
	require.NoError(t, err)

	addressProp := (*schema.Properties)["Address"]
	require.NotEmpty(t, addressProp.Ref)
	defn, ok := schema.Definitions[strings.TrimPrefix(addressProp.Ref, "#/definitions/")]
	require.True(t, ok)
	require.NotNil(t, defn.Properties)
	assert.Len(t, *defn.Properties, 1)
	_, hasStreet := (*defn.Properties)["Street"]
	assert.True(t, hasStreet)
}

type houseFullAndSubview struct {
	Plain    addressWithExtra
	Narrowed addressWithExtra `serpyco:"only=[Street]"`
}

func TestCompiler_FieldLevelViewGetsDistinctDefinitionFromFullView(t *testing.T) {
	record, err := BuildRecord(reflect.TypeOf(houseFullAndSubview{}))
	require.NoError(t, err)
	compiler := NewCompiler(CompilerConfig{})
	schema, err := compiler.Compile(record, View{}, false)
	require.NoError(t, err)

	plainRef := (*schema.Properties)["Plain"].Ref
	narrowedRef := (*schema.Properties)["Narrowed"].Ref
	assert.NotEqual(t, plainRef, narrowedRef)
	assert.Len(t, schema.Definitions, 2)
}
