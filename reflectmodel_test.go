package serpyco

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type simpleUser struct {
	Name  string
	Age   int
	Email string `serpyco:"dict_key=email_address,format=email"`
	Bio   string `serpyco:"-"`
}

func TestBuildRecord_BasicFields(t *testing.T) {
	record, err := BuildRecord(reflect.TypeOf(simpleUser{}))
	require.NoError(t, err)
	assert.Equal(t, "simpleUser", record.Name)
	require.Len(t, record.Fields, 3)

	byName := map[string]Field{}
	for _, f := range record.Fields {
		byName[f.Name] = f
	}

	assert.Equal(t, PrimitiveType{Kind: KindString}, byName["Name"].Type)
	assert.Equal(t, PrimitiveType{Kind: KindInteger}, byName["Age"].Type)
	assert.Equal(t, "email_address", byName["Email"].DictKey())
	assert.Equal(t, "email", byName["Email"].Hints.Format)
}

func TestBuildRecord_IgnoredFieldExcluded(t *testing.T) {
	record, err := BuildRecord(reflect.TypeOf(simpleUser{}))
	require.NoError(t, err)
	for _, f := range record.Fields {
		assert.NotEqual(t, "Bio", f.Name)
	}
}

type duplicateDictKey struct {
	A string `serpyco:"dict_key=x"`
	B string `serpyco:"dict_key=x"`
}

func TestBuildRecord_DuplicateDictKeyErrors(t *testing.T) {
	_, err := BuildRecord(reflect.TypeOf(duplicateDictKey{}))
	assert.ErrorIs(t, err, ErrDuplicateField)
}

type withOptional struct {
	Nickname *string
}

func TestBuildRecord_PointerBecomesOptionalUnion(t *testing.T) {
	record, err := BuildRecord(reflect.TypeOf(withOptional{}))
	require.NoError(t, err)
	u, ok := record.Fields[0].Type.(UnionType)
	require.True(t, ok)
	assert.True(t, u.Optional())
	assert.Equal(t, PrimitiveType{Kind: KindString}, u.Inner())
}

type colorEnum int

const (
	colorRed colorEnum = iota
	colorGreen
	colorBlue
)

func (c colorEnum) Members() []EnumMember {
	return []EnumMember{
		{Name: "RED", Value: int64(colorRed)},
		{Name: "GREEN", Value: int64(colorGreen)},
		{Name: "BLUE", Value: int64(colorBlue)},
	}
}

type withEnum struct {
	Color colorEnum
}

func TestBuildRecord_NamedPrimitiveEnum(t *testing.T) {
	record, err := BuildRecord(reflect.TypeOf(withEnum{}))
	require.NoError(t, err)
	e, ok := record.Fields[0].Type.(EnumType)
	require.True(t, ok, "expected EnumType, got %T", record.Fields[0].Type)
	assert.Equal(t, KindInteger, e.Kind)
	assert.Len(t, e.Members, 3)
}

type nested struct {
	Inner innerRecord
}

type innerRecord struct {
	Value string
}

func TestBuildRecord_NestedStructIsRecordRef(t *testing.T) {
	record, err := BuildRecord(reflect.TypeOf(nested{}))
	require.NoError(t, err)
	ref, ok := record.Fields[0].Type.(RecordRef)
	require.True(t, ok)
	assert.Equal(t, reflect.TypeOf(innerRecord{}), ref.Type)
}

type cyclic struct {
	Name     string
	Children []*cyclic
}

func TestBuildRecord_CyclicRecordTerminates(t *testing.T) {
	record, err := BuildRecord(reflect.TypeOf(cyclic{}))
	require.NoError(t, err)
	assert.Equal(t, "cyclic", record.Name)

	seq, ok := record.Fields[1].Type.(SeqType)
	require.True(t, ok)
	u, ok := seq.Item.(UnionType)
	require.True(t, ok)
	assert.True(t, u.Optional())
	_, ok = u.Inner().(RecordRef)
	assert.True(t, ok)
}

type byteField struct {
	Data []byte
}

func TestBuildRecord_RawBytesNeedsEncoder(t *testing.T) {
	_, err := BuildRecord(reflect.TypeOf(byteField{}))
	assert.ErrorIs(t, err, ErrBadType)
}

func TestBuildRecord_NotAStructErrors(t *testing.T) {
	_, err := BuildRecord(reflect.TypeOf(42))
	assert.ErrorIs(t, err, ErrNotARecord)
}

func TestBind_SubstitutesParamRefRecursively(t *testing.T) {
	record := &RecordType{
		Name:       "box",
		TypeParams: []TypeParam{{Name: "T"}},
		Fields: []Field{
			{Name: "Items", Type: SeqType{Item: ParamRef{Name: "T"}}},
		},
	}
	bound := Bind(record, map[string]TypeExpr{"T": PrimitiveType{Kind: KindString}})
	seq := bound.Fields[0].Type.(SeqType)
	assert.Equal(t, PrimitiveType{Kind: KindString}, seq.Item)
	// original is untouched
	seq2 := record.Fields[0].Type.(SeqType)
	assert.Equal(t, ParamRef{Name: "T"}, seq2.Item)
}
