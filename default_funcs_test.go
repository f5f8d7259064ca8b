package serpyco

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultFunc_BuiltinNow(t *testing.T) {
	fn, ok := lookupDefaultFunc("now")
	require.True(t, ok)
	v := fn().(string)
	_, err := time.Parse(time.RFC3339Nano, v)
	assert.NoError(t, err)
}

func TestRegisterDefaultFunc_DuplicateErrors(t *testing.T) {
	require.NoError(t, RegisterDefaultFunc("serializer_test_counter", func() Value { return int64(1) }))
	defer UnregisterDefaultFunc("serializer_test_counter")

	err := RegisterDefaultFunc("serializer_test_counter", func() Value { return int64(2) })
	assert.ErrorIs(t, err, ErrEncoderAlreadyRegistered)
}

func TestUnregisterDefaultFunc_RemovesEntry(t *testing.T) {
	require.NoError(t, RegisterDefaultFunc("serializer_test_once", func() Value { return int64(1) }))
	UnregisterDefaultFunc("serializer_test_once")

	_, ok := lookupDefaultFunc("serializer_test_once")
	assert.False(t, ok)
}
