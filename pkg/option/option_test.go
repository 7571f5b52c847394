package option_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-buildergen/pkg/option"
)

func TestOptionZeroValueIsAbsent(t *testing.T) {
	var o option.Option[int]
	assert.True(t, o.IsNone())
	assert.False(t, o.IsSome())
	assert.True(t, o.IsZero())

	value, ok := o.Get()
	assert.False(t, ok)
	assert.Zero(t, value)
	assert.Equal(t, 7, o.OrElse(7))
	assert.Equal(t, "None", o.String())
}

func TestOptionSome(t *testing.T) {
	o := option.Some("Alice")
	value, ok := o.Get()
	require.True(t, ok)
	assert.Equal(t, "Alice", value)
	assert.Equal(t, "Alice", o.MustGet())
	assert.Equal(t, "Some(Alice)", o.String())
}

func TestOptionMustGetPanicsWhenAbsent(t *testing.T) {
	assert.Panics(t, func() {
		option.None[int]().MustGet()
	})
}

func TestOptionTakeClearsSlot(t *testing.T) {
	slot := option.Some(uint8(30))

	taken := slot.Take()
	assert.Equal(t, option.Some(uint8(30)), taken)
	assert.True(t, slot.IsNone())

	again := slot.Take()
	assert.True(t, again.IsNone())
}

func TestOptionTakeOnNilPointer(t *testing.T) {
	var slot *option.Option[string]
	assert.True(t, slot.Take().IsNone())
}

func TestOptionNestedOnlyUnwrapsOnce(t *testing.T) {
	inner := option.None[uint8]()
	outer := option.Some(inner)

	got, ok := outer.Get()
	require.True(t, ok)
	assert.True(t, got.IsNone())
}

func TestOptionJSON(t *testing.T) {
	type payload struct {
		Name option.Option[string] `json:"name"`
		Age  option.Option[int]    `json:"age,omitzero"`
	}

	raw, err := json.Marshal(payload{Name: option.Some("Bob")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"Bob"}`, string(raw))

	var decoded payload
	require.NoError(t, json.Unmarshal([]byte(`{"name":null,"age":30}`), &decoded))
	assert.True(t, decoded.Name.IsNone())
	assert.Equal(t, option.Some(30), decoded.Age)

	err = json.Unmarshal([]byte(`{"age":"thirty"}`), &decoded)
	assert.Error(t, err)
}

func TestNotSetError(t *testing.T) {
	err := option.NotSet("name")
	assert.EqualError(t, err, "name not set")
	assert.True(t, errors.Is(err, option.ErrNotSet))

	var notSet *option.NotSetError
	require.True(t, errors.As(err, &notSet))
	assert.Equal(t, "name", notSet.Field)
}
