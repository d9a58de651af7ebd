package felt

import (
	"encoding/json"
	"testing"

	"github.com/fxamacker/cbor/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnmarshalJson(t *testing.T) {
	var with Felt
	assert.NoError(t, with.UnmarshalJSON([]byte("0x4437ab")))

	var without Felt
	assert.NoError(t, without.UnmarshalJSON([]byte("4437ab")))
	assert.Equal(t, true, without.Equal(&with))

	t.Run("quoted", func(t *testing.T) {
		var quoted Felt
		require.NoError(t, json.Unmarshal([]byte(`"0x4437ab"`), &quoted))
		assert.True(t, quoted.Equal(&with))
	})

	t.Run("not a number", func(t *testing.T) {
		var f Felt
		assert.Error(t, f.UnmarshalJSON([]byte(`"0xnope"`)))
	})

	t.Run("above modulus", func(t *testing.T) {
		var f Felt
		tooBig := `"0x800000000000011000000000000000000000000000000000000000000000001"`
		assert.Error(t, f.UnmarshalJSON([]byte(tooBig)))
	})
}

func TestFeltJSON(t *testing.T) {
	f := new(Felt).SetUint64(10)
	b, err := json.Marshal(f)
	require.NoError(t, err)
	assert.Equal(t, `"0xa"`, string(b))

	assert.Equal(t, "0x0", Zero.String())
}

func TestFeltCbor(t *testing.T) {
	val := new(Felt)
	_, err := val.SetRandom()
	require.NoError(t, err)

	bytes, err := cbor.Marshal(val)
	require.NoError(t, err)

	unmarshaledFelt := new(Felt)
	require.NoError(t, cbor.Unmarshal(bytes, unmarshaledFelt))
	assert.Equal(t, val, unmarshaledFelt)
}

func TestShortString(t *testing.T) {
	assert.Equal(t, "0x1234", new(Felt).SetUint64(0x1234).ShortString())

	long, err := new(Felt).SetString("0x49d36570d4e46f48e99674bd3fcc84644ddd6b96f7c741b1562b82f9e004dc7")
	require.NoError(t, err)
	assert.Equal(t, "0x49d3...4dc7", long.ShortString())
}
