package numeric

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"
)

func TestIntMsgpackExt(t *testing.T) {
	one := IntOf(1)
	data, err := msgpack.Marshal(&one)
	require.NoError(t, err)
	assert.Equal(t, []byte{0xd5, byte(MsgpackExtInt), 'i', 0x06}, data)
}

func TestIntMsgpackRoundTripInStruct(t *testing.T) {
	type row struct {
		Expr  string
		Value Int
	}
	in := row{Expr: "2**100", Value: mustParse(t, "-1267650600228229401496703205376")}
	data, err := msgpack.Marshal(&in)
	require.NoError(t, err)

	var out row
	require.NoError(t, msgpack.Unmarshal(data, &out))
	assert.Equal(t, in.Expr, out.Expr)
	assert.Equal(t, in.Value.String(), out.Value.String())
	assert.True(t, out.Value.IsBig())
}

func TestIntUnmarshalMsgpackRejectsGarbage(t *testing.T) {
	var x Int
	assert.Error(t, x.UnmarshalMsgpack([]byte{'x'}))
}
