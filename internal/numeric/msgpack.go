package numeric

import (
	"fmt"

	"github.com/vmihailenco/msgpack/v5"

	"numtower/internal/marshal"
)

// MsgpackExtInt is the msgpack extension id used for Int. The payload is the
// Ruby Marshal integer body.
const MsgpackExtInt int8 = 1

func init() {
	msgpack.RegisterExt(MsgpackExtInt, (*Int)(nil))
}

var (
	_ msgpack.Marshaler   = Int{}
	_ msgpack.Unmarshaler = (*Int)(nil)
)

// MarshalMsgpack implements msgpack.Marshaler.
func (x Int) MarshalMsgpack() ([]byte, error) {
	return marshal.AppendInt(nil, x.Big())
}

// UnmarshalMsgpack implements msgpack.Unmarshaler.
func (x *Int) UnmarshalMsgpack(data []byte) error {
	b, err := marshal.Load(append([]byte{4, 8}, data...))
	if err != nil {
		return fmt.Errorf("numeric: decode msgpack int: %w", err)
	}
	*x = IntFromBig(b)
	return nil
}
