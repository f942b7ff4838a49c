package message

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/encoding/protowire"
)

func TestPackedRoundTrip(t *testing.T) {
	var b []byte
	b = AppendFloat32s(b, 1, []float32{0.5, -1, 3})
	b = AppendUint32s(b, 2, []uint32{0, 300, 1 << 31})
	b = AppendFloat32s(b, 3, nil)

	var fs []float32
	var us []uint32
	var seen []protowire.Number
	err := RangeFields(b, func(num protowire.Number, typ protowire.Type, value []byte) (err error) {
		seen = append(seen, num)
		switch num {
		case 1:
			fs, err = ConsumeFloat32s(fs, typ, value)
		case 2:
			us, err = ConsumeUint32s(us, typ, value)
		}
		return err
	})
	require.NoError(t, err)
	assert.Equal(t, []protowire.Number{1, 2}, seen, "empty fields are not written")
	assert.Equal(t, []float32{0.5, -1, 3}, fs)
	assert.Equal(t, []uint32{0, 300, 1 << 31}, us)
}

func TestUnpackedValues(t *testing.T) {
	var b []byte
	b = protowire.AppendTag(b, 2, protowire.VarintType)
	b = protowire.AppendVarint(b, 42)
	b = protowire.AppendTag(b, 1, protowire.Fixed32Type)
	b = protowire.AppendFixed32(b, 0x3f800000)
	b = protowire.AppendTag(b, 9, protowire.BytesType)
	b = protowire.AppendString(b, "skipped")

	var fs []float32
	var us []uint32
	err := RangeFields(b, func(num protowire.Number, typ protowire.Type, value []byte) (err error) {
		switch num {
		case 1:
			fs, err = ConsumeFloat32s(fs, typ, value)
		case 2:
			us, err = ConsumeUint32s(us, typ, value)
		}
		return err
	})
	require.NoError(t, err)
	assert.Equal(t, []float32{1}, fs)
	assert.Equal(t, []uint32{42}, us)
}

func TestConsumeErrors(t *testing.T) {
	big := protowire.AppendVarint(nil, 1<<40)
	_, err := ConsumeUint32s(nil, protowire.VarintType, big)
	assert.Error(t, err)

	_, err = ConsumeFloat32s(nil, protowire.VarintType, big)
	assert.Error(t, err)

	_, err = ConsumeFloat32s(nil, protowire.BytesType, []byte{1, 2, 3})
	assert.Error(t, err)

	assert.Error(t, RangeFields([]byte{0x0a, 0x05, 1}, func(protowire.Number, protowire.Type, []byte) error { return nil }))
}
