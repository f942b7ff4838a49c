package message

import (
	"fmt"
	"math"

	"google.golang.org/protobuf/encoding/protowire"
)

// AppendFloat32s appends v as a packed repeated float field.
func AppendFloat32s(b []byte, num protowire.Number, v []float32) []byte {
	if len(v) == 0 {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	b = protowire.AppendVarint(b, uint64(4*len(v)))
	for _, f := range v {
		b = protowire.AppendFixed32(b, math.Float32bits(f))
	}
	return b
}

// AppendUint32s appends v as a packed repeated uint32 field.
func AppendUint32s(b []byte, num protowire.Number, v []uint32) []byte {
	if len(v) == 0 {
		return b
	}
	var payload []byte
	for _, x := range v {
		payload = protowire.AppendVarint(payload, uint64(x))
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, payload)
}

// RangeFields calls fn for every field of the encoded message b. For
// length-delimited fields value is the payload without its length prefix;
// for the other wire types it is the raw encoded value.
func RangeFields(b []byte, fn func(num protowire.Number, typ protowire.Type, value []byte) error) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return protowire.ParseError(n)
		}
		b = b[n:]
		m := protowire.ConsumeFieldValue(num, typ, b)
		if m < 0 {
			return protowire.ParseError(m)
		}
		value := b[:m]
		if typ == protowire.BytesType {
			value, _ = protowire.ConsumeBytes(b[:m])
		}
		if err := fn(num, typ, value); err != nil {
			return err
		}
		b = b[m:]
	}
	return nil
}

// ConsumeFloat32s decodes a float field in either packed or unpacked form
// and appends the values to dst.
func ConsumeFloat32s(dst []float32, typ protowire.Type, value []byte) ([]float32, error) {
	switch typ {
	case protowire.Fixed32Type:
		v, n := protowire.ConsumeFixed32(value)
		if n < 0 {
			return dst, protowire.ParseError(n)
		}
		return append(dst, math.Float32frombits(v)), nil
	case protowire.BytesType:
		for len(value) > 0 {
			v, n := protowire.ConsumeFixed32(value)
			if n < 0 {
				return dst, protowire.ParseError(n)
			}
			dst = append(dst, math.Float32frombits(v))
			value = value[n:]
		}
		return dst, nil
	}
	return dst, fmt.Errorf("message: wire type %d is not a float", typ)
}

// ConsumeUint32s decodes a uint32 field in either packed or unpacked form
// and appends the values to dst.
func ConsumeUint32s(dst []uint32, typ protowire.Type, value []byte) ([]uint32, error) {
	switch typ {
	case protowire.VarintType:
		v, n := protowire.ConsumeVarint(value)
		if n < 0 {
			return dst, protowire.ParseError(n)
		}
		if v > math.MaxUint32 {
			return dst, fmt.Errorf("message: varint %d overflows uint32", v)
		}
		return append(dst, uint32(v)), nil
	case protowire.BytesType:
		for len(value) > 0 {
			v, n := protowire.ConsumeVarint(value)
			if n < 0 {
				return dst, protowire.ParseError(n)
			}
			if v > math.MaxUint32 {
				return dst, fmt.Errorf("message: varint %d overflows uint32", v)
			}
			dst = append(dst, uint32(v))
			value = value[n:]
		}
		return dst, nil
	}
	return dst, fmt.Errorf("message: wire type %d is not a uint32", typ)
}
