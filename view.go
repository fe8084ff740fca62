package morphdict

import "encoding/binary"

// View is a raw buffer reinterpreted as fixed width integers. Artifact sets
// are written little endian, element order is kept as stored.
type View struct {
	typ ElementType
	u8  []uint8
	i16 []int16
	i32 []int32
	u32 []uint32
}

// NewView reinterprets raw as elements of type t. Uint8 views share raw.
func NewView(t ElementType, raw []byte) (View, error) {
	size := t.Size()
	if size == 0 || len(raw)%size != 0 {
		return View{}, &LayoutError{Type: t, Len: len(raw)}
	}
	v := View{typ: t}
	switch t {
	case Uint8:
		v.u8 = raw
	case Int16:
		v.i16 = make([]int16, len(raw)/2)
		for i := range v.i16 {
			v.i16[i] = int16(binary.LittleEndian.Uint16(raw[i*2:]))
		}
	case Int32:
		v.i32 = make([]int32, len(raw)/4)
		for i := range v.i32 {
			v.i32[i] = int32(binary.LittleEndian.Uint32(raw[i*4:]))
		}
	case Uint32:
		v.u32 = make([]uint32, len(raw)/4)
		for i := range v.u32 {
			v.u32[i] = binary.LittleEndian.Uint32(raw[i*4:])
		}
	}
	return v, nil
}

func (v View) Type() ElementType { return v.typ }

// Len returns the number of elements.
func (v View) Len() int {
	switch v.typ {
	case Uint8:
		return len(v.u8)
	case Int16:
		return len(v.i16)
	case Int32:
		return len(v.i32)
	case Uint32:
		return len(v.u32)
	}
	return 0
}

// Bytes returns the size of the view in bytes.
func (v View) Bytes() int {
	return v.Len() * v.typ.Size()
}

func (v View) Uint8() []uint8   { return v.u8 }
func (v View) Int16() []int16   { return v.i16 }
func (v View) Int32() []int32   { return v.i32 }
func (v View) Uint32() []uint32 { return v.u32 }
