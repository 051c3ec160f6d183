package typing

import "fmt"

// DataType is the parent interface for all types in ember.
type DataType interface {
	// Repr returns a representative string of the type for purposes of error
	// reporting.
	Repr() string

	// equals is the internal, type-specific implementation of Equals.  It
	// should NEVER be called directly except by Equals.
	equals(DataType) bool
}

// Equals returns whether two data types are exactly identical.  A nil type is
// only equal to another nil type.
func Equals(a, b DataType) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	return a.equals(b)
}

// -----------------------------------------------------------------------------

// PrimType represents a primitive type.  It should be one of the enumerated
// primitive types.
type PrimType int

// Enumeration of different primitive types.  The ordering matters: unsigned
// integers come first, then signed integers, then floats.
const (
	PrimU8 PrimType = iota
	PrimU16
	PrimU32
	PrimU64
	PrimI8
	PrimI16
	PrimI32
	PrimI64
	PrimF32
	PrimF64
	PrimBool
	PrimString
)

func (pt PrimType) Repr() string {
	switch pt {
	case PrimU8:
		return "u8"
	case PrimU16:
		return "u16"
	case PrimU32:
		return "u32"
	case PrimU64:
		return "u64"
	case PrimI8:
		return "i8"
	case PrimI16:
		return "i16"
	case PrimI32:
		return "i32"
	case PrimI64:
		return "i64"
	case PrimF32:
		return "f32"
	case PrimF64:
		return "f64"
	case PrimBool:
		return "bool"
	default:
		// PrimString
		return "string"
	}
}

func (pt PrimType) equals(other DataType) bool {
	if opt, ok := other.(PrimType); ok {
		return pt == opt
	}

	return false
}

// -----------------------------------------------------------------------------

// ArrayType represents a fixed-length array type.  The length is written
// explicitly (`T[N]`) or inferred from the array literal initializing the
// declared variable (`T[]`).
type ArrayType struct {
	ElemType DataType

	// Len is the number of elements in the array.  It is UnboundLen until the
	// parser resolves it.
	Len int
}

// UnboundLen is the length of an array type whose length has not been
// determined yet.
const UnboundLen = -1

func (at *ArrayType) Repr() string {
	if at.Len == UnboundLen {
		return at.ElemType.Repr() + "[]"
	}

	return fmt.Sprintf("%s[%d]", at.ElemType.Repr(), at.Len)
}

func (at *ArrayType) equals(other DataType) bool {
	if oat, ok := other.(*ArrayType); ok {
		return at.Len == oat.Len && Equals(at.ElemType, oat.ElemType)
	}

	return false
}

// -----------------------------------------------------------------------------

// StructType represents a named reference to a struct definition.  The fields
// of the struct are stored in the generator's struct table.
type StructType struct {
	Name string
}

func (st *StructType) Repr() string {
	return st.Name
}

func (st *StructType) equals(other DataType) bool {
	if ost, ok := other.(*StructType); ok {
		return st.Name == ost.Name
	}

	return false
}
