package typing

// IsInteger returns whether a type is a signed or unsigned integer type.
func IsInteger(dt DataType) bool {
	pt, ok := dt.(PrimType)
	return ok && pt <= PrimI64
}

// IsSigned returns whether a type is a signed integer type.
func IsSigned(dt DataType) bool {
	pt, ok := dt.(PrimType)
	return ok && PrimI8 <= pt && pt <= PrimI64
}

// IsFloat returns whether a type is a floating point type.
func IsFloat(dt DataType) bool {
	return dt == PrimF32 || dt == PrimF64
}

// IsNumeric returns whether a type is an integer or floating point type.
func IsNumeric(dt DataType) bool {
	return IsInteger(dt) || IsFloat(dt)
}

// IsBool returns whether a type is the boolean type.
func IsBool(dt DataType) bool {
	return dt == PrimBool
}

// BitSize returns the size in bits of a numeric or boolean type.  It returns 0
// for all other types.
func BitSize(dt DataType) int {
	pt, ok := dt.(PrimType)
	if !ok {
		return 0
	}

	switch pt {
	case PrimU8, PrimI8:
		return 8
	case PrimU16, PrimI16:
		return 16
	case PrimU32, PrimI32, PrimF32:
		return 32
	case PrimU64, PrimI64, PrimF64:
		return 64
	case PrimBool:
		return 1
	}

	return 0
}

// IsBound returns whether every array length within a type has been resolved.
func IsBound(dt DataType) bool {
	if at, ok := dt.(*ArrayType); ok {
		return at.Len != UnboundLen && IsBound(at.ElemType)
	}

	return true
}

// PrimTypeNames maps the source names of primitive types to their values.
var PrimTypeNames = map[string]PrimType{
	"u8":     PrimU8,
	"u16":    PrimU16,
	"u32":    PrimU32,
	"u64":    PrimU64,
	"i8":     PrimI8,
	"i16":    PrimI16,
	"i32":    PrimI32,
	"i64":    PrimI64,
	"f32":    PrimF32,
	"f64":    PrimF64,
	"bool":   PrimBool,
	"string": PrimString,
}
