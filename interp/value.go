package interp

import (
	"github.com/llir/llvm/ir/types"
)

// Value is a runtime value.  Integers and booleans are stored in Int truncated
// to their bit width, floats in Float, pointers in Ptr and structs and arrays
// as a list of element values in Agg.
type Value struct {
	Int   uint64
	Float float64
	Ptr   *Pointer
	Agg   []Value
}

// object is a single allocation: the storage of an alloca or a global.
type object struct {
	val Value
}

// Pointer is the address of a value within an object.  path lists the indices
// of the aggregate elements to descend through from the object's value.
type Pointer struct {
	obj  *object
	path []int
}

// target returns the value the pointer points to.
func (p *Pointer) target() *Value {
	v := &p.obj.val
	for _, i := range p.path {
		if i < 0 || i >= len(v.Agg) {
			trap("memory access out of bounds")
		}

		v = &v.Agg[i]
	}

	return v
}

// offset returns a pointer to an element nested in the value p points to.
func (p *Pointer) offset(indices ...int) *Pointer {
	path := make([]int, len(p.path), len(p.path)+len(indices))
	copy(path, p.path)

	return &Pointer{obj: p.obj, path: append(path, indices...)}
}

// copyValue makes a deep copy of a value so that aggregates are never shared
// between storage locations.
func copyValue(v Value) Value {
	if v.Agg == nil {
		return v
	}

	agg := make([]Value, len(v.Agg))
	for i, elem := range v.Agg {
		agg[i] = copyValue(elem)
	}

	v.Agg = agg
	return v
}

// zeroValue returns the zero value of an LLVM type.
func zeroValue(typ types.Type) Value {
	switch v := typ.(type) {
	case *types.ArrayType:
		agg := make([]Value, v.Len)
		for i := range agg {
			agg[i] = zeroValue(v.ElemType)
		}

		return Value{Agg: agg}
	case *types.StructType:
		agg := make([]Value, len(v.Fields))
		for i, field := range v.Fields {
			agg[i] = zeroValue(field)
		}

		return Value{Agg: agg}
	}

	return Value{}
}

// -----------------------------------------------------------------------------

// truncBits truncates x to its lower bits bits.
func truncBits(x uint64, bits uint64) uint64 {
	if bits >= 64 {
		return x
	}

	return x & (1<<bits - 1)
}

// signExtend interprets the lower bits bits of x as a two's complement
// integer.
func signExtend(x uint64, bits uint64) int64 {
	if bits >= 64 {
		return int64(x)
	}

	shift := 64 - bits
	return int64(x<<shift) >> shift
}

// bitSize returns the bit width of an integer type.
func bitSize(typ types.Type) uint64 {
	if it, ok := typ.(*types.IntType); ok {
		return it.BitSize
	}

	trap("expected an integer type but got %s", typ)
	return 0
}

// isFloat32 returns whether typ is the 32 bit float type.
func isFloat32(typ types.Type) bool {
	ft, ok := typ.(*types.FloatType)
	return ok && ft.Kind == types.FloatKindFloat
}
