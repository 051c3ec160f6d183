package interp

import (
	"math"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/enum"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"
)

// exec executes a single non-terminator instruction.
func (fr *frame) exec(inst ir.Instruction) {
	var result Value

	switch v := inst.(type) {
	case *ir.InstAlloca:
		result = Value{Ptr: &Pointer{obj: &object{val: zeroValue(v.ElemType)}}}
	case *ir.InstLoad:
		result = copyValue(*fr.evalPtr(v.Src).target())
	case *ir.InstStore:
		*fr.evalPtr(v.Dst).target() = copyValue(fr.eval(v.Src))
		return
	case *ir.InstGetElementPtr:
		result = Value{Ptr: fr.gep(fr.evalPtr(v.Src), v.Indices)}
	case *ir.InstExtractValue:
		result = copyValue(*aggElem(fr.eval(v.X), v.Indices))
	case *ir.InstInsertValue:
		agg := copyValue(fr.eval(v.X))
		*aggElem(agg, v.Indices) = copyValue(fr.eval(v.Elem))
		result = agg
	case *ir.InstCall:
		callee, ok := v.Callee.(*ir.Func)
		if !ok {
			trap("indirect calls are not supported")
		}

		args := make([]Value, len(v.Args))
		for i, arg := range v.Args {
			args[i] = copyValue(fr.eval(arg))
		}

		result = fr.m.call(callee, args)
	case *ir.InstICmp:
		result = boolValue(icmp(v.Pred, fr.eval(v.X).Int, fr.eval(v.Y).Int, bitSize(v.X.Type())))
	case *ir.InstFCmp:
		result = boolValue(fcmp(v.Pred, fr.eval(v.X).Float, fr.eval(v.Y).Float))
	default:
		if r, ok := fr.execArith(inst); ok {
			result = r
		} else if r, ok := fr.execConv(inst); ok {
			result = r
		} else {
			trap("unsupported instruction %T", inst)
		}
	}

	if val, ok := inst.(value.Value); ok {
		fr.locals[val] = result
	}
}

// aggElem returns the element of an aggregate at the given index path.
func aggElem(agg Value, indices []uint64) *Value {
	v := &agg
	for _, i := range indices {
		if i >= uint64(len(v.Agg)) {
			trap("aggregate index %d out of range", i)
		}

		v = &v.Agg[i]
	}

	return v
}

// gep computes the address of an element within the value base points to.
// The first index steps over whole objects: only 0 is allowed since pointers
// never point into arrays of objects.
func (fr *frame) gep(base *Pointer, indices []value.Value) *Pointer {
	if len(indices) == 0 {
		return base
	}

	if first := fr.evalIndex(indices[0]); first != 0 {
		trap("pointer arithmetic is not supported")
	}

	path := make([]int, len(indices)-1)
	for i, ndx := range indices[1:] {
		path[i] = int(fr.evalIndex(ndx))
	}

	ptr := base.offset(path...)

	// check the address is valid right away
	ptr.target()
	return ptr
}

// evalIndex evaluates a signed GEP index.
func (fr *frame) evalIndex(v value.Value) int64 {
	return signExtend(fr.eval(v).Int, bitSize(v.Type()))
}

// evalPtr evaluates a value which must be a valid pointer.
func (fr *frame) evalPtr(v value.Value) *Pointer {
	ptr := fr.eval(v).Ptr
	if ptr == nil {
		trap("dereference of invalid pointer")
	}

	return ptr
}

// -----------------------------------------------------------------------------

// eval evaluates an operand.
func (fr *frame) eval(v value.Value) Value {
	switch c := v.(type) {
	case *constant.Int:
		if c.X.Sign() < 0 {
			return Value{Int: truncBits(uint64(c.X.Int64()), c.Typ.BitSize)}
		}

		return Value{Int: truncBits(c.X.Uint64(), c.Typ.BitSize)}
	case *constant.Float:
		f, _ := c.X.Float64()
		return Value{Float: f}
	case *constant.Struct:
		agg := make([]Value, len(c.Fields))
		for i, field := range c.Fields {
			agg[i] = fr.eval(field)
		}

		return Value{Agg: agg}
	case *constant.Array:
		agg := make([]Value, len(c.Elems))
		for i, elem := range c.Elems {
			agg[i] = fr.eval(elem)
		}

		return Value{Agg: agg}
	case *constant.CharArray:
		agg := make([]Value, len(c.X))
		for i, b := range c.X {
			agg[i] = Value{Int: uint64(b)}
		}

		return Value{Agg: agg}
	case *constant.ZeroInitializer:
		return zeroValue(c.Typ)
	case *constant.Undef:
		return zeroValue(c.Typ)
	case *constant.ExprGetElementPtr:
		return Value{Ptr: fr.gep(fr.evalPtr(c.Src), constIndices(c.Indices))}
	case *ir.Global:
		return Value{Ptr: &Pointer{obj: fr.m.global(c)}}
	case *ir.Func:
		trap("function values are not supported")
	}

	if val, ok := fr.locals[v]; ok {
		return val
	}

	trap("use of undefined value %s", v.Ident())
	return Value{}
}

// constIndices converts constant GEP indices into values.
func constIndices(indices []constant.Constant) []value.Value {
	vals := make([]value.Value, len(indices))
	for i, ndx := range indices {
		vals[i] = ndx
	}

	return vals
}

// global returns the storage of a global, initializing it if necessary.
func (m *Machine) global(glob *ir.Global) *object {
	if obj, ok := m.globals[glob]; ok {
		return obj
	}

	obj := &object{}
	m.globals[glob] = obj

	if glob.Init != nil {
		fr := &frame{m: m, locals: make(map[value.Value]Value)}
		obj.val = fr.eval(glob.Init)
	} else {
		obj.val = zeroValue(glob.ContentType)
	}

	return obj
}

// -----------------------------------------------------------------------------

// execArith executes an arithmetic or bitwise instruction.
func (fr *frame) execArith(inst ir.Instruction) (Value, bool) {
	switch v := inst.(type) {
	case *ir.InstAdd:
		return fr.intOp(v.X, v.Y, func(x, y uint64, _ uint64) uint64 { return x + y }), true
	case *ir.InstSub:
		return fr.intOp(v.X, v.Y, func(x, y uint64, _ uint64) uint64 { return x - y }), true
	case *ir.InstMul:
		return fr.intOp(v.X, v.Y, func(x, y uint64, _ uint64) uint64 { return x * y }), true
	case *ir.InstUDiv:
		return fr.intOp(v.X, v.Y, func(x, y uint64, _ uint64) uint64 {
			checkDivisor(y)
			return x / y
		}), true
	case *ir.InstSDiv:
		return fr.intOp(v.X, v.Y, func(x, y uint64, bits uint64) uint64 {
			checkDivisor(y)
			return uint64(signExtend(x, bits) / signExtend(y, bits))
		}), true
	case *ir.InstURem:
		return fr.intOp(v.X, v.Y, func(x, y uint64, _ uint64) uint64 {
			checkDivisor(y)
			return x % y
		}), true
	case *ir.InstSRem:
		return fr.intOp(v.X, v.Y, func(x, y uint64, bits uint64) uint64 {
			checkDivisor(y)
			return uint64(signExtend(x, bits) % signExtend(y, bits))
		}), true
	case *ir.InstAnd:
		return fr.intOp(v.X, v.Y, func(x, y uint64, _ uint64) uint64 { return x & y }), true
	case *ir.InstOr:
		return fr.intOp(v.X, v.Y, func(x, y uint64, _ uint64) uint64 { return x | y }), true
	case *ir.InstXor:
		return fr.intOp(v.X, v.Y, func(x, y uint64, _ uint64) uint64 { return x ^ y }), true
	case *ir.InstShl:
		return fr.intOp(v.X, v.Y, func(x, y uint64, bits uint64) uint64 {
			checkShift(y, bits)
			return x << y
		}), true
	case *ir.InstLShr:
		return fr.intOp(v.X, v.Y, func(x, y uint64, bits uint64) uint64 {
			checkShift(y, bits)
			return x >> y
		}), true
	case *ir.InstAShr:
		return fr.intOp(v.X, v.Y, func(x, y uint64, bits uint64) uint64 {
			checkShift(y, bits)
			return uint64(signExtend(x, bits) >> y)
		}), true
	case *ir.InstFAdd:
		return fr.floatOp(v.X, v.Y, func(x, y float64) float64 { return x + y }), true
	case *ir.InstFSub:
		return fr.floatOp(v.X, v.Y, func(x, y float64) float64 { return x - y }), true
	case *ir.InstFMul:
		return fr.floatOp(v.X, v.Y, func(x, y float64) float64 { return x * y }), true
	case *ir.InstFDiv:
		return fr.floatOp(v.X, v.Y, func(x, y float64) float64 { return x / y }), true
	case *ir.InstFRem:
		return fr.floatOp(v.X, v.Y, math.Mod), true
	}

	return Value{}, false
}

// intOp applies an integer operation and truncates its result to the width of
// the operands.
func (fr *frame) intOp(x, y value.Value, op func(x, y, bits uint64) uint64) Value {
	bits := bitSize(x.Type())
	return Value{Int: truncBits(op(fr.eval(x).Int, fr.eval(y).Int, bits), bits)}
}

// floatOp applies a float operation and rounds its result to the precision of
// the operands.
func (fr *frame) floatOp(x, y value.Value, op func(x, y float64) float64) Value {
	return Value{Float: roundFloat(op(fr.eval(x).Float, fr.eval(y).Float), x.Type())}
}

// roundFloat rounds f to the precision of the float type typ.
func roundFloat(f float64, typ types.Type) float64 {
	if isFloat32(typ) {
		return float64(float32(f))
	}

	return f
}

func checkDivisor(y uint64) {
	if y == 0 {
		trap("integer division by zero")
	}
}

func checkShift(y, bits uint64) {
	if y >= bits {
		trap("shift amount %d is too large for a %d bit integer", y, bits)
	}
}

// -----------------------------------------------------------------------------

// execConv executes a conversion instruction.
func (fr *frame) execConv(inst ir.Instruction) (Value, bool) {
	switch v := inst.(type) {
	case *ir.InstTrunc:
		return Value{Int: truncBits(fr.eval(v.From).Int, bitSize(v.To))}, true
	case *ir.InstZExt:
		return Value{Int: fr.eval(v.From).Int}, true
	case *ir.InstSExt:
		x := signExtend(fr.eval(v.From).Int, bitSize(v.From.Type()))
		return Value{Int: truncBits(uint64(x), bitSize(v.To))}, true
	case *ir.InstFPTrunc:
		return Value{Float: roundFloat(fr.eval(v.From).Float, v.To)}, true
	case *ir.InstFPExt:
		return Value{Float: fr.eval(v.From).Float}, true
	case *ir.InstFPToUI:
		f := fr.eval(v.From).Float
		if f < 0 {
			return Value{Int: truncBits(uint64(int64(f)), bitSize(v.To))}, true
		}

		return Value{Int: truncBits(uint64(f), bitSize(v.To))}, true
	case *ir.InstFPToSI:
		return Value{Int: truncBits(uint64(int64(fr.eval(v.From).Float)), bitSize(v.To))}, true
	case *ir.InstUIToFP:
		return Value{Float: roundFloat(float64(fr.eval(v.From).Int), v.To)}, true
	case *ir.InstSIToFP:
		x := signExtend(fr.eval(v.From).Int, bitSize(v.From.Type()))
		return Value{Float: roundFloat(float64(x), v.To)}, true
	case *ir.InstBitCast:
		return fr.eval(v.From), true
	}

	return Value{}, false
}

// -----------------------------------------------------------------------------

func boolValue(b bool) Value {
	if b {
		return Value{Int: 1}
	}

	return Value{}
}

// icmp evaluates an integer comparison of two values of the given width.
func icmp(pred enum.IPred, x, y uint64, bits uint64) bool {
	sx, sy := signExtend(x, bits), signExtend(y, bits)

	switch pred {
	case enum.IPredEQ:
		return x == y
	case enum.IPredNE:
		return x != y
	case enum.IPredSLT:
		return sx < sy
	case enum.IPredSLE:
		return sx <= sy
	case enum.IPredSGT:
		return sx > sy
	case enum.IPredSGE:
		return sx >= sy
	case enum.IPredULT:
		return x < y
	case enum.IPredULE:
		return x <= y
	case enum.IPredUGT:
		return x > y
	case enum.IPredUGE:
		return x >= y
	}

	trap("unsupported integer predicate %s", pred)
	return false
}

// fcmp evaluates a float comparison.  Ordered predicates are false if either
// operand is NaN; unordered predicates are true.
func fcmp(pred enum.FPred, x, y float64) bool {
	unordered := math.IsNaN(x) || math.IsNaN(y)

	switch pred {
	case enum.FPredFalse:
		return false
	case enum.FPredTrue:
		return true
	case enum.FPredORD:
		return !unordered
	case enum.FPredUNO:
		return unordered
	case enum.FPredOEQ:
		return !unordered && x == y
	case enum.FPredONE:
		return !unordered && x != y
	case enum.FPredOLT:
		return !unordered && x < y
	case enum.FPredOLE:
		return !unordered && x <= y
	case enum.FPredOGT:
		return !unordered && x > y
	case enum.FPredOGE:
		return !unordered && x >= y
	case enum.FPredUEQ:
		return unordered || x == y
	case enum.FPredUNE:
		return unordered || x != y
	case enum.FPredULT:
		return unordered || x < y
	case enum.FPredULE:
		return unordered || x <= y
	case enum.FPredUGT:
		return unordered || x > y
	case enum.FPredUGE:
		return unordered || x >= y
	}

	trap("unsupported float predicate %s", pred)
	return false
}
