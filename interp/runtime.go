package interp

import (
	"fmt"
	"math"
	"strings"

	"ember/resolve"

	"github.com/llir/llvm/ir"
)

// callRuntime executes a call to a function of the standard runtime.
func (m *Machine) callRuntime(fn *ir.Func, args []Value) Value {
	rf, ok := resolve.LookupSymbol(fn.Name())
	if !ok {
		trap("call to undefined function `%s`", fn.Name())
	}

	if len(args) != len(rf.Params) {
		trap("`%s` expects %d arguments but got %d", fn.Name(), len(rf.Params), len(args))
	}

	switch rf.Name() {
	case "print":
		m.write(readCString(args[0].Ptr))
	case "println":
		m.write(readCString(args[0].Ptr) + "\n")
	case "printint":
		m.write(fmt.Sprintf("%d\n", int64(args[0].Int)))
	case "printflt":
		m.write(fmt.Sprintf("%f\n", args[0].Float))
	default:
		trap("runtime function `%s` is not implemented", fn.Name())
	}

	return Value{}
}

// write writes program output.
func (m *Machine) write(s string) {
	if _, err := m.out.Write([]byte(s)); err != nil {
		trap("failed to write output: %s", err)
	}
}

// readCString reads the NUL-terminated byte string starting at ptr.
func readCString(ptr *Pointer) string {
	if ptr == nil {
		trap("dereference of invalid pointer")
	}

	if len(ptr.path) == 0 {
		b := ptr.target().Int
		if b == 0 {
			return ""
		}

		trap("unterminated string")
	}

	parent := &Pointer{obj: ptr.obj, path: ptr.path[:len(ptr.path)-1]}
	bytes := parent.target().Agg
	start := ptr.path[len(ptr.path)-1]

	var sb strings.Builder
	for i := start; ; i++ {
		if i < 0 || i >= len(bytes) {
			trap("unterminated string")
		}

		b := bytes[i].Int
		if b == 0 {
			break
		} else if b > math.MaxUint8 {
			trap("string byte out of range")
		}

		sb.WriteByte(byte(b))
	}

	return sb.String()
}
