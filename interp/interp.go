// Package interp executes generated LLVM modules in-process.  It supports the
// subset of LLVM IR produced by the ember code generator and implements the
// standard runtime natively.
package interp

import (
	"fmt"
	"io"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"
)

// DefaultStepBudget is the number of instructions a program may execute before
// it is stopped.
const DefaultStepBudget = 50_000_000

// maxCallDepth is the maximum depth of nested calls.
const maxCallDepth = 10_000

// Trap is a runtime error raised while executing a module.
type Trap struct {
	Message string
}

func (t *Trap) Error() string {
	return "trap: " + t.Message
}

// trap raises a trap.  It is caught by Machine.Run.
func trap(msg string, args ...interface{}) {
	panic(&Trap{Message: fmt.Sprintf(msg, args...)})
}

// -----------------------------------------------------------------------------

// Machine executes the functions of a single module.
type Machine struct {
	mod *ir.Module

	// out is the writer that the runtime's print functions write to.
	out io.Writer

	// globals stores the storage of the module's globals.  Globals are
	// initialized the first time they are used.
	globals map[*ir.Global]*object

	// Budget is the number of steps remaining.
	Budget int

	depth int
}

// NewMachine creates a new machine for mod writing program output to out.
func NewMachine(mod *ir.Module, out io.Writer) *Machine {
	return &Machine{
		mod:     mod,
		out:     out,
		globals: make(map[*ir.Global]*object),
		Budget:  DefaultStepBudget,
	}
}

// Run executes the `main` function of mod and returns the value it returns.  A
// `main` returning nothing yields 0.
func Run(mod *ir.Module, out io.Writer) (int64, error) {
	return NewMachine(mod, out).Run("main")
}

// Run calls the named function, which must take no arguments, and returns its
// result as a signed integer.
func (m *Machine) Run(name string) (result int64, err error) {
	defer func() {
		if x := recover(); x != nil {
			if t, ok := x.(*Trap); ok {
				err = t
				return
			}

			panic(x)
		}
	}()

	fn := m.lookupFunc(name)
	if fn == nil {
		return 0, fmt.Errorf("module has no function named `%s`", name)
	} else if len(fn.Params) > 0 {
		return 0, fmt.Errorf("function `%s` must not take any parameters", name)
	}

	ret := m.call(fn, nil)

	if bits, ok := intRetBits(fn); ok {
		if bits == 1 {
			return int64(ret.Int), nil
		}

		return signExtend(ret.Int, bits), nil
	}

	return 0, nil
}

// lookupFunc finds a function of the module by name.
func (m *Machine) lookupFunc(name string) *ir.Func {
	for _, fn := range m.mod.Funcs {
		if fn.Name() == name {
			return fn
		}
	}

	return nil
}

// step consumes one step of the budget.
func (m *Machine) step() {
	m.Budget--
	if m.Budget < 0 {
		trap("step budget exhausted")
	}
}

// -----------------------------------------------------------------------------

// frame is the state of a single function activation.
type frame struct {
	m      *Machine
	locals map[value.Value]Value
}

// call executes a function with the given arguments.
func (m *Machine) call(fn *ir.Func, args []Value) Value {
	if len(fn.Blocks) == 0 {
		return m.callRuntime(fn, args)
	}

	m.depth++
	defer func() { m.depth-- }()

	if m.depth > maxCallDepth {
		trap("call stack overflow in `%s`", fn.Name())
	}

	fr := &frame{m: m, locals: make(map[value.Value]Value)}
	for i, param := range fn.Params {
		fr.locals[param] = args[i]
	}

	block := fn.Blocks[0]
	for {
		for _, inst := range block.Insts {
			m.step()
			fr.exec(inst)
		}

		m.step()
		switch term := block.Term.(type) {
		case *ir.TermRet:
			if term.X == nil {
				return Value{}
			}

			return copyValue(fr.eval(term.X))
		case *ir.TermBr:
			block = term.Succs()[0]
		case *ir.TermCondBr:
			succs := term.Succs()
			if fr.eval(term.Cond).Int&1 == 1 {
				block = succs[0]
			} else {
				block = succs[1]
			}
		case *ir.TermUnreachable:
			trap("reached unreachable code in `%s`", fn.Name())
		case nil:
			trap("block `%s` of `%s` has no terminator", block.Name(), fn.Name())
		default:
			trap("unsupported terminator %T", term)
		}
	}
}

// intRetBits returns the bit width of a function's integer return type.
func intRetBits(fn *ir.Func) (uint64, bool) {
	it, ok := fn.Sig.RetType.(*types.IntType)
	if !ok {
		return 0, false
	}

	return it.BitSize, true
}
