package generate

import (
	"strings"
	"testing"

	"ember/report"
	"ember/syntax"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/enum"
	"github.com/nalgeon/be"
)

func genModule(t *testing.T, src string) *ir.Module {
	t.Helper()

	defs, err := syntax.ParseSource(src)
	be.Err(t, err, nil)

	mod, err := Generate(defs)
	be.Err(t, err, nil)

	return mod
}

func findFunc(t *testing.T, mod *ir.Module, name string) *ir.Func {
	t.Helper()

	for _, fn := range mod.Funcs {
		if fn.Name() == name {
			return fn
		}
	}

	t.Fatalf("no function named %s", name)
	return nil
}

func blockNames(fn *ir.Func) []string {
	names := make([]string, len(fn.Blocks))
	for i, block := range fn.Blocks {
		names[i] = block.Name()
	}

	return names
}

func countPrefix(names []string, role string) int {
	n := 0
	for _, name := range names {
		if name == role || strings.HasPrefix(name, role+".") {
			n++
		}
	}

	return n
}

// -----------------------------------------------------------------------------

func TestEveryBlockIsTerminated(t *testing.T) {
	mod := genModule(t, `
func f(n i64) i64 {
  let i64! x = n
  loop x > 0 {
    if x == 3 {
      break
    } else if x == 4 {
      x = x - 2
    }

    x = x - 1
  }

  return x
}

func main() {
  let i64[] xs = [1, 2]
  loop range v, i = xs {
  }
}
`)

	for _, fn := range mod.Funcs {
		for _, block := range fn.Blocks {
			be.True(t, block.Term != nil)
		}
	}
}

func TestConditionalBlocks(t *testing.T) {
	mod := genModule(t, `
func main(a i64) i64 {
  if a == 0 {
    return 0
  } else if a == 1 {
    return 1
  } else if a == 2 {
    return 2
  } else {
    return 3
  }
}
`)

	names := blockNames(findFunc(t, mod, "main"))
	be.Equal(t, names[0], "entry")
	be.Equal(t, countPrefix(names, "then"), 3)
	be.Equal(t, countPrefix(names, "else"), 3)
	be.Equal(t, countPrefix(names, "if_cont"), 1)
	be.Equal(t, names[len(names)-1], "if_cont")
}

func TestUnreachableContinuation(t *testing.T) {
	mod := genModule(t, `
func main(a i64) i64 {
  if a == 0 {
    return 0
  } else {
    return 1
  }
}

func spin() {
  loop {
  }
}
`)

	cont := findFunc(t, mod, "main").Blocks
	_, ok := cont[len(cont)-1].Term.(*ir.TermUnreachable)
	be.True(t, ok)

	spin := findFunc(t, mod, "spin")
	be.Equal(t, blockNames(spin), []string{"entry", "loop", "loop_cont"})
	_, ok = spin.Blocks[2].Term.(*ir.TermUnreachable)
	be.True(t, ok)
}

func TestLoopBlocks(t *testing.T) {
	mod := genModule(t, `
func main() {
  let i64! a = 0
  loop a < 10 {
    a = a + 1
  }

  let i64[] xs = [1, 2, 3]
  loop range v, i = xs {
  }

  loop range v, i = xs {
  }
}
`)

	be.Equal(t, blockNames(findFunc(t, mod, "main")), []string{
		"entry",
		"loop_init", "loop", "loop_cont",
		"for_init", "for_body", "for_cond", "for_cont",
		"for_init.1", "for_body.1", "for_cond.1", "for_cont.1",
	})
}

func TestAllocasInEntry(t *testing.T) {
	mod := genModule(t, `
func main(n i64) {
  let i64 a = n
  if a > 0 {
    let i64 b = a
    loop {
      let i64 c = b
      break
    }
  }
}
`)

	entry := findFunc(t, mod, "main").Blocks[0]

	var names []string
	for _, inst := range entry.Insts {
		if alloca, ok := inst.(*ir.InstAlloca); ok {
			names = append(names, alloca.Name())
		} else {
			break
		}
	}

	be.Equal(t, names, []string{"n.addr", "a.addr", "b.addr", "c.addr"})
}

func TestFloatLessEqualIsOrdered(t *testing.T) {
	mod := genModule(t, `
func le(a f64, b f64) bool {
  return a <= b
}
`)

	var preds []enum.FPred
	for _, block := range findFunc(t, mod, "le").Blocks {
		for _, inst := range block.Insts {
			if cmp, ok := inst.(*ir.InstFCmp); ok {
				preds = append(preds, cmp.Pred)
			}
		}
	}

	be.Equal(t, preds, []enum.FPred{enum.FPredOLE})
}

func TestStringLiteralsAreInterned(t *testing.T) {
	mod := genModule(t, `
import std::io

func main() {
  io::println("same")
  io::println("same")
  io::print("other")
}
`)

	be.Equal(t, len(mod.Globals), 2)
	be.Equal(t, mod.Globals[0].Name(), "__strlit.0")
	be.True(t, mod.Globals[0].Immutable)

	var runtime []string
	for _, fn := range mod.Funcs {
		if len(fn.Blocks) == 0 {
			runtime = append(runtime, fn.Name())
		}
	}

	be.Equal(t, runtime, []string{"__std__io__println", "__std__io__print"})
}

func TestModuleText(t *testing.T) {
	mod := genModule(t, `
struct Pair { a u32, b u32 }

func first(p Pair) u32 {
  return p.a
}
`)

	text := mod.String()
	be.True(t, strings.Contains(text, "%Pair = type { i32, i32 }"))
	be.True(t, strings.Contains(text, "%string = type { i8*, i64 }"))
	be.True(t, strings.Contains(text, "define i32 @first(%Pair %p)"))
	be.True(t, strings.Contains(text, "nounwind"))
}

func TestImmutableAssignmentFailsAtGeneration(t *testing.T) {
	defs, err := syntax.ParseSource("func main() {\n  let i64 x = 1\n  x = 2\n}")
	be.Err(t, err, nil)

	mod, err := Generate(defs)
	be.True(t, mod == nil)
	be.True(t, report.IsPhase(err, report.PhaseGenerate))
	be.True(t, strings.Contains(err.Error(), "cannot assign to immutable variable `x`"))
	be.True(t, strings.HasPrefix(err.Error(), "3:3:"))
}

func TestDuplicateDefinitions(t *testing.T) {
	tests := []struct {
		src string
		msg string
	}{
		{"func f() {}\nfunc f() {}", "multiple functions named `f`"},
		{"struct S { a i64 }\nstruct S { b i64 }", "multiple structs named `S`"},
	}

	for _, tt := range tests {
		defs, err := syntax.ParseSource(tt.src)
		be.Err(t, err, nil)

		_, err = Generate(defs)
		be.True(t, report.IsPhase(err, report.PhaseGenerate))
		be.True(t, strings.Contains(err.Error(), tt.msg))
	}
}

func TestCallArity(t *testing.T) {
	defs, err := syntax.ParseSource("func f(a i64) {}\nfunc main() {\n  f(1, 2)\n}")
	be.Err(t, err, nil)

	_, err = Generate(defs)
	be.True(t, strings.Contains(err.Error(), "function `f` expects 1 arguments but got 2"))
}
