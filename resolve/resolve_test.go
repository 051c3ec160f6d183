package resolve

import (
	"testing"

	"github.com/nalgeon/be"
)

func TestMangle(t *testing.T) {
	be.Equal(t, Mangle([]string{"std", "io", "println"}), "__std__io__println")
	be.Equal(t, Mangle([]string{"main"}), "__main")
}

func TestAddImport(t *testing.T) {
	r := NewResolver()

	be.True(t, r.AddImport([]string{"std"}))
	be.True(t, r.AddImport([]string{"std", "io"}))
	be.True(t, r.AddImport([]string{"std", "io", "printint"}))
	be.True(t, !r.AddImport([]string{"std", "fs"}))
	be.True(t, !r.AddImport([]string{"std", "io", "println", "x"}))
}

func TestResolveFullPath(t *testing.T) {
	r := NewResolver()
	r.AddImport([]string{"std", "io"})

	rf, ok := r.Resolve([]string{"std", "io"}, "println")
	be.True(t, ok)
	be.Equal(t, rf.Symbol(), "__std__io__println")
}

func TestResolveModuleAlias(t *testing.T) {
	r := NewResolver()
	r.AddImport([]string{"std", "io"})

	rf, ok := r.Resolve([]string{"io"}, "printint")
	be.True(t, ok)
	be.Equal(t, rf.Symbol(), "__std__io__printint")
	be.Equal(t, rf.Name(), "printint")
}

func TestResolveDirectImport(t *testing.T) {
	r := NewResolver()
	r.AddImport([]string{"std", "io", "printflt"})

	rf, ok := r.Resolve(nil, "printflt")
	be.True(t, ok)
	be.Equal(t, rf.Symbol(), "__std__io__printflt")

	_, ok = r.Resolve(nil, "println")
	be.True(t, !ok)
}

func TestResolveWithoutImport(t *testing.T) {
	r := NewResolver()

	_, ok := r.Resolve([]string{"std", "io"}, "println")
	be.True(t, !ok)
}

func TestLookupSymbol(t *testing.T) {
	rf, ok := LookupSymbol("__std__io__print")
	be.True(t, ok)
	be.Equal(t, len(rf.Params), 1)

	_, ok = LookupSymbol("__std__io__flush")
	be.True(t, !ok)
}
