package resolve

import (
	"ember/typing"
	"strings"
)

// RuntimeFunc describes a function provided by the prebuilt standard runtime.
// All runtime functions return nothing.
type RuntimeFunc struct {
	// Path is the full import path of the function including its name.
	Path []string

	// Params are the parameter types as seen by ember code.  String arguments
	// are passed to the runtime as a pointer to their bytes.
	Params []typing.DataType
}

// Name returns the unqualified name of the function.
func (rf *RuntimeFunc) Name() string {
	return rf.Path[len(rf.Path)-1]
}

// Symbol returns the linker symbol of the function.
func (rf *RuntimeFunc) Symbol() string {
	return Mangle(rf.Path)
}

// runtimeFuncs is the table of all runtime functions keyed by their joined
// import path.
var runtimeFuncs = map[string]*RuntimeFunc{}

func init() {
	for _, rf := range []*RuntimeFunc{
		{Path: []string{"std", "io", "print"}, Params: []typing.DataType{typing.PrimString}},
		{Path: []string{"std", "io", "println"}, Params: []typing.DataType{typing.PrimString}},
		{Path: []string{"std", "io", "printint"}, Params: []typing.DataType{typing.PrimI64}},
		{Path: []string{"std", "io", "printflt"}, Params: []typing.DataType{typing.PrimF64}},
	} {
		runtimeFuncs[joinPath(rf.Path)] = rf
	}
}

// LookupRuntime returns the runtime function with the given full path.
func LookupRuntime(path []string) (*RuntimeFunc, bool) {
	rf, ok := runtimeFuncs[joinPath(path)]
	return rf, ok
}

// LookupSymbol returns the runtime function with the given linker symbol.
func LookupSymbol(symbol string) (*RuntimeFunc, bool) {
	for _, rf := range runtimeFuncs {
		if rf.Symbol() == symbol {
			return rf, true
		}
	}

	return nil, false
}

// Mangle converts an import path into the name of the symbol it is linked as:
// `std::io::println` becomes `__std__io__println`.
func Mangle(path []string) string {
	return "__" + strings.Join(path, "__")
}

// joinPath joins an import path in its source form.
func joinPath(path []string) string {
	return strings.Join(path, "::")
}
