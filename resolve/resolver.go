package resolve

// Resolver maps the calls made through imports to the runtime functions they
// refer to.  Imports are recorded in the order they are declared.
type Resolver struct {
	imports [][]string
}

// NewResolver creates a new resolver with no imports.
func NewResolver() *Resolver {
	return &Resolver{}
}

// AddImport records an import declaration.  It returns false if the path names
// neither a runtime module nor a runtime function.
func (r *Resolver) AddImport(path []string) bool {
	if !isKnownPath(path) {
		return false
	}

	r.imports = append(r.imports, path)
	return true
}

// Resolve finds the runtime function called through path with the given name.
// path may be empty for a bare call.  A call resolves when:
//
//   - its full path is a runtime function covered by an import,
//   - its first segment is the last segment of an imported module, as in
//     `io::println` after `import std::io`, or
//   - it is a bare call to a function imported directly, as in `println` after
//     `import std::io::println`.
func (r *Resolver) Resolve(path []string, name string) (*RuntimeFunc, bool) {
	full := append(append([]string{}, path...), name)

	for _, imp := range r.imports {
		if len(path) > 0 && hasPrefix(full, imp) {
			if rf, ok := LookupRuntime(full); ok {
				return rf, true
			}
		}

		if len(path) > 0 && path[0] == imp[len(imp)-1] {
			aliased := append(append([]string{}, imp...), full[1:]...)
			if rf, ok := LookupRuntime(aliased); ok {
				return rf, true
			}
		}

		if len(path) == 0 && imp[len(imp)-1] == name {
			if rf, ok := LookupRuntime(imp); ok {
				return rf, true
			}
		}
	}

	return nil, false
}

// isKnownPath returns whether path is a prefix of the path of some runtime
// function.
func isKnownPath(path []string) bool {
	for _, rf := range runtimeFuncs {
		if hasPrefix(rf.Path, path) {
			return true
		}
	}

	return false
}

// hasPrefix returns whether prefix is a leading subsequence of path.
func hasPrefix(path, prefix []string) bool {
	if len(prefix) > len(path) {
		return false
	}

	for i, seg := range prefix {
		if path[i] != seg {
			return false
		}
	}

	return true
}
