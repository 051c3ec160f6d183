package depm

// Module represents a single ember module: a directory containing an entry
// source file and, optionally, an `ember-mod.toml` file configuring how it is
// built.
type Module struct {
	// Name is the name of the module.
	Name string

	// AbsPath is the absolute path to the module directory.
	AbsPath string

	// EntryPath is the absolute path to the source file compilation starts
	// from.
	EntryPath string

	// OutputPath is the absolute path of the compiler output without any file
	// extension.  The driver adds the extension of the selected output format.
	OutputPath string

	// RuntimePath is the absolute path to the prebuilt runtime archive linked
	// into executables.  It is empty if no runtime was configured.
	RuntimePath string

	// CC is the C compiler used to assemble and link LLVM modules.
	CC string

	// CFlags is the list of extra flags passed to the C compiler.
	CFlags []string

	// HasModuleFile indicates whether the module was loaded from a module file
	// or synthesized from defaults.
	HasModuleFile bool
}
