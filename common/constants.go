package common

// EmberVersion is the current ember version as a string.
const EmberVersion string = "0.1.0"

// EmberModuleFileName is the name for ember module files.
const EmberModuleFileName string = "ember-mod.toml"

// EmberFileExt is the file extension for an ember source file.
const EmberFileExt string = ".em"

// DefaultEntryFile is the entry source file used when a module does not name
// one.
const DefaultEntryFile string = "main" + EmberFileExt

// DefaultOutputName is the base name of compiler output files.
const DefaultOutputName string = "out"

// DefaultCC is the C compiler used to assemble and link generated LLVM.
const DefaultCC string = "clang"
