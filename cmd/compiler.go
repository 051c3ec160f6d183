package cmd

import (
	"ember/ast"
	"ember/common"
	"ember/depm"
	"ember/generate"
	"ember/report"
	"ember/syntax"
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/llir/llvm/ir"
)

// Compiler represents the state of a single compilation of an ember module.
type Compiler struct {
	// mod is the module being compiled.
	mod *depm.Module

	// reprPath is the path to the entry file as it is displayed to the user.
	reprPath string

	// source is the text of the entry file.  It is empty until the file is
	// read by the first phase.
	source string
}

// NewCompiler creates a new compiler for the module at `path`.  `path` may
// either be the module directory or an ember source file, in which case the
// file is used as the entry file of the module in its directory.
func NewCompiler(path string) (*Compiler, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("error calculating absolute path: %w", err)
	}

	finfo, err := os.Stat(absPath)
	if err != nil {
		return nil, err
	}

	modDir, entryPath := absPath, ""
	if !finfo.IsDir() {
		if filepath.Ext(absPath) != common.EmberFileExt {
			return nil, fmt.Errorf("`%s` is not an ember source file", path)
		}

		modDir, entryPath = filepath.Dir(absPath), absPath
	}

	mod, err := depm.LoadModule(modDir)
	if err != nil {
		return nil, err
	}

	if entryPath != "" {
		mod.EntryPath = entryPath
	}

	return &Compiler{mod: mod, reprPath: reprPath(mod.EntryPath)}, nil
}

// reprPath returns the path of a file relative to the working directory if
// possible.
func reprPath(absPath string) string {
	if wd, err := os.Getwd(); err == nil {
		if rel, err := filepath.Rel(wd, absPath); err == nil {
			return rel
		}
	}

	return absPath
}

// readSource reads the entry file of the module.
func (c *Compiler) readSource() error {
	buff, err := ioutil.ReadFile(c.mod.EntryPath)
	if err != nil {
		return fmt.Errorf("failed to read source file `%s`: %w", c.reprPath, err)
	}

	c.source = string(buff)
	return nil
}

// Tokenize reads and lexes the entry file.
func (c *Compiler) Tokenize() ([]*syntax.Token, error) {
	if err := c.readSource(); err != nil {
		return nil, err
	}

	return syntax.Tokenize(c.source)
}

// Parse reads, lexes and parses the entry file.
func (c *Compiler) Parse() ([]ast.Def, error) {
	report.ReportBeginPhase()

	toks, err := c.Tokenize()
	if err != nil {
		return nil, err
	}

	defs, err := syntax.Parse(toks)
	if err != nil {
		return nil, err
	}

	report.ReportEndPhase("Parsing")
	return defs, nil
}

// Compile runs the parsing and generation phases of the compiler and returns
// the generated LLVM module.
func (c *Compiler) Compile() (*ir.Module, error) {
	defs, err := c.Parse()
	if err != nil {
		return nil, err
	}

	report.ReportBeginPhase()

	llMod, err := generate.Generate(defs)
	if err != nil {
		return nil, err
	}

	llMod.SourceFilename = c.reprPath

	report.ReportEndPhase("Generation")
	return llMod, nil
}

// Emit writes the LLVM module to the output of the build profile, assembling
// and linking it with the profile's C compiler when required.
func (c *Compiler) Emit(llMod *ir.Module, prof *BuildProfile) error {
	if err := os.MkdirAll(filepath.Dir(prof.OutputPath), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	llPath := prof.OutputPath + formatExts[FormatLLVM]
	if err := writeOutputFile(llPath, llMod.String()); err != nil {
		return err
	}

	if prof.OutputFormat == FormatLLVM {
		return nil
	}

	report.ReportBeginPhase()

	if err := runCC(prof, llPath); err != nil {
		return err
	}

	// the textual module is only an intermediate for the other formats
	if err := os.Remove(llPath); err != nil {
		return fmt.Errorf("failed to delete intermediate file `%s`: %w", llPath, err)
	}

	if prof.OutputFormat == FormatExe {
		report.ReportEndPhase("Linking")
	} else {
		report.ReportEndPhase("Assembly")
	}

	return nil
}

// reportError reports an error produced by compiling the module and ends the
// process.
func (c *Compiler) reportError(err error) {
	report.ReportCompileError(c.reprPath, c.source, err)
	report.ReportCompilationFinished("")
	os.Exit(1)
}

// -----------------------------------------------------------------------------

// writeOutputFile is used to quickly write an output file for the compiler.
func writeOutputFile(fpath, content string) error {
	// open or create the file
	file, err := os.OpenFile(fpath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("failed to open output file `%s`: %w", fpath, err)
	}
	defer file.Close()

	// write the data
	if _, err = file.WriteString(content); err != nil {
		return fmt.Errorf("failed to write output to file `%s`: %w", fpath, err)
	}

	return nil
}
