package cmd

import (
	"ember/depm"
	"fmt"
)

// BuildProfile represents the current build profile: the module settings with
// any command-line overrides applied.
type BuildProfile struct {
	// OutputPath is the path of the output file without an extension.
	OutputPath string

	// OutputFormat should be one of the enumerated output formats.
	OutputFormat int

	// CC is the C compiler used to assemble and link.
	CC string

	// CFlags are the extra flags passed to CC.
	CFlags []string

	// RuntimePath is the path to the runtime archive linked into executables.
	RuntimePath string
}

// Enumeration of possible output formats.
const (
	FormatLLVM = iota
	FormatASM
	FormatObj
	FormatExe
)

// formatNames maps command-line format names to enumerated format values.
var formatNames = map[string]int{
	"ll":  FormatLLVM,
	"asm": FormatASM,
	"obj": FormatObj,
	"exe": FormatExe,
}

// formatExts maps output formats to the extensions of their output files.
var formatExts = map[int]string{
	FormatLLVM: ".ll",
	FormatASM:  ".s",
	FormatObj:  ".o",
	FormatExe:  "",
}

// newBuildProfile creates a build profile from the module's settings.
// `format` and `outputPath` override them when non-empty.
func newBuildProfile(mod *depm.Module, format, outputPath string) (*BuildProfile, error) {
	prof := &BuildProfile{
		OutputPath:   mod.OutputPath,
		OutputFormat: FormatExe,
		CC:           mod.CC,
		CFlags:       mod.CFlags,
		RuntimePath:  mod.RuntimePath,
	}

	if format != "" {
		fmtVal, ok := formatNames[format]
		if !ok {
			return nil, fmt.Errorf("unknown output format: `%s`", format)
		}

		prof.OutputFormat = fmtVal
	}

	if outputPath != "" {
		prof.OutputPath = outputPath
	}

	return prof, nil
}

// outputFile returns the path of the final output file.
func (bp *BuildProfile) outputFile() string {
	return bp.OutputPath + formatExts[bp.OutputFormat]
}
