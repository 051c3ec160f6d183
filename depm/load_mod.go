package depm

import (
	"ember/common"
	"ember/report"
	"errors"
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml"
)

// tomlModule represents an ember module as it is encoded in TOML
type tomlModule struct {
	Name         string        `toml:"name"`
	EmberVersion string        `toml:"ember-version"`
	Entry        string        `toml:"entry"`
	Output       string        `toml:"output"`
	Runtime      string        `toml:"runtime"`
	Toolchain    tomlToolchain `toml:"toolchain"`
}

// tomlToolchain is the `[toolchain]` table of a module file.
type tomlToolchain struct {
	CC     string   `toml:"cc"`
	CFlags []string `toml:"cflags"`
}

// LoadModule loads and validates the module in the directory at `abspath`.  If
// the directory contains no module file, a module using the default settings
// is returned and named after the directory.
func LoadModule(abspath string) (*Module, error) {
	tomlMod := &tomlModule{}

	modFilePath := filepath.Join(abspath, common.EmberModuleFileName)
	buff, err := ioutil.ReadFile(modFilePath)
	switch {
	case err == nil:
		if err := toml.Unmarshal(buff, tomlMod); err != nil {
			return nil, fmt.Errorf("error parsing module file at `%s`: %w", abspath, err)
		}
	case errors.Is(err, os.ErrNotExist):
		tomlMod.Name = filepath.Base(abspath)
		tomlMod.EmberVersion = common.EmberVersion
	default:
		return nil, fmt.Errorf("error reading module file at `%s`: %w", abspath, err)
	}

	emMod := &Module{
		AbsPath:       abspath,
		HasModuleFile: err == nil,
	}

	// ensure that the base module is valid
	if err := validateModule(emMod, tomlMod); err != nil {
		return nil, err
	}

	return emMod, nil
}

// validateModule checks that the top level module contents are valid and moves
// them over to the module with all defaults applied.
func validateModule(emMod *Module, tomlMod *tomlModule) error {
	if tomlMod.Name == "" {
		return fmt.Errorf("module at `%s`: missing module name", emMod.AbsPath)
	}

	if !IsValidIdentifier(tomlMod.Name) {
		// directories without a module file need not be named like identifiers
		if emMod.HasModuleFile {
			return fmt.Errorf("module at `%s`: module name must be a valid identifier", emMod.AbsPath)
		}

		tomlMod.Name = "main"
	}

	if tomlMod.EmberVersion != common.EmberVersion {
		report.ReportWarning("Module", "version of module `%s` (v%s) does not match current ember version (v%s)",
			tomlMod.Name,
			tomlMod.EmberVersion,
			common.EmberVersion,
		)
	}

	if tomlMod.Entry == "" {
		tomlMod.Entry = common.DefaultEntryFile
	} else if filepath.Ext(tomlMod.Entry) != common.EmberFileExt {
		return fmt.Errorf("module `%s`: entry file `%s` is not an ember source file", tomlMod.Name, tomlMod.Entry)
	}

	if tomlMod.Output == "" {
		tomlMod.Output = common.DefaultOutputName
	}

	if tomlMod.Toolchain.CC == "" {
		tomlMod.Toolchain.CC = common.DefaultCC
	}

	// move all the relevant TOML module attributes over to the ember module
	emMod.Name = tomlMod.Name
	emMod.EntryPath = emMod.relPath(tomlMod.Entry)
	emMod.OutputPath = emMod.relPath(tomlMod.Output)
	if tomlMod.Runtime != "" {
		emMod.RuntimePath = emMod.relPath(tomlMod.Runtime)
	}
	emMod.CC = tomlMod.Toolchain.CC
	emMod.CFlags = tomlMod.Toolchain.CFlags

	return nil
}

// relPath resolves a path from the module file relative to the module
// directory.
func (m *Module) relPath(path string) string {
	if filepath.IsAbs(path) {
		return path
	}

	return filepath.Join(m.AbsPath, path)
}
