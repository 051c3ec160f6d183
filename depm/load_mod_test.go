package depm

import (
	"ember/common"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nalgeon/be"
)

func writeModFile(t *testing.T, content string) string {
	t.Helper()

	dir := t.TempDir()
	err := os.WriteFile(filepath.Join(dir, common.EmberModuleFileName), []byte(content), 0644)
	be.Err(t, err, nil)
	return dir
}

func TestLoadModule(t *testing.T) {
	dir := writeModFile(t, `
name = "demo"
ember-version = "0.1.0"
entry = "src/app.em"
output = "bin/demo"
runtime = "/opt/ember/libemrt.a"

[toolchain]
cc = "clang-15"
cflags = ["-O2", "-g"]
`)

	mod, err := LoadModule(dir)
	be.Err(t, err, nil)
	be.Equal(t, mod.Name, "demo")
	be.True(t, mod.HasModuleFile)
	be.Equal(t, mod.EntryPath, filepath.Join(dir, "src", "app.em"))
	be.Equal(t, mod.OutputPath, filepath.Join(dir, "bin", "demo"))
	be.Equal(t, mod.RuntimePath, "/opt/ember/libemrt.a")
	be.Equal(t, mod.CC, "clang-15")
	be.Equal(t, mod.CFlags, []string{"-O2", "-g"})
}

func TestLoadModuleDefaults(t *testing.T) {
	dir := writeModFile(t, `
name = "demo"
ember-version = "0.1.0"
`)

	mod, err := LoadModule(dir)
	be.Err(t, err, nil)
	be.Equal(t, mod.EntryPath, filepath.Join(dir, "main.em"))
	be.Equal(t, mod.OutputPath, filepath.Join(dir, "out"))
	be.Equal(t, mod.RuntimePath, "")
	be.Equal(t, mod.CC, "clang")
	be.Equal(t, len(mod.CFlags), 0)
}

func TestLoadModuleWithoutFile(t *testing.T) {
	dir := t.TempDir()

	mod, err := LoadModule(dir)
	be.Err(t, err, nil)
	be.True(t, !mod.HasModuleFile)
	be.True(t, IsValidIdentifier(mod.Name))
	be.Equal(t, mod.EntryPath, filepath.Join(dir, "main.em"))
}

func TestLoadModuleErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		msg     string
	}{
		{"missing name", `ember-version = "0.1.0"`, "missing module name"},
		{"bad name", `name = "9lives"`, "must be a valid identifier"},
		{"bad entry", "name = \"demo\"\nentry = \"main.c\"", "is not an ember source file"},
		{"bad toml", `name = `, "error parsing module file"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			dir := writeModFile(t, test.content)

			_, err := LoadModule(dir)
			be.True(t, err != nil)
			be.True(t, strings.Contains(err.Error(), test.msg))
		})
	}
}

func TestIsValidIdentifier(t *testing.T) {
	be.True(t, IsValidIdentifier("demo"))
	be.True(t, IsValidIdentifier("_x1"))
	be.True(t, !IsValidIdentifier(""))
	be.True(t, !IsValidIdentifier("1x"))
	be.True(t, !IsValidIdentifier("my-mod"))
}
