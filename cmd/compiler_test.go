package cmd

import (
	"ember/common"
	"ember/report"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nalgeon/be"
)

func TestMain(m *testing.M) {
	report.InitReporter(report.LogLevelSilent)
	os.Exit(m.Run())
}

const answerSource = `
func main() i64 {
	let i64 x = 40
	return x + 2
}
`

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	be.Err(t, os.WriteFile(path, []byte(content), 0644), nil)
}

func TestCompileModuleDir(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, common.EmberModuleFileName), "name = \"answer\"\nember-version = \"0.1.0\"\n")
	writeFile(t, filepath.Join(dir, "main.em"), answerSource)

	c, err := NewCompiler(dir)
	be.Err(t, err, nil)
	be.Equal(t, c.mod.Name, "answer")

	llMod, err := c.Compile()
	be.Err(t, err, nil)
	be.True(t, strings.Contains(llMod.String(), "define i64 @main()"))
}

func TestCompileSourceFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "answer.em")
	writeFile(t, path, answerSource)

	c, err := NewCompiler(path)
	be.Err(t, err, nil)
	be.Equal(t, c.mod.EntryPath, path)

	_, err = c.Compile()
	be.Err(t, err, nil)
}

func TestCompileErrorsKeepSource(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.em")
	writeFile(t, path, "func main() i64 {\n\treturn @\n}\n")

	c, err := NewCompiler(path)
	be.Err(t, err, nil)

	_, err = c.Compile()
	be.True(t, report.IsPhase(err, report.PhaseLex))
	be.True(t, strings.Contains(c.source, "return @"))
}

func TestNewCompilerRejectsOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "main.c")
	writeFile(t, path, "int main() { return 0; }")

	_, err := NewCompiler(path)
	be.True(t, err != nil)
	be.True(t, strings.Contains(err.Error(), "is not an ember source file"))
}

func TestEmitLLVM(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "main.em")
	writeFile(t, path, answerSource)

	c, err := NewCompiler(path)
	be.Err(t, err, nil)

	llMod, err := c.Compile()
	be.Err(t, err, nil)

	prof, err := newBuildProfile(c.mod, "ll", filepath.Join(dir, "build", "answer"))
	be.Err(t, err, nil)
	be.Err(t, c.Emit(llMod, prof), nil)

	text, err := os.ReadFile(filepath.Join(dir, "build", "answer.ll"))
	be.Err(t, err, nil)
	be.True(t, strings.Contains(string(text), "define i64 @main()"))
}

func TestBuildProfile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, common.EmberModuleFileName), `
name = "app"
ember-version = "0.1.0"
runtime = "rt/libemrt.a"

[toolchain]
cflags = ["-O2"]
`)

	c, err := NewCompiler(dir)
	be.Err(t, err, nil)

	prof, err := newBuildProfile(c.mod, "", "")
	be.Err(t, err, nil)
	be.Equal(t, prof.OutputFormat, FormatExe)
	be.Equal(t, prof.outputFile(), filepath.Join(dir, "out"))

	prof, err = newBuildProfile(c.mod, "obj", "/tmp/app")
	be.Err(t, err, nil)
	be.Equal(t, prof.outputFile(), "/tmp/app.o")

	_, err = newBuildProfile(c.mod, "wasm", "")
	be.True(t, err != nil)
}

func TestCCArgs(t *testing.T) {
	prof := &BuildProfile{
		OutputPath:  "/tmp/app",
		CC:          "clang",
		CFlags:      []string{"-O2"},
		RuntimePath: "/rt/libemrt.a",
	}

	tests := []struct {
		format int
		want   []string
	}{
		{FormatASM, []string{"-S", "-O2", "-o", "/tmp/app.s", "/tmp/app.ll"}},
		{FormatObj, []string{"-c", "-O2", "-o", "/tmp/app.o", "/tmp/app.ll"}},
		{FormatExe, []string{"-O2", "-o", "/tmp/app", "/tmp/app.ll", "/rt/libemrt.a"}},
	}

	for _, test := range tests {
		prof.OutputFormat = test.format
		be.Equal(t, ccArgs(prof, "/tmp/app.ll"), test.want)
	}
}
