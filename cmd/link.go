package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// ccArgs returns the arguments to pass to the C compiler to turn the LLVM text
// file at `llPath` into the output of the build profile.
func ccArgs(prof *BuildProfile, llPath string) []string {
	var args []string

	switch prof.OutputFormat {
	case FormatASM:
		args = append(args, "-S")
	case FormatObj:
		args = append(args, "-c")
	}

	args = append(args, prof.CFlags...)
	args = append(args, "-o", prof.outputFile(), llPath)

	// executables link against the prebuilt runtime
	if prof.OutputFormat == FormatExe && prof.RuntimePath != "" {
		args = append(args, prof.RuntimePath)
	}

	return args
}

// runCC runs the C compiler of the build profile on the LLVM text file at
// `llPath`.
func runCC(prof *BuildProfile, llPath string) error {
	cc := exec.Command(prof.CC, ccArgs(prof, llPath)...)
	stderrBuff := bytes.Buffer{}
	cc.Stderr = &stderrBuff

	if err := cc.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			// we were able to find the compiler, but it rejected the input
			return fmt.Errorf("%s failed:\n%s", prof.CC, strings.TrimSpace(stderrBuff.String()))
		}

		// some other error: probably couldn't find the compiler
		return fmt.Errorf("failed to run %s: %w", prof.CC, err)
	}

	return nil
}
