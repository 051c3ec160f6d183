package cmd

import (
	"bufio"
	"ember/common"
	"ember/interp"
	"ember/report"
	"fmt"
	"os"

	"github.com/ComedicChimera/olive"
	"github.com/kr/pretty"
)

// Execute is the main entry point for the `ember` CLI utility
func Execute() {
	// set up the argument parser and all its extended commands and arguments
	cli := olive.NewCLI("ember", "ember is a tool for compiling ember programs", true)
	logLvlArg := cli.AddSelectorArg("loglevel", "ll", "the compiler log level", false, []string{"silent", "error", "warn", "verbose"})
	logLvlArg.SetDefaultValue("verbose")

	buildCmd := cli.AddSubcommand("build", "compile source code", true)
	buildCmd.AddPrimaryArg("module-path", "the path to the module or source file to build", true)
	buildCmd.AddSelectorArg("emit", "e", "the kind of output to produce", false, []string{"ll", "asm", "obj", "exe"})
	buildCmd.AddStringArg("output", "o", "the output path without an extension", false)

	runCmd := cli.AddSubcommand("run", "compile and execute a program in-process", true)
	runCmd.AddPrimaryArg("module-path", "the path to the module or source file to run", true)

	dumpCmd := cli.AddSubcommand("dump", "print an intermediate representation", true)
	dumpCmd.AddPrimaryArg("module-path", "the path to the module or source file to dump", true)
	stageArg := dumpCmd.AddSelectorArg("stage", "s", "the representation to print", false, []string{"tokens", "ast", "ir"})
	stageArg.SetDefaultValue("ir")

	cli.AddSubcommand("version", "print the ember version", false)

	// run the argument parser
	result, err := olive.ParseArgs(cli, os.Args)
	if err != nil {
		report.ReportFatal("%s", err)
	}

	// initialize the reporter
	report.InitReporter(report.LogLevelNames[result.Arguments["loglevel"].(string)])

	// panics escaping the compiler are bugs
	defer func() {
		if x := recover(); x != nil {
			report.ReportICE("%v", x)
		}
	}()

	// process the inputed command line
	subcmdName, subResult, _ := result.Subcommand()
	switch subcmdName {
	case "build":
		execBuildCommand(subResult)
	case "run":
		execRunCommand(subResult)
	case "dump":
		execDumpCommand(subResult)
	case "version":
		fmt.Printf("ember v%s\n", common.EmberVersion)
	}
}

// stringArg returns the value of an optional string argument or "" if it was
// not given.
func stringArg(result *olive.ArgParseResult, name string) string {
	if val, ok := result.Arguments[name]; ok {
		if s, ok := val.(string); ok {
			return s
		}
	}

	return ""
}

// newCompiler creates the compiler for the primary argument of a subcommand.
func newCompiler(result *olive.ArgParseResult) *Compiler {
	path, _ := result.PrimaryArg()

	c, err := NewCompiler(path)
	if err != nil {
		report.ReportFatal("%s", err)
	}

	return c
}

// execBuildCommand executes the build subcommand and handles all errors
func execBuildCommand(result *olive.ArgParseResult) {
	c := newCompiler(result)

	prof, err := newBuildProfile(c.mod, stringArg(result, "emit"), stringArg(result, "output"))
	if err != nil {
		report.ReportFatal("%s", err)
	}

	llMod, err := c.Compile()
	if err != nil {
		c.reportError(err)
	}

	if err := c.Emit(llMod, prof); err != nil {
		report.ReportFatal("%s", err)
	}

	report.ReportCompilationFinished(prof.outputFile())
}

// execRunCommand executes the run subcommand.  The process exits with the
// value returned by the program's `main`.
func execRunCommand(result *olive.ArgParseResult) {
	c := newCompiler(result)

	llMod, err := c.Compile()
	if err != nil {
		c.reportError(err)
	}

	out := bufio.NewWriter(os.Stdout)
	code, err := interp.Run(llMod, out)
	out.Flush()

	if err != nil {
		report.ReportFatal("%s: %s", c.reprPath, err)
	}

	os.Exit(int(code))
}

// execDumpCommand executes the dump subcommand.
func execDumpCommand(result *olive.ArgParseResult) {
	c := newCompiler(result)

	switch stringArg(result, "stage") {
	case "tokens":
		toks, err := c.Tokenize()
		if err != nil {
			c.reportError(err)
		}

		for _, tok := range toks {
			fmt.Println(tok)
		}
	case "ast":
		defs, err := c.Parse()
		if err != nil {
			c.reportError(err)
		}

		for _, def := range defs {
			pretty.Println(def)
		}
	default:
		llMod, err := c.Compile()
		if err != nil {
			c.reportError(err)
		}

		fmt.Print(llMod.String())
	}
}
