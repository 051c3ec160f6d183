package report

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/pterm/pterm"
)

var (
	SuccessColorFG = pterm.FgLightGreen
	SuccessStyleBG = pterm.NewStyle(pterm.BgLightGreen, pterm.FgBlack)
	WarnColorFG    = pterm.FgYellow
	WarnStyleBG    = pterm.NewStyle(pterm.BgYellow, pterm.FgBlack)
	ErrorColorFG   = pterm.FgRed
	ErrorStyleBG   = pterm.NewStyle(pterm.BgRed, pterm.FgWhite)
	InfoColorFG    = pterm.FgLightCyan
	InfoStyleBG    = pterm.NewStyle(pterm.BgLightCyan, pterm.FgBlack)
)

// displayICE displays an internal compiler error message.
func displayICE(message string) {
	fmt.Print("\n")
	ErrorStyleBG.Print("Internal Compiler Error")
	ErrorColorFG.Println(" " + message)
	InfoColorFG.Println("This error was not supposed to happen: please open an issue.")
}

// displayFatal displays a fatal error message.
func displayFatal(message string) {
	fmt.Print("\n")
	ErrorStyleBG.Print("Fatal Error")
	ErrorColorFG.Println(" " + message)
}

// displayInfo displays a tagged informational message.
func displayInfo(tag, message string) {
	InfoStyleBG.Print(tag)
	InfoColorFG.Println(" " + message)
}

// displayWarning displays a tagged warning message.
func displayWarning(tag, message string) {
	WarnStyleBG.Print(tag)
	WarnColorFG.Println(" " + message)
}

// -----------------------------------------------------------------------------

// displayCompileError displays a compilation error with a banner naming the
// phase and file followed by the highlighted source text if a span is known.
func displayCompileError(reprPath, source string, cerr *CompileError) {
	displayBanner(strings.Title(cerr.Phase.String())+" Error", reprPath)

	if cerr.Span == nil {
		fmt.Println(cerr.Message)
		return
	}

	fmt.Printf("%s:%d:%d: %s\n", reprPath, cerr.Span.StartLine+1, cerr.Span.StartCol+1, cerr.Message)

	if source != "" {
		displaySourceText(source, cerr.Span)
	}
}

// displayBanner displays the banner on top of all compilation messages.
func displayBanner(kind, reprPath string) {
	fmt.Print("\n-- ")
	ErrorStyleBG.Print(kind)
	fmt.Print(" ")

	bannerLen := pterm.GetTerminalWidth() / 2
	if bannerLen > 50 {
		bannerLen = 50
	}

	dashCount := bannerLen - len(reprPath) - len(kind) - 1
	if dashCount < 2 {
		dashCount = 2
	}

	fmt.Print(strings.Repeat("-", dashCount) + " ")
	InfoColorFG.Println(reprPath)
}

// displaySourceText displays a segment of source text defined by a text span
// and underlines the spanned characters with carets.
func displaySourceText(source string, span *TextSpan) {
	srcLines := strings.Split(source, "\n")
	if span.StartLine >= len(srcLines) {
		return
	}

	endLine := span.EndLine
	if endLine >= len(srcLines) {
		endLine = len(srcLines) - 1
	}

	var lines []string
	for ln := span.StartLine; ln <= endLine; ln++ {
		lines = append(lines, strings.ReplaceAll(srcLines[ln], "\t", "    "))
	}

	// calculate the minimum line indentation
	minIndent := -1
	for _, line := range lines {
		lineIndent := len(line) - len(strings.TrimLeft(line, " "))
		if minIndent == -1 || lineIndent < minIndent {
			minIndent = lineIndent
		}
	}

	maxLineNumLen := len(strconv.Itoa(endLine + 1))
	lineNumFmtStr := "%-" + strconv.Itoa(maxLineNumLen) + "v | "

	fmt.Println()
	for i, line := range lines {
		InfoColorFG.Print(fmt.Sprintf(lineNumFmtStr, i+span.StartLine+1))
		fmt.Println(line[minIndent:])

		fmt.Print(strings.Repeat(" ", maxLineNumLen), " | ")

		start := 0
		if i == 0 {
			start = span.StartCol - minIndent
		}

		end := len(line) - minIndent
		if i == len(lines)-1 {
			end = span.EndCol - minIndent + 1
		}

		if start < 0 {
			start = 0
		}

		if end <= start {
			end = start + 1
		}

		fmt.Print(strings.Repeat(" ", start))
		ErrorColorFG.Println(strings.Repeat("^", end-start))
	}

	fmt.Println()
}

// -----------------------------------------------------------------------------

// displayPhase displays the completion of a compilation phase.
func displayPhase(phase string, elapsed time.Duration) {
	SuccessStyleBG.Print("Done")
	fmt.Printf(" %-12s", phase)
	InfoColorFG.Println(fmt.Sprintf("(%.3fs)", elapsed.Seconds()))
}

// displayCompilationFinished displays a compilation finished message.
func displayCompilationFinished(success bool, errorCount, warningCount int, outputPath string) {
	fmt.Print("\n")

	if success {
		SuccessColorFG.Print("All done! ")
	} else {
		ErrorColorFG.Print("Oh no! ")
	}

	fmt.Print("(")

	switch errorCount {
	case 0:
		SuccessColorFG.Print(0)
		fmt.Print(" errors, ")
	case 1:
		ErrorColorFG.Print(1)
		fmt.Print(" error, ")
	default:
		ErrorColorFG.Print(errorCount)
		fmt.Print(" errors, ")
	}

	switch warningCount {
	case 0:
		SuccessColorFG.Print(0)
		fmt.Print(" warnings)")
	case 1:
		WarnColorFG.Print(1)
		fmt.Print(" warning)")
	default:
		WarnColorFG.Print(warningCount)
		fmt.Print(" warnings)")
	}

	if success && outputPath != "" {
		fmt.Print(" -> ")
		InfoColorFG.Print(outputPath)
	}

	fmt.Println()
}
