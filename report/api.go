package report

import (
	"errors"
	"fmt"
	"os"
	"time"
)

// NOTE: All report functions will only display if the appropriate log level is
// set.  Most report functions will simply fail silently if below their
// appropriate log level.

// ReportCompileError reports an error returned by a compilation phase.  The
// reprPath is the path displayed to the user and source is the text of the
// file being compiled (used to highlight the erroneous source).  Errors that
// are not compile errors are reported as standard errors.
func ReportCompileError(reprPath, source string, err error) {
	r := reporter()
	r.m.Lock()
	defer r.m.Unlock()

	r.errorCount++
	if r.logLevel == LogLevelSilent {
		return
	}

	var cerr *CompileError
	if errors.As(err, &cerr) {
		displayCompileError(reprPath, source, cerr)
	} else {
		displayBanner("Error", reprPath)
		fmt.Println(err)
	}
}

// ReportWarning reports a warning not tied to any source text.
func ReportWarning(tag, message string, args ...interface{}) {
	r := reporter()
	r.m.Lock()
	defer r.m.Unlock()

	r.warningCount++
	if r.logLevel >= LogLevelWarn {
		displayWarning(tag, fmt.Sprintf(message, args...))
	}
}

// ReportInfo displays an informational message in verbose mode.
func ReportInfo(tag, message string, args ...interface{}) {
	r := reporter()
	if r.logLevel == LogLevelVerbose {
		r.m.Lock()
		defer r.m.Unlock()

		displayInfo(tag, fmt.Sprintf(message, args...))
	}
}

// ReportICE reports an internal compiler error.  These are errors that
// specifically result for a bug or unexpected condition occurring with the
// compiler: they are not intended to ever happen.  These errors are always
// displayed regardless of log level.
func ReportICE(message string, args ...interface{}) {
	r := reporter()
	r.m.Lock()
	defer r.m.Unlock()

	displayICE(fmt.Sprintf(message, args...))

	os.Exit(-1)
}

// ReportFatal reports a fatal error.  These are errors that should cause all
// compilation to stop immediately.  However, they are expected errors that
// generally result from invalid configuration of some form: missing files,
// can't find requisite tools (eg. `clang`), etc.
func ReportFatal(message string, args ...interface{}) {
	r := reporter()
	if r.logLevel > LogLevelSilent {
		r.m.Lock()
		defer r.m.Unlock()

		displayFatal(fmt.Sprintf(message, args...))
	}

	os.Exit(1)
}

// -----------------------------------------------------------------------------

// phaseStart is the time at which the current phase began.
var phaseStart time.Time

// ReportBeginPhase marks the start of a compilation phase.
func ReportBeginPhase() {
	phaseStart = time.Now()
}

// ReportEndPhase reports the successful end of the named compilation phase.
func ReportEndPhase(phase string) {
	r := reporter()
	if r.logLevel == LogLevelVerbose {
		displayPhase(phase, time.Since(phaseStart))
	}
}

// ReportCompilationFinished reports the concluding message for compilation.
func ReportCompilationFinished(outputPath string) {
	r := reporter()
	if r.logLevel == LogLevelVerbose {
		displayCompilationFinished(r.errorCount == 0, r.errorCount, r.warningCount, outputPath)
	}
}

// AnyErrors returns whether or not any errors were reported.
func AnyErrors() bool {
	return reporter().errorCount > 0
}
