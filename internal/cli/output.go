package cli

import (
	"fmt"
	"io"
	"os"
)

// ANSI color codes
const (
	colorReset   = "\033[0m"
	colorRed     = "\033[31m"
	colorGreen   = "\033[32m"
	colorYellow  = "\033[33m"
	colorBlue    = "\033[34m"
	colorMagenta = "\033[35m"
)

// Command results (plans, metrics) go to stdout; status messages go to
// stderr so the results can be piped.
var (
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

// Output formatting helpers

// printInfo prints an informational message
func printInfo(msg string) {
	if globalQuiet {
		return
	}
	fmt.Fprintln(stderr, msg)
}

// printSuccess prints a success message
func printSuccess(msg string) {
	printMark(colorGreen, "✓", msg)
}

// printWarning prints a warning message
func printWarning(msg string) {
	printMark(colorYellow, "⚠", msg)
}

// printProgress prints a progress indicator
func printProgress(msg string) {
	printMark(colorBlue, "→", msg)
}

func printMark(color, mark, msg string) {
	if globalQuiet {
		return
	}
	if globalNoColor {
		fmt.Fprintf(stderr, "%s %s\n", mark, msg)
	} else {
		fmt.Fprintf(stderr, "%s%s%s %s\n", color, mark, colorReset, msg)
	}
}

// printErrorMsg prints an error message, even in quiet mode
func printErrorMsg(msg string) {
	if globalNoColor {
		fmt.Fprintf(stderr, "✗ %s\n", msg)
	} else {
		fmt.Fprintf(stderr, "%s✗%s %s\n", colorRed, colorReset, msg)
	}
}

// printHeader prints a section header
func printHeader(title string) {
	if globalQuiet {
		return
	}
	if globalNoColor {
		fmt.Fprintf(stderr, "\n=== %s ===\n", title)
	} else {
		fmt.Fprintf(stderr, "\n%s=== %s ===%s\n", colorMagenta, title, colorReset)
	}
}
