package formatter

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
)

// Status output goes to stderr so stdout carries nothing but the analysis
// text (or nothing at all when --output is used).

func PrintHeader(version, repoPath string) {
	cyan := color.New(color.FgCyan, color.Bold)
	fmt.Fprintln(os.Stderr)
	cyan.Fprintln(os.Stderr, "Firefox Release Analyzer")
	fmt.Fprintf(os.Stderr, "Version: %s\n", version)
	fmt.Fprintf(os.Stderr, "Repository: %s\n", repoPath)
	fmt.Fprintln(os.Stderr)
}

func PrintSuccess(msg string) {
	color.New(color.FgGreen).Fprintf(os.Stderr, "✓ %s\n", msg)
}

func PrintWarning(msg string) {
	color.New(color.FgYellow).Fprintf(os.Stderr, "! %s\n", msg)
}

// WriteResult delivers the model's text: verbatim to the output file when a
// path was given, otherwise to stdout under a banner. File content is
// buffered in memory already, so the write is one shot.
func WriteResult(text, outputPath, version string) error {
	if outputPath != "" {
		if err := os.WriteFile(outputPath, []byte(text), 0o644); err != nil {
			return fmt.Errorf("write output %s: %w", outputPath, err)
		}
		PrintSuccess(fmt.Sprintf("Analysis saved to %s", outputPath))
		return nil
	}

	rule := strings.Repeat("=", 80)
	fmt.Println()
	fmt.Println(rule)
	fmt.Printf("FIREFOX %s RELEASE ANALYSIS\n", version)
	fmt.Println(rule)
	fmt.Println(text)
	return nil
}
