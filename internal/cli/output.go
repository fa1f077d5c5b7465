// # Naming Conventions
//
// Functions in this package follow consistent naming patterns:
//
//   - Display* functions write formatted output to an [io.Writer].
//     Examples: [DisplayResult], [DisplayQuietResult], [DisplayProgress].
//
//   - Format* functions return a string without performing I/O.
//     Example: [FormatQuietResult].
//
//   - Write* functions write to the filesystem.
//     Example: [WriteResultToFile].

package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	apperrors "github.com/agbru/bigmul/internal/errors"
	"github.com/agbru/bigmul/internal/orchestration"
	"github.com/agbru/bigmul/internal/ui"
)

// OutputConfig controls how a product is emitted.
type OutputConfig struct {
	// OutputFile is the path the product is saved to (empty for none).
	OutputFile string
	// Quiet prints the bare product only.
	Quiet bool
	// Verbose prints the product untruncated.
	Verbose bool
	// Details adds timing and size information.
	Details bool
}

// WriteResultToFile saves a product with a header block describing how it
// was obtained. Missing parent directories are created.
//
// Parameters:
//   - result: The multiplication result.
//   - a, b: The operands.
//   - config: Output configuration; nothing is written when OutputFile is empty.
//
// Returns:
//   - error: An error if the file cannot be written.
func WriteResultToFile(result orchestration.MultiplicationResult, a, b string, config OutputConfig) error {
	if config.OutputFile == "" {
		return nil
	}

	if dir := filepath.Dir(config.OutputFile); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return apperrors.WrapError(err, "failed to create directory")
		}
	}

	file, err := os.Create(config.OutputFile)
	if err != nil {
		return apperrors.WrapError(err, "failed to create output file")
	}

	fmt.Fprintf(file, "# Multiplication Result\n")
	fmt.Fprintf(file, "# Generated: %s\n", time.Now().Format(time.RFC3339))
	fmt.Fprintf(file, "# Algorithm: %s\n", result.Name)
	fmt.Fprintf(file, "# Duration: %s\n", result.Duration)
	fmt.Fprintf(file, "# Operand digits: %d x %d\n", len(a), len(b))
	fmt.Fprintf(file, "# Product digits: %d\n", len(result.Product))
	fmt.Fprintf(file, "\n")
	fmt.Fprintf(file, "%s\n", result.Product)

	if err := file.Close(); err != nil {
		return apperrors.WrapError(err, "failed to write output file")
	}
	return nil
}

// FormatQuietResult returns the bare product, suitable for scripting.
func FormatQuietResult(result orchestration.MultiplicationResult) string {
	return result.Product
}

// DisplayQuietResult prints the bare product on its own line.
func DisplayQuietResult(out io.Writer, result orchestration.MultiplicationResult) {
	fmt.Fprintln(out, FormatQuietResult(result))
}

// DisplayResultWithConfig prints a product according to config and saves it
// when OutputFile is set.
//
// Parameters:
//   - out: The output writer.
//   - result: The multiplication result.
//   - a, b: The operands.
//   - config: Output configuration.
//
// Returns:
//   - error: An error if file output fails.
func DisplayResultWithConfig(out io.Writer, result orchestration.MultiplicationResult, a, b string, config OutputConfig) error {
	if config.Quiet {
		DisplayQuietResult(out, result)
	} else {
		opts := orchestration.PresentationOptions{A: a, B: b, Verbose: config.Verbose, Details: config.Details}
		DisplayResult(result, opts, out)
	}

	if config.OutputFile == "" {
		return nil
	}
	if err := WriteResultToFile(result, a, b, config); err != nil {
		return err
	}
	if !config.Quiet {
		fmt.Fprintf(out, "\n%s✓ Result saved to: %s%s%s\n",
			ui.ColorGreen(), ui.ColorCyan(), config.OutputFile, ui.ColorReset())
	}
	return nil
}
