package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
)

// Boost tier label constants.
const (
	StrongValue   = "Strong"   // Strong boost
	ModerateValue = "Moderate" // Moderate boost
	WeakValue     = "Weak"     // Weak boost
	MinimalValue  = "Minimal"  // Minimal boost
)

// Color variables for console output.
var (
	StrongColor   = color.New(color.FgGreen, color.Bold) // StrongColor marks the most boosted records.
	ModerateColor = color.New(color.FgCyan)              // ModerateColor is informational.
	WeakColor     = color.New(color.FgYellow)            // WeakColor marks a small boost.
	MinimalColor  = color.New(color.FgHiBlack)           // MinimalColor marks a negligible boost.
)

// GetPlainLabel returns a plain text tier for a boost value in [0,1].
func GetPlainLabel(boost float64) string {
	switch {
	case boost >= 0.75:
		return StrongValue
	case boost >= 0.5:
		return ModerateValue
	case boost >= 0.25:
		return WeakValue
	default:
		return MinimalValue
	}
}

// GetColorLabel returns a colored tier label for console output (table).
func GetColorLabel(boost float64) string {
	text := GetPlainLabel(boost)

	switch text {
	case StrongValue:
		return StrongColor.Sprint(text)
	case ModerateValue:
		return ModerateColor.Sprint(text)
	case WeakValue:
		return WeakColor.Sprint(text)
	default:
		return MinimalColor.Sprint(text)
	}
}

// SelectOutputFile returns the appropriate file handle for output, based on the provided
// file path. An empty path means os.Stdout.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}

// GetDBFilePath returns the path to the SQLite DB file for boost storage.
func GetDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".adsboost.db"
	}
	return filepath.Join(homeDir, ".adsboost.db")
}

// TruncateText truncates a value to a maximum width with an ellipsis suffix.
// Requires maxWidth > 3 to leave room for the ellipsis.
func TruncateText(s string, maxWidth int) string {
	runes := []rune(s)
	if len(runes) > maxWidth && maxWidth > 3 {
		return string(runes[:maxWidth-3]) + "..."
	}
	return s
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
// Returns an error for invalid values.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}
