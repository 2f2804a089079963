package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/gacscore/gacscore/schema"
)

// Color variables for console output.
var (
	ExcellentColor = color.New(color.FgGreen, color.Bold) // ExcellentColor represents a strong green result.
	GoodColor      = color.New(color.FgCyan)              // GoodColor represents an acceptable result.
	FairColor      = color.New(color.FgYellow)            // FairColor represents standard caution, not bold.
	PoorColor      = color.New(color.FgRed, color.Bold)   // PoorColor represents a result needing attention.
	PassColor      = color.New(color.FgGreen)
	FailColor      = color.New(color.FgRed)
)

// GetColorLabel returns a colored text label for console output (table).
// It uses schema.GetPlainLabel to determine the string, and then applies the appropriate color.
func GetColorLabel(score float64) string {
	text := schema.GetPlainLabel(score)

	switch text {
	case schema.ExcellentLabel:
		return ExcellentColor.Sprint(text)
	case schema.GoodLabel:
		return GoodColor.Sprint(text)
	case schema.FairLabel:
		return FairColor.Sprint(text)
	default: // "Poor"
		return PoorColor.Sprint(text)
	}
}

// SelectOutputFile returns the appropriate file handle for output, based on the provided
// file path. It returns os.Stdout when the path is empty.
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

// LogInfo logs an informational message to stderr so stdout stays clean for reports.
func LogInfo(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, "Info "+format+"\n", args...)
}

// GetProjectDBFilePath returns the path to the SQLite DB file for project storage.
func GetProjectDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".gacscore_projects.db"
	}
	return filepath.Join(homeDir, ".gacscore_projects.db")
}

// GetHistoryDBFilePath returns the path to the SQLite DB file for assessment history.
func GetHistoryDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".gacscore_history.db"
	}
	return filepath.Join(homeDir, ".gacscore_history.db")
}

// ProjectKey returns the store key of the consolidated project file.
func ProjectKey(name string) string {
	if name == "" {
		name = DefaultProjectName
	}
	return "project/" + name
}

// DimensionKey returns the store key of a single dimension state.
func DimensionKey(name, dimensionID string) string {
	return ProjectKey(name) + "/" + dimensionID
}

// TruncateText truncates text to a maximum width with an ellipsis suffix.
// Requires maxWidth > 3 to ensure there's space for both the "..." suffix and at least one character of content.
func TruncateText(text string, maxWidth int) string {
	runes := []rune(text)
	if len(runes) > maxWidth && maxWidth > 3 {
		return string(runes[:maxWidth-3]) + "..."
	}
	return text
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
