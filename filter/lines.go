package filter

import (
	"runtime"
	"strings"
)

// LineSeparator is the separator used to rejoin filtered lines on this platform.
var LineSeparator = separatorFor(runtime.GOOS)

func separatorFor(goos string) string {
	if goos == "windows" {
		return "\r\n"
	}
	return "\n"
}

// SplitLines splits text on LF, dropping the CR of CRLF line endings.
// A trailing newline yields a final empty line, so SplitLines and JoinLines
// round-trip.
func SplitLines(text string) []string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}

// JoinLines joins lines with sep.
func JoinLines(lines []string, sep string) string {
	return strings.Join(lines, sep)
}
