package infrastructure

import "strings"

// shellSpecialChars have meaning to a POSIX shell and force quoting
const shellSpecialChars = " \t\n\r'\"$`\\!*?[](){}|;<>&~#%"

// ShellQuote renders s so it can be pasted into a shell as one word.
// Plain words are returned unchanged.
func ShellQuote(s string) string {
	if s == "" {
		return "''"
	}
	if !strings.ContainsAny(s, shellSpecialChars) {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
