package directive

import "strings"

// Line is one decoded directive: a tag and its colon-delimited
// arguments (spec §6, §4.7).
type Line struct {
	Tag  string
	Args []string
}

// Decode restores embedded newlines (encoded by the shell helper as
// byte 0x01) and splits the line on ':' into [tag, arg1, arg2, ...].
func Decode(raw string) Line {
	raw = strings.ReplaceAll(raw, "\x01", "\n")
	parts := strings.Split(raw, ":")
	if len(parts) == 0 {
		return Line{}
	}
	return Line{Tag: parts[0], Args: parts[1:]}
}
