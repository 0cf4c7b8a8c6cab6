package sshconfig

import "strings"

// scanState tracks where the stanza scan is relative to the matched Host block
type scanState int

const (
	scanning scanState = iota
	insideMatchedStanza
)

// stanza is the byte range [start, end) of a matched Host block, header included
type stanza struct {
	start int
	end   int
}

// ReplaceOrAppendHostBlock returns content with the first "Host <host>" stanza
// replaced by block, or with block appended when no such stanza exists.
// Bytes outside the replaced stanza are left untouched.
func ReplaceOrAppendHostBlock(content, host, block string) string {
	block = terminate(block)

	s, found := findStanza(content, host)
	if !found {
		return terminate(content) + block
	}

	var out strings.Builder
	out.Grow(len(content) + len(block) + 1)
	out.WriteString(content[:s.start])
	out.WriteString(block)
	if rest := content[s.end:]; rest != "" {
		// keep one blank line between the new block and the next stanza
		out.WriteString("\n")
		out.WriteString(rest)
	}
	return out.String()
}

// RemoveHostBlock drops the first "Host <host>" stanza from content.
// The second return value reports whether a stanza was found.
func RemoveHostBlock(content, host string) (string, bool) {
	s, found := findStanza(content, host)
	if !found {
		return content, false
	}
	return content[:s.start] + content[s.end:], true
}

// HasHostBlock reports whether content holds a "Host <host>" stanza
func HasHostBlock(content, host string) bool {
	_, found := findStanza(content, host)
	return found
}

// findStanza scans content line by line. The first line equal to
// "Host <host>" (case-insensitive) opens the stanza; the next Host line
// closes it, otherwise it runs to the end of content.
func findStanza(content, host string) (stanza, bool) {
	state := scanning
	var s stanza

	offset := 0
	for _, line := range strings.SplitAfter(content, "\n") {
		switch state {
		case scanning:
			if isHostHeader(line, host) {
				s.start = offset
				state = insideMatchedStanza
			}
		case insideMatchedStanza:
			if isHostLine(line) {
				s.end = offset
				return s, true
			}
		}
		offset += len(line)
	}

	if state == insideMatchedStanza {
		s.end = len(content)
		return s, true
	}
	return stanza{}, false
}

// isHostHeader matches "Host <host>" with exactly one pattern
func isHostHeader(line, host string) bool {
	fields := strings.Fields(line)
	return len(fields) == 2 &&
		strings.EqualFold(fields[0], "Host") &&
		strings.EqualFold(fields[1], host)
}

// isHostLine matches any Host directive, which starts a new stanza
func isHostLine(line string) bool {
	fields := strings.Fields(line)
	return len(fields) >= 2 && strings.EqualFold(fields[0], "Host")
}

func terminate(s string) string {
	if s == "" || strings.HasSuffix(s, "\n") {
		return s
	}
	return s + "\n"
}
