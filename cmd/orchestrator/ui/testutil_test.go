package ui

import (
	"regexp"
	"strings"
)

var ansiRe = regexp.MustCompile(`\x1b\[[0-9;]*m`)

// containsPlain reports whether the rendered output contains want, ignoring
// any ANSI styling the active color profile may have added.
func containsPlain(rendered, want string) bool {
	return strings.Contains(ansiRe.ReplaceAllString(rendered, ""), want)
}
