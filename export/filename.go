package export

import (
	"regexp"
	"strings"
)

const filenamePrefix = "acta_asistencia_unicen"

var (
	spaceRe  = regexp.MustCompile(`[\s\p{Z}]+`)
	unsafeRe = regexp.MustCompile(`[^a-z0-9_\-]`)
)

// Filename is acta_asistencia_unicen_<teacher>_<career>_<subject>_<section>_<date>.<ext>.
func Filename(sh Sheet, ext string) string {
	parts := []string{
		filenamePrefix,
		Sanitize(sh.Teacher),
		Sanitize(sh.Class.Career),
		Sanitize(sh.Class.Subject),
		Sanitize(sh.Class.Section),
		sh.Date,
	}
	return strings.Join(parts, "_") + "." + ext
}

// Sanitize lowers s, turns whitespace runs into "_" and drops anything but a-z, 0-9, "_" and "-".
func Sanitize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = spaceRe.ReplaceAllString(s, "_")
	return unsafeRe.ReplaceAllString(s, "")
}
