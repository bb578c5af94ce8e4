package report

import (
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"
)

// TimestampLayout formats the run timestamp used in report paths.
const TimestampLayout = "2006-01-02_15-04-05"

// SafeComponent turns a user-supplied postcode into a single path element.
// Input is NFKC-normalized first so full-width digits and letters survive;
// anything outside [A-Za-z0-9-] becomes '_'.
func SafeComponent(s string) string {
	s = norm.NFKC.String(strings.TrimSpace(s))
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}

// Paths returns the report directory and file for a postcode at time t:
// <root>/<ts>_<postcode>/OSINT_Report_<postcode>_<ts>.xlsx
func Paths(root, postcode string, t time.Time) (dir, file string) {
	ts := t.Format(TimestampLayout)
	pc := SafeComponent(postcode)
	dir = filepath.Join(root, ts+"_"+pc)
	file = filepath.Join(dir, "OSINT_Report_"+pc+"_"+ts+".xlsx")
	return dir, file
}
