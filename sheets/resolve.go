package sheets

import (
	"fmt"
	"regexp"
	"strings"
)

const exportMarker = "/export?format=csv"

var (
	documentIDPattern = regexp.MustCompile(`/spreadsheets/d/([a-zA-Z0-9-_]+)`)
	tabIDPattern      = regexp.MustCompile(`[#&?]gid=([0-9]+)`)
)

// ResolveExportURL turns a human-facing spreadsheet URL into its CSV export
// URL. URLs that already point at the export endpoint are returned unchanged.
// The tab defaults to the first one ("0") when the URL names none.
func ResolveExportURL(sourceURL string) (string, error) {
	sourceURL = strings.TrimSpace(sourceURL)
	if strings.Contains(sourceURL, exportMarker) {
		return sourceURL, nil
	}

	m := documentIDPattern.FindStringSubmatch(sourceURL)
	if m == nil {
		return "", fmt.Errorf("%w: no document id in %q", ErrInvalidSourceURL, sourceURL)
	}

	gid := "0"
	if g := tabIDPattern.FindStringSubmatch(sourceURL); g != nil {
		gid = g[1]
	}

	return fmt.Sprintf("https://docs.google.com/spreadsheets/d/%s/export?format=csv&gid=%s", m[1], gid), nil
}
