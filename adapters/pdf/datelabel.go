package pdf

import (
	"regexp"
	"strings"
)

// LabelNotFound is the distinguished label used when no date-shaped token is
// present in the document text. Downstream code treats every label as an
// opaque string, never as a parsed date.
const LabelNotFound = "Data_nao_encontrada"

// legendMarker bounds the search region: offer sheets print the list date
// above the legend block.
const legendMarker = "LEGENDA"

// tailWindow is how many trailing characters of each page are scanned when
// the legend region yields nothing (the date sits in the top-right corner,
// which text extraction emits near the end of the page).
const tailWindow = 200

// datePattern matches numeric dates (dd/mm/yy, dd-mm-yyyy, with optional
// spaces around the separator) and written-out Portuguese dates
// ("3 de março de 2024").
var datePattern = regexp.MustCompile(`\d{2}\s?[/-]\s?\d{2}\s?[/-]\s?\d{2,4}|\d{1,2}\s?de\s?[A-Za-zç]+\s?de\s?\d{4}`)

// DateLabel searches the per-page text for the document's date label.
// For each page, the region preceding the legend marker is searched first;
// failing that, the trailing window of the page. The first match across all
// pages wins. Returns LabelNotFound when nothing matches.
func DateLabel(pages []string) string {
	for _, text := range pages {
		if idx := strings.Index(text, legendMarker); idx >= 0 {
			if m := datePattern.FindString(text[:idx]); m != "" {
				return m
			}
		}

		tail := text
		if len(tail) > tailWindow {
			tail = tail[len(tail)-tailWindow:]
		}
		if m := datePattern.FindString(tail); m != "" {
			return m
		}
	}
	return LabelNotFound
}
