package export

import (
	"fmt"

	"github.com/dmitrijs2005/voyagelog/internal/format"
	"github.com/dmitrijs2005/voyagelog/internal/models"
)

// BaseName is the shared stem of every export file for s.
func BaseName(s models.LogState) string {
	return fmt.Sprintf("USS %s - %s Voyage Log", s.Ship, format.FileOrdinal(s.VoyageNumber))
}

// ImageName names the n-th exported image (1-based). The page suffix is
// only added when the document has more than one page.
func ImageName(s models.LogState, n int, multi bool) string {
	if multi {
		return fmt.Sprintf("%s - Page %d.png", BaseName(s), n)
	}
	return BaseName(s) + ".png"
}

// PDFName names the combined document. It never carries a page suffix.
func PDFName(s models.LogState) string {
	return BaseName(s) + ".pdf"
}
