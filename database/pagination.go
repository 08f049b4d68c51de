package database

import (
	"math"

	"github.com/chirp-bdsa/chirp/models"
)

// MaxPage is the last page whose offset still fits in an int. Every page past
// it is empty anyway, so larger requests are clamped to it.
const MaxPage = math.MaxInt/models.PageSize + 1

// NormalizePage clamps page numbers into [1, MaxPage].
func NormalizePage(page int) int {
	if page < 1 {
		return 1
	}
	if page > MaxPage {
		return MaxPage
	}
	return page
}

// Offset is the number of rows skipped before the given 1-indexed page.
func Offset(page int) int {
	return (NormalizePage(page) - 1) * models.PageSize
}
