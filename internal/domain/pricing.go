package domain

import (
	"math"
)

// NormalizePricing clamps the discounted price into [0, base] and derives the
// discount percentage rounded to two decimals. A zero base price yields a
// zero discount regardless of the discounted price.
func NormalizePricing(basePrice, discountedPrice float64) (base, discounted, discount float64) {
	if basePrice < 0 {
		basePrice = 0
	}
	if discountedPrice < 0 {
		discountedPrice = 0
	}
	if discountedPrice > basePrice {
		discountedPrice = basePrice
	}
	if basePrice == 0 {
		return basePrice, discountedPrice, 0
	}
	pct := ((basePrice - discountedPrice) / basePrice) * 100
	return basePrice, discountedPrice, round2(pct)
}

// EffectivePrice returns the price a buyer pays: the discounted price when
// one is set below base, otherwise the base price.
func EffectivePrice(basePrice, discountedPrice float64) float64 {
	if discountedPrice > 0 && discountedPrice < basePrice {
		return discountedPrice
	}
	return basePrice
}

// NextStatus applies the stock-driven status transition. Zero stock forces
// OUT_OF_STOCK unless an operator set INACTIVE manually. Restocking restores
// ACTIVE only when the OUT_OF_STOCK was stock-derived, so a manual status
// always survives stock movements.
func NextStatus(stock int, status ProductStatus, cause StatusCause) (ProductStatus, StatusCause) {
	if stock <= 0 {
		if status == ProductStatusInactive && cause == StatusCauseManual {
			return status, cause
		}
		return ProductStatusOutOfStock, StatusCauseAuto
	}
	if status == ProductStatusOutOfStock && cause == StatusCauseAuto {
		return ProductStatusActive, StatusCauseAuto
	}
	return status, cause
}

// RecalculateRating returns the mean review rating rounded to two decimals
// and the review count. No reviews yields a zero rating.
func RecalculateRating(reviews []Review) (rating float64, total int) {
	if len(reviews) == 0 {
		return 0, 0
	}
	sum := 0
	for _, r := range reviews {
		sum += r.Rating
	}
	return round2(float64(sum) / float64(len(reviews))), len(reviews)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
