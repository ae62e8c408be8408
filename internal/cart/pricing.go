package cart

import "math"

// DefaultTaxPercentage applies to items without their own tax rate.
const DefaultTaxPercentage = 10.0

func TaxRate(taxPercentage *float64) float64 {
	if taxPercentage == nil {
		return DefaultTaxPercentage
	}
	return *taxPercentage
}

func LineTax(price float64, quantity int, rate float64) float64 {
	return price * float64(quantity) * rate / 100
}

func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
