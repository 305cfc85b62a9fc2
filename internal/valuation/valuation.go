package valuation

// Measurement is one physical piece as seen by the calculator. Net
// weights are pointers: nil means "not captured", and the value is
// recomputed from the gross weight and the fineness percentage.
type Measurement struct {
	GrossWeight     float64
	Unit            string
	GoldAssayPct    float64
	SilverAssayPct  float64
	NetGoldWeight   *float64
	NetSilverWeight *float64
}

// Pricing is the spot-price snapshot a valuation runs against.
// Prices are USD per troy ounce; the exchange rate is GHS per USD.
type Pricing struct {
	GoldPriceUsd   float64
	SilverPriceUsd float64
	ExchangeRate   float64
}

// MetalTotals are the aggregate outputs for one metal.
type MetalTotals struct {
	NetWeightGrams float64 `json:"net_weight_grams"`
	Ounces         float64 `json:"ounces"`
	UsdValue       float64 `json:"usd_value"`
	GhsValue       float64 `json:"ghs_value"`
}

// Result is a full valuation: gold and silver computed independently,
// then combined.
type Result struct {
	Gold        MetalTotals `json:"gold"`
	Silver      MetalTotals `json:"silver"`
	CombinedUsd float64     `json:"combined_usd"`
	CombinedGhs float64     `json:"combined_ghs"`
}

// netWeight returns the stored net weight when present, otherwise
// recomputes it from gross weight and fineness.
func netWeight(gross, assayPct float64, stored *float64) float64 {
	if stored != nil {
		return *stored
	}
	return gross * (assayPct / 100)
}

// Compute values a set of measurements against a pricing snapshot.
// Zero measurements yield zero totals; missing numeric fields contribute
// zero rather than failing.
func Compute(measurements []Measurement, pricing Pricing) Result {
	var goldGrams, silverGrams float64
	for _, m := range measurements {
		goldGrams += ToGrams(netWeight(m.GrossWeight, m.GoldAssayPct, m.NetGoldWeight), m.Unit)
		silverGrams += ToGrams(netWeight(m.GrossWeight, m.SilverAssayPct, m.NetSilverWeight), m.Unit)
	}

	gold := metalTotals(goldGrams, pricing.GoldPriceUsd, pricing.ExchangeRate)
	silver := metalTotals(silverGrams, pricing.SilverPriceUsd, pricing.ExchangeRate)

	return Result{
		Gold:        gold,
		Silver:      silver,
		CombinedUsd: gold.UsdValue + silver.UsdValue,
		CombinedGhs: gold.GhsValue + silver.GhsValue,
	}
}

func metalTotals(grams, pricePerOz, exchangeRate float64) MetalTotals {
	ounces := GramsToTroyOunces(grams)
	usd := ounces * pricePerOz
	return MetalTotals{
		NetWeightGrams: grams,
		Ounces:         ounces,
		UsdValue:       usd,
		GhsValue:       UsdToGhs(usd, exchangeRate),
	}
}
