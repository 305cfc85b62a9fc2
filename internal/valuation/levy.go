package valuation

import (
	"github.com/shopspring/decimal"
)

// Statutory levy rates applied to the regulator's service fee.
var (
	NhilRate    = decimal.NewFromFloat(0.025)
	GetfundRate = decimal.NewFromFloat(0.025)
	CovidRate   = decimal.NewFromFloat(0.01)
	VatRate     = decimal.NewFromFloat(0.15)

	oneHundred = decimal.NewFromInt(100)
)

// LevyBreakdown is the full statutory charge chain for one invoice.
// Amounts keep full decimal precision; round to 2dp only when rendering.
type LevyBreakdown struct {
	RateCharge     decimal.Decimal `json:"rate_charge"`
	TotalExclusive decimal.Decimal `json:"total_exclusive"`
	Nhil           decimal.Decimal `json:"nhil"`
	Getfund        decimal.Decimal `json:"getfund"`
	Covid          decimal.Decimal `json:"covid"`
	SubTotal       decimal.Decimal `json:"sub_total"`
	Vat            decimal.Decimal `json:"vat"`
	GrandTotal     decimal.Decimal `json:"grand_total"`
}

// ComputeLevies applies the statutory chain to an assay GHS value:
// the service fee is ratePercent of the assay value, NHIL/GETFund/COVID
// are levied on the fee, and VAT on the levied subtotal. A zero rate or
// zero assay value yields a zero chain; there are no error paths.
func ComputeLevies(assayGhsValue, ratePercent decimal.Decimal) LevyBreakdown {
	rateCharge := assayGhsValue.Mul(ratePercent).Div(oneHundred)
	exclusive := rateCharge

	nhil := exclusive.Mul(NhilRate)
	getfund := exclusive.Mul(GetfundRate)
	covid := exclusive.Mul(CovidRate)
	subTotal := exclusive.Add(nhil).Add(getfund).Add(covid)
	vat := subTotal.Mul(VatRate)

	return LevyBreakdown{
		RateCharge:     rateCharge,
		TotalExclusive: exclusive,
		Nhil:           nhil,
		Getfund:        getfund,
		Covid:          covid,
		SubTotal:       subTotal,
		Vat:            vat,
		GrandTotal:     subTotal.Add(vat),
	}
}
