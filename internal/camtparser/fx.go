package camtparser

import (
	"math"
	"strings"

	"fjacquet/camt-export/internal/currencyutils"
	"fjacquet/camt-export/internal/models"

	"github.com/shopspring/decimal"
)

// fxRelTolerance is the relative tolerance when comparing a supplied exchange
// rate against the rate derived from the observed amounts.
const fxRelTolerance = 1e-6

// parseRate reads an XchgRate value. Some banks emit a decimal comma; a value
// that still fails to parse degrades to zero rather than aborting the entry.
func parseRate(s string) float64 {
	s = strings.ReplaceAll(s, ",", ".")
	if s == "" {
		return 0
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		log.WithField("rate", s).Debug("Unparseable exchange rate, using 0")
		return 0
	}
	f, _ := d.Float64()
	return f
}

// reconcileExchangeRate cross-checks the supplied exchange rate against the
// rate derived from the amounts actually observed on the transaction, and
// repairs the common bank mistake of supplying the reciprocal.
//
// The amounts are paired with the declared source/target currencies in both
// directions: instructed vs settlement first, then counter-value vs
// instructed. The effective rate is always "target units per source unit".
func reconcileExchangeRate(t *models.EntryTransaction) {
	var aSrc, aTrg *models.CurrencyAmount

	if t.Fx.Has {
		if t.HasFxInstdAmt && t.HasFxTxAmt &&
			t.Fx.SourceCurrency != "" && t.Fx.TargetCurrency != "" {
			switch {
			case t.Fx.SourceCurrency == t.FxInstdAmt.Currency && t.Fx.TargetCurrency == t.FxTxAmt.Currency:
				aSrc, aTrg = &t.FxInstdAmt, &t.FxTxAmt
			case t.Fx.SourceCurrency == t.FxTxAmt.Currency && t.Fx.TargetCurrency == t.FxInstdAmt.Currency:
				aSrc, aTrg = &t.FxTxAmt, &t.FxInstdAmt
			}
		}
		if aSrc == nil && t.HasFxCounterVal && t.HasFxInstdAmt &&
			t.Fx.SourceCurrency != "" && t.Fx.TargetCurrency != "" {
			switch {
			case t.Fx.SourceCurrency == t.FxCounterValAmt.Currency && t.Fx.TargetCurrency == t.FxInstdAmt.Currency:
				aSrc, aTrg = &t.FxCounterValAmt, &t.FxInstdAmt
			case t.Fx.SourceCurrency == t.FxInstdAmt.Currency && t.Fx.TargetCurrency == t.FxCounterValAmt.Currency:
				aSrc, aTrg = &t.FxInstdAmt, &t.FxCounterValAmt
			}
		}
	}

	effRate, inverted := deriveRate(&t.Fx, aSrc, aTrg)
	if effRate > 0 {
		t.Fx.Rate = effRate
		t.Fx.Has = true
		t.Fx.Inverted = inverted
	}
}

// deriveRate computes the effective rate from a currency-matched amount pair.
// With no usable pair it returns zero and the caller keeps whatever was
// supplied.
func deriveRate(fx *models.FxRateInfo, aSrc, aTrg *models.CurrencyAmount) (float64, bool) {
	if aSrc == nil || aTrg == nil {
		return 0, false
	}
	if aSrc.Currency == "" || aTrg.Currency == "" {
		return 0, false
	}
	if aSrc.Minor == 0 || aTrg.Minor == 0 {
		return 0, false
	}

	srcMaj := currencyutils.Major(*aSrc)
	if srcMaj.IsZero() {
		return 0, false
	}
	derived, _ := currencyutils.Major(*aTrg).Div(srcMaj).Float64()

	if fx.Has && fx.Rate > 0 {
		diffDirect := math.Abs(fx.Rate - derived)
		diffInverse := math.Abs(1/fx.Rate - derived)
		tol := math.Max(1e-9, math.Abs(derived)*fxRelTolerance)

		switch {
		case diffDirect <= tol:
			return fx.Rate, false
		case diffInverse <= tol:
			// The supplied rate was the reciprocal; adopt the derived one.
			return derived, true
		default:
			log.WithField("supplied", fx.Rate).Debug("Supplied exchange rate implausible, using derived rate")
			return derived, false
		}
	}
	return derived, false
}
