package quotes

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}

func TestNormalizeUnitPrice(t *testing.T) {
	price := dec("1200")

	t.Run("yearLabels", func(t *testing.T) {
		for _, unit := range []string{"year", "AÑO", "anual", "Annual"} {
			assert.True(t, dec("100").Equal(NormalizeUnitPrice(price, unit)), "unit %q", unit)
		}
	})

	t.Run("semesterLabels", func(t *testing.T) {
		for _, unit := range []string{"semester", "Semestre", "semestral"} {
			assert.True(t, dec("200").Equal(NormalizeUnitPrice(price, unit)), "unit %q", unit)
		}
	})

	t.Run("monthlyAndUnknownLabelsPassThrough", func(t *testing.T) {
		for _, unit := range []string{"month", "mes", "", "whatever"} {
			assert.True(t, price.Equal(NormalizeUnitPrice(price, unit)), "unit %q", unit)
		}
	})
}

func TestNormalizeRate(t *testing.T) {
	assert.True(t, dec("0.2").Equal(NormalizeRate(dec("20"))), "whole percent")
	assert.True(t, dec("0.2").Equal(NormalizeRate(dec("0.2"))), "fraction")
	assert.True(t, dec("1").Equal(NormalizeRate(dec("1"))), "exactly one stays a fraction")
	assert.True(t, dec("0.015").Equal(NormalizeRate(dec("1.5"))), "1.5 means 1.5 percent")
	assert.True(t, decimal.Zero.Equal(NormalizeRate(decimal.Zero)))
}

func TestSolveSalePrice(t *testing.T) {
	t.Run("twentyPercentMargin", func(t *testing.T) {
		sale, degenerate := SolveSalePrice(dec("1000000"), dec("0.2"), decimal.Zero, decimal.Zero)
		require.False(t, degenerate)
		assert.True(t, dec("1250000").Equal(sale), "got %s", sale)
	})

	t.Run("inverseConsistency", func(t *testing.T) {
		cost := dec("845123.77")
		margin, financial, policy := dec("0.12"), dec("0.03"), dec("0.05")

		sale, degenerate := SolveSalePrice(cost, margin, financial, policy)
		require.False(t, degenerate)

		markup := sale.Mul(margin).Add(sale.Mul(financial)).Add(sale.Mul(policy))
		diff := sale.Sub(markup).Sub(cost).Abs()
		assert.True(t, diff.LessThan(dec("0.0001")), "residual %s", diff)
	})

	t.Run("degenerateCombinedRates", func(t *testing.T) {
		cost := dec("500")
		sale, degenerate := SolveSalePrice(cost, dec("0.6"), dec("0.3"), dec("0.1"))
		require.True(t, degenerate)
		assert.True(t, cost.Equal(sale), "fallback must be cost base")

		sale, degenerate = SolveSalePrice(cost, dec("1.5"), decimal.Zero, decimal.Zero)
		require.True(t, degenerate)
		assert.True(t, cost.Equal(sale))
	})
}

func TestProrateUniformsWorkedExample(t *testing.T) {
	// Catalog uniform at 20000 per year, 3 changes per year, 4 guards:
	// 20000/12 = 1666.67 monthly, ×3/12 = 416.67, ×4 = 1666.67.
	monthly := NormalizeUnitPrice(dec("20000"), "año")
	got := ProrateUniforms(monthly, 3, 4)
	assert.True(t, dec("1666.67").Equal(got.Round(2)), "got %s", got)
}

func TestProrateUniformsZeroGuards(t *testing.T) {
	assert.True(t, decimal.Zero.Equal(ProrateUniforms(dec("999"), 12, 0)))
}

func TestProrateExams(t *testing.T) {
	t.Run("turnoverAmortization", func(t *testing.T) {
		// 600 per panel, guards stay 8 months on average, 5 guards:
		// entries_per_year = 12/8 = 1.5; 600×1.5/12 = 75; ×5 = 375.
		got := ProrateExams(dec("600"), dec("8"), 5)
		assert.True(t, dec("375").Equal(got.Round(2)), "got %s", got)
	})

	t.Run("zeroStayMeansZeroCost", func(t *testing.T) {
		assert.True(t, decimal.Zero.Equal(ProrateExams(dec("600"), decimal.Zero, 5)))
	})

	t.Run("zeroGuards", func(t *testing.T) {
		assert.True(t, decimal.Zero.Equal(ProrateExams(dec("600"), dec("8"), 0)))
	})
}

func TestAmortizePolicy(t *testing.T) {
	t.Run("spreadAcrossContract", func(t *testing.T) {
		// sale 100000, premium sized over 12 policy months at 100%, rate 2%,
		// spread over a 24 month commercial contract:
		// 100000×12×1×0.02 / 24 = 1000.
		got := AmortizePolicy(dec("100000"), dec("0.02"), decimalOne, 12, 24)
		assert.True(t, dec("1000").Equal(got.Round(2)), "got %s", got)
	})

	t.Run("zeroPctDefaultsToFull", func(t *testing.T) {
		full := AmortizePolicy(dec("100000"), dec("0.02"), decimalOne, 12, 24)
		defaulted := AmortizePolicy(dec("100000"), dec("0.02"), decimal.Zero, 12, 24)
		assert.True(t, full.Equal(defaulted))
	})

	t.Run("zeroContractMonths", func(t *testing.T) {
		assert.True(t, decimal.Zero.Equal(AmortizePolicy(dec("100000"), dec("0.02"), decimalOne, 12, 0)))
	})
}
