package quote

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cabanas/quote-service/internal/money"
	"github.com/cabanas/quote-service/internal/tariff"
)

func TestCalculate(t *testing.T) {
	tests := []struct {
		name              string
		input             Input
		totalOriginal     money.Cents
		totalWithDiscount money.Cents
		deposit           money.Cents
		second            money.Cents
		balance           money.Cents
		installments      int
	}{
		{
			name:              "summer without discount",
			input:             Input{PricePerNightCents: 10000, Nights: 3, People: 2, Season: tariff.SeasonSummer},
			totalOriginal:     30000,
			totalWithDiscount: 30000,
			deposit:           6000,
			second:            9000,
			balance:           15000,
			installments:      3,
		},
		{
			name:              "spring without discount",
			input:             Input{PricePerNightCents: 10000, Nights: 3, People: 2, Season: tariff.SeasonSpring},
			totalOriginal:     30000,
			totalWithDiscount: 30000,
			deposit:           15000,
			second:            0,
			balance:           15000,
			installments:      2,
		},
		{
			name:              "summer with 10% discount",
			input:             Input{PricePerNightCents: 10000, Nights: 3, People: 4, Discount: 0.10, Season: tariff.SeasonSummer},
			totalOriginal:     30000,
			totalWithDiscount: 27000,
			deposit:           5400,
			second:            8100,
			balance:           13500,
			installments:      3,
		},
		{
			name:              "summer rounding goes to balance",
			input:             Input{PricePerNightCents: 111, Nights: 3, People: 1, Season: tariff.SeasonSummer},
			totalOriginal:     333,
			totalWithDiscount: 333,
			deposit:           67,
			second:            100,
			balance:           166,
			installments:      3,
		},
		{
			name:              "spring rounding goes to balance",
			input:             Input{PricePerNightCents: 111, Nights: 3, People: 1, Season: tariff.SeasonSpring},
			totalOriginal:     333,
			totalWithDiscount: 333,
			deposit:           167,
			second:            0,
			balance:           166,
			installments:      2,
		},
		{
			name:              "unknown season uses summer schedule",
			input:             Input{PricePerNightCents: 10000, Nights: 3, People: 2, Season: "winter"},
			totalOriginal:     30000,
			totalWithDiscount: 30000,
			deposit:           6000,
			second:            9000,
			balance:           15000,
			installments:      3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Calculate(tt.input)
			require.NoError(t, err)

			assert.Equal(t, tt.totalOriginal, res.TotalOriginalCents)
			assert.Equal(t, tt.totalWithDiscount, res.TotalWithDiscountCents)
			assert.Equal(t, tt.deposit, res.DepositCents)
			assert.Equal(t, tt.second, res.SecondPaymentCents)
			assert.Equal(t, tt.balance, res.BalanceCents)
			assert.Len(t, res.Installments, tt.installments)
			assert.Equal(t, tt.input.Nights, res.Nights)
			assert.Equal(t, tt.input.People, res.People)
		})
	}
}

func TestCalculateRejects(t *testing.T) {
	tests := []struct {
		name  string
		input Input
	}{
		{"zero price", Input{PricePerNightCents: 0, Nights: 3, People: 2}},
		{"negative price", Input{PricePerNightCents: -1, Nights: 3, People: 2}},
		{"zero nights", Input{PricePerNightCents: 100, Nights: 0, People: 2}},
		{"zero people", Input{PricePerNightCents: 100, Nights: 3, People: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Calculate(tt.input)
			assert.ErrorIs(t, err, ErrRejected)
		})
	}
}

func TestCalculateClampsDiscount(t *testing.T) {
	res, err := Calculate(Input{PricePerNightCents: 1000, Nights: 2, People: 2, Discount: 1.5})
	require.NoError(t, err)
	assert.Equal(t, 1.0, res.Discount)
	assert.Equal(t, money.Cents(0), res.TotalWithDiscountCents)
	assert.Equal(t, money.Cents(0), res.BalanceCents)

	res, err = Calculate(Input{PricePerNightCents: 1000, Nights: 2, People: 2, Discount: -0.3})
	require.NoError(t, err)
	assert.Equal(t, 0.0, res.Discount)
	assert.Equal(t, money.Cents(2000), res.TotalWithDiscountCents)

	res, err = Calculate(Input{PricePerNightCents: 1000, Nights: 2, People: 2, Discount: math.NaN()})
	require.NoError(t, err)
	assert.Equal(t, money.Cents(2000), res.TotalWithDiscountCents)
}

func TestCalculateSplitAlwaysAddsUp(t *testing.T) {
	prices := []money.Cents{1, 7, 99, 333, 10001, 1_234_567, 8_000_000}
	nights := []int{1, 2, 3, 7, 14, 31}
	discounts := []float64{0, 0.05, 0.1, 0.15, 0.2, 0.333, 1}

	for _, season := range tariff.Seasons {
		for _, price := range prices {
			for _, n := range nights {
				for _, d := range discounts {
					name := fmt.Sprintf("%s/%d/%d/%v", season, price, n, d)
					res, err := Calculate(Input{PricePerNightCents: price, Nights: n, People: 2, Discount: d, Season: season})
					require.NoError(t, err, name)

					assert.Equal(t, res.TotalWithDiscountCents,
						res.DepositCents+res.SecondPaymentCents+res.BalanceCents, name)
					assert.LessOrEqual(t, res.TotalWithDiscountCents, res.TotalOriginalCents, name)
					assert.GreaterOrEqual(t, res.DepositCents, money.Cents(0), name)
					assert.GreaterOrEqual(t, res.BalanceCents, money.Cents(0), name)

					var sum money.Cents
					for _, p := range res.Installments {
						sum += p.AmountCents
					}
					assert.Equal(t, res.TotalWithDiscountCents, sum, name)

					if season == tariff.SeasonSpring {
						assert.Zero(t, res.SecondPaymentCents, name)
					}
				}
			}
		}
	}
}

func TestResultDiscountHelpers(t *testing.T) {
	tests := []struct {
		discount float64
		expected string
	}{
		{0, "0"},
		{0.07, "7"},
		{0.15, "15"},
		{0.125, "12.5"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, Result{Discount: tt.discount}.DiscountPercent())
		})
	}

	res, err := Calculate(Input{PricePerNightCents: 10000, Nights: 3, People: 2, Discount: 0.2})
	require.NoError(t, err)
	assert.Equal(t, money.Cents(6000), res.DiscountCents())
}

func TestScheduleFor(t *testing.T) {
	for _, season := range tariff.Seasons {
		t.Run(string(season), func(t *testing.T) {
			s := ScheduleFor(season)
			total := 0
			for _, inst := range s.Installments {
				total += inst.Percent
			}
			assert.Equal(t, 100, total)
		})
	}

	summer := ScheduleFor(tariff.SeasonSummer)
	assert.Equal(t, "Seña (20%)", summer.Installments[0].Label())
	assert.Equal(t, "Saldo final (50%)", summer.Installments[2].Label())

	// callers cannot mutate the shared schedule
	summer.Installments[0].Percent = 99
	assert.Equal(t, 20, ScheduleFor(tariff.SeasonSummer).Installments[0].Percent)
}

func TestScheduleSplitEmpty(t *testing.T) {
	assert.Nil(t, Schedule{}.Split(1000))
}

func TestCalculateRejectsOverflowingTotals(t *testing.T) {
	_, err := Calculate(Input{PricePerNightCents: math.MaxInt64/2 + 1, Nights: 2, People: 2})
	assert.ErrorIs(t, err, ErrRejected)

	form := Form{People: "2", Nights: "10", Price: "9999999999999999"}
	require.True(t, form.CanCalculate())
	_, err = Calculate(form.Input())
	assert.ErrorIs(t, err, ErrRejected)

	res, err := Calculate(Input{PricePerNightCents: math.MaxInt64 / 2, Nights: 2, People: 2})
	require.NoError(t, err)
	assert.Equal(t, money.Cents(math.MaxInt64-1), res.TotalOriginalCents)
	assert.Equal(t, res.TotalWithDiscountCents, res.DepositCents+res.SecondPaymentCents+res.BalanceCents)
	for _, p := range res.Installments {
		assert.Positive(t, p.AmountCents)
	}
}
