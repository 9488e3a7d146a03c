package quote

import (
	"errors"
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	"github.com/cabanas/quote-service/internal/money"
	"github.com/cabanas/quote-service/internal/tariff"
)

// ErrRejected is returned when an input cannot produce a quote.
var ErrRejected = errors.New("quote rejected")

// Input is a confirmed quote request.
type Input struct {
	PricePerNightCents money.Cents   `json:"pricePerNightCents"`
	Nights             int           `json:"nights"`
	People             int           `json:"people"`
	Discount           float64       `json:"discount"`
	Season             tariff.Season `json:"season"`
}

// Payment is one computed installment of a result.
type Payment struct {
	Installment
	AmountCents money.Cents `json:"amountCents"`
}

// Result is a computed quote.
type Result struct {
	TotalOriginalCents     money.Cents   `json:"totalOriginalCents"`
	TotalWithDiscountCents money.Cents   `json:"totalWithDiscountCents"`
	DepositCents           money.Cents   `json:"depositCents"`
	SecondPaymentCents     money.Cents   `json:"secondPaymentCents"`
	BalanceCents           money.Cents   `json:"balanceCents"`
	Nights                 int           `json:"nights"`
	PricePerNightCents     money.Cents   `json:"pricePerNightCents"`
	People                 int           `json:"people"`
	Discount               float64       `json:"discount"`
	Season                 tariff.Season `json:"season"`
	Installments           []Payment     `json:"installments"`
}

// DiscountCents is the amount taken off the original total.
func (r Result) DiscountCents() money.Cents {
	return r.TotalOriginalCents - r.TotalWithDiscountCents
}

// DiscountPercent renders the applied discount as a percentage without
// float noise, e.g. 0.07 → "7".
func (r Result) DiscountPercent() string {
	return decimal.NewFromFloat(r.Discount).Mul(decimal.NewFromInt(100)).String()
}

// Calculate computes totals and the payment split for a season.
func Calculate(in Input) (Result, error) {
	if in.PricePerNightCents <= 0 {
		return Result{}, fmt.Errorf("%w: price per night must be positive", ErrRejected)
	}
	if in.Nights <= 0 {
		return Result{}, fmt.Errorf("%w: nights must be positive", ErrRejected)
	}
	if in.People <= 0 {
		return Result{}, fmt.Errorf("%w: people must be positive", ErrRejected)
	}

	if in.PricePerNightCents > math.MaxInt64/money.Cents(in.Nights) {
		return Result{}, fmt.Errorf("%w: total exceeds the supported amount", ErrRejected)
	}

	season := in.Season
	if !season.IsValid() {
		season = tariff.SeasonSummer
	}
	discount := clampFraction(in.Discount)

	totalOriginal := in.PricePerNightCents * money.Cents(in.Nights)
	totalWithDiscount := money.ApplyDiscount(totalOriginal, discount)

	schedule := ScheduleFor(season)
	parts := schedule.Split(totalWithDiscount)

	payments := make([]Payment, len(parts))
	for i, amount := range parts {
		payments[i] = Payment{Installment: schedule.Installments[i], AmountCents: amount}
	}

	res := Result{
		TotalOriginalCents:     totalOriginal,
		TotalWithDiscountCents: totalWithDiscount,
		Nights:                 in.Nights,
		PricePerNightCents:     in.PricePerNightCents,
		People:                 in.People,
		Discount:               discount,
		Season:                 season,
		Installments:           payments,
	}

	// first → deposit, last → balance, a middle one (summer) → second
	res.DepositCents = parts[0]
	res.BalanceCents = parts[len(parts)-1]
	if len(parts) > 2 {
		res.SecondPaymentCents = parts[1]
	}

	return res, nil
}

func clampFraction(f float64) float64 {
	switch {
	case f < 0 || math.IsNaN(f):
		return 0
	case f > 1:
		return 1
	}
	return f
}
