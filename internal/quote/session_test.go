package quote

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cabanas/quote-service/internal/money"
	"github.com/cabanas/quote-service/internal/tariff"
)

func TestFormInput(t *testing.T) {
	f := Form{People: "4 personas", Nights: "3", Price: "$ 120.000", Discount: 0.1, Season: tariff.SeasonSpring}

	require.True(t, f.CanCalculate())
	in := f.Input()
	assert.Equal(t, money.Cents(12_000_000), in.PricePerNightCents)
	assert.Equal(t, 3, in.Nights)
	assert.Equal(t, 4, in.People)
	assert.Equal(t, 0.1, in.Discount)
	assert.Equal(t, tariff.SeasonSpring, in.Season)
}

func TestFormNightsFromDates(t *testing.T) {
	f := Form{Nights: "10", DateFrom: "15/12/2024", DateTo: "18/12/2024"}
	assert.Equal(t, 3, f.NightsCount())

	from, to, ok := f.DateRange()
	assert.True(t, ok)
	assert.Equal(t, "15/12/2024", from)
	assert.Equal(t, "18/12/2024", to)

	f.DateTo = ""
	assert.Equal(t, 10, f.NightsCount())
	_, _, ok = f.DateRange()
	assert.False(t, ok)
}

func TestFormCanCalculate(t *testing.T) {
	tests := []struct {
		name     string
		form     Form
		expected bool
	}{
		{"complete", Form{People: "2", Nights: "3", Price: "100"}, true},
		{"no price", Form{People: "2", Nights: "3"}, false},
		{"no people", Form{Nights: "3", Price: "100"}, false},
		{"no nights", Form{People: "2", Price: "100"}, false},
		{"reversed dates", Form{People: "2", Price: "100", DateFrom: "18/12/2024", DateTo: "15/12/2024"}, false},
		{"garbage price", Form{People: "2", Nights: "3", Price: "abc"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.form.CanCalculate())
		})
	}
}

func TestFormInputDefaultsSeason(t *testing.T) {
	assert.Equal(t, tariff.SeasonSummer, Form{}.Input().Season)
}

func TestSuggest(t *testing.T) {
	spring := tariff.Builtin(tariff.SeasonSpring)
	summer := tariff.Builtin(tariff.SeasonSummer)

	t.Run("spring auto-applies stay discount", func(t *testing.T) {
		s := Suggest(spring, 3, 5, false)
		assert.Equal(t, 4, s.BandPeople)
		assert.Equal(t, money.Cents(7_500_000), s.PricePerNightCents)
		assert.Equal(t, "75.000", s.PriceText)
		assert.Equal(t, 10, s.StayDiscountPercent)
		assert.True(t, s.HasStayDiscount)
		assert.True(t, s.AutoApplyDiscount)
		assert.InDelta(t, 0.10, s.StayDiscountFraction(), 1e-9)
	})

	t.Run("spring respects manual discount", func(t *testing.T) {
		s := Suggest(spring, 3, 5, true)
		assert.True(t, s.HasStayDiscount)
		assert.False(t, s.AutoApplyDiscount)
	})

	t.Run("summer only suggests", func(t *testing.T) {
		s := Suggest(summer, 2, 7, false)
		assert.Equal(t, "80.000", s.PriceText)
		assert.Equal(t, 10, s.StayDiscountPercent)
		assert.False(t, s.AutoApplyDiscount)
	})

	t.Run("empty inputs suggest nothing", func(t *testing.T) {
		s := Suggest(spring, 0, 0, false)
		assert.Zero(t, s.PricePerNightCents)
		assert.Empty(t, s.PriceText)
		assert.False(t, s.HasStayDiscount)
	})

	t.Run("short stay has no tier", func(t *testing.T) {
		s := Suggest(summer, 2, 3, false)
		assert.False(t, s.HasStayDiscount)
		assert.Zero(t, s.StayDiscountPercent)
	})
}

func TestSessionFlow(t *testing.T) {
	s := NewSession(tariff.Builtin(tariff.SeasonSpring))
	assert.Equal(t, tariff.SeasonSpring, s.Season())

	s.SetPeople("3")
	s.SetNights("5")

	form := s.Form()
	assert.Equal(t, "75.000", form.Price)
	assert.InDelta(t, 0.10, form.Discount, 1e-9)

	res, err := s.Calculate()
	require.NoError(t, err)
	assert.Equal(t, money.Cents(37_500_000), res.TotalOriginalCents)
	assert.Equal(t, money.Cents(33_750_000), res.TotalWithDiscountCents)
	assert.Equal(t, money.Cents(16_875_000), res.DepositCents)
	assert.Equal(t, money.Cents(16_875_000), res.BalanceCents)

	// picking a discount recomputes and stops auto-apply
	s.SetDiscount(0.2)
	res, ok := s.Result()
	require.True(t, ok)
	assert.Equal(t, money.Cents(30_000_000), res.TotalWithDiscountCents)

	s.SetNights("7")
	assert.InDelta(t, 0.2, s.Form().Discount, 1e-9)
	assert.Equal(t, 15, s.Suggestion().StayDiscountPercent)
}

func TestSessionManualPriceWins(t *testing.T) {
	s := NewSession(tariff.Builtin(tariff.SeasonSummer))
	s.SetPrice("$ 100.000")
	s.SetPeople("2")

	assert.Equal(t, "100.000", s.Form().Price)

	// an emptied price is refilled from the band
	s.SetPrice("")
	s.SetPeople("4")
	assert.Equal(t, "110.000", s.Form().Price)
}

func TestSessionDates(t *testing.T) {
	s := NewSession(tariff.Builtin(tariff.SeasonSummer))
	s.SetPeople("2")
	s.SetDates("15122024", "18122024")

	form := s.Form()
	assert.Equal(t, "15/12/2024", form.DateFrom)
	assert.Equal(t, "18/12/2024", form.DateTo)
	assert.Equal(t, "3", form.Nights)

	// typing a different night count drops the dates
	s.SetNights("4")
	form = s.Form()
	assert.Empty(t, form.DateFrom)
	assert.Empty(t, form.DateTo)
	assert.Equal(t, 4, form.NightsCount())
}

func TestSessionClearKeepsDates(t *testing.T) {
	s := NewSession(tariff.Builtin(tariff.SeasonSummer))
	s.SetPeople("2")
	s.SetDates("15/12/2024", "18/12/2024")
	s.SetDiscount(0.15)
	_, err := s.Calculate()
	require.NoError(t, err)

	s.Clear()

	form := s.Form()
	assert.Empty(t, form.People)
	assert.Empty(t, form.Price)
	assert.Zero(t, form.Discount)
	assert.Equal(t, "15/12/2024", form.DateFrom)
	assert.Equal(t, "18/12/2024", form.DateTo)
	_, ok := s.Result()
	assert.False(t, ok)
}

func TestSessionSwitchSeasonResets(t *testing.T) {
	s := NewSession(tariff.Builtin(tariff.SeasonSummer))
	s.SetPeople("2")
	s.SetDates("15/12/2024", "18/12/2024")
	_, err := s.Calculate()
	require.NoError(t, err)

	s.SwitchSeason(tariff.Builtin(tariff.SeasonSpring))

	assert.Equal(t, tariff.SeasonSpring, s.Season())
	assert.Equal(t, Form{Season: tariff.SeasonSpring}, s.Form())
	_, ok := s.Result()
	assert.False(t, ok)
}

func TestSessionRejectedClearsResult(t *testing.T) {
	s := NewSession(tariff.Builtin(tariff.SeasonSummer))
	s.Fill(Form{People: "2", Nights: "3"})
	_, err := s.Calculate()
	require.NoError(t, err)

	s.SetNights("0")
	_, err = s.Calculate()
	assert.ErrorIs(t, err, ErrRejected)
	_, ok := s.Result()
	assert.False(t, ok)
}

func TestSessionFill(t *testing.T) {
	s := NewSession(tariff.Builtin(tariff.SeasonSpring))
	s.Fill(Form{People: "6", DateFrom: "01/10/2025", DateTo: "08/10/2025", Price: "90.000"})

	form := s.Form()
	assert.Equal(t, "90.000", form.Price)
	assert.Equal(t, 7, form.NightsCount())
	assert.InDelta(t, 0.15, form.Discount, 1e-9)

	res, err := s.Calculate()
	require.NoError(t, err)
	assert.Equal(t, money.Cents(63_000_000), res.TotalOriginalCents)
	assert.Equal(t, money.Cents(53_550_000), res.TotalWithDiscountCents)
}

func TestSessionSetTableRefreshesSuggestion(t *testing.T) {
	s := NewSession(tariff.Builtin(tariff.SeasonSpring))
	s.SetPeople("2")
	s.SetNights("5")
	require.True(t, s.Suggestion().HasStayDiscount)

	table := tariff.MergeOverride(s.Table(), &tariff.Override{LongStayDiscounts: []tariff.LongStayDiscount{}})
	s.SetTable(table)
	assert.False(t, s.Suggestion().HasStayDiscount)
}
