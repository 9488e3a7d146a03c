package tariff

// Built-in rate tables, prices in ARS cents.
var (
	summerTable = Table{
		Season: SeasonSummer,
		PeopleBands: []PeopleBand{
			{People: 2, PricePerNightCents: 8_000_000},
			{People: 3, PricePerNightCents: 9_500_000},
			{People: 4, PricePerNightCents: 11_000_000},
			{People: 5, PricePerNightCents: 12_500_000},
			{People: 6, PricePerNightCents: 14_000_000},
		},
		LongStayDiscounts: []LongStayDiscount{
			{MinNights: 7, DiscountPercent: 10},
			{MinNights: 14, DiscountPercent: 15},
		},
	}

	springTable = Table{
		Season: SeasonSpring,
		PeopleBands: []PeopleBand{
			{People: 2, PricePerNightCents: 5_500_000},
			{People: 4, PricePerNightCents: 7_500_000},
			{People: 6, PricePerNightCents: 9_500_000},
		},
		LongStayDiscounts: []LongStayDiscount{
			{MinNights: 3, DiscountPercent: 5},
			{MinNights: 5, DiscountPercent: 10},
			{MinNights: 7, DiscountPercent: 15},
		},
	}
)

// Builtin returns a copy of the built-in table for a season.
// Unknown seasons get the summer table.
func Builtin(season Season) Table {
	if season == SeasonSpring {
		return springTable.Clone()
	}
	return summerTable.Clone()
}

// Active returns the built-in table for a season merged with its override.
func Active(season Season, overrides Overrides) Table {
	return MergeOverride(Builtin(season), overrides.For(season))
}
