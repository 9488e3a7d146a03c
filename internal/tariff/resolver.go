package tariff

import (
	"fmt"
	"sort"
)

// PickBandForPeople selects the nightly rate band for a party size.
//
// Preference order: the band matching people exactly, then the smallest band
// that still fits the party, then the largest band available even if it is
// undersized. ok is false only when the table has no bands.
func PickBandForPeople(t Table, people int) (PeopleBand, bool) {
	if len(t.PeopleBands) == 0 {
		return PeopleBand{}, false
	}

	bands := cloneBands(t.PeopleBands)
	sort.SliceStable(bands, func(i, j int) bool {
		return bands[i].People < bands[j].People
	})

	for _, b := range bands {
		if b.People == people {
			return b, true
		}
	}
	for _, b := range bands {
		if b.People >= people {
			return b, true
		}
	}

	return bands[len(bands)-1], true
}

// PickLongStayDiscount returns the percent of the qualifying tier with the
// highest MinNights threshold (not the highest percent).
func PickLongStayDiscount(t Table, nights int) (int, bool) {
	tiers := cloneDiscounts(t.LongStayDiscounts)
	sort.SliceStable(tiers, func(i, j int) bool {
		return tiers[i].MinNights > tiers[j].MinNights
	})

	for _, d := range tiers {
		if nights >= d.MinNights {
			return d.DiscountPercent, true
		}
	}
	return 0, false
}

// DiscountOption is one selectable discount in the quote form.
type DiscountOption struct {
	Label    string  `json:"label"`
	Percent  int     `json:"percent"`
	Fraction float64 `json:"fraction"`
}

// Percents always offered regardless of the table.
var (
	alwaysOffered = []int{20}
	summerOffered = []int{10, 15}
)

// DiscountMenu builds the ordered discount choices for a season: every tier
// percent in the table plus the fixed extras, positive and de-duplicated.
func DiscountMenu(t Table, season Season) []DiscountOption {
	seen := make(map[int]struct{})
	for _, d := range t.LongStayDiscounts {
		seen[d.DiscountPercent] = struct{}{}
	}
	for _, p := range alwaysOffered {
		seen[p] = struct{}{}
	}
	if season == SeasonSummer {
		for _, p := range summerOffered {
			seen[p] = struct{}{}
		}
	}

	percents := make([]int, 0, len(seen))
	for p := range seen {
		if p > 0 {
			percents = append(percents, p)
		}
	}
	sort.Ints(percents)

	options := make([]DiscountOption, 0, len(percents))
	for _, p := range percents {
		options = append(options, DiscountOption{
			Label:    fmt.Sprintf("%d%%", p),
			Percent:  p,
			Fraction: float64(p) / 100,
		})
	}
	return options
}
