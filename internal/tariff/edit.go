package tariff

// Row edits work on a season's override. An edit starts from the override's
// own list when present (even if empty), otherwise from the built-in list,
// and always stores the full edited list back on the override.

// WithBand sets the nightly price for a guest count, adding the band when
// no band has that count yet.
func (o Overrides) WithBand(season Season, b PeopleBand) Overrides {
	bands := o.editBands(season)
	replaced := false
	for i := range bands {
		if bands[i].People == b.People {
			bands[i].PricePerNightCents = b.PricePerNightCents
			replaced = true
		}
	}
	if !replaced {
		bands = append(bands, b)
	}
	return o.withLists(season, bands, nil, true, false)
}

// WithoutBand removes every band for a guest count. It reports whether any
// band was removed.
func (o Overrides) WithoutBand(season Season, people int) (Overrides, bool) {
	bands := o.editBands(season)
	kept := bands[:0]
	for _, b := range bands {
		if b.People != people {
			kept = append(kept, b)
		}
	}
	if len(kept) == len(bands) {
		return o.Clone(), false
	}
	return o.withLists(season, kept, nil, true, false), true
}

// WithDiscount sets the percent for a minimum-nights threshold, adding the
// tier when none has that threshold yet.
func (o Overrides) WithDiscount(season Season, d LongStayDiscount) Overrides {
	tiers := o.editDiscounts(season)
	replaced := false
	for i := range tiers {
		if tiers[i].MinNights == d.MinNights {
			tiers[i].DiscountPercent = d.DiscountPercent
			replaced = true
		}
	}
	if !replaced {
		tiers = append(tiers, d)
	}
	return o.withLists(season, nil, tiers, false, true)
}

// WithoutDiscount removes every tier with the threshold. It reports whether
// any tier was removed.
func (o Overrides) WithoutDiscount(season Season, minNights int) (Overrides, bool) {
	tiers := o.editDiscounts(season)
	kept := tiers[:0]
	for _, d := range tiers {
		if d.MinNights != minNights {
			kept = append(kept, d)
		}
	}
	if len(kept) == len(tiers) {
		return o.Clone(), false
	}
	return o.withLists(season, nil, kept, false, true), true
}

func (o Overrides) editBands(season Season) []PeopleBand {
	if ov := o.For(season); ov != nil && ov.PeopleBands != nil {
		return cloneBands(ov.PeopleBands)
	}
	out := cloneBands(Builtin(season).PeopleBands)
	if out == nil {
		out = []PeopleBand{}
	}
	return out
}

func (o Overrides) editDiscounts(season Season) []LongStayDiscount {
	if ov := o.For(season); ov != nil && ov.LongStayDiscounts != nil {
		return cloneDiscounts(ov.LongStayDiscounts)
	}
	out := cloneDiscounts(Builtin(season).LongStayDiscounts)
	if out == nil {
		out = []LongStayDiscount{}
	}
	return out
}

// withLists returns a copy with the flagged lists of season's override
// replaced; the other list of that override is kept as is.
func (o Overrides) withLists(season Season, bands []PeopleBand, tiers []LongStayDiscount, setBands, setTiers bool) Overrides {
	ov := o.For(season).Clone()
	if ov == nil {
		ov = &Override{}
	}
	if setBands {
		ov.PeopleBands = bands
	}
	if setTiers {
		ov.LongStayDiscounts = tiers
	}
	return o.With(season, ov)
}
