package tariff

// MergeOverride applies an override to a base table.
//
// Bands are replaced only by a present, non-empty list: a table always keeps
// at least one rate band. Discounts are replaced by any present list, so an
// explicit empty list disables every long-stay discount.
func MergeOverride(base Table, ov *Override) Table {
	merged := base.Clone()
	if ov == nil {
		return merged
	}

	if len(ov.PeopleBands) > 0 {
		merged.PeopleBands = cloneBands(ov.PeopleBands)
	}
	if ov.LongStayDiscounts != nil {
		merged.LongStayDiscounts = cloneDiscounts(ov.LongStayDiscounts)
	}

	return merged
}
