package scheduler

// Allows reports whether the profile permits working the shift on the
// given date. shiftKey must already be canonical (see Rules.Normalize).
// Checks run in a fixed order and short-circuit on the first failure:
// date allow-list, date block-list, shift allow-list, shift block-list,
// then the hard-requirement list. Pure; no store access.
func (p *Profile) Allows(date, shiftKey string) bool {
	if len(p.AllowedDates) > 0 && !p.AllowedDates[date] {
		return false
	}
	if p.BlockedDates[date] {
		return false
	}
	if len(p.AllowedShifts) > 0 && !p.AllowedShifts[shiftKey] {
		return false
	}
	if p.BlockedShifts[shiftKey] {
		return false
	}
	if len(p.RequiredShifts) > 0 && !p.RequiredShifts[shiftKey] {
		return false
	}
	return true
}
