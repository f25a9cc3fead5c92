package models

import "time"

// Gestation periods in days between mating and expected birth.
const (
	GestationDaysSwine   = 114
	GestationDaysPoultry = 21
)

// ProjectBirthDate derives the expected birth date from a mating date and the
// mother's species. Species outside the known set fall back to the swine
// period; the enum boundary rejects them before they can reach here.
func ProjectBirthDate(matingDate time.Time, species Species) (time.Time, error) {
	if matingDate.IsZero() {
		return time.Time{}, &InvalidDateError{Field: "mating date", Reason: "date is missing or malformed"}
	}

	days := GestationDaysSwine
	if species == SpeciesPoultry {
		days = GestationDaysPoultry
	}

	return matingDate.AddDate(0, 0, days), nil
}
