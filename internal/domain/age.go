package domain

import "time"

// ComputeAge returns the age in whole years at today, or nil when the birth date is unknown
func ComputeAge(birthDate *time.Time, today time.Time) *int {
	if birthDate == nil {
		return nil
	}
	age := today.Year() - birthDate.Year()
	if today.Month() < birthDate.Month() ||
		(today.Month() == birthDate.Month() && today.Day() < birthDate.Day()) {
		age--
	}
	return &age
}
