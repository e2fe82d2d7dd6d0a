package utils

import (
	"fmt"

	"coladay/models"
)

// ShortenAddress renders a wallet address as its first and last six
// characters, e.g. "0x1234...abcdef".
func ShortenAddress(address models.Address) string {
	s := string(address)
	if len(s) <= 12 {
		return s
	}
	return s[:6] + "..." + s[len(s)-6:]
}

// FormatTimeslot renders an hour-of-day timeslot for display ("8am", "1pm").
func FormatTimeslot(hour int) string {
	if hour < 13 {
		return fmt.Sprintf("%dam", hour)
	}
	return fmt.Sprintf("%dpm", hour-12)
}
