// Package greenops turns emission totals into relatable equivalencies
// (miles driven, smartphones charged, tree seedlings, home-days of
// electricity) and formats carbon quantities for display.
package greenops
