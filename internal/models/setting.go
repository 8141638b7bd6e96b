package models

import "time"

// Setting is a single key/value site configuration entry managed from the
// dashboard (business name, opening hours, social links, ...).
type Setting struct {
	Key       string
	Value     string
	UpdatedAt time.Time
}
