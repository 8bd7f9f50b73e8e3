package shortener

import "time"

// Code represents a short URL code.
type Code string

// Link maps a short code to the URL it was created for.
// Links are created once and never modified.
type Link struct {
	Code        Code
	OriginalURL string
	CreatedAt   time.Time
}
