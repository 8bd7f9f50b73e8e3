package handlers

import (
	"fmt"
	"net/url"
)

// CreateShortURLRequest is the form-encoded request for creating a short URL.
type CreateShortURLRequest struct {
	RawBody []byte `contentType:"application/x-www-form-urlencoded"`
}

// ShortenForm is the typed view of the submission form.
type ShortenForm struct {
	URL string
}

// ParseShortenForm decodes a form-encoded body. A missing url field yields an empty URL.
func ParseShortenForm(body []byte) (ShortenForm, error) {
	values, err := url.ParseQuery(string(body))
	if err != nil {
		return ShortenForm{}, fmt.Errorf("parsing form: %w", err)
	}

	return ShortenForm{URL: values.Get("url")}, nil
}

// CreateShortURLResponse carries either the created link or a validation error, both with status 200.
type CreateShortURLResponse struct {
	Status int
	Body   struct {
		OriginalURL string `doc:"The submitted URL"     example:"http://example.com" json:"original_url,omitempty"`
		ShortURL    string `doc:"The short code"        example:"V1StGXR8"           json:"short_url,omitempty"`
		Error       string `doc:"Validation error text" example:"invalid url"        json:"error,omitempty"`
	}
}

// RedirectRequest is the request for resolving a short code.
type RedirectRequest struct {
	ShortURL string `doc:"The short code" example:"V1StGXR8" path:"shortUrl"`
}

// RedirectResponse redirects to the original URL.
type RedirectResponse struct {
	Status   int
	Location string `doc:"The original URL" header:"Location"`
}
