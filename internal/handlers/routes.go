package handlers

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

const formContentType = "application/x-www-form-urlencoded"

// RegisterRoutes registers all URL shortener routes.
func RegisterRoutes(api huma.API, urlHandler *URLHandler) {
	// POST /api/shorturl - Create short URL
	// An empty body is accepted and answered like an invalid url.
	huma.Register(api, huma.Operation{
		OperationID: "create-short-url",
		Method:      http.MethodPost,
		Path:        "/api/shorturl",
		Summary:     "Create short URL",
		Description: "Validates the submitted URL and returns its short code, reusing the code of an earlier identical submission.",
		Tags:        []string{"URLs"},
		RequestBody: &huma.RequestBody{
			Required: false,
			Content: map[string]*huma.MediaType{
				formContentType: {
					Schema: &huma.Schema{
						Type: huma.TypeObject,
						Properties: map[string]*huma.Schema{
							"url": {
								Type:        huma.TypeString,
								Description: "The URL to shorten",
								Examples:    []any{"https://example.com/very/long/path"},
							},
						},
					},
				},
			},
		},
	}, urlHandler.CreateShortURL)

	// GET /api/shorturl/{shortUrl} - Redirect to original URL
	huma.Register(api, huma.Operation{
		OperationID:   "redirect-short-url",
		Method:        http.MethodGet,
		Path:          "/api/shorturl/{shortUrl}",
		Summary:       "Redirect to original URL",
		Description:   "Redirects to the original URL associated with the short code.",
		Tags:          []string{"URLs"},
		DefaultStatus: http.StatusFound,
	}, urlHandler.RedirectToURL)
}
