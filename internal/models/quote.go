package models

// QuoteRequest holds the puzzle options chosen on the page. Size and Pieces
// are loosely typed because the page sends them as either strings or numbers.
type QuoteRequest struct {
	Size   any          `json:"size"`
	Pieces any          `json:"pieces"`
	Image  *ImageMeta   `json:"image,omitempty"`
	Addons *QuoteAddons `json:"addons,omitempty"`
}

// ImageMeta is the uploaded image metadata reported by the upload widget
type ImageMeta struct {
	Format any `json:"format"`
	Width  any `json:"width"`
	Height any `json:"height"`
}

// QuoteAddons are optional paid extras
type QuoteAddons struct {
	Cleanup    any `json:"cleanup"`
	Rush       any `json:"rush"`
	Multicolor any `json:"multicolor"`
}

// LineItem is one priced row of a quote breakdown
type LineItem struct {
	Label  string `json:"label"`
	Amount int    `json:"amount"`
}

// QuoteResponse is the computed price and advisory notes
type QuoteResponse struct {
	Total     int        `json:"total"`
	Breakdown []LineItem `json:"breakdown"`
	Notes     []string   `json:"notes"`
}
