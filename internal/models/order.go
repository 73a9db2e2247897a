package models

// RequiredOrderFields lists the order fields that must be present, in the
// order they are checked.
var RequiredOrderFields = []string{"name", "email", "size", "pieces", "total", "imageUrl"}

// OrderRequest is a puzzle order submitted from the designer page. Values are
// kept as decoded so they can be forwarded with their original JSON types.
type OrderRequest struct {
	Name        any `json:"name"`
	Email       any `json:"email"`
	Phone       any `json:"phone"`
	Size        any `json:"size"`
	Pieces      any `json:"pieces"`
	Addons      any `json:"addons"`
	Total       any `json:"total"`
	ImageURL    any `json:"imageUrl"`
	ImageWidth  any `json:"imageWidth"`
	ImageHeight any `json:"imageHeight"`
	ImageFormat any `json:"imageFormat"`
	Notes       any `json:"notes"`

	// Company is a hidden form field. People never fill it in; bots do.
	Company any `json:"company"`
}

// Field returns a required field by its JSON name.
func (o *OrderRequest) Field(name string) any {
	switch name {
	case "name":
		return o.Name
	case "email":
		return o.Email
	case "size":
		return o.Size
	case "pieces":
		return o.Pieces
	case "total":
		return o.Total
	case "imageUrl":
		return o.ImageURL
	}
	return nil
}

// OrderPayload is the normalized body forwarded to the spreadsheet webhook
type OrderPayload struct {
	Name        any `json:"name"`
	Email       any `json:"email"`
	Phone       any `json:"phone"`
	Size        any `json:"size"`
	Pieces      any `json:"pieces"`
	Addons      any `json:"addons"`
	Total       any `json:"total"`
	ImageURL    any `json:"imageUrl"`
	ImageWidth  any `json:"imageWidth"`
	ImageHeight any `json:"imageHeight"`
	ImageFormat any `json:"imageFormat"`
	Notes       any `json:"notes"`
}

// NewOrderPayload fills optional fields with the defaults the workflow expects.
func NewOrderPayload(o *OrderRequest) *OrderPayload {
	return &OrderPayload{
		Name:        o.Name,
		Email:       o.Email,
		Phone:       ValueOr(o.Phone, ""),
		Size:        o.Size,
		Pieces:      o.Pieces,
		Addons:      ValueOr(o.Addons, map[string]any{}),
		Total:       o.Total,
		ImageURL:    o.ImageURL,
		ImageWidth:  ValueOr(o.ImageWidth, ""),
		ImageHeight: ValueOr(o.ImageHeight, ""),
		ImageFormat: ValueOr(o.ImageFormat, ""),
		Notes:       ValueOr(o.Notes, ""),
	}
}

// OrderAccepted is the success body of an order submission
type OrderAccepted struct {
	OK bool `json:"ok"`
}
