package model

// Columns is the canonical column order of the extracted table.
var Columns = []string{"name", "category", "section", "description", "dimensions", "image_url"}

type Product struct {
	Position    int // dense zero-based row index in the final table
	Page        int
	Name        string
	Code        string
	Category    string
	Section     string
	Description string
	Dimensions  string
	ImageURL    *string // nil when the card has no image
}

// Image returns the image URL and whether the card had one.
func (p Product) Image() (string, bool) {
	if p.ImageURL == nil {
		return "", false
	}
	return *p.ImageURL, true
}

// Row returns the product as strings in Columns order. A missing image is an empty cell.
func (p Product) Row() []string {
	img, _ := p.Image()
	return []string{p.Name, p.Category, p.Section, p.Description, p.Dimensions, img}
}
