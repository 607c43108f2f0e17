package crawler

import (
	"strings"
)

// testCard describes one product card of a listing fixture.
type testCard struct {
	img         string // src attribute, "" for no image
	sections    []string
	codeName    string
	description string
	dimensions  string
}

// lines returns the card's markup as 17 newline-free pieces; the card text then splits into
// exactly 17 segments with the named values at positions 5, 8 and 11.
func (c testCard) lines() []string {
	parts := make([]string, 17)
	if c.img != "" {
		parts[0] = `<a href="/producto"><img src="` + c.img + `" alt=""></a>`
	}
	for i, s := range c.sections {
		if i > 1 {
			break
		}
		parts[2+i] = `<div class="cat-sec"> ` + s + ` </div>`
	}
	parts[5] = `<h3 class="product-title">` + c.codeName + `</h3>`
	parts[6] = `<span class="label">Ref.</span>`
	parts[8] = `<p class="description">` + c.description + `</p>`
	parts[10] = `<b>Medidas</b>`
	parts[11] = `<span class="size">` + c.dimensions + `</span>`
	parts[14] = `<a class="button" href="/producto">Ver</a>`
	return parts
}

func (c testCard) html() string {
	return cardMarkup(c.lines())
}

func cardMarkup(lines []string) string {
	return `<div class="product-slide-entry shift-image">` + strings.Join(lines, "\n") + `</div>`
}

func pageHTML(cards ...string) string {
	return `<html><head><title>Catálogo</title></head><body><div class="products-grid">` +
		strings.Join(cards, "\n") +
		`</div><div class="pagination">1 2 3</div></body></html>`
}

var (
	sillaRoja = testCard{
		img:         "/img/x.jpg",
		sections:    []string{"Mobiliario", "Sillas"},
		codeName:    "CAT123 Silla Roja",
		description: "Silla de madera lacada",
		dimensions:  "45x50x90 cm",
	}
	mesaSinFoto = testCard{
		sections:    []string{"Mobiliario"},
		codeName:    "Mesas M12",
		description: "Mesa auxiliar de roble",
		dimensions:  "60x60x75 cm",
	}
)
