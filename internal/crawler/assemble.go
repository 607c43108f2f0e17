package crawler

import (
	"errors"
	"fmt"

	"atrezzo/internal/model"
)

// Assemble turns the cards of one page into rows, one per card and in card order. The first
// card that does not fit the layout fails the whole page.
func Assemble(page int, cards []Card, layout Layout) ([]model.Product, error) {
	rows := make([]model.Product, 0, len(cards))
	for i, c := range cards {
		f, err := layout.Split(c.Text)
		if err != nil {
			var lm *LayoutMismatchError
			if errors.As(err, &lm) {
				lm.Card = i
			}
			return nil, fmt.Errorf("page %d: %w", page, err)
		}

		rows = append(rows, model.Product{
			Page:        page,
			Name:        f.Name,
			Code:        f.Code,
			Category:    f.Category,
			Section:     JoinSections(c.Sections),
			Description: f.Description,
			Dimensions:  f.Dimensions,
			ImageURL:    c.ImageURL,
		})
	}
	return rows, nil
}
