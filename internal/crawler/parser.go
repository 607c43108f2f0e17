package crawler

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const DefaultSiteRoot = "https://atrezzovazquez.es/"

// Selectors locate the parts of a product card in the listing markup.
type Selectors struct {
	Card    string
	Section string
	Image   string
}

func DefaultSelectors() Selectors {
	return Selectors{
		Card:    "div.product-slide-entry.shift-image",
		Section: "div.cat-sec",
		Image:   "img",
	}
}

// Card is one product entry of a listing page before field splitting.
type Card struct {
	Text     string
	Sections []string
	ImageURL *string
}

type Extractor struct {
	SiteRoot  string
	Selectors Selectors
}

func NewExtractor(siteRoot string) *Extractor {
	if siteRoot == "" {
		siteRoot = DefaultSiteRoot
	}
	return &Extractor{SiteRoot: siteRoot, Selectors: DefaultSelectors()}
}

// ParseCards returns the product cards of a page in document order. A page without cards
// yields an empty slice and no error.
func (e *Extractor) ParseCards(html string) ([]Card, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parse page: %w", err)
	}

	var cards []Card
	doc.Find(e.Selectors.Card).Each(func(_ int, s *goquery.Selection) {
		card := Card{
			Text:     s.Text(),
			ImageURL: e.imageURL(s),
		}
		s.Find(e.Selectors.Section).Each(func(_ int, sec *goquery.Selection) {
			card.Sections = append(card.Sections, strings.TrimSpace(sec.Text()))
		})
		cards = append(cards, card)
	})

	return cards, nil
}

// HasCards reports whether html parses and holds at least one product card.
func (e *Extractor) HasCards(html string) bool {
	cards, err := e.ParseCards(html)
	return err == nil && len(cards) > 0
}

func (e *Extractor) imageURL(s *goquery.Selection) *string {
	src, ok := s.Find(e.Selectors.Image).First().Attr("src")
	src = strings.TrimSpace(src)
	if !ok || src == "" {
		return nil
	}
	abs := resolve(e.SiteRoot, src)
	return &abs
}

// resolve turns a relative image source into an absolute URL under root. "/img/x.jpg"
// becomes "https://host/img/x.jpg", never "https://host//img/x.jpg".
func resolve(root, src string) string {
	base, err := url.Parse(root)
	if err != nil {
		return strings.TrimSuffix(root, "/") + "/" + strings.TrimPrefix(src, "/")
	}
	ref, err := url.Parse(src)
	if err != nil {
		return strings.TrimSuffix(root, "/") + "/" + strings.TrimPrefix(src, "/")
	}
	return base.ResolveReference(ref).String()
}
