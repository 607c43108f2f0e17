package crawler

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseCards(t *testing.T) {
	e := NewExtractor("")
	cards, err := e.ParseCards(pageHTML(sillaRoja.html(), mesaSinFoto.html()))
	require.NoError(t, err)
	require.Len(t, cards, 2)

	require.NotNil(t, cards[0].ImageURL)
	require.Equal(t, "https://atrezzovazquez.es/img/x.jpg", *cards[0].ImageURL)
	require.Equal(t, []string{"Mobiliario", "Sillas"}, cards[0].Sections)
	require.Equal(t, rawText(sillaText()), cards[0].Text)

	require.Nil(t, cards[1].ImageURL)
	require.Equal(t, []string{"Mobiliario"}, cards[1].Sections)
}

// sillaText is the visible text of the sillaRoja card, line by line.
func sillaText() []string {
	lines := make([]string, 17)
	lines[2] = " Mobiliario "
	lines[3] = " Sillas "
	lines[5] = "CAT123 Silla Roja"
	lines[6] = "Ref."
	lines[8] = "Silla de madera lacada"
	lines[10] = "Medidas"
	lines[11] = "45x50x90 cm"
	lines[14] = "Ver"
	return lines
}

func TestParseCardsEmptyPage(t *testing.T) {
	cards, err := NewExtractor("").ParseCards(pageHTML())
	require.NoError(t, err)
	require.Empty(t, cards)
}

func TestParseCardsIgnoresOtherEntries(t *testing.T) {
	html := pageHTML(
		`<div class="product-slide-entry">not a listing card</div>`,
		sillaRoja.html(),
	)
	cards, err := NewExtractor("").ParseCards(html)
	require.NoError(t, err)
	require.Len(t, cards, 1)
}

func TestParseCardsImageWithoutSrc(t *testing.T) {
	lines := sillaRoja.lines()
	lines[0] = `<img alt="sin foto">`

	cards, err := NewExtractor("").ParseCards(pageHTML(cardMarkup(lines)))
	require.NoError(t, err)
	require.Len(t, cards, 1)
	require.Nil(t, cards[0].ImageURL)
}

func TestResolve(t *testing.T) {
	tests := []struct {
		root, src, want string
	}{
		{"https://atrezzovazquez.es/", "/img/x.jpg", "https://atrezzovazquez.es/img/x.jpg"},
		{"https://atrezzovazquez.es", "/img/x.jpg", "https://atrezzovazquez.es/img/x.jpg"},
		{"https://atrezzovazquez.es/", "img/x.jpg", "https://atrezzovazquez.es/img/x.jpg"},
		{"https://atrezzovazquez.es/", "https://cdn.example.com/a.png", "https://cdn.example.com/a.png"},
	}

	for _, tt := range tests {
		require.Equal(t, tt.want, resolve(tt.root, tt.src), tt.src)
	}
}
