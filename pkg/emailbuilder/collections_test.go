package emailbuilder

import (
	"fmt"
	"strings"
	"testing"
)

func cardsOf(n int) *CardsBlock {
	b := &CardsBlock{}
	for i := 0; i < n; i++ {
		b.Cards = append(b.Cards, CardItem{Title: fmt.Sprintf("Card %d", i+1)})
	}
	return b
}

func TestRenderCardsGridShape(t *testing.T) {
	r := newTestRenderer(nil)

	tests := []struct {
		cards   int
		rows    int
		fillers int
	}{
		{cards: 1, rows: 1, fillers: 1},
		{cards: 2, rows: 1, fillers: 0},
		{cards: 3, rows: 2, fillers: 1},
		{cards: 4, rows: 2, fillers: 0},
		{cards: 5, rows: 3, fillers: 1},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d cards", tt.cards), func(t *testing.T) {
			out := r.renderCards(cardsOf(tt.cards))

			// Each grid row has exactly one left cell with a right gutter.
			if got := strings.Count(out, "padding-right: 8px"); got != tt.rows {
				t.Errorf("expected %d rows, counted %d left cells: %s", tt.rows, got, out)
			}
			// A filler cell is an immediately-closed right cell.
			if got := strings.Count(out, `padding-left: 8px;"></td>`); got != tt.fillers {
				t.Errorf("expected %d filler cells, got %d: %s", tt.fillers, got, out)
			}
			// Only the first row sits flush with the header.
			if got := strings.Count(out, "padding-top: 0; padding-right"); got != 1 {
				t.Errorf("expected exactly one flush first row, got %d: %s", got, out)
			}
			if got := strings.Count(out, "padding-top: 16px; padding-right"); got != tt.rows-1 {
				t.Errorf("expected %d spaced rows, got %d: %s", tt.rows-1, got, out)
			}
		})
	}
}

func TestRenderCardsEmpty(t *testing.T) {
	r := newTestRenderer(nil)
	if out := r.renderCards(&CardsBlock{Title: "Picks"}); out != "" {
		t.Errorf("expected no output without cards, got %s", out)
	}
}

func TestRenderCardsHeaderAndItemFields(t *testing.T) {
	r := newTestRenderer(nil)
	b := &CardsBlock{
		Title:      "This week",
		Subtitle:   "Hand-picked reads",
		LabelColor: "#f59e0b",
		Cards: []CardItem{{
			Label:       "guide",
			Title:       "Getting started",
			Description: "Five minutes to your first send.",
			ButtonText:  "Read",
			ButtonLink:  "example.com/guide",
			Image:       "uploads/guide.png",
		}},
	}

	out := r.renderCards(b)
	for _, want := range []string{
		"This week",
		"Hand-picked reads",
		">guide<",
		"text-transform: uppercase",
		"color: #f59e0b",
		"Getting started",
		"Five minutes to your first send.",
		`href="https://example.com/guide"`,
		">Read</a>",
		`src="https://cdn.example.com/uploads/guide.png"`,
		"height: 180px; object-fit: cover",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output: %s", want, out)
		}
	}
}

func TestRenderCardsButtonWithoutLink(t *testing.T) {
	r := newTestRenderer(nil)
	out := r.renderCards(&CardsBlock{Cards: []CardItem{{ButtonText: "Read"}}})
	if !strings.Contains(out, `href="#"`) {
		t.Errorf("expected placeholder href, got %s", out)
	}
}

func TestRenderListNumbered(t *testing.T) {
	r := newTestRenderer(nil)
	b := &ListBlock{
		BulletType:  "number",
		BulletColor: "#10b981",
		Items: []ListItem{
			{Title: "First", Description: "one"},
			{Title: "Second", Description: "two"},
			{Title: "Third"},
		},
	}

	out := r.renderList(b)
	for i := 1; i <= 3; i++ {
		if !strings.Contains(out, fmt.Sprintf(">%d</div>", i)) {
			t.Errorf("expected badge %d, got %s", i, out)
		}
	}
	if !strings.Contains(out, "background-color: #10b981") {
		t.Errorf("expected bullet color on badges, got %s", out)
	}
	if strings.Contains(out, "&bull;") {
		t.Errorf("numbered list must not use glyph bullets, got %s", out)
	}
}

func TestRenderListBullets(t *testing.T) {
	r := newTestRenderer(nil)
	b := &ListBlock{Items: []ListItem{{Title: "One"}, {Title: "Two"}}}

	out := r.renderList(b)
	if got := strings.Count(out, "&bull;"); got != 2 {
		t.Errorf("expected 2 bullets, got %d: %s", got, out)
	}
}

func TestRenderListDescriptionLineBreaks(t *testing.T) {
	r := newTestRenderer(nil)
	b := &ListBlock{Items: []ListItem{{Title: "Entry", Description: "line one\nline two\n\nline three"}}}

	out := r.renderList(b)
	for _, want := range []string{">line one</div>", ">line two</div>", ">line three</div>"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q as its own block: %s", want, out)
		}
	}
}

func TestRenderListEmpty(t *testing.T) {
	r := newTestRenderer(nil)
	if out := r.renderList(&ListBlock{Title: "Steps"}); out != "" {
		t.Errorf("expected no output without items, got %s", out)
	}
}

func TestRenderAuthor(t *testing.T) {
	r := newTestRenderer(nil)

	t.Run("empty renders nothing", func(t *testing.T) {
		if out := r.renderAuthor(&AuthorBlock{}); out != "" {
			t.Errorf("expected no output, got %s", out)
		}
	})

	t.Run("avatar image", func(t *testing.T) {
		out := r.renderAuthor(&AuthorBlock{Name: "Avery Quinn", Avatar: "uploads/avery.png"})
		if !strings.Contains(out, `src="https://cdn.example.com/uploads/avery.png"`) {
			t.Errorf("expected avatar image, got %s", out)
		}
		if !strings.Contains(out, "Avery Quinn") {
			t.Errorf("expected name, got %s", out)
		}
	})

	t.Run("initial fallback", func(t *testing.T) {
		out := r.renderAuthor(&AuthorBlock{Name: "avery", Subtitle: "Editor"})
		if !strings.Contains(out, ">A</div>") {
			t.Errorf("expected uppercase initial circle, got %s", out)
		}
		if !strings.Contains(out, "Editor") {
			t.Errorf("expected subtitle, got %s", out)
		}
	})

	t.Run("social links", func(t *testing.T) {
		out := r.renderAuthor(&AuthorBlock{
			Name: "Avery",
			Links: []SocialLink{
				{Icon: "bluesky", URL: "https://bsky.app/profile/avery"},
				{Icon: "carrier-pigeon", URL: "https://example.com"},
			},
		})
		if !strings.Contains(out, "icons/bluesky.png") {
			t.Errorf("expected bluesky icon, got %s", out)
		}
		if strings.Contains(out, "carrier-pigeon") {
			t.Errorf("unknown icon must be omitted, got %s", out)
		}
	})

	t.Run("iconless link renders non-interactive", func(t *testing.T) {
		out := r.renderAuthor(&AuthorBlock{Name: "Avery", Links: []SocialLink{{Icon: "x"}}})
		if !strings.Contains(out, "icons/x.png") {
			t.Errorf("expected icon without URL, got %s", out)
		}
		if strings.Contains(out, "<a ") {
			t.Errorf("icon without URL must not be a link, got %s", out)
		}
	})
}
