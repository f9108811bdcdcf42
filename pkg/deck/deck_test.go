package deck

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

type zeroGenerator struct{}

func (zeroGenerator) Intn(int) int {
	return 0
}

func TestNew(t *testing.T) {
	a := assert.New(t)
	d := New()

	a.Equal(Size, d.CardsLeft())
	a.Equal("3 of Hearts", d.Cards[0].ID())
	a.Equal("2 of Hearts", d.Cards[12].ID())
	a.Equal("3 of Spades", d.Cards[13].ID())
	a.Equal("2 of Diamonds", d.Cards[51].ID())
	a.Equal("Small Joker", d.Cards[52].ID())
	a.Equal("Big Joker", d.Cards[53].ID())
	a.Equal("4b5b81de7ace196c7fb8fd516caa3ee4689eb5ac", d.HashCode())

	seen := make(map[string]bool)
	for _, card := range d.Cards {
		a.False(seen[card.ID()], "duplicate card %s", card.ID())
		seen[card.ID()] = true
	}
	a.Equal(Size, len(seen))
}

func TestNew_isFresh(t *testing.T) {
	d1 := New()
	d1.Cards[0] = CardFromString("bj")
	_, _ = d1.Draw()

	d2 := New()
	assert.Equal(t, Size, d2.CardsLeft())
	assert.Equal(t, "3 of Hearts", d2.Cards[0].ID())
}

func TestShuffle(t *testing.T) {
	a := assert.New(t)

	cards := CardsFromString("3h,4h,5h,6h")
	Shuffle(cards, zeroGenerator{})
	a.Equal("4h,5h,6h,3h", CardsToString(cards))

	d1 := New()
	d1.Shuffle(rand.New(rand.NewSource(1))) // nolint:gosec
	d2 := New()
	d2.Shuffle(rand.New(rand.NewSource(1))) // nolint:gosec
	a.Equal(d1.HashCode(), d2.HashCode())
	a.NotEqual(New().HashCode(), d1.HashCode())

	// a shuffle is only a permutation
	sorted := Hand(d1.Cards).Clone()
	SortByRank(sorted)
	canonical := Hand(New().Cards).Clone()
	SortByRank(canonical)
	a.ElementsMatch(IDs(canonical), IDs(sorted))
}

func TestDeck_Draw(t *testing.T) {
	d := New()

	if !d.CanDraw(54) {
		t.Errorf("expected CanDraw(54) to be true")
	}

	if d.CanDraw(55) {
		t.Errorf("expected CanDraw(55) to be false")
	}

	for i := 0; i < 54; i++ {
		_, err := d.Draw()
		if err != nil {
			t.Errorf("expected err to be nil, got %v", err)
		}
	}

	if d.CanDraw(1) {
		t.Errorf("expected CanDraw(1) to be false")
	}

	_, err := d.Draw()
	if err != ErrEndOfDeck {
		t.Errorf("expected err to be ErrEndOfDeck, got %#v", err)
	}
}
