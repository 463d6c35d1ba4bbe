package rank

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"draftboard-engine/internal/domain"
)

func picksWith(field string, vals ...string) []domain.Pick {
	out := make([]domain.Pick, len(vals))
	for i, v := range vals {
		switch field {
		case domain.FieldPick:
			out[i].Pick = v
		case domain.FieldName:
			out[i].Name = v
		}
		out[i].RoundPick = string(rune('a' + i))
	}
	return out
}

func col(picks []domain.Pick, field string) []string {
	out := make([]string, len(picks))
	for i, p := range picks {
		out[i] = p.Get(field)
	}
	return out
}

func TestCompare(t *testing.T) {
	assert.Negative(t, Compare("9", "10"), "numbers by value")
	assert.Positive(t, Compare("b", "a"))
	assert.Negative(t, Compare("B", "a"), "byte-wise, case-sensitive")
	assert.Negative(t, Compare("", "0"), "blank first")
	assert.Negative(t, Compare("", "a"))
	assert.Negative(t, Compare("", "  "), "blanks tie-break on raw text")
	assert.Positive(t, Compare(" ", "\t"))
	assert.Negative(t, Compare("\t", "0"), "whitespace is still blank")
	assert.Equal(t, 0, Compare("  ", "  "))
	assert.Negative(t, Compare("1", "1.0"), "numeric tie broken by raw text")
	assert.Negative(t, Compare("10", "1a"), "numbers before text")
	assert.Equal(t, 0, Compare("x", "x"))
}

func TestCompareIsStrictWeakOrder(t *testing.T) {
	vals := []string{"", " ", "\t", "0", "1", "1.0", "9", "10", "-3", "1a", "a", "B", "b", "$5", "(unsigned)"}
	for _, a := range vals {
		assert.Equal(t, 0, Compare(a, a))
		for _, b := range vals {
			assert.Equal(t, -sign(Compare(a, b)), sign(Compare(b, a)), "antisymmetry %q %q", a, b)
			if a != b {
				assert.NotZero(t, Compare(a, b), "distinct inputs %q %q", a, b)
			}
			for _, c := range vals {
				if Compare(a, b) < 0 && Compare(b, c) < 0 {
					assert.Negative(t, Compare(a, c), "transitivity %q %q %q", a, b, c)
				}
			}
		}
	}
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	}
	return 0
}

func TestSortNoKeyKeepsOrder(t *testing.T) {
	in := picksWith(domain.FieldPick, "3", "1", "2")
	got := Sort(in, SortState{})
	assert.Equal(t, in, got)
	got[0].Pick = "changed"
	assert.Equal(t, "3", in[0].Pick, "result is a copy")

	assert.NotNil(t, Sort(nil, SortState{Key: domain.FieldPick}))
}

func TestSortNumericAndText(t *testing.T) {
	in := picksWith(domain.FieldPick, "10", "", "9", "abc", "100", "2")
	asc := Sort(in, SortState{Key: domain.FieldPick, Direction: Asc})
	assert.Equal(t, []string{"", "2", "9", "10", "100", "abc"}, col(asc, domain.FieldPick))

	desc := Sort(in, SortState{Key: domain.FieldPick, Direction: Desc})
	assert.Equal(t, []string{"abc", "100", "10", "9", "2", ""}, col(desc, domain.FieldPick))

	assert.Equal(t, []string{"10", "", "9", "abc", "100", "2"}, col(in, domain.FieldPick), "input untouched")
}

func TestSortIsStable(t *testing.T) {
	in := picksWith(domain.FieldName, "b", "a", "b", "a")
	got := Sort(in, SortState{Key: domain.FieldName, Direction: Asc})
	assert.Equal(t, []string{"b", "d", "a", "c"}, col(got, domain.FieldRoundPick))

	again := Sort(got, SortState{Key: domain.FieldName, Direction: Asc})
	assert.Equal(t, got, again, "same state twice yields the same sequence")
}

func TestSortDeterministicUnderShuffle(t *testing.T) {
	vals := []string{"", "1", "1.0", "01", "2", "x", "X", "10", "-1"}
	want := col(Sort(picksWith(domain.FieldPick, vals...), SortState{Key: domain.FieldPick}), domain.FieldPick)

	r := rand.New(rand.NewSource(7))
	for i := 0; i < 20; i++ {
		shuffled := append([]string(nil), vals...)
		r.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })
		got := col(Sort(picksWith(domain.FieldPick, shuffled...), SortState{Key: domain.FieldPick}), domain.FieldPick)
		require.Equal(t, want, got)
	}
}

func TestToggle(t *testing.T) {
	var s SortState
	s = s.Toggle(domain.FieldYear)
	assert.Equal(t, SortState{Key: domain.FieldYear, Direction: Asc}, s)
	s = s.Toggle(domain.FieldYear)
	assert.Equal(t, SortState{Key: domain.FieldYear, Direction: Desc}, s)
	s = s.Toggle(domain.FieldYear)
	assert.Equal(t, SortState{Key: domain.FieldYear, Direction: Asc}, s, "two toggles return to ascending")
	s = s.Toggle(domain.FieldYear).Toggle(domain.FieldName)
	assert.Equal(t, SortState{Key: domain.FieldName, Direction: Asc}, s, "new key resets")
}

func TestToggleTwiceRestoresAscendingOrder(t *testing.T) {
	in := picksWith(domain.FieldPick, "3", "1", "2")
	first := SortState{}.Toggle(domain.FieldPick)
	third := first.Toggle(domain.FieldPick).Toggle(domain.FieldPick)
	assert.Equal(t, Sort(in, first), Sort(in, third))
}

func TestParse(t *testing.T) {
	d, err := ParseDirection("DESC")
	require.NoError(t, err)
	assert.Equal(t, Desc, d)
	d, err = ParseDirection("")
	require.NoError(t, err)
	assert.Equal(t, Asc, d)
	_, err = ParseDirection("up")
	assert.Error(t, err)

	k, err := ParseKey(" signedBonus ")
	require.NoError(t, err)
	assert.Equal(t, domain.FieldSignedBonus, k)
	k, err = ParseKey("")
	require.NoError(t, err)
	assert.Empty(t, k)
	_, err = ParseKey("salary")
	assert.ErrorIs(t, err, ErrUnknownKey)
}
