package listing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderingForRotatesByWeekday(t *testing.T) {
	// 2024-01-01 is a Monday
	monday := time.Date(2024, time.January, 1, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 7; i++ {
		day := monday.AddDate(0, 0, i)
		assert.Equal(t, Orderings[i], OrderingFor(day), day.Weekday().String())
	}

	sunday := monday.AddDate(0, 0, 6)
	assert.Equal(t, "companies.document DESC", OrderingFor(sunday))
}

func TestParseFilter(t *testing.T) {
	f, err := ParseFilter("", "", "")
	require.NoError(t, err)
	assert.Nil(t, f.CategoryID)
	assert.Empty(t, f.State)

	f, err = ParseFilter(" paula ", "t", "n")
	require.NoError(t, err)
	assert.Equal(t, " paula ", f.Term)
	assert.Nil(t, f.CategoryID)
	assert.Empty(t, f.State)

	f, err = ParseFilter("", "42", "PA")
	require.NoError(t, err)
	require.NotNil(t, f.CategoryID)
	assert.Equal(t, int64(42), *f.CategoryID)
	assert.Equal(t, "PA", f.State)

	// state codes match exactly, lowercase is not folded
	f, err = ParseFilter("", "t", "pa")
	require.NoError(t, err)
	assert.Equal(t, "pa", f.State)

	_, err = ParseFilter("", " 42", "n")
	assert.ErrorIs(t, err, ErrInvalidCategory)

	_, err = ParseFilter("", "books", "n")
	assert.ErrorIs(t, err, ErrInvalidCategory)
}

func TestLikePatternEscapesWildcards(t *testing.T) {
	assert.Equal(t, `%paula%`, Filter{Term: "PAULA"}.LikePattern())
	assert.Equal(t, `%50\%\_off%`, Filter{Term: "50%_off"}.LikePattern())
	assert.Equal(t, `%%`, Filter{}.LikePattern())
}

func TestParsePage(t *testing.T) {
	p, err := ParsePage("")
	require.NoError(t, err)
	assert.Equal(t, 1, p)

	p, err = ParsePage("3")
	require.NoError(t, err)
	assert.Equal(t, 3, p)

	for _, raw := range []string{"0", "-1", "abc", "1.5"} {
		_, err = ParsePage(raw)
		assert.ErrorIs(t, err, ErrInvalidPage, raw)
	}
}

func TestPagination(t *testing.T) {
	assert.Equal(t, 1, NumPages(0))
	assert.Equal(t, 1, NumPages(10))
	assert.Equal(t, 2, NumPages(11))
	assert.Equal(t, 20, Offset(3))

	assert.NoError(t, CheckPage(1, 0))
	assert.ErrorIs(t, CheckPage(2, 0), ErrInvalidPage)
	assert.NoError(t, CheckPage(2, 11))
	assert.ErrorIs(t, CheckPage(3, 11), ErrInvalidPage)
}
