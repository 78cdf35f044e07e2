package extract

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scraper-go/selector"
)

func page(title string) string {
	return fmt.Sprintf(`<div class="item"><h2>%s</h2></div>`, title)
}

func TestBulkPreservesInputOrder(t *testing.T) {
	pages := []string{page("A"), page("B"), page("C"), page("D"), page("E")}

	e := New(Options{Workers: 3})
	results, err := e.ExtractDataBulk(context.Background(), pages, "div.item", map[string]string{
		"title": "h2",
	})
	require.NoError(t, err)
	require.Len(t, results, len(pages))

	for i, want := range []string{"A", "B", "C", "D", "E"} {
		require.Len(t, results[i], 1, "page %d", i)
		require.NotNil(t, results[i][0]["title"])
		assert.Equal(t, want, *results[i][0]["title"], "page %d", i)
	}
}

func TestBulkEmptyInput(t *testing.T) {
	results, err := ExtractDataBulk(nil, "div", map[string]string{"x": "p"})
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestBulkMoreWorkersThanPages(t *testing.T) {
	results, err := New(Options{Workers: 64}).ExtractDataBulk(
		context.Background(),
		[]string{page("only")},
		"div.item",
		map[string]string{"title": "h2"},
	)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "only", *results[0][0]["title"])
}

// A bad selector fails the whole batch before any page is processed: the
// same mapping would fail identically everywhere, so partial results would
// only hide the fault.
func TestBulkFailsAtomicallyOnBadSelector(t *testing.T) {
	pages := []string{page("A"), page("B")}

	results, err := ExtractDataBulk(pages, "div.item", map[string]string{
		"bad": "h2:first-child",
	})
	require.Error(t, err)
	assert.Nil(t, results)

	var syn *selector.SyntaxError
	require.ErrorAs(t, err, &syn)
	assert.Equal(t, "h2:first-child", syn.Selector)
}

func TestBulkPagesWithoutMatchesKeepTheirSlot(t *testing.T) {
	pages := []string{page("A"), `<p>no items at all</p>`, page("C")}

	results, err := ExtractDataBulk(pages, "div.item", map[string]string{"title": "h2"})
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Len(t, results[0], 1)
	assert.Empty(t, results[1])
	assert.Len(t, results[2], 1)
}

func TestBulkRespectsCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// the rate limiter checks ctx before every dispatch, making
	// cancellation deterministic
	e := New(Options{Workers: 2, PageRate: 1000})
	_, err := e.ExtractDataBulk(ctx, []string{page("A"), page("B")}, "div.item", map[string]string{
		"title": "h2",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestBulkSharedEngineIsConcurrencySafe(t *testing.T) {
	e := New(Options{Workers: 4})
	pages := make([]string, 50)
	for i := range pages {
		pages[i] = page(fmt.Sprintf("p%02d", i))
	}

	results, err := e.ExtractDataBulk(context.Background(), pages, "div.item", map[string]string{
		"title": "h2",
	})
	require.NoError(t, err)
	require.Len(t, results, 50)
	for i := range pages {
		require.Len(t, results[i], 1)
		assert.Equal(t, fmt.Sprintf("p%02d", i), *results[i][0]["title"])
	}
}
