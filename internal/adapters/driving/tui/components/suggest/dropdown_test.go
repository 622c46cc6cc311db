package suggest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/intellisearch/isearch-cli/internal/adapters/driving/tui/styles"
	"github.com/intellisearch/isearch-cli/internal/core/domain"
)

func sampleItems() []domain.SuggestionItem {
	return []domain.SuggestionItem{
		{Text: "install agent", Kind: domain.SuggestionCompletion},
		{Text: "install on linux", Kind: domain.SuggestionCompletion},
		{Text: "installation guide", Kind: domain.SuggestionQuery},
	}
}

func TestNewDropdown_Hidden(t *testing.T) {
	d := NewDropdown(styles.DefaultStyles())

	require.NotNil(t, d)
	assert.False(t, d.Visible())
	assert.Empty(t, d.View())
	assert.Nil(t, d.Selected())
}

func TestDropdown_SetItems(t *testing.T) {
	d := NewDropdown(nil)

	d.SetItems(sampleItems())

	assert.True(t, d.Visible())
	assert.Len(t, d.Items(), 3)
	// Focus stays on the raw input until the user navigates down
	assert.Nil(t, d.Selected())
}

func TestDropdown_Navigation(t *testing.T) {
	d := NewDropdown(nil)
	d.SetItems(sampleItems())

	d.MoveDown()
	require.NotNil(t, d.Selected())
	assert.Equal(t, "install agent", d.Selected().Text)

	d.MoveDown()
	d.MoveDown()
	d.MoveDown() // clamps at the last item
	assert.Equal(t, "installation guide", d.Selected().Text)

	d.MoveUp()
	d.MoveUp()
	assert.Equal(t, "install agent", d.Selected().Text)

	// Moving above the first item returns focus to the input text
	d.MoveUp()
	assert.Nil(t, d.Selected())
	assert.Equal(t, -1, d.SelectedIndex())
}

func TestDropdown_Clear(t *testing.T) {
	d := NewDropdown(nil)
	d.SetItems(sampleItems())
	d.MoveDown()

	d.Clear()

	assert.False(t, d.Visible())
	assert.Nil(t, d.Selected())
}

func TestDropdown_View_MarksRelatedQueries(t *testing.T) {
	d := NewDropdown(nil)
	d.SetItems(sampleItems())

	view := d.View()

	assert.Contains(t, view, "install agent")
	assert.Contains(t, view, "(related)")
}
