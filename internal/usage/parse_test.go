package usage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const usagePageHTML = `<!DOCTYPE html>
<html lang="en">
<head><title>Data usage - Test Plan</title></head>
<body>
<section class="data-pass-instance" id="summationPass">
	<div class="remaining-volume-value">99</div>
	<div class="start-volume">99</div>
</section>
<section class="data-pass-instance">
	<div class="remaining-volume-value"> 5,5 </div>
	<div class="start-volume">10</div>
	<div class="info-row">Valid until: 31.12.2024 23:59</div>
</section>
</body>
</html>`

func TestParse(t *testing.T) {
	t.Parallel()

	t.Run("extracts a metered pass", func(t *testing.T) {
		t.Parallel()

		rec, err := Parse(usagePageHTML)
		require.NoError(t, err)

		assert.Equal(t, "Test Plan", rec.Plan())
		assert.InDelta(t, 5.5, rec.RemainingGB, 1e-9)
		assert.InDelta(t, 10.0, rec.TotalGB, 1e-9)
		assert.InDelta(t, 4.5, rec.UsedGB, 1e-9)
		assert.InDelta(t, 45.0, rec.Percentage, 1e-9)
		require.NotNil(t, rec.ValidUntil)
		assert.Equal(t, "31.12.2024 23:59", *rec.ValidUntil)
		assert.False(t, rec.IsUnlimited)
	})

	t.Run("extracts a german page", func(t *testing.T) {
		t.Parallel()

		html := `<html><head><title>Datenverbrauch - MagentaMobil Prepaid L</title></head>
<body><section class="data-pass-instance">
<div class="remaining-volume-value">38,36</div>
<div class="start-volume">51</div>
<div class="info-row">Gültig bis: 05.03.2025</div>
</section></body></html>`

		rec, err := Parse(html)
		require.NoError(t, err)
		assert.Equal(t, "MagentaMobil Prepaid L", rec.Plan())
		assert.InDelta(t, 38.36, rec.RemainingGB, 1e-9)
		assert.InDelta(t, 51.0, rec.TotalGB, 1e-9)
		require.NotNil(t, rec.ValidUntil)
		assert.Equal(t, "05.03.2025", *rec.ValidUntil)
	})

	t.Run("extracts an unlimited pass", func(t *testing.T) {
		t.Parallel()

		html := `<html><head><title>Data usage - Unlimited Flat</title></head>
<body><section class="data-pass-instance">
<div class="remaining-volume-value">Unlimited</div>
</section></body></html>`

		rec, err := Parse(html)
		require.NoError(t, err)
		assert.True(t, rec.IsUnlimited)
		assert.Zero(t, rec.TotalGB)
		assert.Zero(t, rec.Percentage)
		assert.Equal(t, "Unlimited Flat", rec.Plan())
	})

	t.Run("page without usage section", func(t *testing.T) {
		t.Parallel()

		_, err := Parse(`<html><head><title>Data usage - Plan</title></head><body><p>hello</p></body></html>`)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrNotFound)
		assert.Contains(t, err.Error(), "could not find data usage information")
	})

	t.Run("invalid quantity", func(t *testing.T) {
		t.Parallel()

		html := `<html><head><title>Data usage - Plan</title></head>
<body><section class="data-pass-instance">
<div class="remaining-volume-value">invalid</div>
<div class="start-volume">10</div>
</section></body></html>`

		_, err := Parse(html)
		var numErr *NumberError
		require.ErrorAs(t, err, &numErr)
		assert.Equal(t, "invalid", numErr.Text)
	})

	t.Run("redirect wall", func(t *testing.T) {
		t.Parallel()

		html := `<html><head><title>Data usage - Plan</title></head>
<body><p>Direct access to the page not possible.</p></body></html>`

		rec, err := Parse(html)
		assert.Nil(t, rec)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrAuthRequired)
		assert.Contains(t, err.Error(), "--file")
	})
}

func TestParseDocumentRejectsInvalidSelector(t *testing.T) {
	t.Parallel()

	doc, err := ParseDocument(usagePageHTML)
	require.NoError(t, err)

	_, err = doc.Find("div[")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformedMarkup)

	var markupErr *MarkupError
	require.ErrorAs(t, err, &markupErr)
	assert.Equal(t, "div[", markupErr.Selector)
}

func TestParseDocumentFindsInDocumentOrder(t *testing.T) {
	t.Parallel()

	doc, err := ParseDocument(usagePageHTML)
	require.NoError(t, err)

	sections, err := doc.Find(sectionSelector)
	require.NoError(t, err)
	require.Len(t, sections, 2)

	id, ok := sections[0].Attr("id")
	assert.True(t, ok)
	assert.Equal(t, summationSectionID, id)

	_, ok = sections[1].Attr("id")
	assert.False(t, ok)
}
