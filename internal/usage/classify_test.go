package usage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		body string
		want PageKind
	}{
		{name: "usage page", body: "Data usage 5,5 GB of 10 GB remaining", want: PageUsable},
		{name: "german direct access", body: "Direkter Zugriff auf diese Seite ist nicht möglich.", want: PageAuthRequired},
		{name: "german redirect", body: "Eine Weiterleitung ist derzeit nicht möglich.", want: PageAuthRequired},
		{name: "english direct access", body: "Direct access to the page not possible", want: PageAuthRequired},
		{name: "english redirect", body: "The redirect is not possible from this network", want: PageAuthRequired},
		{name: "upper case", body: "DIREKTER ZUGRIFF", want: PageAuthRequired},
		{name: "decomposed umlaut", body: "Weiterleitung nicht mo\u0308glich", want: PageAuthRequired},
		{name: "one term of a rule", body: "Weiterleitung zur Startseite", want: PageUsable},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			doc, err := ParseDocument("<html><body><p>" + tc.body + "</p></body></html>")
			require.NoError(t, err)

			kind, err := Classify(doc)
			require.NoError(t, err)
			assert.Equal(t, tc.want, kind)
		})
	}
}

func TestClassifyWithoutBodyUsesDocumentText(t *testing.T) {
	t.Parallel()

	kind, err := Classify(&fakeNode{text: "direct access to the page not possible"})
	require.NoError(t, err)
	assert.Equal(t, PageAuthRequired, kind)
}

func TestPageKindString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "usable", PageUsable.String())
	assert.Equal(t, "auth required", PageAuthRequired.String())
	assert.Equal(t, "unknown", PageKind(9).String())
}
