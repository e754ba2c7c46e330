package feed

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveDate(t *testing.T) {
	feb3 := time.Date(2020, time.February, 3, 0, 0, 0, 0, time.UTC)

	got := ResolveDate("3", "FEB", "2020")
	require.NotNil(t, got)
	assert.Equal(t, feb3, *got)

	got = ResolveDate("3", "2", "2020")
	require.NotNil(t, got)
	assert.Equal(t, feb3, *got)

	got = ResolveDate("03", "feb", "2020")
	require.NotNil(t, got)
	assert.Equal(t, feb3, *got)
}

func TestResolveDate_ComposedFormEquivalence(t *testing.T) {
	parts := ResolveDate("3", "FEB", "2020")
	composed := ResolveComposed("2020-02-03")
	require.NotNil(t, parts)
	require.NotNil(t, composed)
	assert.Equal(t, *parts, *composed)
}

func TestResolveDate_Invalid(t *testing.T) {
	assert.Nil(t, ResolveDate("", "FEB", "2020"))
	assert.Nil(t, ResolveDate("3", "", "2020"))
	assert.Nil(t, ResolveDate("3", "FEB", ""))
	assert.Nil(t, ResolveDate("3", "XXX", "2020"))
	assert.Nil(t, ResolveDate("32", "JAN", "2020"))
	assert.Nil(t, ResolveDate("30", "FEB", "2020"), "normalized overflow rejected")
	assert.Nil(t, ResolveDate("3", "13", "2020"))
}

func TestResolveComposed(t *testing.T) {
	want := time.Date(2019, time.November, 7, 0, 0, 0, 0, time.UTC)
	for _, s := range []string{"2019-11-07", "7-Nov-2019", "07/11/2019"} {
		got := ResolveComposed(s)
		require.NotNil(t, got, s)
		assert.Equal(t, want, *got, s)
	}
	assert.Nil(t, ResolveComposed(""))
	assert.Nil(t, ResolveComposed("not a date"))
}

func TestResolveDateNode(t *testing.T) {
	fromAttrs := ResolveDateNode(&Node{
		Name:  "DateValue",
		Attrs: map[string]string{"Day": "3", "Month": "FEB", "Year": "2020"},
	})
	require.NotNil(t, fromAttrs)

	fromText := ResolveDateNode(&Node{Name: "DateValue", Text: "2020-02-03"})
	require.NotNil(t, fromText)

	assert.Equal(t, *fromAttrs, *fromText)
	assert.Nil(t, ResolveDateNode(nil))
}
