package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSelection_DefaultsToIncluded(t *testing.T) {
	sel := NewSelection()

	assert.True(t, sel.ProductQuoted("unknown"))
	assert.True(t, sel.VariantQuoted("unknown", "v1"))
}

func TestSelection_ExplicitTrueMatchesDefault(t *testing.T) {
	sel := NewSelection()
	sel.SetProduct("p1", true)
	sel.SetVariant("p1", "v1", true)

	assert.Equal(t, sel.ProductQuoted("p1"), sel.ProductQuoted("p2"),
		"explicit true must behave identically to no entry")
	assert.Equal(t, sel.VariantQuoted("p1", "v1"), sel.VariantQuoted("p2", "v9"))
}

func TestSelection_ProductExclusionGatesVariants(t *testing.T) {
	sel := NewSelection()
	sel.SetProduct("p1", false)
	sel.SetVariant("p1", "v1", true)

	assert.False(t, sel.VariantQuoted("p1", "v1"),
		"an excluded product excludes all of its variants")
}

func TestSelection_VariantToggle(t *testing.T) {
	sel := NewSelection()
	sel.SetVariant("p1", "v1", false)

	assert.False(t, sel.VariantQuoted("p1", "v1"))
	assert.True(t, sel.VariantQuoted("p1", "v2"), "siblings stay included")

	sel.SetVariant("p1", "v1", true)
	assert.True(t, sel.VariantQuoted("p1", "v1"))
}
