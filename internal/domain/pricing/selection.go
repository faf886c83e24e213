package pricing

// Selection tracks which products and variants are included in a response.
//
// The model is opt-out: any key with no explicit entry is included. Downstream
// consumers (the distributor and the response builder) must query through a
// Selection rather than trusting inclusion flags embedded in stale
// product/variant records; the selection is the single source of truth the
// administrator mutates while editing a response.
type Selection struct {
	products map[string]bool
	variants map[string]map[string]bool
}

// NewSelection creates an empty selection (everything included).
func NewSelection() *Selection {
	return &Selection{
		products: make(map[string]bool),
		variants: make(map[string]map[string]bool),
	}
}

// SetProduct records an explicit inclusion decision for a product.
func (s *Selection) SetProduct(productID string, quoted bool) {
	s.products[productID] = quoted
}

// SetVariant records an explicit inclusion decision for a variant.
func (s *Selection) SetVariant(productID, variantID string, quoted bool) {
	m, ok := s.variants[productID]
	if !ok {
		m = make(map[string]bool)
		s.variants[productID] = m
	}
	m[variantID] = quoted
}

// ProductQuoted reports whether a product is included. Defaults to true.
func (s *Selection) ProductQuoted(productID string) bool {
	if v, ok := s.products[productID]; ok {
		return v
	}
	return true
}

// VariantQuoted reports whether a variant is included. A variant is included
// only when its owning product is included and the variant itself has not been
// explicitly excluded. Defaults to true.
func (s *Selection) VariantQuoted(productID, variantID string) bool {
	if !s.ProductQuoted(productID) {
		return false
	}
	if m, ok := s.variants[productID]; ok {
		if v, ok := m[variantID]; ok {
			return v
		}
	}
	return true
}
