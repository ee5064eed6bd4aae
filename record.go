package harvest

// Kind identifies the record type a scrape run targets. Each kind carries
// its own container heuristics, field cascades, and mandatory field.
type Kind string

// Supported record kinds.
const (
	KindEcommerce Kind = "ecommerce"
	KindBusiness  Kind = "business"
	KindContent   Kind = "content"
)

// Valid reports whether k is a recognized kind.
func (k Kind) Valid() bool {
	switch k {
	case KindEcommerce, KindBusiness, KindContent:
		return true
	}
	return false
}

// FieldSpec maps logical field names to explicit CSS selectors.
// User-supplied and read-only during a run. The container key
// (e.g. "product_container") names the record container selector.
type FieldSpec map[string]string

// Record is one extracted item keyed by field name. Values are strings,
// numbers, string slices, or nested maps (reviews, social links, metadata).
// A record missing its kind's identity field is never stored.
type Record map[string]any

// String returns the string value for a field, or "" if the field is
// absent or not a string.
func (r Record) String(field string) string {
	s, _ := r[field].(string)
	return s
}

// Has reports whether the field is present with a non-nil value.
func (r Record) Has(field string) bool {
	v, ok := r[field]
	return ok && v != nil
}

// Merge copies fields from other into r where r has no value (absent, nil,
// or empty string). Used when a detail page fills in fields a listing row
// lacked.
func (r Record) Merge(other Record) {
	for k, v := range other {
		if existing, ok := r[k]; !ok || existing == nil || existing == "" {
			r[k] = v
		}
	}
}

// Clone returns a shallow copy of the record.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// KindProfile bundles the kind-specific knowledge the extraction engine
// needs: where to look for record containers and which field identifies
// a record.
type KindProfile struct {
	Kind Kind

	// IdentityField is the mandatory field; records without it are dropped.
	IdentityField string

	// ContainerKey is the FieldSpec key holding the explicit container
	// selector, consulted before any heuristic.
	ContainerKey string

	// ContainerSelectors are the conventional container selectors tried
	// in order when no explicit selector matches.
	ContainerSelectors []string

	// ClassKeywords drive the structural heuristic: div/li (and article
	// for content) nodes whose class attribute contains one of these.
	ClassKeywords []string

	// ContentTags are the candidate tags scanned by the structural and
	// content heuristics.
	ContentTags []string
}

// Profile returns the KindProfile for a kind. Unknown kinds return the
// ecommerce profile.
func Profile(kind Kind) KindProfile {
	switch kind {
	case KindBusiness:
		return KindProfile{
			Kind:          KindBusiness,
			IdentityField: "name",
			ContainerKey:  "business_container",
			ContainerSelectors: []string{
				".business", ".business-listing", ".listing", ".vcard",
				".result", "[itemtype*='LocalBusiness']", ".business-card",
				".directory-listing",
			},
			ClassKeywords: []string{"business", "listing", "result", "vcard", "card"},
			ContentTags:   []string{"div", "li", "article"},
		}
	case KindContent:
		return KindProfile{
			Kind:          KindContent,
			IdentityField: "title",
			ContainerKey:  "article_container",
			ContainerSelectors: []string{
				"article", ".post", ".entry", ".article", ".blog-post",
				".blog-entry", "[itemtype*='BlogPosting']", "[itemtype*='Article']",
			},
			ClassKeywords: []string{"post", "article", "entry", "item", "content"},
			ContentTags:   []string{"div", "li", "article"},
		}
	default:
		return KindProfile{
			Kind:          KindEcommerce,
			IdentityField: "name",
			ContainerKey:  "product_container",
			ContainerSelectors: []string{
				".product", ".product-item", ".item", "[data-product-id]",
				".product-card", ".product-grid-item",
			},
			ClassKeywords: []string{"product", "item", "card"},
			ContentTags:   []string{"div", "li"},
		}
	}
}
