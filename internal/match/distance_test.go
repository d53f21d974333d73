package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistance(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"hello", "hello", 0},
		{"", "abc", 3},
		{"a", "b", 1},
		{"a", "ab", 1},
		{"kitten", "sitting", 3},
		{"saturday", "sunday", 3},
		{"Hello", "hello", 1},
		{"bundle", "bundel", 2},
		{"tgt", "src", 3},
		{"pid", "id", 1},
		{"größe", "grosse", 3},
	}

	for _, tt := range tests {
		t.Run(tt.a+"_"+tt.b, func(t *testing.T) {
			assert.Equal(t, tt.want, Distance(tt.a, tt.b))
			assert.Equal(t, tt.want, Distance(tt.b, tt.a))
		})
	}
}

func TestSimilarity(t *testing.T) {
	assert.InDelta(t, 1.0, Similarity("", ""), 1e-9)
	assert.InDelta(t, 0.0, Similarity("abc", "xyz"), 1e-9)
	assert.InDelta(t, 1.0-3.0/7.0, Similarity("kitten", "sitting"), 1e-9)
	assert.InDelta(t, 1.0-1.0/3.0, Similarity("abc", "ab"), 1e-9)
}

func TestScore(t *testing.T) {
	assert.InDelta(t, 1.0, Score("patient_id", "patientID"), 1e-9)
	assert.InDelta(t, 1.0, Score("tgt.fullUrl", "tgt_fullurl"), 1e-9)
	assert.GreaterOrEqual(t, Score("entry", "entries"), 0.5)
	assert.InDelta(t, 0.0, Score("bundle", "v"), 1e-9)
}

func TestNormalizeIdent(t *testing.T) {
	tests := map[string]string{
		"":              "",
		"OrderID":       "orderid",
		"order-id":      "orderid",
		"PRICE_CENTS":   "pricecents",
		"order_item-ID": "orderitemid",
		"bundle.entry":  "bundleentry",
		"e.fullUrl":     "efullurl",
		"given name":    "givenname",
	}

	for in, want := range tests {
		assert.Equal(t, want, NormalizeIdent(in), in)
	}
}
