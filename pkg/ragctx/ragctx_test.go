package ragctx

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/megasoby/shop-agent/pkg/models"
)

func f64(v float64) *float64 { return &v }
func i(v int) *int           { return &v }

func TestProductContextEmpty(t *testing.T) {
	assert.Equal(t, NoProductResults, ProductContext("gaming laptop", nil))
	assert.Equal(t, NoProductResults, ProductContext("gaming laptop", []models.Product{}))
}

func TestProductContext(t *testing.T) {
	products := []models.Product{
		{
			ID:          "p-1",
			Name:        "UltraBook 14",
			Description: "Lightweight laptop",
			Price:       f64(1290000),
			Category:    "laptop",
			Stock:       i(7),
			Score:       f64(0.9137),
		},
		{ID: "p-2", Name: "Bare Product"},
	}

	got := ProductContext("lightweight laptop", products)

	assert.True(t, strings.HasPrefix(got, "=== Search Results ===\n"))
	assert.Contains(t, got, "Question: lightweight laptop\n")
	assert.Contains(t, got, "Matched products: 2\n")
	assert.Contains(t, got, "[Product 1]\n- Name: UltraBook 14\n- Category: laptop\n- Price: 1290000\n- Description: Lightweight laptop\n- Stock: 7\n- Score: 0.9137\n")
	// optional fields are skipped, not rendered as zeroes
	assert.Contains(t, got, "[Product 2]\n- Name: Bare Product\n\n")
	assert.NotContains(t, got, "- Price: 0")
}

func TestProductContextDeterministic(t *testing.T) {
	products := []models.Product{{ID: "p-1", Name: "A", Score: f64(0.5)}}
	assert.Equal(t, ProductContext("q", products), ProductContext("q", products))
}

func TestGuideContextEmpty(t *testing.T) {
	got := GuideContext("refund window", nil, nil)
	assert.Equal(t, "Agent inquiry: refund window\n\n"+NoGuideResults, got)
}

func TestGuideContext(t *testing.T) {
	guides := []models.Guide{
		{
			GuideID:     "g-10",
			Name:        "Refund processing",
			BrowseCount: i(42),
			Score:       f64(0.87),
			Properties: []models.GuideProperty{
				{PropID: "1", TypeCode: "001", Seq: 1, Content: "Check payment state.\nThen issue refund."},
				{PropID: "2", TypeCode: "002", Seq: 2, Content: "."},
				{PropID: "3", TypeCode: "003", Seq: 3, Content: "   "},
				{PropID: "4", TypeCode: "999", Seq: 4, Content: "misc"},
			},
		},
	}

	got := GuideContext("refund window", guides, nil)

	assert.True(t, strings.HasPrefix(got, "Agent inquiry: refund window\n\n"))
	assert.Contains(t, got, "Matched support guides: 1\n")
	assert.Contains(t, got, "1. Refund processing (ID: g-10)\n")
	assert.Contains(t, got, "   Views: 42\n")
	assert.Contains(t, got, "   Score: 87.00%\n")
	assert.Contains(t, got, "   [Guide Details]\n")
	assert.Contains(t, got, "   Processing method:\n   Check payment state.\n   Then issue refund.\n")
	// unknown type codes fall back to the generic label
	assert.Contains(t, got, "   Content:\n   misc\n")
	// placeholder-only properties are suppressed entirely
	assert.NotContains(t, got, "Caution")
	assert.NotContains(t, got, "Customer script")
}

func TestGuideContextWithSnapshot(t *testing.T) {
	snapshot := &models.OrderSnapshot{
		OrderNo:     "ORD-1001",
		LineSeq:     1,
		StatusCode:  "140",
		StatusLabel: "Shipping",
		ItemName:    "UltraBook 14",
		OrderQty:    1,
		OrderAmt:    1290000,
		PaidAmt:     1290000,
	}

	got := GuideContext("where is my order", []models.Guide{{GuideID: "g-1", Name: "Tracking"}}, snapshot)

	snapIdx := strings.Index(got, "=== Order Info ===")
	guideIdx := strings.Index(got, "1. Tracking")
	require.GreaterOrEqual(t, snapIdx, 0)
	require.GreaterOrEqual(t, guideIdx, 0)
	assert.Less(t, snapIdx, guideIdx)
	assert.Contains(t, got, "- Order no: ORD-1001 (line 1)\n")
	assert.Contains(t, got, "- Status: Shipping (140)\n")
}

func TestPropertyLabel(t *testing.T) {
	assert.Equal(t, "Processing method", PropertyLabel("001"))
	assert.Equal(t, "Caution", PropertyLabel("002"))
	assert.Equal(t, "Customer script", PropertyLabel("003"))
	assert.Equal(t, "Additional info", PropertyLabel("004"))
	assert.Equal(t, "Content", PropertyLabel("777"))
	assert.Equal(t, "Content", PropertyLabel(""))
}
