package search

import (
	"testing"

	qd "github.com/qdrant/go-client/qdrant"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func structValue(fields map[string]*qd.Value) *qd.Value {
	return &qd.Value{Kind: &qd.Value_StructValue{StructValue: &qd.Struct{Fields: fields}}}
}

func listValue(values ...*qd.Value) *qd.Value {
	return &qd.Value{Kind: &qd.Value_ListValue{ListValue: &qd.ListValue{Values: values}}}
}

func TestPointToProduct(t *testing.T) {
	point := &qd.ScoredPoint{
		Score: 0.91,
		Payload: map[string]*qd.Value{
			"id":          qd.NewValueString("p-1"),
			"name":        qd.NewValueString("UltraBook 14"),
			"description": qd.NewValueString("Light and fast"),
			"category":    qd.NewValueString("laptop"),
			"price":       qd.NewValueDouble(1290000),
			"stock":       qd.NewValueInt(7),
		},
	}

	product := pointToProduct(point)

	assert.Equal(t, "p-1", product.ID)
	assert.Equal(t, "UltraBook 14", product.Name)
	assert.Equal(t, "Light and fast", product.Description)
	assert.Equal(t, "laptop", product.Category)
	require.NotNil(t, product.Price)
	assert.Equal(t, 1290000.0, *product.Price)
	require.NotNil(t, product.Stock)
	assert.Equal(t, 7, *product.Stock)
	require.NotNil(t, product.Score)
	assert.InDelta(t, 0.91, *product.Score, 1e-6)
}

func TestPointToProductIntegerPrice(t *testing.T) {
	point := &qd.ScoredPoint{
		Payload: map[string]*qd.Value{"price": qd.NewValueInt(55000)},
	}

	product := pointToProduct(point)

	require.NotNil(t, product.Price)
	assert.Equal(t, 55000.0, *product.Price)
}

func TestPointToGuide(t *testing.T) {
	point := &qd.ScoredPoint{
		Score: 0.5,
		Payload: map[string]*qd.Value{
			"guide_id":     qd.NewValueString("g-10"),
			"name":         qd.NewValueString("Refund processing"),
			"full_content": qd.NewValueString("Full guide text"),
			"browse_count": qd.NewValueInt(42),
			"properties": listValue(
				structValue(map[string]*qd.Value{
					"prop_id":      qd.NewValueString("1"),
					"prop_type_cd": qd.NewValueString("001"),
					"prop_seq":     qd.NewValueInt(1),
					"content":      qd.NewValueString("Check payment state."),
				}),
				structValue(map[string]*qd.Value{
					"prop_id":      qd.NewValueString("2"),
					"prop_type_cd": qd.NewValueString("002"),
					"prop_seq":     qd.NewValueInt(2),
					"content":      qd.NewValueString("."),
				}),
			),
		},
	}

	guide := pointToGuide(point)

	assert.Equal(t, "g-10", guide.GuideID)
	assert.Equal(t, "Refund processing", guide.Name)
	assert.Equal(t, "Full guide text", guide.FullContent)
	require.NotNil(t, guide.BrowseCount)
	assert.Equal(t, 42, *guide.BrowseCount)
	require.Len(t, guide.Properties, 2)
	assert.Equal(t, "001", guide.Properties[0].TypeCode)
	assert.Equal(t, 1, guide.Properties[0].Seq)
	assert.Equal(t, "Check payment state.", guide.Properties[0].Content)
	assert.Equal(t, ".", guide.Properties[1].Content)
}

func TestPointToGuideEmptyPayload(t *testing.T) {
	guide := pointToGuide(&qd.ScoredPoint{Score: 0.1})

	assert.Empty(t, guide.GuideID)
	assert.Nil(t, guide.Properties)
	assert.Nil(t, guide.BrowseCount)
}

func TestRetrievalError(t *testing.T) {
	inner := assert.AnError
	err := &RetrievalError{Op: "product-search", Err: inner}

	assert.Contains(t, err.Error(), "product-search")
	assert.ErrorIs(t, err, inner)
}
