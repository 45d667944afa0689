package search

import (
	"context"
	"fmt"

	qd "github.com/qdrant/go-client/qdrant"
	"github.com/rs/zerolog"

	"github.com/megasoby/shop-agent/pkg/embedding"
	"github.com/megasoby/shop-agent/pkg/models"
)

// payload field allow-lists, mirroring what the indexer writes
var (
	productFields = []string{"id", "name", "description", "price", "category", "stock"}
	guideFields   = []string{"guide_id", "name", "browse_count", "properties", "full_content"}
)

// Config holds connection details for the Qdrant search backend.
type Config struct {
	Host              string
	Port              int
	APIKey            string
	ProductCollection string
	GuideCollection   string
}

// QdrantClient implements ProductSearcher and GuideSearcher against a
// Qdrant server. Vector queries go through the injected Embedder first;
// keyword queries use a full-text match filter and skip embedding.
type QdrantClient struct {
	client   *qd.Client
	embedder embedding.Embedder
	cfg      Config
	log      zerolog.Logger
}

// NewQdrantClient connects to Qdrant and returns a searcher over the
// configured product and guide collections.
func NewQdrantClient(cfg Config, embedder embedding.Embedder, log zerolog.Logger) (*QdrantClient, error) {
	if cfg.Host == "" {
		cfg.Host = "localhost"
	}
	if cfg.Port == 0 {
		cfg.Port = 6334
	}
	if cfg.ProductCollection == "" {
		cfg.ProductCollection = "products"
	}
	if cfg.GuideCollection == "" {
		cfg.GuideCollection = "support_guides"
	}

	client, err := qd.NewClient(&qd.Config{
		Host:   cfg.Host,
		Port:   cfg.Port,
		APIKey: cfg.APIKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create qdrant client: %w", err)
	}

	return &QdrantClient{
		client:   client,
		embedder: embedder,
		cfg:      cfg,
		log:      log.With().Str("component", "search").Logger(),
	}, nil
}

// Products returns the ProductSearcher view of this client.
func (c *QdrantClient) Products() ProductSearcher { return productView{c} }

// Guides returns the GuideSearcher view of this client.
func (c *QdrantClient) Guides() GuideSearcher { return guideView{c} }

type productView struct{ c *QdrantClient }

func (v productView) Search(ctx context.Context, query string, topK int) ([]models.Product, error) {
	return v.c.ProductSearch(ctx, query, topK)
}

type guideView struct{ c *QdrantClient }

func (v guideView) Search(ctx context.Context, query string, topK int) ([]models.Guide, error) {
	return v.c.GuideSearch(ctx, query, topK)
}

func (v guideView) KeywordSearch(ctx context.Context, query string, topK int) ([]models.Guide, error) {
	return v.c.GuideKeywordSearch(ctx, query, topK)
}

// ProductSearch runs a kNN query against the product collection.
func (c *QdrantClient) ProductSearch(ctx context.Context, query string, topK int) ([]models.Product, error) {
	points, err := c.vectorQuery(ctx, c.cfg.ProductCollection, productFields, query, topK)
	if err != nil {
		return nil, &RetrievalError{Op: "product-search", Err: err}
	}

	products := make([]models.Product, 0, len(points))
	for _, p := range points {
		products = append(products, pointToProduct(p))
	}
	c.log.Debug().Str("query", query).Int("hits", len(products)).Msg("product search done")
	return products, nil
}

// GuideSearch runs a kNN query against the guide collection.
func (c *QdrantClient) GuideSearch(ctx context.Context, query string, topK int) ([]models.Guide, error) {
	points, err := c.vectorQuery(ctx, c.cfg.GuideCollection, guideFields, query, topK)
	if err != nil {
		return nil, &RetrievalError{Op: "guide-search", Err: err}
	}

	guides := make([]models.Guide, 0, len(points))
	for _, p := range points {
		guides = append(guides, pointToGuide(p))
	}
	c.log.Debug().Str("query", query).Int("hits", len(guides)).Msg("guide search done")
	return guides, nil
}

// GuideKeywordSearch matches the query text against guide name and full
// content. Name matches are preferred by listing that condition first; no
// embedding call is made.
func (c *QdrantClient) GuideKeywordSearch(ctx context.Context, query string, topK int) ([]models.Guide, error) {
	limit := uint64(topK)
	points, err := c.client.Query(ctx, &qd.QueryPoints{
		CollectionName: c.cfg.GuideCollection,
		Filter: &qd.Filter{
			Should: []*qd.Condition{
				qd.NewMatchText("name", query),
				qd.NewMatchText("full_content", query),
			},
		},
		Limit:       &limit,
		WithPayload: qd.NewWithPayloadInclude(guideFields...),
	})
	if err != nil {
		return nil, &RetrievalError{Op: "guide-keyword-search", Err: fmt.Errorf("qdrant query failed: %w", err)}
	}

	guides := make([]models.Guide, 0, len(points))
	for _, p := range points {
		guides = append(guides, pointToGuide(p))
	}
	c.log.Debug().Str("query", query).Int("hits", len(guides)).Msg("guide keyword search done")
	return guides, nil
}

func (c *QdrantClient) vectorQuery(ctx context.Context, collection string, fields []string, query string, topK int) ([]*qd.ScoredPoint, error) {
	vector, err := c.embedder.Embed(ctx, query)
	if err != nil {
		return nil, err
	}

	limit := uint64(topK)
	points, err := c.client.Query(ctx, &qd.QueryPoints{
		CollectionName: collection,
		Query:          qd.NewQuery(vector...),
		Limit:          &limit,
		WithPayload:    qd.NewWithPayloadInclude(fields...),
	})
	if err != nil {
		return nil, fmt.Errorf("qdrant query failed: %w", err)
	}
	return points, nil
}

func pointToProduct(p *qd.ScoredPoint) models.Product {
	score := float64(p.Score)
	product := models.Product{Score: &score}

	for key, value := range p.Payload {
		switch key {
		case "id":
			product.ID = value.GetStringValue()
		case "name":
			product.Name = value.GetStringValue()
		case "description":
			product.Description = value.GetStringValue()
		case "category":
			product.Category = value.GetStringValue()
		case "price":
			price := payloadNumber(value)
			product.Price = &price
		case "stock":
			stock := int(value.GetIntegerValue())
			product.Stock = &stock
		}
	}
	return product
}

func pointToGuide(p *qd.ScoredPoint) models.Guide {
	score := float64(p.Score)
	guide := models.Guide{Score: &score}

	for key, value := range p.Payload {
		switch key {
		case "guide_id":
			guide.GuideID = value.GetStringValue()
		case "name":
			guide.Name = value.GetStringValue()
		case "full_content":
			guide.FullContent = value.GetStringValue()
		case "browse_count":
			count := int(value.GetIntegerValue())
			guide.BrowseCount = &count
		case "properties":
			guide.Properties = payloadProperties(value)
		}
	}
	return guide
}

// payloadProperties decodes the nested property list stored alongside each
// guide document.
func payloadProperties(value *qd.Value) []models.GuideProperty {
	list := value.GetListValue()
	if list == nil {
		return nil
	}

	props := make([]models.GuideProperty, 0, len(list.Values))
	for _, item := range list.Values {
		s := item.GetStructValue()
		if s == nil {
			continue
		}
		prop := models.GuideProperty{}
		for k, v := range s.Fields {
			switch k {
			case "prop_id":
				prop.PropID = v.GetStringValue()
			case "prop_type_cd":
				prop.TypeCode = v.GetStringValue()
			case "prop_seq":
				prop.Seq = int(v.GetIntegerValue())
			case "content":
				prop.Content = v.GetStringValue()
			}
		}
		props = append(props, prop)
	}
	return props
}

func payloadNumber(v *qd.Value) float64 {
	if d := v.GetDoubleValue(); d != 0 {
		return d
	}
	return float64(v.GetIntegerValue())
}
