package search

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/elastic/go-elasticsearch/v9"

	"github.com/shopnet/marketplace/internal/models"
)

var ErrDisabled = errors.New("search is not configured")

type ProductDoc struct {
	UID      string `json:"uid"`
	Title    string `json:"title"`
	Slug     string `json:"slug"`
	Shop     string `json:"shop"`
	Price    string `json:"price"`
	Quantity int    `json:"quantity"`
}

// ProductIndex mirrors products into Elasticsearch. All methods are
// nil-safe; indexing is best-effort and never blocks a mutation.
type ProductIndex struct {
	ES    *elasticsearch.Client
	Index string
}

func NewProductIndex(es *elasticsearch.Client) *ProductIndex {
	if es == nil {
		return nil
	}
	return &ProductIndex{ES: es, Index: "products"}
}

func docFromProduct(p *models.Product) ProductDoc {
	return ProductDoc{
		UID:      p.UID.String(),
		Title:    p.Title,
		Slug:     p.Slug,
		Shop:     p.Shop.UID.String(),
		Price:    p.Price.StringFixed(2),
		Quantity: p.Quantity,
	}
}

func (s *ProductIndex) IndexProduct(ctx context.Context, p *models.Product) error {
	if s == nil || s.ES == nil {
		return ErrDisabled
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(docFromProduct(p)); err != nil {
		return err
	}

	res, err := s.ES.Index(
		s.Index,
		&buf,
		s.ES.Index.WithDocumentID(p.UID.String()),
		s.ES.Index.WithContext(ctx),
	)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("es index: %s", res.Status())
	}
	return nil
}

func (s *ProductIndex) DeleteProduct(ctx context.Context, uid string) error {
	if s == nil || s.ES == nil {
		return ErrDisabled
	}

	res, err := s.ES.Delete(s.Index, uid, s.ES.Delete.WithContext(ctx))
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.IsError() && res.StatusCode != 404 {
		return fmt.Errorf("es delete: %s", res.Status())
	}
	return nil
}

func (s *ProductIndex) SearchProducts(ctx context.Context, query string, from, size int) (int64, []ProductDoc, error) {
	if s == nil || s.ES == nil {
		return 0, nil, ErrDisabled
	}

	body := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":     query,
				"fields":    []string{"title^2", "slug"},
				"fuzziness": "AUTO",
			},
		},
		"from": from,
		"size": size,
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return 0, nil, err
	}

	res, err := s.ES.Search(
		s.ES.Search.WithContext(ctx),
		s.ES.Search.WithIndex(s.Index),
		s.ES.Search.WithBody(&buf),
	)
	if err != nil {
		return 0, nil, err
	}
	defer res.Body.Close()
	if res.IsError() {
		return 0, nil, fmt.Errorf("es search: %s", res.Status())
	}

	var r struct {
		Hits struct {
			Total struct {
				Value int64 `json:"value"`
			} `json:"total"`
			Hits []struct {
				Source ProductDoc `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return 0, nil, err
	}

	docs := make([]ProductDoc, len(r.Hits.Hits))
	for i, hit := range r.Hits.Hits {
		docs[i] = hit.Source
	}
	return r.Hits.Total.Value, docs, nil
}
