package vectordb

import (
	"context"
	"fmt"

	"github.com/qdrant/go-client/qdrant"
)

// Check is one validation result.
type Check struct {
	Name   string `json:"name"`
	OK     bool   `json:"ok"`
	Detail string `json:"detail"`
}

// Validate verifies the collection against segmentation output: the
// collection configuration, the total and per-source point counts, and a
// sample similarity query. expected maps source name to its manifest page
// count; queryVector is a probe embedding of the caller's choosing.
func (c *Client) Validate(ctx context.Context, dim int, expected map[string]int, queryVector []float32) ([]Check, error) {
	var checks []Check

	info, err := c.qc.GetCollectionInfo(ctx, c.collection)
	if err != nil {
		return nil, fmt.Errorf("collection info: %w", err)
	}

	checks = append(checks, Check{
		Name:   "collection status green",
		OK:     info.GetStatus() == qdrant.CollectionStatus_Green,
		Detail: info.GetStatus().String(),
	})

	params := info.GetConfig().GetParams().GetVectorsConfig().GetParams()
	checks = append(checks, Check{
		Name:   fmt.Sprintf("vector dimension is %d", dim),
		OK:     params.GetSize() == uint64(dim),
		Detail: fmt.Sprintf("%d", params.GetSize()),
	})
	checks = append(checks, Check{
		Name:   "distance metric is cosine",
		OK:     params.GetDistance() == qdrant.Distance_Cosine,
		Detail: params.GetDistance().String(),
	})

	var expectedTotal uint64
	for _, n := range expected {
		expectedTotal += uint64(n)
	}
	total, err := c.CountTotal(ctx)
	if err != nil {
		return checks, err
	}
	checks = append(checks, Check{
		Name:   fmt.Sprintf("total points == %d", expectedTotal),
		OK:     total == expectedTotal,
		Detail: fmt.Sprintf("%d", total),
	})

	for name, want := range expected {
		got, err := c.CountBySource(ctx, name)
		if err != nil {
			return checks, err
		}
		checks = append(checks, Check{
			Name:   fmt.Sprintf("source %s has %d points", name, want),
			OK:     got == uint64(want),
			Detail: fmt.Sprintf("%d", got),
		})
	}

	if len(queryVector) > 0 {
		hits, err := c.qc.Query(ctx, &qdrant.QueryPoints{
			CollectionName: c.collection,
			Query:          qdrant.NewQuery(queryVector...),
			Limit:          qdrant.PtrOf(uint64(3)),
			WithPayload:    qdrant.NewWithPayload(true),
		})
		if err != nil {
			return checks, fmt.Errorf("sample query: %w", err)
		}
		detail := "no results"
		if len(hits) > 0 {
			detail = fmt.Sprintf("%d results, top score %.4f", len(hits), hits[0].GetScore())
		}
		checks = append(checks, Check{
			Name:   "sample similarity query returns results",
			OK:     len(hits) > 0,
			Detail: detail,
		})
	}

	return checks, nil
}

// AllOK reports whether every check passed.
func AllOK(checks []Check) bool {
	for _, c := range checks {
		if !c.OK {
			return false
		}
	}
	return true
}
