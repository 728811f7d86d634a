package vectordb

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/qdrant/go-client/qdrant"

	"github.com/dgallion1/llmsplit/internal/segment"
)

// Config holds Qdrant connection settings.
type Config struct {
	Host       string
	Port       int
	APIKey     string
	UseTLS     bool
	Collection string
}

// Client wraps the Qdrant gRPC client for page upload and collection
// validation.
type Client struct {
	qc         *qdrant.Client
	collection string
	log        *slog.Logger
}

func New(cfg Config, log *slog.Logger) (*Client, error) {
	qc, err := qdrant.NewClient(&qdrant.Config{
		Host:   cfg.Host,
		Port:   cfg.Port,
		APIKey: cfg.APIKey,
		UseTLS: cfg.UseTLS,
	})
	if err != nil {
		return nil, fmt.Errorf("connect qdrant: %w", err)
	}
	return &Client{qc: qc, collection: cfg.Collection, log: log}, nil
}

// Close shuts down the underlying gRPC connection.
func (c *Client) Close() error {
	return c.qc.Close()
}

// EnsureCollection creates the collection if it does not exist: cosine
// distance, vectors and payload stored on disk.
func (c *Client) EnsureCollection(ctx context.Context, dim int) error {
	exists, err := c.qc.CollectionExists(ctx, c.collection)
	if err != nil {
		return fmt.Errorf("check collection %s: %w", c.collection, err)
	}
	if exists {
		return nil
	}

	c.log.Info("creating collection", "collection", c.collection, "dimension", dim)
	err = c.qc.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: c.collection,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     uint64(dim),
			Distance: qdrant.Distance_Cosine,
			OnDisk:   qdrant.PtrOf(true),
		}),
		OnDiskPayload: qdrant.PtrOf(true),
	})
	if err != nil {
		return fmt.Errorf("create collection %s: %w", c.collection, err)
	}
	return nil
}

// PointID derives a stable UUID for a page, so re-running an upload
// overwrites points instead of duplicating them.
func PointID(sourceName string, pageIndex int) string {
	name := fmt.Sprintf("llmsplit/%s/%d", sourceName, pageIndex)
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(name)).String()
}

// UpsertPages uploads one batch of pages with their vectors. The payload
// carries every page metadata field so the search side never needs the
// on-disk page files.
func (c *Client) UpsertPages(ctx context.Context, sourceName string, pages []segment.Page, vectors [][]float32) error {
	if len(pages) != len(vectors) {
		return fmt.Errorf("got %d pages but %d vectors", len(pages), len(vectors))
	}

	points := make([]*qdrant.PointStruct, 0, len(pages))
	for i, p := range pages {
		payload := map[string]any{
			"source":         sourceName,
			"title":          p.Title,
			"content":        p.Content,
			"content_length": int64(p.ContentLength),
			"page_index":     int64(p.Index),
		}
		if p.SourceURL != "" {
			payload["source_url"] = p.SourceURL
		}
		if p.MarkerLevel > 0 {
			payload["marker_level"] = int64(p.MarkerLevel)
			payload["section_path"] = p.SectionPath
			if p.ParentTitle != nil {
				payload["parent_title"] = *p.ParentTitle
			}
			if p.ParentIndex != nil {
				payload["parent_index"] = int64(*p.ParentIndex)
			}
		}
		points = append(points, &qdrant.PointStruct{
			Id:      qdrant.NewID(PointID(sourceName, p.Index)),
			Vectors: qdrant.NewVectors(vectors[i]...),
			Payload: qdrant.NewValueMap(payload),
		})
	}

	_, err := c.qc.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: c.collection,
		Points:         points,
		Wait:           qdrant.PtrOf(true),
	})
	if err != nil {
		return fmt.Errorf("upsert %d points for %s: %w", len(points), sourceName, err)
	}
	return nil
}

// CountTotal returns the exact number of points in the collection.
func (c *Client) CountTotal(ctx context.Context) (uint64, error) {
	n, err := c.qc.Count(ctx, &qdrant.CountPoints{
		CollectionName: c.collection,
		Exact:          qdrant.PtrOf(true),
	})
	if err != nil {
		return 0, fmt.Errorf("count points: %w", err)
	}
	return n, nil
}

// CountBySource returns the exact number of points uploaded for one source.
func (c *Client) CountBySource(ctx context.Context, sourceName string) (uint64, error) {
	n, err := c.qc.Count(ctx, &qdrant.CountPoints{
		CollectionName: c.collection,
		Filter: &qdrant.Filter{
			Must: []*qdrant.Condition{qdrant.NewMatch("source", sourceName)},
		},
		Exact: qdrant.PtrOf(true),
	})
	if err != nil {
		return 0, fmt.Errorf("count points for %s: %w", sourceName, err)
	}
	return n, nil
}
