package driver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/meilisearch/meilisearch-go"

	"photo-indexer/schema"
)

const meiliTaskTimeout = 15 * time.Second

// NewMeilisearchClient builds a Meilisearch service manager.
func NewMeilisearchClient(host string, apiKey string) meilisearch.ServiceManager {
	return meilisearch.New(host, meilisearch.WithAPIKey(apiKey))
}

// MeilisearchDriver talks to one Meilisearch index. The analysis schema
// is applied once via EnsureIndex; every subsequent query relies on it.
type MeilisearchDriver struct {
	client    meilisearch.ServiceManager
	index     meilisearch.IndexManager
	indexName string
	analysis  *schema.Analysis
}

func NewMeilisearchDriver(client meilisearch.ServiceManager, indexName string, analysis *schema.Analysis) *MeilisearchDriver {
	return &MeilisearchDriver{
		client:    client,
		index:     client.Index(indexName),
		indexName: indexName,
		analysis:  analysis,
	}
}

// EnsureIndex creates the index if needed and pushes the analysis
// schema: searchable/filterable/sortable attributes, the fixed stopword
// list and the stemmed-key synonym map.
func (d *MeilisearchDriver) EnsureIndex(ctx context.Context) error {
	if _, err := d.index.FetchInfo(); err != nil {
		task, err := d.client.CreateIndex(&meilisearch.IndexConfig{
			Uid:        d.indexName,
			PrimaryKey: "id",
		})
		if err != nil {
			return &DriverError{
				Op:  "EnsureIndex",
				Err: "failed to create index: " + err.Error(),
			}
		}
		if _, err := d.client.WaitForTask(task.TaskUID, meiliTaskTimeout); err != nil {
			return &DriverError{
				Op:  "EnsureIndex",
				Err: "failed to wait for index creation: " + err.Error(),
			}
		}
	}

	settings := &meilisearch.Settings{
		SearchableAttributes: schema.SearchableAttributes,
		FilterableAttributes: schema.FilterableAttributes,
		SortableAttributes:   schema.SortableAttributes,
		StopWords:            d.analysis.StopwordSettings(),
		Synonyms:             d.analysis.SynonymSettings(),
	}

	task, err := d.index.UpdateSettings(settings)
	if err != nil {
		return &DriverError{
			Op:  "EnsureIndex",
			Err: "failed to apply index settings: " + err.Error(),
		}
	}
	if _, err := d.index.WaitForTask(task.TaskUID, meiliTaskTimeout); err != nil {
		return &DriverError{
			Op:  "EnsureIndex",
			Err: "failed to wait for settings update: " + err.Error(),
		}
	}

	return nil
}

// FindByID fetches one indexed document. Returns found=false on a
// missing document rather than an error.
func (d *MeilisearchDriver) FindByID(ctx context.Context, id string) (*PhotoDocument, bool, error) {
	var doc PhotoDocument
	err := d.index.GetDocument(id, nil, &doc)
	if err != nil {
		var mErr *meilisearch.Error
		if errors.As(err, &mErr) && mErr.StatusCode == http.StatusNotFound {
			return nil, false, nil
		}
		return nil, false, &DriverError{
			Op:  "FindByID",
			Err: err.Error(),
		}
	}
	return &doc, true, nil
}

// UpsertDocument writes one document by id and waits for the indexing
// task to complete so a duplicate fetch observes the record.
func (d *MeilisearchDriver) UpsertDocument(ctx context.Context, doc PhotoDocument) error {
	task, err := d.index.AddDocuments([]PhotoDocument{doc}, nil)
	if err != nil {
		return &DriverError{
			Op:  "UpsertDocument",
			Err: err.Error(),
		}
	}

	if _, err := d.index.WaitForTask(task.TaskUID, meiliTaskTimeout); err != nil {
		return &DriverError{
			Op:  "UpsertDocument",
			Err: "failed to wait for indexing task: " + err.Error(),
		}
	}

	return nil
}

// Search runs a query and reshapes the engine response into the raw
// hit/suggest structure consumed by the result translator.
func (d *MeilisearchDriver) Search(ctx context.Context, query string, offset, limit int64) (*RawSearchResponse, error) {
	searchRequest := &meilisearch.SearchRequest{
		Query:  query,
		Offset: offset,
		Limit:  limit,
	}

	result, err := d.index.Search(query, searchRequest)
	if err != nil {
		return nil, &DriverError{
			Op:  "Search",
			Err: err.Error(),
		}
	}

	raw := &RawSearchResponse{
		Hits: RawHits{
			Total:  result.EstimatedTotalHits,
			Offset: result.Offset,
		},
	}

	for _, hit := range result.Hits {
		source := decodeHit(hit)
		raw.Hits.Hits = append(raw.Hits.Hits, RawHit{
			Type:   getString(source, "source_type"),
			Source: source,
		})
	}

	return raw, nil
}

// decodeHit decodes one engine hit, whose fields arrive as raw JSON,
// field by field so one bad value does not discard the whole hit.
func decodeHit(hit meilisearch.Hit) map[string]interface{} {
	source := make(map[string]interface{}, len(hit))
	for field, rawValue := range hit {
		var value interface{}
		if err := json.Unmarshal(rawValue, &value); err != nil {
			continue
		}
		source[field] = value
	}
	return source
}

func getString(m map[string]interface{}, key string) string {
	if v, ok := m[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
