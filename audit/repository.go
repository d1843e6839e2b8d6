// audit/repository.go
package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
)

// Repository persists audit records and security events durably. The logger
// treats persistence as best-effort: a failing repository never blocks the
// access that is being audited.
type Repository interface {
	SaveRecord(ctx context.Context, record Record) error
	SaveEvent(ctx context.Context, event SecurityEvent) error
	QueryRecords(ctx context.Context, from, to time.Time, userID string) ([]Record, error)
}

const (
	recordIndex = "audit-records"
	eventIndex  = "security-events"
)

type ElasticsearchRepository struct {
	esClient *elasticsearch.Client
}

// NewElasticsearchRepository creates a repository against the given
// Elasticsearch URL.
func NewElasticsearchRepository(esURL string) (*ElasticsearchRepository, error) {
	cfg := elasticsearch.Config{
		Addresses: []string{esURL},
	}
	esClient, err := elasticsearch.NewClient(cfg)
	if err != nil {
		return nil, err
	}
	return &ElasticsearchRepository{esClient: esClient}, nil
}

// SaveRecord indexes one audit record.
func (r *ElasticsearchRepository) SaveRecord(ctx context.Context, record Record) error {
	return r.index(ctx, recordIndex, record.ID, record)
}

// SaveEvent indexes one security event.
func (r *ElasticsearchRepository) SaveEvent(ctx context.Context, event SecurityEvent) error {
	return r.index(ctx, eventIndex, event.ID, event)
}

func (r *ElasticsearchRepository) index(ctx context.Context, index, id string, doc interface{}) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return err
	}

	req := esapi.IndexRequest{
		Index:      index,
		DocumentID: id,
		Body:       strings.NewReader(string(data)),
	}

	res, err := req.Do(ctx, r.esClient)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("error indexing document: %s", res.String())
	}
	return nil
}

// QueryRecords searches audit records within a time frame, optionally
// filtered by user.
func (r *ElasticsearchRepository) QueryRecords(ctx context.Context, from, to time.Time, userID string) ([]Record, error) {
	must := []interface{}{
		map[string]interface{}{
			"range": map[string]interface{}{
				"timestamp": map[string]interface{}{
					"gte": from.Format(time.RFC3339),
					"lte": to.Format(time.RFC3339),
				},
			},
		},
	}
	if userID != "" {
		must = append(must, map[string]interface{}{
			"match": map[string]interface{}{"user_id": userID},
		})
	}
	query := map[string]interface{}{
		"query": map[string]interface{}{
			"bool": map[string]interface{}{"must": must},
		},
	}

	var buf strings.Builder
	if err := json.NewEncoder(&buf).Encode(query); err != nil {
		return nil, err
	}

	res, err := r.esClient.Search(
		r.esClient.Search.WithContext(ctx),
		r.esClient.Search.WithIndex(recordIndex),
		r.esClient.Search.WithBody(strings.NewReader(buf.String())),
	)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("error searching documents: %s", res.String())
	}

	var rmap map[string]interface{}
	if err := json.NewDecoder(res.Body).Decode(&rmap); err != nil {
		return nil, err
	}

	hits := rmap["hits"].(map[string]interface{})["hits"].([]interface{})
	records := make([]Record, len(hits))
	for i, hit := range hits {
		source := hit.(map[string]interface{})["_source"]
		data, _ := json.Marshal(source)
		json.Unmarshal(data, &records[i])
	}
	return records, nil
}

// MemoryRepository keeps records in memory; used in tests and when no
// Elasticsearch URL is configured.
type MemoryRepository struct {
	mu      sync.Mutex
	records []Record
	events  []SecurityEvent
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

func (r *MemoryRepository) SaveRecord(ctx context.Context, record Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, record)
	return nil
}

func (r *MemoryRepository) SaveEvent(ctx context.Context, event SecurityEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	return nil
}

func (r *MemoryRepository) QueryRecords(ctx context.Context, from, to time.Time, userID string) ([]Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Record
	for _, record := range r.records {
		if record.Timestamp.Before(from) || record.Timestamp.After(to) {
			continue
		}
		if userID != "" && record.UserID != userID {
			continue
		}
		out = append(out, record)
	}
	return out, nil
}

// Events returns a copy of the stored security events.
func (r *MemoryRepository) Events() []SecurityEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]SecurityEvent, len(r.events))
	copy(out, r.events)
	return out
}
