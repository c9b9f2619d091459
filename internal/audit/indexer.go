// internal/audit/indexer.go
package audit

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/elastic/go-elasticsearch/v8"

	"credit-scoring/internal/common/logger"
)

// Indexer ships prediction records to Elasticsearch for dashboarding.
type Indexer struct {
	es     *elasticsearch.Client
	index  string
	logger logger.Logger
}

func NewIndexer(es *elasticsearch.Client, index string, log logger.Logger) *Indexer {
	return &Indexer{
		es:     es,
		index:  index,
		logger: log.WithFields(map[string]interface{}{"component": "audit-indexer"}),
	}
}

// Index writes one prediction document, keyed by request id. Best-effort,
// same contract as Store.Record.
func (i *Indexer) Index(ctx context.Context, rec Record) error {
	body, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal prediction document: %w", err)
	}

	res, err := i.es.Index(
		i.index,
		bytes.NewReader(body),
		i.es.Index.WithDocumentID(rec.RequestID),
		i.es.Index.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("index prediction: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("index prediction: %s", res.Status())
	}

	i.logger.Debug("prediction indexed", map[string]interface{}{
		"requestId": rec.RequestID,
		"index":     i.index,
	})
	return nil
}
