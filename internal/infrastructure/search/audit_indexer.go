package search

import (
	"bytes"
	"context"
	"encoding/json"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-music-auth/internal/domain/entity"
	"github.com/oksasatya/go-music-auth/pkg/helpers"
)

const indexTimeout = 3 * time.Second

// AuditIndexer writes auth events into an Elasticsearch index.
type AuditIndexer struct {
	es     *elasticsearch.Client
	index  string
	logger *logrus.Logger
}

func NewAuditIndexer(es *elasticsearch.Client, index string, logger *logrus.Logger) *AuditIndexer {
	if logger == nil {
		logger = helpers.NewNopLogger()
	}
	return &AuditIndexer{es: es, index: index, logger: logger}
}

type auditDoc struct {
	Action  string `json:"action"`
	UserID  int64  `json:"user_id,omitempty"`
	Email   string `json:"email,omitempty"`
	Success bool   `json:"success"`
	At      string `json:"at"`
}

// Record indexes ev. Failures are logged and never returned; a cancelled
// request context does not abort the write.
func (a *AuditIndexer) Record(ctx context.Context, ev entity.AuditEvent) {
	if a == nil || a.es == nil || a.index == "" {
		return
	}
	at := ev.At
	if at.IsZero() {
		at = time.Now()
	}
	b, err := json.Marshal(auditDoc{
		Action:  ev.Action,
		UserID:  ev.UserID,
		Email:   ev.Email,
		Success: ev.Success,
		At:      at.UTC().Format(time.RFC3339Nano),
	})
	if err != nil {
		a.logger.WithError(err).Warn("audit event encode failed")
		return
	}

	req := esapi.IndexRequest{Index: a.index, Body: bytes.NewReader(b), Refresh: "false"}
	c, cancel := context.WithTimeout(context.WithoutCancel(ctx), indexTimeout)
	defer cancel()
	res, err := req.Do(c, a.es)
	if err != nil {
		a.logger.WithError(err).WithField("action", ev.Action).Warn("es index failed")
		return
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		a.logger.WithFields(logrus.Fields{
			"status": res.Status(),
			"action": ev.Action,
		}).Warn("es index response error")
	}
}
