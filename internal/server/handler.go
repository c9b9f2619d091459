// internal/server/handler.go
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"credit-scoring/internal/alert"
	"credit-scoring/internal/audit"
	"credit-scoring/internal/common/errors"
	"credit-scoring/internal/common/logger"
	"credit-scoring/internal/common/metrics"
	"credit-scoring/internal/common/observability"
	"credit-scoring/internal/scoring"
)

// PredictResponse is the success body of POST /predict.
type PredictResponse struct {
	Probability float64 `json:"probability"`
	Bucket      string  `json:"bucket"`
}

// PredictHandler serves the scoring endpoint. Stateless per request; the
// audit sinks and alerter are best-effort and never affect the response.
type PredictHandler struct {
	scorer  *scoring.Scorer
	cutoffs scoring.Cutoffs
	store   *audit.Store
	indexer *audit.Indexer
	alerter alert.Alerter
	obs     *observability.Observability
	timeout time.Duration
	logger  logger.Logger
}

func NewPredictHandler(
	scorer *scoring.Scorer,
	cutoffs scoring.Cutoffs,
	store *audit.Store,
	indexer *audit.Indexer,
	alerter alert.Alerter,
	obs *observability.Observability,
	timeout time.Duration,
	log logger.Logger,
) *PredictHandler {
	return &PredictHandler{
		scorer:  scorer,
		cutoffs: cutoffs,
		store:   store,
		indexer: indexer,
		alerter: alerter,
		obs:     obs,
		timeout: timeout,
		logger:  log.WithFields(map[string]interface{}{"handler": "predict"}),
	}
}

// Handle processes one prediction request: parse, validate, score, bucket,
// respond. Sinks run after the result is final.
func (h *PredictHandler) Handle(c *gin.Context) {
	start := time.Now()
	metrics.RequestsInFlight.Inc()
	defer metrics.RequestsInFlight.Dec()

	requestID := requestIDFrom(c)
	log := h.logger.WithFields(map[string]interface{}{"requestId": requestID})

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	var body map[string]interface{}
	if err := c.ShouldBindJSON(&body); err != nil {
		h.fail(c, log, start, errors.NewParseError(err.Error()))
		return
	}

	data, err := scoring.ValidateRequest(body)
	if err != nil {
		h.fail(c, log, start, err)
		return
	}

	applicant, err := scoring.DecodeApplicant(data)
	if err != nil {
		h.fail(c, log, start, err)
		return
	}

	prediction := h.scorer.Score(applicant)
	prediction.Bucket = h.cutoffs.Bucket(prediction.Probability)

	h.dispatchSinks(ctx, log, audit.Record{
		RequestID:  requestID,
		Applicant:  applicant,
		Prediction: prediction,
		CreatedAt:  time.Now().UTC(),
	})

	metrics.PredictionsTotal.WithLabelValues(prediction.Bucket).Inc()
	metrics.PredictionDuration.WithLabelValues("success").Observe(time.Since(start).Seconds())
	h.obs.RecordPrediction(ctx, prediction.Bucket)
	h.obs.RecordDuration(ctx, time.Since(start), "success")

	log.Info("prediction served", map[string]interface{}{
		"probability": prediction.Probability,
		"bucket":      prediction.Bucket,
	})

	c.JSON(http.StatusOK, PredictResponse{
		Probability: prediction.Probability,
		Bucket:      prediction.Bucket,
	})
}

// dispatchSinks runs the best-effort observability sinks. Failures are
// logged and swallowed.
func (h *PredictHandler) dispatchSinks(ctx context.Context, log logger.Logger, rec audit.Record) {
	if h.store != nil {
		if err := h.store.Record(ctx, rec); err != nil {
			log.Warn("audit store failed", map[string]interface{}{"error": err.Error()})
		}
	}
	if h.indexer != nil {
		if err := h.indexer.Index(ctx, rec); err != nil {
			log.Warn("audit index failed", map[string]interface{}{"error": err.Error()})
		}
	}
	if h.alerter != nil {
		if err := h.alerter.Notify(ctx, rec.RequestID, rec.Prediction); err != nil {
			log.Warn("high-risk alert failed", map[string]interface{}{"error": err.Error()})
		}
	}
}

func (h *PredictHandler) fail(c *gin.Context, log logger.Logger, start time.Time, err error) {
	stdErr := errors.Normalize(err)

	metrics.PredictionErrors.WithLabelValues(string(stdErr.Code)).Inc()
	metrics.PredictionDuration.WithLabelValues("error").Observe(time.Since(start).Seconds())
	h.obs.RecordDuration(c.Request.Context(), time.Since(start), "error")

	log.Error("prediction request failed", map[string]interface{}{
		"errorCode": stdErr.Code,
		"details":   stdErr.Details,
	})

	c.JSON(stdErr.HTTPStatus(), stdErr.ToAPIError())
}
