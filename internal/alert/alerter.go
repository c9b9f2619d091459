// internal/alert/alerter.go
package alert

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"

	"credit-scoring/internal/common/logger"
	"credit-scoring/internal/scoring"
)

// Publisher is satisfied by the SNS client wrapper; tests substitute a fake.
type Publisher interface {
	Publish(ctx context.Context, input *sns.PublishInput) (*sns.PublishOutput, error)
}

// Alerter notifies downstream consumers about predictions worth a second
// look.
type Alerter interface {
	Notify(ctx context.Context, requestID string, pred scoring.Prediction) error
}

// highRiskMessage is the JSON body published for a D-bucket prediction.
type highRiskMessage struct {
	RequestID   string    `json:"request_id"`
	Probability float64   `json:"probability"`
	Bucket      string    `json:"bucket"`
	OccurredAt  time.Time `json:"occurred_at"`
}

// SNSAlerter publishes high-risk predictions to an SNS topic.
type SNSAlerter struct {
	publisher Publisher
	topicARN  string
	logger    logger.Logger
}

func NewSNSAlerter(publisher Publisher, topicARN string, log logger.Logger) *SNSAlerter {
	return &SNSAlerter{
		publisher: publisher,
		topicARN:  topicARN,
		logger:    log.WithFields(map[string]interface{}{"component": "alerter"}),
	}
}

// Notify publishes when the prediction landed in the highest risk bucket and
// is a no-op otherwise. Best-effort: callers log the error and move on.
func (a *SNSAlerter) Notify(ctx context.Context, requestID string, pred scoring.Prediction) error {
	if pred.Bucket != scoring.BucketD {
		return nil
	}

	body, err := json.Marshal(highRiskMessage{
		RequestID:   requestID,
		Probability: pred.Probability,
		Bucket:      pred.Bucket,
		OccurredAt:  time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("marshal alert: %w", err)
	}

	_, err = a.publisher.Publish(ctx, &sns.PublishInput{
		TopicArn: aws.String(a.topicARN),
		Subject:  aws.String("High-risk credit application"),
		Message:  aws.String(string(body)),
	})
	if err != nil {
		return fmt.Errorf("publish alert: %w", err)
	}

	a.logger.Info("high-risk alert published", map[string]interface{}{
		"requestId":   requestID,
		"probability": pred.Probability,
	})
	return nil
}

// NoopAlerter is used when alerting is disabled.
type NoopAlerter struct{}

func (NoopAlerter) Notify(context.Context, string, scoring.Prediction) error {
	return nil
}
