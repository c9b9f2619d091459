// internal/alert/alerter_test.go
package alert

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"credit-scoring/internal/common/logger"
	"credit-scoring/internal/scoring"
)

type fakePublisher struct {
	inputs []*sns.PublishInput
	err    error
}

func (f *fakePublisher) Publish(_ context.Context, input *sns.PublishInput) (*sns.PublishOutput, error) {
	f.inputs = append(f.inputs, input)
	return &sns.PublishOutput{}, f.err
}

func TestSNSAlerter_Notify_HighRiskPublishes(t *testing.T) {
	publisher := &fakePublisher{}
	alerter := NewSNSAlerter(publisher, "arn:aws:sns:eu-west-1:123:risk-alerts", logger.NewTestLogger(t))

	pred := scoring.Prediction{Probability: 0.31, Bucket: scoring.BucketD}
	err := alerter.Notify(context.Background(), "req-1", pred)
	require.NoError(t, err)

	require.Len(t, publisher.inputs, 1)
	input := publisher.inputs[0]
	assert.Equal(t, "arn:aws:sns:eu-west-1:123:risk-alerts", *input.TopicArn)

	var msg map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(*input.Message), &msg))
	assert.Equal(t, "req-1", msg["request_id"])
	assert.Equal(t, "D", msg["bucket"])
	assert.InDelta(t, 0.31, msg["probability"].(float64), 1e-9)
}

func TestSNSAlerter_Notify_LowerBucketsSkipped(t *testing.T) {
	publisher := &fakePublisher{}
	alerter := NewSNSAlerter(publisher, "arn:topic", logger.NewTestLogger(t))

	for _, bucket := range []string{scoring.BucketA, scoring.BucketB, scoring.BucketC} {
		err := alerter.Notify(context.Background(), "req-2", scoring.Prediction{Bucket: bucket})
		require.NoError(t, err)
	}

	assert.Empty(t, publisher.inputs)
}

func TestSNSAlerter_Notify_PublishError(t *testing.T) {
	publisher := &fakePublisher{err: assert.AnError}
	alerter := NewSNSAlerter(publisher, "arn:topic", logger.NewTestLogger(t))

	err := alerter.Notify(context.Background(), "req-3", scoring.Prediction{Bucket: scoring.BucketD})
	assert.Error(t, err)
}
