package observability

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
	"go.uber.org/zap"
)

// MetricsClient is the part of the CloudWatch client used for publishing
type MetricsClient interface {
	PutMetricData(ctx context.Context, params *cloudwatch.PutMetricDataInput, optFns ...func(*cloudwatch.Options)) (*cloudwatch.PutMetricDataOutput, error)
}

// Metrics handles application metrics and monitoring. A nil Metrics or one
// without a client records nothing.
type Metrics struct {
	namespace string
	client    MetricsClient
	logger    *zap.Logger
}

// NewMetrics creates a new metrics instance
func NewMetrics(namespace string, client MetricsClient, logger *zap.Logger) *Metrics {
	return &Metrics{
		namespace: namespace,
		client:    client,
		logger:    logger,
	}
}

// RecordCommandExecution records metrics for command execution
func (m *Metrics) RecordCommandExecution(ctx context.Context, commandName string, duration time.Duration, err error) {
	m.recordExecution(ctx, "Command", "CommandName", commandName, duration, err)
}

// RecordQueryExecution records metrics for query execution
func (m *Metrics) RecordQueryExecution(ctx context.Context, queryName string, duration time.Duration, err error) {
	m.recordExecution(ctx, "Query", "QueryName", queryName, duration, err)
}

// RecordCacheResult counts cache hits and misses per keyspace
func (m *Metrics) RecordCacheResult(ctx context.Context, keyspace string, hit bool) {
	if m == nil || m.client == nil {
		return
	}

	name := "CacheMiss"
	if hit {
		name = "CacheHit"
	}

	m.put(ctx, []types.MetricDatum{
		{
			MetricName: aws.String(name),
			Dimensions: []types.Dimension{
				{Name: aws.String("Keyspace"), Value: aws.String(keyspace)},
			},
			Value:     aws.Float64(1),
			Unit:      types.StandardUnitCount,
			Timestamp: aws.Time(time.Now()),
		},
	})
}

// RecordError records error occurrences by type
func (m *Metrics) RecordError(ctx context.Context, errorType string) {
	if m == nil || m.client == nil {
		return
	}

	m.put(ctx, []types.MetricDatum{
		{
			MetricName: aws.String("Errors"),
			Dimensions: []types.Dimension{
				{Name: aws.String("ErrorType"), Value: aws.String(errorType)},
			},
			Value:     aws.Float64(1),
			Unit:      types.StandardUnitCount,
			Timestamp: aws.Time(time.Now()),
		},
	})
}

func (m *Metrics) recordExecution(ctx context.Context, kind, dimension, name string, duration time.Duration, err error) {
	if m == nil || m.client == nil {
		return
	}

	status := "success"
	if err != nil {
		status = "failure"
	}

	dims := []types.Dimension{
		{Name: aws.String(dimension), Value: aws.String(name)},
		{Name: aws.String("Status"), Value: aws.String(status)},
	}
	now := time.Now()

	m.put(ctx, []types.MetricDatum{
		{
			MetricName: aws.String(kind + "Execution"),
			Dimensions: dims,
			Value:      aws.Float64(float64(duration.Milliseconds())),
			Unit:       types.StandardUnitMilliseconds,
			Timestamp:  aws.Time(now),
		},
		{
			MetricName: aws.String(kind + "Count"),
			Dimensions: dims,
			Value:      aws.Float64(1),
			Unit:       types.StandardUnitCount,
			Timestamp:  aws.Time(now),
		},
	})
}

// put never fails the caller; a dropped datapoint is only logged
func (m *Metrics) put(ctx context.Context, data []types.MetricDatum) {
	_, err := m.client.PutMetricData(ctx, &cloudwatch.PutMetricDataInput{
		Namespace:  aws.String(m.namespace),
		MetricData: data,
	})
	if err != nil && m.logger != nil {
		m.logger.Warn("Failed to send metrics", zap.Error(err))
	}
}
