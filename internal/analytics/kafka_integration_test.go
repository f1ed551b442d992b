//go:build integration

package analytics_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	promtestutil "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/suite"
	"github.com/twmb/franz-go/pkg/kgo"

	"accessexplorer/internal/analytics"
	"accessexplorer/internal/platform/logger"
	"accessexplorer/pkg/testutil/containers"
)

const topic = "explorer.analytics.test"

type KafkaSinkSuite struct {
	suite.Suite
	broker *containers.RedpandaContainer
}

func TestKafkaSinkSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(KafkaSinkSuite))
}

func (s *KafkaSinkSuite) SetupSuite() {
	s.broker = containers.NewRedpandaContainer(s.T())
}

func (s *KafkaSinkSuite) TestEnsureTopicIsIdempotent() {
	ctx := context.Background()
	client, err := analytics.NewKafkaClient([]string{s.broker.Broker}, "explorer.ensure")
	s.Require().NoError(err)
	defer client.Close()

	s.Require().NoError(analytics.EnsureTopic(ctx, client, "explorer.ensure", 1, 1))
	s.Require().NoError(analytics.EnsureTopic(ctx, client, "explorer.ensure", 1, 1), "existing topic is not an error")
}

func (s *KafkaSinkSuite) TestPipelineDeliversEventsKeyedByChain() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := analytics.NewKafkaClient([]string{s.broker.Broker}, topic)
	s.Require().NoError(err)
	s.Require().NoError(analytics.EnsureTopic(ctx, client, topic, 1, 1))

	m := analytics.NewMetrics(prometheus.NewRegistry())
	sink := analytics.NewKafkaSink(client, topic, logger.Discard(), m)
	publisher, worker := analytics.NewPipeline(sink, analytics.WithMetrics(m))

	workerCtx, stopWorker := context.WithCancel(ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = worker.Run(workerCtx)
	}()

	e := analytics.NewEvent(ctx, analytics.EventSearch, "Rootstock")
	e.Manager = "0x00000000000000000000000000000000000000bb"
	e.Role = "1"
	e.Account = "0x00000000000000000000000000000000000000aa"
	publisher.Emit(ctx, e)

	s.Eventually(func() bool {
		return promtestutil.ToFloat64(m.Events.WithLabelValues(analytics.EventSearch, "published")) == 1
	}, 10*time.Second, 50*time.Millisecond)
	stopWorker()
	<-done
	s.Require().NoError(sink.Close(ctx))
	s.Zero(promtestutil.ToFloat64(m.Events.WithLabelValues(analytics.EventSearch, "failed")))

	consumer, err := kgo.NewClient(
		kgo.SeedBrokers(s.broker.Broker),
		kgo.ConsumeTopics(topic),
		kgo.ConsumeResetOffset(kgo.NewOffset().AtStart()),
	)
	s.Require().NoError(err)
	defer consumer.Close()

	var records []*kgo.Record
	for len(records) == 0 {
		fetches := consumer.PollFetches(ctx)
		s.Require().NoError(ctx.Err(), "no record consumed before the deadline")
		s.Require().Empty(fetches.Errors())
		records = append(records, fetches.Records()...)
	}

	rec := records[0]
	s.Equal("Rootstock", string(rec.Key))
	s.Require().Len(rec.Headers, 1)
	s.Equal("event", rec.Headers[0].Key)
	s.Equal(analytics.EventSearch, string(rec.Headers[0].Value))

	var got analytics.Event
	s.Require().NoError(json.Unmarshal(rec.Value, &got))
	s.Equal(e.Manager, got.Manager)
	s.Equal(e.Role, got.Role)
	s.Equal(e.Account, got.Account)
}
