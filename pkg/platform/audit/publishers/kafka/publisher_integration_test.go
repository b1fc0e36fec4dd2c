//go:build integration

package kafka_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/twmb/franz-go/pkg/kgo"

	audit "verity/pkg/platform/audit"
	"verity/pkg/platform/audit/publishers/kafka"
	"verity/pkg/testutil/containers"
)

type KafkaPublisherSuite struct {
	suite.Suite
	broker    *containers.RedpandaContainer
	publisher *kafka.Publisher
}

func TestKafkaPublisherSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(KafkaPublisherSuite))
}

func (s *KafkaPublisherSuite) SetupSuite() {
	s.broker = containers.NewRedpandaContainer(s.T())

	pub, err := kafka.New([]string{s.broker.Broker}, "governance-audit")
	s.Require().NoError(err)
	s.publisher = pub
	s.T().Cleanup(pub.Close)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	s.Require().NoError(s.publisher.EnsureTopic(ctx, 1, 1))
	// A second call must tolerate the existing topic.
	s.Require().NoError(s.publisher.EnsureTopic(ctx, 1, 1))
}

func (s *KafkaPublisherSuite) TestEmitIsConsumableBySubjectKey() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	err := s.publisher.Emit(ctx, audit.Event{
		Subject:  "BRAND:acme",
		Action:   string(audit.EventEnforcementCreated),
		Decision: "WARNING",
	})
	s.Require().NoError(err)

	consumer, err := kgo.NewClient(
		kgo.SeedBrokers(s.broker.Broker),
		kgo.ConsumeTopics("governance-audit"),
		kgo.ConsumeResetOffset(kgo.NewOffset().AtStart()),
	)
	s.Require().NoError(err)
	defer consumer.Close()

	fetches := consumer.PollFetches(ctx)
	s.Require().Empty(fetches.Errors())

	records := fetches.Records()
	s.Require().NotEmpty(records)
	s.Equal("BRAND:acme", string(records[0].Key))

	var body map[string]any
	s.Require().NoError(json.Unmarshal(records[0].Value, &body))
	s.Equal("enforcement_created", body["action"])
	s.Equal("governance", body["category"])
	s.Equal("WARNING", body["decision"])
}
