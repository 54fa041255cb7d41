//go:build integration

package kafka_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twmb/franz-go/pkg/kgo"

	"vendorscreen/internal/audit"
	"vendorscreen/internal/audit/kafka"
	"vendorscreen/pkg/domain"
	"vendorscreen/pkg/testutil/containers"
)

func TestSinkPublishesEntries(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	broker := containers.GetManager().GetRedpanda(t)
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	const topic = "vendorscreen.audit.test"
	sink, err := kafka.New(broker.Brokers, topic)
	require.NoError(t, err)
	defer sink.Close()

	require.NoError(t, sink.Ping(ctx))
	require.NoError(t, sink.EnsureTopic(ctx))
	require.NoError(t, sink.EnsureTopic(ctx), "second call tolerates an existing topic")

	entry := &audit.Entry{
		ID:         domain.NewAuditEntryID(),
		Actor:      "analyst",
		Action:     audit.ActionScreeningRun,
		EntityType: audit.EntityScreeningRun,
		EntityID:   domain.NewScreeningRunID().String(),
		Metadata:   map[string]string{"vendor_name": "Hanbit IT Services"},
		At:         time.Now().UTC().Truncate(time.Second),
	}
	require.NoError(t, sink.Publish(ctx, entry))

	consumer, err := kgo.NewClient(
		kgo.SeedBrokers(broker.Brokers...),
		kgo.ConsumeTopics(topic),
		kgo.ConsumeResetOffset(kgo.NewOffset().AtStart()),
	)
	require.NoError(t, err)
	defer consumer.Close()

	var record *kgo.Record
	for record == nil {
		fetches := consumer.PollFetches(ctx)
		require.NoError(t, ctx.Err())
		fetches.EachRecord(func(r *kgo.Record) {
			if string(r.Key) == entry.EntityID {
				record = r
			}
		})
	}

	var got audit.Entry
	require.NoError(t, json.Unmarshal(record.Value, &got))
	assert.Equal(t, entry.ID, got.ID)
	assert.Equal(t, entry.Metadata, got.Metadata)
	assert.True(t, entry.At.Equal(got.At))

	headers := map[string]string{}
	for _, h := range record.Headers {
		headers[h.Key] = string(h.Value)
	}
	assert.Equal(t, string(audit.ActionScreeningRun), headers["action"])
	assert.Equal(t, audit.EntityScreeningRun, headers["entity_type"])
}
