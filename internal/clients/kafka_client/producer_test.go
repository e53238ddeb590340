package kafka_client

import (
	"encoding/json"
	"testing"

	"github.com/spacesedan/trollscope/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFlagMessage(t *testing.T) {
	flag := models.TrollFlag{RunID: "run-7", Slot: 2, AuthorChannelID: "UCabc", AuthorDisplayName: "alice", Flagged: true}

	msg, err := NewFlagMessage(KAFKA_TOPIC_TROLL_FLAGS, flag)
	require.NoError(t, err)

	assert.Equal(t, KAFKA_TOPIC_TROLL_FLAGS, *msg.TopicPartition.Topic)
	assert.Equal(t, []byte("UCabc"), msg.Key)
	require.Len(t, msg.Headers, 1)
	assert.Equal(t, []byte("run-7"), msg.Headers[0].Value)

	var decoded models.TrollFlag
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, "alice", decoded.AuthorDisplayName)
	assert.True(t, decoded.Flagged)
}

func TestNewFlagMessageFallsBackToSlotKey(t *testing.T) {
	msg, err := NewFlagMessage("t", models.TrollFlag{RunID: "run-7", Slot: 4})
	require.NoError(t, err)
	assert.Equal(t, []byte("run-7#4"), msg.Key)
}
