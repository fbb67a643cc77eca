package history_test

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/prilive-com/gobulksms/history"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory_RecordFillsIdentity(t *testing.T) {
	recorder := history.NewMemory()

	outcome := &history.Outcome{
		Kind:       history.KindSingle,
		Status:     history.StatusSent,
		SenderID:   "AcmeCorp",
		Recipients: []string{"8801712345678"},
		Message:    "hello",
		Code:       202,
	}
	require.NoError(t, recorder.Record(context.Background(), outcome))

	assert.NotEqual(t, uuid.Nil, outcome.ID)
	assert.False(t, outcome.CreatedAt.IsZero())

	stored := recorder.Outcomes()
	require.Len(t, stored, 1)
	assert.Equal(t, outcome.ID, stored[0].ID)
	assert.Equal(t, history.KindSingle, stored[0].Kind)
}

func TestMemory_OutcomesReturnsCopy(t *testing.T) {
	recorder := history.NewMemory()
	require.NoError(t, recorder.Record(context.Background(), &history.Outcome{
		Kind: history.KindOTP,
	}))

	stored := recorder.Outcomes()
	stored[0].Message = "mutated"

	assert.Empty(t, recorder.Outcomes()[0].Message)
}

func TestMemory_ConcurrentRecords(t *testing.T) {
	recorder := history.NewMemory()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = recorder.Record(context.Background(), &history.Outcome{Kind: history.KindBulk})
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, recorder.Len())
}

func TestNop_Discards(t *testing.T) {
	var recorder history.Recorder = history.Nop{}
	assert.NoError(t, recorder.Record(context.Background(), &history.Outcome{}))
}
