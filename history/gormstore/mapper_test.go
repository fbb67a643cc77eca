package gormstore

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prilive-com/gobulksms/history"
	"github.com/stretchr/testify/assert"
)

func TestMapper_RoundTrip(t *testing.T) {
	outcome := &history.Outcome{
		ID:              uuid.New(),
		Kind:            history.KindBulk,
		Status:          history.StatusSent,
		SenderID:        "AcmeCorp",
		Recipients:      []string{"8801712345678", "8801812345678"},
		Message:         "hello",
		Code:            202,
		ProviderMessage: "SMS Submitted Successfully",
		Parts:           2,
		EstimatedCost:   2.0,
		CreatedAt:       time.Now().UTC().Truncate(time.Second),
	}

	model := fromOutcome(outcome)
	assert.Equal(t, "8801712345678,8801812345678", model.Recipients)
	assert.Equal(t, "bulk", model.Kind)

	back := toOutcome(model)
	assert.Equal(t, outcome, back)
}

func TestMapper_EmptyRecipients(t *testing.T) {
	back := toOutcome(&OutcomeModel{Kind: "single"})
	assert.Nil(t, back.Recipients)
}
