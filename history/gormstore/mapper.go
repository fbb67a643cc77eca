package gormstore

import (
	"strings"

	"github.com/prilive-com/gobulksms/history"
)

// fromOutcome maps a dispatch outcome to its GORM persistence model.
// Recipients are stored comma-joined, the same form the gateway takes.
func fromOutcome(o *history.Outcome) *OutcomeModel {
	return &OutcomeModel{
		ID:              o.ID,
		Kind:            string(o.Kind),
		Status:          string(o.Status),
		SenderID:        o.SenderID,
		Recipients:      strings.Join(o.Recipients, ","),
		Message:         o.Message,
		Code:            o.Code,
		ProviderMessage: o.ProviderMessage,
		Error:           o.Error,
		Parts:           o.Parts,
		EstimatedCost:   o.EstimatedCost,
		CreatedAt:       o.CreatedAt,
	}
}

// toOutcome maps a persistence model back to a dispatch outcome.
func toOutcome(m *OutcomeModel) *history.Outcome {
	var recipients []string
	if m.Recipients != "" {
		recipients = strings.Split(m.Recipients, ",")
	}
	return &history.Outcome{
		ID:              m.ID,
		Kind:            history.Kind(m.Kind),
		Status:          history.Status(m.Status),
		SenderID:        m.SenderID,
		Recipients:      recipients,
		Message:         m.Message,
		Code:            m.Code,
		ProviderMessage: m.ProviderMessage,
		Error:           m.Error,
		Parts:           m.Parts,
		EstimatedCost:   m.EstimatedCost,
		CreatedAt:       m.CreatedAt,
	}
}

// toOutcomeMany maps a slice of models to outcomes.
func toOutcomeMany(models []OutcomeModel) []*history.Outcome {
	out := make([]*history.Outcome, len(models))
	for i := range models {
		out[i] = toOutcome(&models[i])
	}
	return out
}
