// Package types contains the request and response envelopes shared by the
// service and its adapters.
package types

import (
	"github.com/subratasarker952/waitumusic-sub016/internal/domain/model"
	"github.com/subratasarker952/waitumusic-sub016/internal/domain/stageplot"
)

// AllocationRequest asks for the channels of one booking. A nil Mixer selects
// the service's configured template.
type AllocationRequest struct {
	BookingID   string                `json:"bookingId,omitempty" yaml:"bookingId,omitempty"`
	Assignments []model.RawAssignment `json:"assignments" yaml:"assignments"`
	Mixer       *model.MixerConfig    `json:"mixer,omitempty" yaml:"mixer,omitempty"`
}

// AllocationResponse is the outcome of one request.
type AllocationResponse struct {
	RequestID string                 `json:"requestId"`
	BookingID string                 `json:"bookingId,omitempty"`
	Template  string                 `json:"template,omitempty"`
	Result    model.AllocationResult `json:"result"`
	Excluded  []model.Exclusion      `json:"excluded"`
	InputList stageplot.InputList    `json:"inputList"`
}

// BatchItem is one entry of a batch response, in request order. Exactly one
// of Response and Error is set.
type BatchItem struct {
	BookingID string              `json:"bookingId,omitempty"`
	Response  *AllocationResponse `json:"response,omitempty"`
	Error     string              `json:"error,omitempty"`
}

// Failed reports whether the booking could not be allocated.
func (b BatchItem) Failed() bool {
	return b.Error != ""
}
