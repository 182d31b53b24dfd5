package get_availability

import (
	getAvailability "github.com/m-orlv/STB-AvailabilityService/internal/usecase/get_availability"
)

// SlotResponse is one candidate window with its occupancy flag.
type SlotResponse struct {
	StartTime       string  `json:"start_time"`
	EndTime         string  `json:"end_time"`
	DurationMinutes int     `json:"duration_minutes"`
	IsAvailable     bool    `json:"is_available"`
	Label           *string `json:"label,omitempty"`
}

// Response is the computed availability for one provider/date pair.
type Response struct {
	ProviderID  int64          `json:"provider_id"`
	Date        string         `json:"date"`
	Closed      bool           `json:"closed"`
	Reason      *string        `json:"reason,omitempty"`
	Source      string         `json:"source"`
	WindowStart string         `json:"window_start,omitempty"`
	WindowEnd   string         `json:"window_end,omitempty"`
	Slots       []SlotResponse `json:"slots"`
}

// FromUseCaseResponse maps the usecase result to the HTTP shape.
func FromUseCaseResponse(result *getAvailability.Response) *Response {
	response := &Response{
		ProviderID:  result.ProviderID,
		Date:        result.Date,
		Closed:      result.Closed,
		Reason:      result.Reason,
		Source:      string(result.Source),
		WindowStart: result.WindowStart.String(),
		WindowEnd:   result.WindowEnd.String(),
		Slots:       make([]SlotResponse, 0, len(result.Slots)),
	}
	for _, slot := range result.Slots {
		response.Slots = append(response.Slots, SlotResponse{
			StartTime:       slot.StartTime.String(),
			EndTime:         slot.EndTime.String(),
			DurationMinutes: slot.DurationMinutes,
			IsAvailable:     slot.IsAvailable,
			Label:           slot.Label,
		})
	}
	return response
}
