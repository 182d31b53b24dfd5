package get_effective_config

import (
	getEffectiveConfig "github.com/m-orlv/STB-AvailabilityService/internal/usecase/get_effective_config"
)

// BreakResponse is one resolved break interval.
type BreakResponse struct {
	StartTime string  `json:"start_time"`
	EndTime   string  `json:"end_time"`
	Label     *string `json:"label,omitempty"`
}

// Response is the resolved configuration for one provider/date pair.
type Response struct {
	ProviderID int64           `json:"provider_id"`
	Date       string          `json:"date"`
	Closed     bool            `json:"closed"`
	StartTime  string          `json:"start_time,omitempty"`
	EndTime    string          `json:"end_time,omitempty"`
	Breaks     []BreakResponse `json:"breaks,omitempty"`
	Reason     *string         `json:"reason,omitempty"`
	Source     string          `json:"source"`
}

// FromUseCaseResponse maps the usecase result to the HTTP shape.
func FromUseCaseResponse(result *getEffectiveConfig.Response) *Response {
	response := &Response{
		ProviderID: result.ProviderID,
		Date:       result.Date,
		Closed:     result.Closed,
		StartTime:  result.StartTime.String(),
		EndTime:    result.EndTime.String(),
		Reason:     result.Reason,
		Source:     string(result.Source),
	}
	for _, br := range result.Breaks {
		response.Breaks = append(response.Breaks, BreakResponse{
			StartTime: br.StartTime.String(),
			EndTime:   br.EndTime.String(),
			Label:     br.Label,
		})
	}
	return response
}
