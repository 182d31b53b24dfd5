package check_window

import (
	"time"

	checkWindow "github.com/m-orlv/STB-AvailabilityService/internal/usecase/check_window"
)

// Response reports whether the proposed window is free of booking conflicts.
type Response struct {
	ProviderID    int64  `json:"provider_id"`
	Start         string `json:"start"`
	End           string `json:"end"`
	IsFree        bool   `json:"is_free"`
	ConflictCount int    `json:"conflict_count"`
}

// FromUseCaseResponse maps the usecase result to the HTTP shape.
func FromUseCaseResponse(result *checkWindow.Response) *Response {
	return &Response{
		ProviderID:    result.ProviderID,
		Start:         result.Start.Format(time.RFC3339),
		End:           result.End.Format(time.RFC3339),
		IsFree:        result.IsFree,
		ConflictCount: result.ConflictCount,
	}
}
