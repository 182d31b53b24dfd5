package preview_effective_config

import (
	getEffectiveConfig "github.com/m-orlv/STB-AvailabilityService/internal/usecase/get_effective_config"
	"github.com/m-orlv/STB-AvailabilityService/pkg/types"
)

// DraftBreakRequest is one break of a pending edit.
type DraftBreakRequest struct {
	StartTime types.TimeString `json:"start_time"`
	EndTime   types.TimeString `json:"end_time"`
	Label     *string          `json:"label,omitempty"`
}

// DraftOverrideRequest is a pending override edit. Both bounds null previews
// a full-day closure.
type DraftOverrideRequest struct {
	StartTime *types.TimeString   `json:"start_time,omitempty"`
	EndTime   *types.TimeString   `json:"end_time,omitempty"`
	Reason    *string             `json:"reason,omitempty"`
	Breaks    []DraftBreakRequest `json:"breaks,omitempty"`
}

// DraftTemplateRequest is a pending template edit for the date's weekday.
type DraftTemplateRequest struct {
	StartTime types.TimeString    `json:"start_time"`
	EndTime   types.TimeString    `json:"end_time"`
	IsEnabled bool                `json:"is_enabled"`
	Breaks    []DraftBreakRequest `json:"breaks,omitempty"`
}

// Request previews the effective configuration for a date with an unsaved
// edit applied. At most one draft may be supplied.
type Request struct {
	Date          string                `json:"date"`
	DraftOverride *DraftOverrideRequest `json:"draft_override,omitempty"`
	DraftTemplate *DraftTemplateRequest `json:"draft_template,omitempty"`
}

// BreakResponse is one resolved break interval.
type BreakResponse struct {
	StartTime string  `json:"start_time"`
	EndTime   string  `json:"end_time"`
	Label     *string `json:"label,omitempty"`
}

// Response is the previewed configuration.
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

// ToUseCaseRequest maps the HTTP body to the usecase request.
func ToUseCaseRequest(providerID int64, req *Request) *getEffectiveConfig.Request {
	useCaseReq := &getEffectiveConfig.Request{
		ProviderID: providerID,
		Date:       req.Date,
	}

	if req.DraftOverride != nil {
		draft := &getEffectiveConfig.DraftOverride{
			StartTime: req.DraftOverride.StartTime,
			EndTime:   req.DraftOverride.EndTime,
			Reason:    req.DraftOverride.Reason,
		}
		for _, br := range req.DraftOverride.Breaks {
			draft.Breaks = append(draft.Breaks, getEffectiveConfig.DraftBreak{
				StartTime: br.StartTime,
				EndTime:   br.EndTime,
				Label:     br.Label,
			})
		}
		useCaseReq.DraftOverride = draft
	}

	if req.DraftTemplate != nil {
		draft := &getEffectiveConfig.DraftTemplate{
			StartTime: req.DraftTemplate.StartTime,
			EndTime:   req.DraftTemplate.EndTime,
			IsEnabled: req.DraftTemplate.IsEnabled,
		}
		for _, br := range req.DraftTemplate.Breaks {
			draft.Breaks = append(draft.Breaks, getEffectiveConfig.DraftBreak{
				StartTime: br.StartTime,
				EndTime:   br.EndTime,
				Label:     br.Label,
			})
		}
		useCaseReq.DraftTemplate = draft
	}

	return useCaseReq
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
