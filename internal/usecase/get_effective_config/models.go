package get_effective_config

import (
	"github.com/m-orlv/STB-AvailabilityService/internal/domain"
	"github.com/m-orlv/STB-AvailabilityService/pkg/types"
)

// DraftBreak is one break interval of a pending, unsaved edit.
type DraftBreak struct {
	StartTime types.TimeString
	EndTime   types.TimeString
	Label     *string
}

// DraftOverride is a pending override edit, substituted for the stored
// override of the date before resolution so the configuration UI can preview
// the effect of saving it. Both bounds nil previews a full-day closure.
type DraftOverride struct {
	StartTime *types.TimeString
	EndTime   *types.TimeString
	Reason    *string
	Breaks    []DraftBreak
}

// DraftTemplate is a pending template edit for the date's weekday,
// substituted for the stored template before resolution.
type DraftTemplate struct {
	StartTime types.TimeString
	EndTime   types.TimeString
	IsEnabled bool
	Breaks    []DraftBreak
}

// Request resolves the effective configuration for one provider/date pair.
// At most one draft may be supplied; with no draft the stored records apply.
type Request struct {
	ProviderID    int64
	Date          string
	DraftOverride *DraftOverride
	DraftTemplate *DraftTemplate
}

// Response is the resolved configuration, or closed.
type Response struct {
	ProviderID int64
	Date       string
	Closed     bool
	StartTime  types.TimeString
	EndTime    types.TimeString
	Breaks     []domain.BreakWindow
	Reason     *string
	Source     domain.ConfigSource
}
