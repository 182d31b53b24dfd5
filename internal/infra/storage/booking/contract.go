package booking

import "github.com/m-orlv/STB-AvailabilityService/pkg/dbmetrics"

// Re-export the dbmetrics executor interface for repository consumers.
type DBExecutor = dbmetrics.DBExecutor
