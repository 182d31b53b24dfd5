package providerservice

// Provider is the profile subset this service needs: the configured timezone
// drives every date-boundary computation, the horizon bounds published
// availability.
type Provider struct {
	ID                 int64  `json:"id"`
	DisplayName        string `json:"displayName"`
	Timezone           string `json:"timezone"` // IANA name, e.g. "Europe/Berlin"
	BookingHorizonDays int    `json:"bookingHorizonDays"`
}
