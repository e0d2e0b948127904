package billing

import (
	"strings"
	"time"

	"github.com/feepilot/feepilot/app/models"
)

func normalizeFrequency(frequency string) string {
	f := strings.ToLower(strings.TrimSpace(frequency))
	switch f {
	case models.FrequencyMonthly, models.FrequencyQuarterly, models.FrequencySemiAnnual, models.FrequencyAnnual:
		return f
	case "semi-annual", "semiannual":
		return models.FrequencySemiAnnual
	default:
		return ""
	}
}

// advanceBillingDate moves a billing date forward by exactly one frequency
// period. The input is the previous next-billing-date, never "now", so a
// delayed renewal pass does not drift the schedule.
func advanceBillingDate(from time.Time, frequency string) time.Time {
	switch normalizeFrequency(frequency) {
	case models.FrequencyQuarterly:
		return from.AddDate(0, 3, 0)
	case models.FrequencySemiAnnual:
		return from.AddDate(0, 6, 0)
	case models.FrequencyAnnual:
		return from.AddDate(1, 0, 0)
	default:
		return from.AddDate(0, 1, 0)
	}
}
