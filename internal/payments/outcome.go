package payments

import "strings"

// maps a gateway status (and Midtrans fraud verdict) to an outcome
func MapOutcome(status, fraudStatus string) Outcome {
	switch strings.ToLower(status) {
	case "capture":
		switch strings.ToLower(fraudStatus) {
		case "accept":
			return OutcomeSuccess
		case "deny":
			return OutcomeFailure
		}

		return OutcomePending
	case "settlement", "paid", "settled":
		return OutcomeSuccess
	case "deny", "cancel", "expire", "expired", "failure", "failed":
		return OutcomeFailure
	}

	return OutcomePending
}
