package quota

import "codeberg.org/scholargo/server/scholargo/profiles"

// ceiling used for plus; large enough to be unbounded in practice
const Unlimited = 9999

// per-plan feature ceilings
var PlanLimits = map[string]map[profiles.Feature]int{
	profiles.PlanFree: {
		profiles.FeaturePDFAnalysis: 3,
		profiles.FeatureChat:        20,
		profiles.FeatureDeepReview:  3,
	},
	profiles.PlanPlus: {
		profiles.FeaturePDFAnalysis: Unlimited,
		profiles.FeatureChat:        Unlimited,
		profiles.FeatureDeepReview:  Unlimited,
	},
}

// returns the limit for a plan and feature, defaulting to free for unknown plans
func Limit(plan string, feature profiles.Feature) int {
	limits, ok := PlanLimits[plan]
	if !ok {
		limits = PlanLimits[profiles.PlanFree]
	}

	return limits[feature]
}
