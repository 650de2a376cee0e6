package profiles

const profileColumns = `id, plan_type, usage_pdf_analysis, usage_chat, usage_deep_review, last_reset_date, valid_until, created_at, updated_at`

const (
	queryFindByID = `
		SELECT ` + profileColumns + `
		FROM profiles
		WHERE id = $1
	`

	queryCreate = `
		INSERT INTO profiles (id, plan_type, last_reset_date)
		VALUES ($1, 'free', $2)
		ON CONFLICT (id) DO NOTHING
	`

	// only resets when the stored reset predates the current period, so concurrent checks reset once
	queryResetUsage = `
		UPDATE profiles
		SET usage_pdf_analysis = 0, usage_chat = 0, usage_deep_review = 0, last_reset_date = $2, updated_at = NOW()
		WHERE id = $1 AND last_reset_date < $3
		RETURNING ` + profileColumns

	queryIncrementPDFAnalysis = `
		UPDATE profiles
		SET usage_pdf_analysis = usage_pdf_analysis + 1, updated_at = NOW()
		WHERE id = $1
		RETURNING usage_pdf_analysis
	`

	queryIncrementChat = `
		UPDATE profiles
		SET usage_chat = usage_chat + 1, updated_at = NOW()
		WHERE id = $1
		RETURNING usage_chat
	`

	queryIncrementDeepReview = `
		UPDATE profiles
		SET usage_deep_review = usage_deep_review + 1, updated_at = NOW()
		WHERE id = $1
		RETURNING usage_deep_review
	`

	queryGrantPlan = `
		INSERT INTO profiles (id, plan_type, valid_until, last_reset_date)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (id)
		DO UPDATE SET
			plan_type = EXCLUDED.plan_type,
			valid_until = EXCLUDED.valid_until,
			updated_at = NOW()
	`
)

var incrementQueries = map[Feature]string{
	FeaturePDFAnalysis: queryIncrementPDFAnalysis,
	FeatureChat:        queryIncrementChat,
	FeatureDeepReview:  queryIncrementDeepReview,
}
