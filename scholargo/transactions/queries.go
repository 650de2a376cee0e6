package transactions

const transactionColumns = `id, external_id, user_id, plan_type, amount, status, final, gateway, payment_link, granted_at, created_at, updated_at`

const (
	queryCreate = `
		INSERT INTO transactions (external_id, user_id, plan_type, amount, status, gateway, payment_link)
		VALUES ($1, $2, $3, $4, 'pending', $5, $6)
		RETURNING ` + transactionColumns

	queryFindByExternalID = `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE external_id = $1
	`

	queryListByUser = `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT 50
	`

	// terminal rows never move again
	queryTransition = `
		UPDATE transactions
		SET status = $2, final = $3, updated_at = NOW()
		WHERE external_id = $1 AND final = FALSE
	`

	queryMarkGranted = `
		UPDATE transactions
		SET granted_at = $2, updated_at = NOW()
		WHERE external_id = $1 AND granted_at IS NULL
	`
)
