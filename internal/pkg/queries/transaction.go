package queries

const (
	sessionTransactionColumns = `
		id,
		kind,
		reference,
		group_reference,
		session_reference,
		external_reference,
		payer_id,
		gateway,
		status,
		amount,
		currency,
		created_at,
		updated_at`

	// A charge may be reported against its group reference or, for an
	// unsplit charge, against the transaction reference itself.
	GetSessionTransactionsByGroupReference = `
		SELECT` + sessionTransactionColumns + `
		FROM transactions
		WHERE kind = 'SESSION'
			AND (group_reference = $1 OR reference = $1)
		ORDER BY id
	`

	GetSessionTransactionsByGroupReferenceForUpdate = `
		SELECT` + sessionTransactionColumns + `
		FROM transactions
		WHERE kind = 'SESSION'
			AND (group_reference = $1 OR reference = $1)
		ORDER BY id
		FOR UPDATE
	`

	ExistsTransactionByReference = `
		SELECT EXISTS (SELECT 1 FROM transactions WHERE reference = $1)
	`

	CreateSessionTransaction = `
		INSERT INTO transactions (
			kind,
			reference,
			group_reference,
			session_reference,
			payer_id,
			gateway,
			status,
			amount,
			currency
		) VALUES ('SESSION', $1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at
	`

	UpdateSessionTransactionOutcome = `
		UPDATE transactions
		SET
			status = $2,
			external_reference = $3,
			currency = $4,
			updated_at = NOW()
		WHERE reference = $1 AND kind = 'SESSION'
		RETURNING updated_at
	`

	GetWithdrawalTransactionByReferenceForUpdate = `
		SELECT
			id,
			kind,
			reference,
			external_reference,
			payer_id,
			gateway,
			status,
			amount,
			currency,
			withdrawal_type,
			withdrawal_status,
			bank_name,
			account_number,
			account_name,
			bank_code,
			fee,
			created_at,
			updated_at
		FROM transactions
		WHERE kind = 'WITHDRAWAL' AND reference = $1
		FOR UPDATE
	`

	UpdateWithdrawalTransactionOutcome = `
		UPDATE transactions
		SET
			status = $2,
			withdrawal_status = $3,
			external_reference = $4,
			currency = $5,
			bank_name = $6,
			account_number = $7,
			account_name = $8,
			bank_code = $9,
			fee = $10,
			updated_at = NOW()
		WHERE reference = $1 AND kind = 'WITHDRAWAL'
		RETURNING updated_at
	`
)
