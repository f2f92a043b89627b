package queries

const (
	InsertEarningsLedgerEntry = `
		INSERT INTO earnings_ledger (
			member_id,
			withdrawal_reference,
			entry_type,
			amount
		) VALUES ($1, $2, $3, $4)
		ON CONFLICT (withdrawal_reference, entry_type) DO NOTHING
	`

	CreditBackProfessionalEarnings = `
		UPDATE professional_earnings
		SET
			available_balance = available_balance + $2,
			total_withdrawn = GREATEST(total_withdrawn - $2, 0),
			updated_at = NOW()
		WHERE member_id = $1
	`
)
