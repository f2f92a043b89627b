package reconciliation

import (
	"context"
	"strings"

	"telehealth-service/internal/app/contracts"
	"telehealth-service/internal/app/models"
	"telehealth-service/internal/pkg/constvars"
	"telehealth-service/internal/pkg/exceptions"
	"telehealth-service/internal/pkg/utils"

	"go.uber.org/zap"
)

type withdrawalReconciler struct {
	UnitOfWork     contracts.UnitOfWork
	BankingService contracts.BankingService
	Log            *zap.Logger
}

func NewWithdrawalReconciler(
	unitOfWork contracts.UnitOfWork,
	bankingService contracts.BankingService,
	logger *zap.Logger,
) contracts.WithdrawalReconciler {
	return &withdrawalReconciler{
		UnitOfWork:     unitOfWork,
		BankingService: bankingService,
		Log:            logger,
	}
}

// ReconcileTransfer settles a payout. For a failed or reversed earnings
// withdrawal the earnings reversal runs in the same commit as the status
// write, and a reversal error rolls both back.
func (r *withdrawalReconciler) ReconcileTransfer(ctx context.Context, validation *models.TransferValidation) error {
	requestID := utils.GetRequestID(ctx)
	reference := validation.TransferReference
	r.Log.Info("withdrawalReconciler.ReconcileTransfer called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingGatewayKey, string(validation.Gateway)),
		zap.String(constvars.LoggingWithdrawalRefKey, reference),
		zap.String(constvars.LoggingReportedStatusKey, validation.Status),
	)

	if reference == "" {
		r.Log.Warn("withdrawalReconciler.ReconcileTransfer empty reference, ignoring",
			zap.String(constvars.LoggingRequestIDKey, requestID),
		)
		return nil
	}

	outcome, ok := normalizeTransferStatus(validation.Status)
	if !ok {
		r.Log.Warn("withdrawalReconciler.ReconcileTransfer status is not final, ignoring",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingWithdrawalRefKey, reference),
			zap.String(constvars.LoggingReportedStatusKey, validation.Status),
		)
		return nil
	}

	bankName := r.resolveBankName(ctx, validation)

	var (
		applied   bool
		withdrawn *models.WithdrawalTransaction
	)
	err := r.UnitOfWork.Do(ctx, func(ctx context.Context, scope contracts.TransactionScope) error {
		withdrawal, err := scope.WithdrawalTransactions().FindByReferenceForUpdate(ctx, reference)
		if err != nil {
			return err
		}
		if withdrawal == nil {
			r.Log.Info("withdrawalReconciler.ReconcileTransfer no withdrawal for reference",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingWithdrawalRefKey, reference),
			)
			return nil
		}
		if withdrawal.Status.IsTerminal() {
			r.Log.Info("withdrawalReconciler.ReconcileTransfer withdrawal already settled",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingWithdrawalRefKey, reference),
				zap.String(constvars.LoggingOutcomeKey, string(withdrawal.Status)),
			)
			return nil
		}

		applyTransferOutcome(withdrawal, validation, outcome, bankName)
		if err := scope.WithdrawalTransactions().UpdateOutcome(ctx, withdrawal); err != nil {
			return err
		}

		if outcome != models.TransactionStatusSuccess && withdrawal.IsEarningsWithdrawal() {
			if err := scope.Earnings().ReverseTransactionAndUpdateEarnings(ctx, withdrawal); err != nil {
				return exceptions.ErrEarningsReversalFailed(err, reference)
			}
		}

		applied = true
		withdrawn = withdrawal
		return nil
	})
	if err != nil {
		r.Log.Error("withdrawalReconciler.ReconcileTransfer error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingWithdrawalRefKey, reference),
			zap.Error(err),
		)
		return err
	}

	if applied {
		utils.LogBusinessEvent(r.Log, "withdrawal_reconciled", requestID,
			zap.String(constvars.LoggingGatewayKey, string(validation.Gateway)),
			zap.String(constvars.LoggingWithdrawalRefKey, reference),
			zap.String(constvars.LoggingWithdrawalTypeKey, string(withdrawn.Type)),
			zap.String(constvars.LoggingOutcomeKey, string(outcome)),
		)
	}
	return nil
}

func (r *withdrawalReconciler) resolveBankName(ctx context.Context, validation *models.TransferValidation) string {
	if validation.BankName != "" || validation.BankCode == "" || r.BankingService == nil {
		return validation.BankName
	}

	bankName, err := r.BankingService.FindBankName(ctx, validation.Currency, validation.BankCode)
	if err != nil {
		r.Log.Warn("withdrawalReconciler.ReconcileTransfer error resolving bank name",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
			zap.String(constvars.LoggingBankCodeKey, validation.BankCode),
			zap.String(constvars.LoggingCurrencyKey, validation.Currency),
			zap.Error(err),
		)
		return ""
	}
	return bankName
}

func applyTransferOutcome(withdrawal *models.WithdrawalTransaction, validation *models.TransferValidation, outcome models.TransactionStatus, bankName string) {
	withdrawal.Status = outcome
	withdrawal.WithdrawalStatus = strings.ToUpper(strings.TrimSpace(validation.Status))
	if validation.ExternalReference != "" {
		withdrawal.ExternalReference = validation.ExternalReference
	}
	if validation.Currency != "" {
		withdrawal.Currency = strings.ToUpper(validation.Currency)
	}
	if bankName != "" {
		withdrawal.BankName = bankName
	}
	if validation.AccountNumber != "" {
		withdrawal.AccountNumber = validation.AccountNumber
	}
	if validation.AccountName != "" {
		withdrawal.AccountName = validation.AccountName
	}
	if validation.BankCode != "" {
		withdrawal.BankCode = validation.BankCode
	}
	if !validation.Fee.IsZero() {
		withdrawal.Fee = validation.Fee
	}
}
