package reconciliationqueue

import (
	"telehealth-service/internal/app/models"
	"telehealth-service/internal/pkg/constvars"

	"github.com/goccy/go-json"
	"github.com/hibiken/asynq"
)

func NewReconcileChargeTask(validation *models.PaymentValidation) (*asynq.Task, error) {
	payload, err := json.Marshal(validation)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(constvars.TaskTypeReconcileCharge, payload), nil
}

func NewReconcileTransferTask(validation *models.TransferValidation) (*asynq.Task, error) {
	payload, err := json.Marshal(validation)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(constvars.TaskTypeReconcileTransfer, payload), nil
}

func ParseReconcileChargeTask(task *asynq.Task) (*models.PaymentValidation, error) {
	var validation models.PaymentValidation
	if err := json.Unmarshal(task.Payload(), &validation); err != nil {
		return nil, err
	}
	return &validation, nil
}

func ParseReconcileTransferTask(task *asynq.Task) (*models.TransferValidation, error) {
	var validation models.TransferValidation
	if err := json.Unmarshal(task.Payload(), &validation); err != nil {
		return nil, err
	}
	return &validation, nil
}
