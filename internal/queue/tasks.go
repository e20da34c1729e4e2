package queue

import (
	"encoding/json"

	"github.com/atolye-store/internal/constants"

	"github.com/hibiken/asynq"
)

// TaskOrderConfirmation 订单确认通知任务
const TaskOrderConfirmation = constants.TaskOrderConfirmation

// OrderConfirmationPayload 订单确认任务载荷
type OrderConfirmationPayload struct {
	OrderID uint   `json:"order_id"`
	OrderNo string `json:"order_no"`
	Email   string `json:"email"`
}

// NewOrderConfirmationTask 创建订单确认任务
func NewOrderConfirmationTask(payload OrderConfirmationPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskOrderConfirmation, body), nil
}
