package worker

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/atolye-store/internal/logger"
	"github.com/atolye-store/internal/provider"
	"github.com/atolye-store/internal/queue"

	"github.com/hibiken/asynq"
)

// Consumer 异步任务消费者
type Consumer struct {
	*provider.Container
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskOrderConfirmation, c.handleOrderConfirmation)
}

// handleOrderConfirmation 处理订单确认任务
// 订单已提交才会进队列，这里只做落地动作（记录确认流水），
// 订单丢失或载荷异常按跳过处理，不无限重试
func (c *Consumer) handleOrderConfirmation(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_order_confirmation_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.OrderConfirmationPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_order_confirmation_unmarshal_failed", "error", err)
		return err
	}
	if payload.OrderID == 0 {
		logger.Debugw("worker_order_confirmation_skip_invalid_payload", "order_id", payload.OrderID)
		return nil
	}

	order, err := c.OrderRepo.GetByID(payload.OrderID)
	if err != nil {
		logger.Warnw("worker_order_confirmation_fetch_order_failed", "order_id", payload.OrderID, "error", err)
		return err
	}
	if order == nil {
		logger.Debugw("worker_order_confirmation_skip_order_not_found", "order_id", payload.OrderID)
		return nil
	}

	receiverEmail := strings.TrimSpace(payload.Email)
	if receiverEmail == "" && order.UserID != 0 {
		user, userErr := c.UserRepo.GetByID(order.UserID)
		if userErr != nil {
			logger.Warnw("worker_order_confirmation_fetch_user_failed", "order_id", order.ID, "user_id", order.UserID, "error", userErr)
			return userErr
		}
		if user != nil {
			receiverEmail = strings.TrimSpace(user.Email)
		}
	}

	logger.Infow("order_confirmation_processed",
		"order_id", order.ID,
		"order_no", order.OrderNo,
		"status", order.Status,
		"total", order.TotalAmount.String(),
		"currency", order.Currency,
		"item_count", len(order.Items),
		"receiver", receiverEmail,
	)
	return nil
}
