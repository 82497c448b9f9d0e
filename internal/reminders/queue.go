package reminders

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

const dueQueueKey = "reminders:due"

// DueTask is the payload handed to the external notifier. Delivery
// (SMS/email/whatever) is entirely its problem.
type DueTask struct {
	TaskRef       uuid.UUID `json:"task_ref"`
	AppointmentID uint      `json:"appointment_id"`
	Kind          string    `json:"kind"`
	StartTime     time.Time `json:"start_time"`
	ClientName    string    `json:"client_name,omitempty"`
	ClientPhone   string    `json:"client_phone,omitempty"`
	ClientEmail   string    `json:"client_email,omitempty"`
	StaffName     string    `json:"staff_name,omitempty"`
	ServiceName   string    `json:"service_name,omitempty"`
}

// Queue publishes due reminders onto a Redis list consumed by the
// notifier service.
type Queue struct {
	rdb *redis.Client
}

func NewQueue(rdb *redis.Client) *Queue {
	return &Queue{rdb: rdb}
}

func (q *Queue) Publish(ctx context.Context, task DueTask) error {
	payload, err := json.Marshal(task)
	if err != nil {
		return err
	}
	return q.rdb.LPush(ctx, dueQueueKey, payload).Err()
}
