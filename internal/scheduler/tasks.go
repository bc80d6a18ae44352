// Package scheduler holds the asynq task definitions and the worker that
// processes them. The API process enqueues nothing today; tasks are driven
// by the periodic scheduler in cmd/scheduler.
package scheduler

import (
	"github.com/hibiken/asynq"
)

const (
	// TypeFollowUpScan finds leads whose follow-up date arrived and emits
	// events for them.
	TypeFollowUpScan = "leads:follow_up_scan"
	// TypeTokenPrune removes expired refresh tokens.
	TypeTokenPrune = "auth:token_prune"
)

func NewFollowUpScanTask() *asynq.Task {
	return asynq.NewTask(TypeFollowUpScan, nil)
}

func NewTokenPruneTask() *asynq.Task {
	return asynq.NewTask(TypeTokenPrune, nil)
}
