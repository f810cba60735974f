package persistence

import (
	"errors"

	"github.com/google/uuid"

	"github.com/katalvlaran/wareflow/economy"
)

// ErrRunNotFound indicates a load of a run that was never saved.
var ErrRunNotFound = errors.New("persistence: run not found")

// Run summarises one saved run.
type Run struct {
	ID        uuid.UUID
	SavedAt   economy.Time
	Economies int
}

// economyRow mirrors the economies table.
type economyRow struct {
	RunID       string `db:"run_id"`
	Serial      uint32 `db:"serial"`
	Owner       uint8  `db:"owner"`
	Kind        uint8  `db:"kind"`
	TimerSerial uint32 `db:"timer_serial"`
}

// targetRow mirrors the targets table.
type targetRow struct {
	Economy      uint32 `db:"economy"`
	Type         int    `db:"type"`
	Quantity     int    `db:"quantity"`
	LastModified int64  `db:"last_modified"`
}

// runRow mirrors the runs table joined with its economy count.
type runRow struct {
	ID        string `db:"id"`
	SavedAt   int64  `db:"saved_at"`
	Economies int    `db:"economies"`
}
