// SPDX-License-Identifier: MIT

package health

import (
	"context"
	"fmt"
)

// SessionCounter is the minimal store surface the checker needs.
type SessionCounter interface {
	Len() int
}

// StoreChecker reports on the session store. The in-memory store cannot
// actually fail, so it always reports healthy with the current record count;
// the checker exists so the readiness payload carries engine visibility.
type StoreChecker struct {
	store SessionCounter
}

// NewStoreChecker creates a checker for the given store.
func NewStoreChecker(store SessionCounter) *StoreChecker {
	return &StoreChecker{store: store}
}

func (c *StoreChecker) Name() string { return "session_store" }

func (c *StoreChecker) Check(_ context.Context) CheckResult {
	return CheckResult{
		Status:  StatusHealthy,
		Message: fmt.Sprintf("%d sessions held", c.store.Len()),
	}
}
