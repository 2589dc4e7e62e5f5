package commands

import (
	"context"
	"time"
)

// ReconcileEarningsCommandHandler applies stale pending earnings credits to
// worker running totals. Each credit is applied in its own transaction with
// the same conditional mark the post-commit path uses, so the sweep can race
// with in-flight applies without double-crediting anyone.
type ReconcileEarningsCommandHandler struct {
	uowFactory StatsUoWFactory
}

// NewReconcileEarningsCommandHandler creates a handler for earnings
// reconciliation sweeps.
func NewReconcileEarningsCommandHandler(uowFactory StatsUoWFactory) ReconcileEarningsCommandHandler {
	return ReconcileEarningsCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle applies one batch of stale credits and returns how many were
// applied. A failing credit stops the sweep; the remaining credits are still
// unapplied and the next sweep retries them.
func (h ReconcileEarningsCommandHandler) Handle(ctx context.Context, command ReconcileEarningsCommand) (int, error) {
	if err := command.Validate(); err != nil {
		return 0, err
	}

	now := time.Now().UTC()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	credits, err := uow.EarningsOutboxRepository().GetUnapplied(ctx, now.Add(-command.StaleAfter()), command.BatchSize())
	if rollbackErr := uow.Rollback(ctx); rollbackErr != nil && err == nil {
		err = rollbackErr
	}
	if err != nil {
		return 0, err
	}

	applied := 0
	for _, credit := range credits {
		if err := applyEarningsCredit(ctx, h.uowFactory.Create(), credit, now); err != nil {
			return applied, err
		}
		applied++
	}

	return applied, nil
}
