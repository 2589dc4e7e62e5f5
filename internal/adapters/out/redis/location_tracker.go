// Package redis implements live location tracking on Redis. Tracking state is
// a flag key read by the location ingestion path: while the flag holds the
// worker's current assignment, position updates for that worker are published
// under the location key; when it is gone they are dropped.
package redis

import (
	"context"
	"fmt"
	"time"

	"fieldwork/internal/core/domain/model/kernel"

	"github.com/go-redis/redis/v8"
)

// trackingTTL bounds a tracking session that was never stopped, so a crashed
// completion flow cannot leave a worker's location public forever.
const trackingTTL = 12 * time.Hour

// LocationTracker implements ports.LocationTracker on a Redis client.
type LocationTracker struct {
	client *redis.Client
}

// NewLocationTracker creates a Redis-backed location tracker.
func NewLocationTracker(client *redis.Client) *LocationTracker {
	return &LocationTracker{client: client}
}

// StartTracking enables location publishing for the worker while they travel
// to and work the assignment. Restarting an already-tracked worker refreshes
// the session.
func (t *LocationTracker) StartTracking(ctx context.Context, workerUserID kernel.UUID, assignmentID kernel.UUID) error {
	if err := workerUserID.Validate(); err != nil {
		return err
	}
	if err := assignmentID.Validate(); err != nil {
		return err
	}

	return t.client.Set(ctx, trackingKey(workerUserID), assignmentID.String(), trackingTTL).Err()
}

// StopTracking disables publishing and removes the last published position.
// Stopping a worker who is not tracked is a no-op, so rejection and
// completion can both stop unconditionally.
func (t *LocationTracker) StopTracking(ctx context.Context, workerUserID kernel.UUID, assignmentID kernel.UUID) error {
	if err := workerUserID.Validate(); err != nil {
		return err
	}
	if err := assignmentID.Validate(); err != nil {
		return err
	}

	return t.client.Del(ctx, trackingKey(workerUserID), locationKey(workerUserID)).Err()
}

// TrackedAssignment returns the assignment the worker is currently tracked
// for, or the empty string when tracking is off.
func (t *LocationTracker) TrackedAssignment(ctx context.Context, workerUserID kernel.UUID) (string, error) {
	if err := workerUserID.Validate(); err != nil {
		return "", err
	}

	assignmentID, err := t.client.Get(ctx, trackingKey(workerUserID)).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", err
	}

	return assignmentID, nil
}

func trackingKey(workerUserID kernel.UUID) string {
	return fmt.Sprintf("tracking:worker:%s", workerUserID.String())
}

func locationKey(workerUserID kernel.UUID) string {
	return fmt.Sprintf("location:worker:%s", workerUserID.String())
}
