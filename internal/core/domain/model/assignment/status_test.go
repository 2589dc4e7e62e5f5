package assignment_test

import (
	"fmt"
	"testing"

	"fieldwork/internal/core/domain/model/assignment"
	"fieldwork/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_Constants(t *testing.T) {
	t.Run("should have correct enum values", func(t *testing.T) {
		assert.Equal(t, 0, int(assignment.Unknown))
		assert.Equal(t, 1, int(assignment.Assigned))
		assert.Equal(t, 2, int(assignment.Accepted))
		assert.Equal(t, 3, int(assignment.Rejected))
		assert.Equal(t, 4, int(assignment.InProgress))
		assert.Equal(t, 5, int(assignment.Completed))
	})
}

func TestStatus_Validate(t *testing.T) {
	t.Run("should validate valid statuses", func(t *testing.T) {
		validStatuses := []assignment.Status{
			assignment.Assigned,
			assignment.Accepted,
			assignment.Rejected,
			assignment.InProgress,
			assignment.Completed,
		}

		for _, status := range validStatuses {
			t.Run(fmt.Sprintf("should validate %s status", status.String()), func(t *testing.T) {
				require.NoError(t, status.Validate())
			})
		}
	})

	t.Run("should reject Unknown status", func(t *testing.T) {
		err := assignment.Unknown.Validate()

		require.Error(t, err)
		assert.IsType(t, &errs.ValueIsInvalidError{}, err)
	})

	t.Run("should reject out of range values", func(t *testing.T) {
		for _, status := range []assignment.Status{assignment.Status(-1), assignment.Status(6), assignment.Status(100)} {
			require.Error(t, status.Validate())
		}
	})
}

func TestStatus_String(t *testing.T) {
	cases := map[assignment.Status]string{
		assignment.Unknown:    "unknown",
		assignment.Assigned:   "assigned",
		assignment.Accepted:   "accepted",
		assignment.Rejected:   "rejected",
		assignment.InProgress: "in_progress",
		assignment.Completed:  "completed",
	}

	for status, expected := range cases {
		assert.Equal(t, expected, status.String())
	}

	assert.Equal(t, "unknown", assignment.Status(42).String())
}

func TestStatusFromString(t *testing.T) {
	t.Run("should parse every valid status", func(t *testing.T) {
		for _, raw := range []string{"assigned", "accepted", "rejected", "in_progress", "completed"} {
			status, err := assignment.StatusFromString(raw)

			require.NoError(t, err)
			assert.Equal(t, raw, status.String())
		}
	})

	t.Run("should reject unknown strings", func(t *testing.T) {
		_, err := assignment.StatusFromString("cancelled")

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

// TestStatus_Transitions walks the full transition table: every operation
// from every status, asserting exactly the allowed edges succeed.
func TestStatus_Transitions(t *testing.T) {
	allStatuses := []assignment.Status{
		assignment.Assigned,
		assignment.Accepted,
		assignment.Rejected,
		assignment.InProgress,
		assignment.Completed,
	}

	type transition struct {
		name  string
		apply func(assignment.Status) (assignment.Status, error)
		from  assignment.Status
		to    assignment.Status
	}

	transitions := []transition{
		{"accept", assignment.Status.Accept, assignment.Assigned, assignment.Accepted},
		{"reject", assignment.Status.Reject, assignment.Assigned, assignment.Rejected},
		{"start", assignment.Status.Start, assignment.Accepted, assignment.InProgress},
		{"complete", assignment.Status.Complete, assignment.InProgress, assignment.Completed},
	}

	for _, tr := range transitions {
		for _, from := range allStatuses {
			t.Run(fmt.Sprintf("%s from %s", tr.name, from), func(t *testing.T) {
				next, err := tr.apply(from)

				if from == tr.from {
					require.NoError(t, err)
					assert.Equal(t, tr.to, next)
					return
				}

				require.Error(t, err)
				require.ErrorIs(t, err, assignment.ErrInvalidStateTransition)
				assert.Equal(t, assignment.Unknown, next)
			})
		}
	}
}

func TestStatus_IsFinal(t *testing.T) {
	assert.False(t, assignment.Assigned.IsFinal())
	assert.False(t, assignment.Accepted.IsFinal())
	assert.False(t, assignment.InProgress.IsFinal())
	assert.True(t, assignment.Rejected.IsFinal())
	assert.True(t, assignment.Completed.IsFinal())
}
