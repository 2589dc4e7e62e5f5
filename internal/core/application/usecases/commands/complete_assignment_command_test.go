package commands_test

import (
	"testing"

	"fieldwork/internal/core/application/usecases/commands"
	"fieldwork/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompleteAssignmentCommand_Validate_WhenConstructedProperly_ShouldReturnNoError(t *testing.T) {
	// Arrange
	cmd, err := commands.NewCompleteAssignmentCommand(
		kernel.NewUUID(), kernel.NewUUID(),
		"replaced the valve",
		[]string{"valve", "teflon tape"},
		[]string{"after.jpg"},
	)
	require.NoError(t, err)

	// Act
	err = cmd.Validate()

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "replaced the valve", cmd.CompletionNotes())
	assert.Equal(t, []string{"valve", "teflon tape"}, cmd.MaterialsUsed())
	assert.Equal(t, []string{"after.jpg"}, cmd.Photos())
}

func TestCompleteAssignmentCommand_Validate_WhenNotConstructed_ShouldReturnError(t *testing.T) {
	// Arrange
	var cmd commands.CompleteAssignmentCommand // zero-value command

	// Act
	err := cmd.Validate()

	// Assert
	require.Error(t, err)
	assert.Equal(t, commands.ErrCompleteAssignmentCommandIsNotConstructed, err)
}

func TestNewCompleteAssignmentCommand_CopiesAttachmentSlices(t *testing.T) {
	materials := []string{"valve"}

	cmd, err := commands.NewCompleteAssignmentCommand(kernel.NewUUID(), kernel.NewUUID(), "", materials, nil)
	require.NoError(t, err)

	materials[0] = "mutated"
	assert.Equal(t, []string{"valve"}, cmd.MaterialsUsed())
}
