package service

import (
	"context"
	"testing"

	terrors "github.com/mkravets/resource-api/internal/task/errors"
	"github.com/mkravets/resource-api/internal/task/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seededService() *Service {
	return NewService(store.NewMemoryStore(store.SeedData()...))
}

func Test_TaskService_FindAll(t *testing.T) {
	// given
	svc := seededService()

	// when
	all := svc.FindAll(context.Background())

	// then
	require.Len(t, all, 5)
	assert.Equal(t, "Complete Project", all[0].Title)
	assert.Equal(t, "Team Meeting", all[4].Title)
}

func Test_TaskService_FindByID(t *testing.T) {
	testCases := []struct {
		name        string
		taskID      int64
		expectError error
	}{
		{
			name:   "Success - task found",
			taskID: 3,
		},
		{
			name:        "Error - task not found",
			taskID:      42,
			expectError: terrors.ErrTaskNotFound,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			svc := seededService()
			// when
			found, err := svc.FindByID(context.Background(), tc.taskID)
			// then
			if tc.expectError != nil {
				assert.ErrorIs(t, err, tc.expectError)
				assert.Nil(t, found)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "Update Documentation", found.Title)
			assert.True(t, found.Completed)
		})
	}
}

func Test_TaskService_FindByStatus(t *testing.T) {
	// given
	svc := seededService()

	// when
	pending := svc.FindByStatus(context.Background(), false)
	done := svc.FindByStatus(context.Background(), true)

	// then
	require.Len(t, pending, 4)
	require.Len(t, done, 1)
	assert.Equal(t, int64(3), done[0].ID)
}

func Test_TaskService_FindByPriority(t *testing.T) {
	// given
	svc := seededService()

	// when the match is case insensitive
	upper := svc.FindByPriority(context.Background(), "HIGH")
	lower := svc.FindByPriority(context.Background(), "high")

	// then
	assert.Equal(t, upper, lower)
	require.Len(t, upper, 2)
	assert.Equal(t, int64(1), upper[0].ID)
	assert.Equal(t, int64(4), upper[1].ID)

	none := svc.FindByPriority(context.Background(), "URGENT")
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func Test_TaskService_Create(t *testing.T) {
	// given
	svc := seededService()

	// when
	created := svc.Create(context.Background(), store.Task{
		Title: "Write Release Notes", Priority: "LOW", DueDate: "2026-03-01",
	})

	// then
	assert.Equal(t, int64(6), created.ID)
	assert.False(t, created.Completed)
	assert.Len(t, svc.FindAll(context.Background()), 6)
}

func Test_TaskService_Update(t *testing.T) {
	testCases := []struct {
		name        string
		taskID      int64
		expectError error
	}{
		{
			name:   "Success - task updated",
			taskID: 2,
		},
		{
			name:        "Error - task not found",
			taskID:      42,
			expectError: terrors.ErrTaskNotFound,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			svc := seededService()
			input := store.Task{Title: "Review Pull Requests", Description: "Review open pull requests", Completed: true, Priority: "HIGH", DueDate: "2026-02-13"}
			// when
			updated, err := svc.Update(context.Background(), tc.taskID, input)
			// then
			if tc.expectError != nil {
				assert.ErrorIs(t, err, tc.expectError)
				assert.Nil(t, updated)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.taskID, updated.ID)
			assert.Equal(t, "Review Pull Requests", updated.Title)
			assert.True(t, updated.Completed)
			assert.Equal(t, "HIGH", updated.Priority)
		})
	}
}

func Test_TaskService_Complete(t *testing.T) {
	// given
	ctx := context.Background()
	svc := seededService()

	// when
	completed, err := svc.Complete(ctx, 1)

	// then only the completion flag changes
	require.NoError(t, err)
	assert.True(t, completed.Completed)
	assert.Equal(t, "Complete Project", completed.Title)
	assert.Equal(t, "HIGH", completed.Priority)
	assert.Equal(t, "2026-02-15", completed.DueDate)

	// completing twice is a no-op
	again, err := svc.Complete(ctx, 1)
	require.NoError(t, err)
	assert.True(t, again.Completed)

	_, err = svc.Complete(ctx, 42)
	assert.ErrorIs(t, err, terrors.ErrTaskNotFound)
}

func Test_TaskService_DeleteByID(t *testing.T) {
	// given
	ctx := context.Background()
	svc := seededService()

	// when
	require.NoError(t, svc.DeleteByID(ctx, 5))

	// then
	_, err := svc.FindByID(ctx, 5)
	assert.ErrorIs(t, err, terrors.ErrTaskNotFound)
	assert.ErrorIs(t, svc.DeleteByID(ctx, 5), terrors.ErrTaskNotFound)

	// freed identifiers are never reused
	created := svc.Create(ctx, store.Task{Title: "New Task"})
	assert.Equal(t, int64(6), created.ID)
}
