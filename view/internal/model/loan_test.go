package model_test

import (
	"testing"
	"time"

	"github.com/Astemirdum/library-view/view/internal/model"
	"github.com/stretchr/testify/require"
)

func TestNewLoans(t *testing.T) {
	t.Parallel()
	now := time.Date(2024, 6, 10, 9, 30, 0, 0, time.UTC)
	due := func(day int) model.Date { return model.NewDate(time.Date(2024, 6, day, 0, 0, 0, 0, time.UTC)) }

	loans := model.NewLoans([]model.Borrowing{
		{ID: 1, DueDate: due(8), Status: model.StatusBorrowed},
		{ID: 2, DueDate: due(12), Status: model.StatusBorrowed},
		{ID: 3, DueDate: due(17), Status: model.StatusBorrowed},
		{ID: 4, DueDate: due(30), Status: model.StatusBorrowed},
	}, now)

	require.Equal(t, -2, loans[0].DaysUntilDue)
	require.True(t, loans[0].Overdue)
	require.False(t, loans[0].DueSoon)

	require.Equal(t, 2, loans[1].DaysUntilDue)
	require.True(t, loans[1].DueSoon)

	require.Equal(t, 7, loans[2].DaysUntilDue)
	require.False(t, loans[2].DueSoon)

	pending := model.PendingDue(loans)
	require.Len(t, pending, 3)
	require.Equal(t, 3, pending[2].ID)
}

func TestDefaultDueDate(t *testing.T) {
	t.Parallel()
	require.Equal(t, "2024-07-10", model.DefaultDueDate(time.Date(2024, 6, 10, 23, 0, 0, 0, time.UTC)).String())
}

func TestActiveLoanOf(t *testing.T) {
	t.Parallel()
	bs := []model.Borrowing{
		{ID: 1, Book: model.Book{ID: 5}, Status: model.StatusReturned},
		{ID: 2, Book: model.Book{ID: 5}, Status: model.StatusBorrowed},
	}
	b, ok := model.ActiveLoanOf(5, bs)
	require.True(t, ok)
	require.Equal(t, 2, b.ID)
	_, ok = model.ActiveLoanOf(6, bs)
	require.False(t, ok)
}
