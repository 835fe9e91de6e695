package model_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/Astemirdum/library-view/pkg/validate"
	"github.com/Astemirdum/library-view/view/internal/model"
	"github.com/stretchr/testify/require"
)

func TestPage_UnmarshalJSON(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name      string
		body      string
		wantLen   int
		wantTotal int
		wantErr   bool
	}{
		{name: "envelope", body: `{"items":[{"id":1},{"id":2}],"total":17}`, wantLen: 2, wantTotal: 17},
		{name: "bare array", body: `[{"id":1},{"id":2},{"id":3}]`, wantLen: 3, wantTotal: 3},
		{name: "envelope without total", body: `{"items":[{"id":1}]}`, wantLen: 1, wantTotal: 0},
		{name: "null", body: `null`, wantLen: 0, wantTotal: 0},
		{name: "empty array", body: ` [] `, wantLen: 0, wantTotal: 0},
		{name: "garbage", body: `"nope"`, wantErr: true},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var p model.Page[model.Book]
			err := json.Unmarshal([]byte(tt.body), &p)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Len(t, p.Items, tt.wantLen)
			require.NotNil(t, p.Items)
			require.Equal(t, tt.wantTotal, p.Total)
		})
	}
}

func TestDate_JSON(t *testing.T) {
	t.Parallel()
	var b model.Borrowing
	require.NoError(t, json.Unmarshal([]byte(`{"id":3,"borrow_date":"2024-03-01","due_date":"2024-03-31T00:00:00","return_date":null,"status":"borrowed"}`), &b))
	require.Equal(t, "2024-03-01", b.BorrowDate.String())
	require.Equal(t, "2024-03-31", b.DueDate.String())
	require.Nil(t, b.ReturnDate)

	out, err := json.Marshal(model.BorrowingRequest{BookID: 1, DueDate: model.NewDate(time.Date(2024, 5, 6, 13, 0, 0, 0, time.UTC))})
	require.NoError(t, err)
	require.JSONEq(t, `{"book_id":1,"due_date":"2024-05-06"}`, string(out))
}

func TestBorrowing_IsOverdue(t *testing.T) {
	t.Parallel()
	now := time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)
	due := func(y int, m time.Month, d int) model.Date { return model.NewDate(time.Date(y, m, d, 0, 0, 0, 0, time.UTC)) }

	require.True(t, model.Borrowing{Status: model.StatusBorrowed, DueDate: due(2024, 6, 9)}.IsOverdue(now))
	require.False(t, model.Borrowing{Status: model.StatusBorrowed, DueDate: due(2024, 6, 10)}.IsOverdue(now))
	require.False(t, model.Borrowing{Status: model.StatusReturned, DueDate: due(2024, 6, 1)}.IsOverdue(now))
}

func TestBookRequest_Validate(t *testing.T) {
	t.Parallel()
	year := 1999
	ok := model.NewBookRequest()
	ok.Title, ok.Author, ok.PublishedYear = "Dune", "Herbert", &year
	require.NoError(t, validate.Struct(ok))

	tooMany := ok
	tooMany.AvailableCopies = 2
	require.Error(t, validate.Struct(tooMany))

	noTitle := ok
	noTitle.Title = ""
	require.Error(t, validate.Struct(noTitle))

	badYear := ok
	old := 999
	badYear.PublishedYear = &old
	require.Error(t, validate.Struct(badYear))
}
