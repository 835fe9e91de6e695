package model

import (
	"math"
	"time"
)

const (
	// PendingDueDays selects loans shown in the pending due section.
	PendingDueDays = 7
	// DueSoonDays flags a loan that is about to become overdue.
	DueSoonDays = 3
	// DefaultLoanDays is the due date offered when a member borrows a book.
	DefaultLoanDays = 30
)

// Loan is a borrowing as shown to a member.
type Loan struct {
	Borrowing
	DaysUntilDue int  `json:"days_until_due"`
	Overdue      bool `json:"overdue"`
	DueSoon      bool `json:"due_soon"`
}

// DaysUntilDue is negative once the due date has passed.
func DaysUntilDue(due Date, now time.Time) int {
	return int(math.Ceil(due.Sub(now).Hours() / 24))
}

func NewLoan(b Borrowing, now time.Time) Loan {
	days := DaysUntilDue(b.DueDate, now)
	return Loan{
		Borrowing:    b,
		DaysUntilDue: days,
		Overdue:      days < 0,
		DueSoon:      days >= 0 && days <= DueSoonDays,
	}
}

func NewLoans(bs []Borrowing, now time.Time) []Loan {
	loans := make([]Loan, 0, len(bs))
	for _, b := range bs {
		loans = append(loans, NewLoan(b, now))
	}
	return loans
}

// PendingDue keeps loans due within PendingDueDays, overdue ones included.
func PendingDue(loans []Loan) []Loan {
	pending := make([]Loan, 0, len(loans))
	for _, l := range loans {
		if l.DaysUntilDue <= PendingDueDays {
			pending = append(pending, l)
		}
	}
	return pending
}

// DefaultDueDate is DefaultLoanDays from now.
func DefaultDueDate(now time.Time) Date {
	return NewDate(now.AddDate(0, 0, DefaultLoanDays))
}

// ActiveLoanOf finds the borrowed loan of bookID among a member's borrowings.
func ActiveLoanOf(bookID int, bs []Borrowing) (Borrowing, bool) {
	for _, b := range bs {
		if b.Book.ID == bookID && b.Status == StatusBorrowed {
			return b, true
		}
	}
	return Borrowing{}, false
}
