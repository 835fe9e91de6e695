package model

import (
	"strings"
	"time"
)

type Role string

const (
	RoleAdmin  Role = "admin"
	RoleMember Role = "member"
)

type BorrowingStatus string

const (
	StatusBorrowed BorrowingStatus = "borrowed"
	StatusReturned BorrowingStatus = "returned"
	StatusOverdue  BorrowingStatus = "overdue"
)

// Date is a calendar date sent as "2006-01-02".
type Date struct {
	time.Time `json:",inline"`
}

func NewDate(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Time: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

func (d *Date) UnmarshalJSON(b []byte) (err error) {
	s := strings.Trim(string(b), "\"")
	if s == "" || s == "null" {
		d.Time = time.Time{}
		return nil
	}
	// some endpoints send full timestamps for date columns
	if len(s) > len(time.DateOnly) {
		s = s[:len(time.DateOnly)]
	}
	date, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return err
	}
	d.Time = date
	return
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + d.Format(time.DateOnly) + `"`), nil
}

// Timestamp accepts RFC 3339 as well as zone-less ISO timestamps.
type Timestamp struct {
	time.Time `json:",inline"`
}

var timestampLayouts = []string{time.RFC3339Nano, "2006-01-02T15:04:05.999999999", "2006-01-02 15:04:05.999999999"}

func (ts *Timestamp) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), "\"")
	if s == "" || s == "null" {
		ts.Time = time.Time{}
		return nil
	}
	var lastErr error
	for _, layout := range timestampLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			ts.Time = t
			return nil
		}
		lastErr = err
	}
	return lastErr
}

func (ts Timestamp) MarshalJSON() ([]byte, error) {
	if ts.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + ts.Format(time.RFC3339) + `"`), nil
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(time.DateOnly)
}

type Book struct {
	ID              int       `json:"id"`
	Title           string    `json:"title"`
	Author          string    `json:"author"`
	ISBN            *string   `json:"isbn,omitempty"`
	PublishedYear   *int      `json:"published_year,omitempty"`
	TotalCopies     int       `json:"total_copies"`
	AvailableCopies int       `json:"available_copies"`
	CreatedAt       Timestamp `json:"created_at"`
	UpdatedAt       Timestamp `json:"updated_at"`
}

type BookRequest struct {
	Title           string  `json:"title" validate:"required,max=255"`
	Author          string  `json:"author" validate:"required,max=255"`
	ISBN            *string `json:"isbn,omitempty" validate:"omitempty,max=20"`
	PublishedYear   *int    `json:"published_year,omitempty" validate:"omitempty,gte=1000,lte=2100"`
	TotalCopies     int     `json:"total_copies" validate:"gte=1"`
	AvailableCopies int     `json:"available_copies" validate:"gte=0,ltefield=TotalCopies"`
}

// NewBookRequest returns the form defaults.
func NewBookRequest() BookRequest {
	return BookRequest{TotalCopies: 1, AvailableCopies: 1}
}

type Member struct {
	ID             int     `json:"id"`
	Name           string  `json:"name"`
	Email          string  `json:"email"`
	Phone          *string `json:"phone,omitempty"`
	Address        *string `json:"address,omitempty"`
	ProfilePicture *string `json:"profile_picture,omitempty"`
	MembershipDate Date    `json:"membership_date"`
	UserRole       *Role   `json:"user_role,omitempty"`
}

func (m Member) HasAccount() bool {
	return m.UserRole != nil
}

type MemberRequest struct {
	Name              string  `json:"name" validate:"required,max=255"`
	Email             string  `json:"email" validate:"required,email"`
	Phone             *string `json:"phone,omitempty" validate:"omitempty,max=20"`
	Address           *string `json:"address,omitempty"`
	ProfilePicture    *string `json:"profile_picture,omitempty"`
	Role              *Role   `json:"role,omitempty" validate:"omitempty,oneof=admin member"`
	Password          *string `json:"password,omitempty" validate:"omitempty,min=6"`
	CreateUserAccount bool    `json:"create_user_account,omitempty"`
	UpdateUserAccount bool    `json:"update_user_account,omitempty"`
}

type Borrowing struct {
	ID         int             `json:"id"`
	BookID     int             `json:"book_id"`
	MemberID   int             `json:"member_id"`
	Book       Book            `json:"book"`
	Member     Member          `json:"member"`
	BorrowDate Date            `json:"borrow_date"`
	DueDate    Date            `json:"due_date"`
	ReturnDate *Date           `json:"return_date,omitempty"`
	Status     BorrowingStatus `json:"status"`
	FineAmount float64         `json:"fine_amount"`
}

// IsOverdue is a display property and is never sent back.
func (b Borrowing) IsOverdue(now time.Time) bool {
	return b.Status == StatusBorrowed && b.DueDate.Before(NewDate(now).Time)
}

type BorrowingRequest struct {
	BookID int `json:"book_id" validate:"required,gt=0"`
	// MemberID is filled by the backend from the current user for members.
	MemberID *int `json:"member_id,omitempty" validate:"omitempty,gt=0"`
	DueDate  Date `json:"due_date"`
}

type BorrowingUpdate struct {
	ReturnDate *Date            `json:"return_date,omitempty"`
	Status     *BorrowingStatus `json:"status,omitempty" validate:"omitempty,oneof=borrowed returned overdue"`
	FineAmount *float64         `json:"fine_amount,omitempty" validate:"omitempty,gte=0"`
}

type User struct {
	ID        int       `json:"id"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	MemberID  *int      `json:"member_id,omitempty"`
	IsActive  bool      `json:"is_active"`
	CreatedAt Timestamp `json:"created_at"`
}

type Profile struct {
	User   User    `json:"user"`
	Member *Member `json:"member,omitempty"`
}

type ProfileUpdate struct {
	Name           *string `json:"name,omitempty" validate:"omitempty,min=1,max=255"`
	Email          *string `json:"email,omitempty" validate:"omitempty,email"`
	Phone          *string `json:"phone,omitempty" validate:"omitempty,max=20"`
	ProfilePicture *string `json:"profile_picture,omitempty"`
	Password       *string `json:"password,omitempty" validate:"omitempty,min=6"`
}

type Credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type SignupRequest struct {
	Email    string  `json:"email" validate:"required,email"`
	Password string  `json:"password" validate:"required,min=6"`
	Name     string  `json:"name" validate:"required,max=255"`
	Phone    *string `json:"phone,omitempty" validate:"omitempty,max=20"`
	Address  *string `json:"address,omitempty"`
}

type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	Role        Role   `json:"role"`
	UserID      int    `json:"user_id"`
}

type LibraryStats struct {
	TotalBooks       int `json:"total_books"`
	TotalMembers     int `json:"total_members"`
	TotalBorrowings  int `json:"total_borrowings"`
	ActiveBorrowings int `json:"active_borrowings"`
	OverdueBooks     int `json:"overdue_books"`
	AvailableBooks   int `json:"available_books"`
}

type Dashboard struct {
	Stats    LibraryStats `json:"stats"`
	NewBooks []Book       `json:"new_books"`
}

type Testimonial struct {
	ID         int    `json:"id"`
	ReaderName string `json:"reader_name"`
	Rating     int    `json:"rating"`
	Comment    string `json:"comment"`
	BookID     *int   `json:"book_id,omitempty"`
	Book       *struct {
		Title string `json:"title"`
	} `json:"book,omitempty"`
}

type TestimonialRequest struct {
	ReaderName string `json:"reader_name" validate:"required,max=255"`
	Rating     int    `json:"rating" validate:"gte=1,lte=5"`
	Comment    string `json:"comment" validate:"required"`
	BookID     *int   `json:"book_id,omitempty" validate:"omitempty,gt=0"`
}

type Subscription struct {
	ID    int    `json:"id,omitempty"`
	Email string `json:"email" validate:"required,email"`
}

type ActivityKind string

const (
	ActivityLogin  ActivityKind = "login"
	ActivityLogout ActivityKind = "logout"
	ActivityBorrow ActivityKind = "borrow"
	ActivityReturn ActivityKind = "return"
)

// Activity is published to the activity topic after a successful action.
type Activity struct {
	Kind        ActivityKind `json:"kind"`
	UserID      int          `json:"user_id,omitempty"`
	Role        Role         `json:"role,omitempty"`
	BookID      int          `json:"book_id,omitempty"`
	BorrowingID int          `json:"borrowing_id,omitempty"`
	At          time.Time    `json:"at"`
}
