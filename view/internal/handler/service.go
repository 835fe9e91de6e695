package handler

import (
	"context"

	"github.com/Astemirdum/library-view/view/internal/model"
	"github.com/Astemirdum/library-view/view/internal/service/api"
	"github.com/Astemirdum/library-view/view/internal/service/profile"
	"github.com/Astemirdum/library-view/view/internal/service/session"
)

//go:generate go run github.com/golang/mock/mockgen -source=service.go -destination=mocks/mock.go

var (
	_ LibraryService = (*api.Client)(nil)
	_ ProfileService = (*profile.Cache)(nil)
	_ SessionService = (*session.Service)(nil)
	_ Greeter        = (*session.Greeter)(nil)
)

type LibraryService interface {
	Me(ctx context.Context) (model.User, error)

	ListBooks(ctx context.Context, q model.Query) (model.Page[model.Book], error)
	CreateBook(ctx context.Context, req model.BookRequest) (model.Book, error)
	UpdateBook(ctx context.Context, id int, req model.BookRequest) (model.Book, error)
	DeleteBook(ctx context.Context, id int) error

	ListMembers(ctx context.Context, q model.Query) (model.Page[model.Member], error)
	CreateMember(ctx context.Context, req model.MemberRequest) (model.Member, error)
	UpdateMember(ctx context.Context, id int, req model.MemberRequest) (model.Member, error)
	DeleteMember(ctx context.Context, id int) error
	GetMemberUser(ctx context.Context, id int) (model.User, error)
	ListMemberBorrowings(ctx context.Context, id int, status model.BorrowingStatus) ([]model.Borrowing, error)

	ListBorrowings(ctx context.Context, status model.BorrowingStatus, q model.Query) (model.Page[model.Borrowing], error)
	CreateBorrowing(ctx context.Context, req model.BorrowingRequest) (model.Borrowing, error)
	ReturnBook(ctx context.Context, id int, fine float64) (model.Borrowing, error)
	DeleteBorrowing(ctx context.Context, id int) error

	Dashboard(ctx context.Context) (model.Dashboard, error)
	UserDashboard(ctx context.Context) ([]model.Borrowing, error)
	Stats(ctx context.Context) (model.LibraryStats, error)
	ListTestimonials(ctx context.Context, q model.Query) ([]model.Testimonial, error)
	CreateTestimonial(ctx context.Context, req model.TestimonialRequest) (model.Testimonial, error)
	Subscribe(ctx context.Context, email string) (model.Subscription, error)
}

type ProfileService interface {
	Get(ctx context.Context, forceRefresh bool) (model.Profile, error)
	Update(ctx context.Context, upd model.ProfileUpdate) (model.Profile, error)
}

type SessionService interface {
	Login(ctx context.Context, cred model.Credentials) (session.Session, error)
	Signup(ctx context.Context, req model.SignupRequest) (session.Session, error)
	Logout() error
	Current() (session.Session, bool)
}

type Greeter interface {
	Name() string
}
