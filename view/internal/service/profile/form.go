package profile

import (
	"github.com/Astemirdum/library-view/view/internal/errs"
	"github.com/Astemirdum/library-view/view/internal/model"
)

const minPasswordLen = 6

// Form is the editable profile as shown to the user.
type Form struct {
	Name            string `json:"name" form:"name" yaml:"name"`
	Email           string `json:"email" form:"email" yaml:"email"`
	Phone           string `json:"phone" form:"phone" yaml:"phone"`
	ProfilePicture  string `json:"profile_picture" form:"profile_picture" yaml:"profile_picture"`
	Password        string `json:"password" form:"password" yaml:"-"`
	ConfirmPassword string `json:"confirm_password" form:"confirm_password" yaml:"-"`
}

// FormOf prefills the form from a profile; an admin without a member record
// only gets the account email.
func FormOf(p model.Profile) Form {
	if p.Member == nil {
		return Form{Email: p.User.Email}
	}
	f := Form{Name: p.Member.Name, Email: p.Member.Email}
	if f.Email == "" {
		f.Email = p.User.Email
	}
	if p.Member.Phone != nil {
		f.Phone = *p.Member.Phone
	}
	if p.Member.ProfilePicture != nil {
		f.ProfilePicture = *p.Member.ProfilePicture
	}
	return f
}

// Update checks the form and builds the payload, empty optional fields are left out.
func (f Form) Update(hasMember bool) (model.ProfileUpdate, error) {
	if f.Password != "" {
		if len(f.Password) < minPasswordLen {
			return model.ProfileUpdate{}, errs.Invalid("Password", "must be at least 6 characters long")
		}
		if f.Password != f.ConfirmPassword {
			return model.ProfileUpdate{}, errs.Invalid("ConfirmPassword", "passwords do not match")
		}
	}
	if f.Name == "" && hasMember {
		return model.ProfileUpdate{}, errs.Invalid("Name", "is required")
	}
	if f.Email == "" {
		return model.ProfileUpdate{}, errs.Invalid("Email", "is required")
	}
	email := f.Email
	return model.ProfileUpdate{
		Name:           optional(f.Name),
		Email:          &email,
		Phone:          optional(f.Phone),
		ProfilePicture: optional(f.ProfilePicture),
		Password:       optional(f.Password),
	}, nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
