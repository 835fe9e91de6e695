package profile_test

import (
	"testing"

	"github.com/Astemirdum/library-view/view/internal/errs"
	"github.com/Astemirdum/library-view/view/internal/model"
	"github.com/Astemirdum/library-view/view/internal/service/profile"
	"github.com/stretchr/testify/require"
)

func TestFormOf(t *testing.T) {
	t.Parallel()
	phone := "555-0101"
	require.Equal(t, profile.Form{Email: "root@example.com"},
		profile.FormOf(model.Profile{User: model.User{Email: "root@example.com", Role: model.RoleAdmin}}))
	require.Equal(t, profile.Form{Name: "Ann", Email: "ann@example.com", Phone: phone},
		profile.FormOf(model.Profile{User: model.User{Email: "ann@example.com"}, Member: &model.Member{Name: "Ann", Phone: &phone}}))
}

func TestForm_Update(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name      string
		form      profile.Form
		hasMember bool
		wantField string
		want      model.ProfileUpdate
	}{
		{name: "short password", form: profile.Form{Name: "Ann", Email: "a@b.c", Password: "abc", ConfirmPassword: "abc"}, hasMember: true, wantField: "Password"},
		{name: "mismatch", form: profile.Form{Name: "Ann", Email: "a@b.c", Password: "abcdef", ConfirmPassword: "abcdeg"}, hasMember: true, wantField: "ConfirmPassword"},
		{name: "member without name", form: profile.Form{Email: "a@b.c"}, hasMember: true, wantField: "Name"},
		{name: "no email", form: profile.Form{Name: "Ann"}, hasMember: true, wantField: "Email"},
		{name: "admin without name", form: profile.Form{Email: "root@b.c"}, want: model.ProfileUpdate{Email: strPtr("root@b.c")}},
		{
			name:      "full",
			form:      profile.Form{Name: "Ann", Email: "a@b.c", Phone: "1", Password: "abcdef", ConfirmPassword: "abcdef"},
			hasMember: true,
			want:      model.ProfileUpdate{Name: strPtr("Ann"), Email: strPtr("a@b.c"), Phone: strPtr("1"), Password: strPtr("abcdef")},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := tt.form.Update(tt.hasMember)
			if tt.wantField != "" {
				var verr *errs.ValidationError
				require.ErrorAs(t, err, &verr)
				require.Equal(t, tt.wantField, verr.Field)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func strPtr(s string) *string { return &s }
