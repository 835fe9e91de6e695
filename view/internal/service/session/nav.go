package session

import "github.com/Astemirdum/library-view/view/internal/model"

type Tab struct {
	Path  string `json:"path"`
	Label string `json:"label"`
}

// Landing is the first view after login.
func Landing(role model.Role) string {
	if role == model.RoleAdmin {
		return "/dashboard"
	}
	return "/user/dashboard"
}

// Tabs are the navigation entries for a session, none when anonymous.
func Tabs(sess Session, ok bool) []Tab {
	if !ok {
		return []Tab{}
	}
	if sess.IsAdmin() {
		return []Tab{
			{Path: "/dashboard", Label: "Dashboard"},
			{Path: "/books", Label: "Books"},
			{Path: "/members", Label: "Members"},
			{Path: "/borrowings", Label: "Borrowings"},
			{Path: "/profile", Label: "My Profile"},
		}
	}
	return []Tab{
		{Path: "/user/dashboard", Label: "Dashboard"},
		{Path: "/books", Label: "Books"},
		{Path: "/profile", Label: "My Profile"},
	}
}
