package paging

// WindowSize is the number of page buttons shown at once.
const WindowSize = 5

type Control struct {
	Page     int  `json:"page"`
	Disabled bool `json:"disabled"`
}

// Pager is the pagination widget model.
type Pager struct {
	CurrentPage  int     `json:"current_page"`
	TotalPages   int     `json:"total_pages"`
	TotalItems   int     `json:"total_items"`
	ItemsPerPage int     `json:"items_per_page"`
	Pages        []int   `json:"pages"`
	First        Control `json:"first"`
	Prev         Control `json:"prev"`
	Next         Control `json:"next"`
	Last         Control `json:"last"`
	// From and To are the "Showing From to To of TotalItems" bounds.
	From int `json:"from"`
	To   int `json:"to"`
	// Visible is false when everything fits on one page.
	Visible bool `json:"visible"`
}

func TotalPages(totalItems, itemsPerPage int) int {
	if itemsPerPage <= 0 || totalItems <= 0 {
		return 0
	}
	return (totalItems + itemsPerPage - 1) / itemsPerPage
}

// Window returns the page buttons around current.
func Window(current, totalPages int) []int {
	start := max(1, current-WindowSize/2)
	end := min(totalPages, start+WindowSize-1)
	start = max(1, end-WindowSize+1)
	pages := make([]int, 0, WindowSize)
	for p := start; p <= end; p++ {
		pages = append(pages, p)
	}
	return pages
}

func NewPager(current, itemsPerPage, totalItems int) Pager {
	totalPages := TotalPages(totalItems, itemsPerPage)
	lastPage := max(1, totalPages)
	clamp := func(p int) int { return min(max(p, 1), lastPage) }
	atStart := current <= 1
	atEnd := current >= lastPage

	return Pager{
		CurrentPage:  current,
		TotalPages:   totalPages,
		TotalItems:   totalItems,
		ItemsPerPage: itemsPerPage,
		Pages:        Window(current, totalPages),
		First:        Control{Page: 1, Disabled: atStart},
		Prev:         Control{Page: clamp(current - 1), Disabled: atStart},
		Next:         Control{Page: clamp(current + 1), Disabled: atEnd},
		Last:         Control{Page: lastPage, Disabled: atEnd},
		From:         min((current-1)*itemsPerPage+1, totalItems),
		To:           min(current*itemsPerPage, totalItems),
		Visible:      totalPages > 1,
	}
}
