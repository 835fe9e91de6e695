package cli

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/Astemirdum/library-view/view/internal/model"
	"github.com/Astemirdum/library-view/view/internal/service/paging"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const (
	formatTable = "table"
	formatJSON  = "json"
	formatYAML  = "yaml"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	noteStyle   = lipgloss.NewStyle().Faint(true)
)

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers(headers...)
}

// render prints v in the selected format; tbl builds the table form and
// may be nil, in which case tables fall back to yaml.
func (c *cli) render(v any, tbl func() *table.Table) error {
	switch {
	case c.output == formatJSON:
		enc := json.NewEncoder(c.out)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case c.output == formatTable && tbl != nil:
		_, err := fmt.Fprintln(c.out, tbl().String())
		return err
	}
	// go through json so yaml keys match the json ones
	b, err := json.Marshal(v)
	if err != nil {
		return errors.Wrap(err, "marshal")
	}
	var generic any
	if err := json.Unmarshal(b, &generic); err != nil {
		return errors.Wrap(err, "unmarshal")
	}
	enc := yaml.NewEncoder(c.out)
	enc.SetIndent(2)
	defer enc.Close()
	return enc.Encode(generic)
}

func (c *cli) note(format string, args ...any) {
	if c.output != formatTable {
		return
	}
	fmt.Fprintln(c.out, noteStyle.Render(fmt.Sprintf(format, args...)))
}

// pagerNote is the "Showing x to y of n" line under a paged table.
func (c *cli) pagerNote(p paging.Pager) {
	if p.TotalItems == 0 {
		c.note("No results")
		return
	}
	c.note("Showing %d to %d of %d, page %d of %d", p.From, p.To, p.TotalItems, p.CurrentPage, max(1, p.TotalPages))
}

func opt[T any](p *T, format func(T) string) string {
	if p == nil {
		return "-"
	}
	return format(*p)
}

func itoa(i int) string { return strconv.Itoa(i) }

func str(s string) string { return s }

func money(f float64) string { return strconv.FormatFloat(f, 'f', 2, 64) }

func date(d model.Date) string {
	if d.IsZero() {
		return "-"
	}
	return d.String()
}

func bookTable(books []model.Book) func() *table.Table {
	return func() *table.Table {
		t := newTable("ID", "Title", "Author", "ISBN", "Year", "Available")
		for _, b := range books {
			t.Row(itoa(b.ID), b.Title, b.Author, opt(b.ISBN, str), opt(b.PublishedYear, itoa),
				fmt.Sprintf("%d/%d", b.AvailableCopies, b.TotalCopies))
		}
		return t
	}
}

func memberTable(members []model.Member) func() *table.Table {
	return func() *table.Table {
		t := newTable("ID", "Name", "Email", "Phone", "Member since", "Account")
		for _, m := range members {
			account := "-"
			if m.UserRole != nil {
				account = string(*m.UserRole)
			}
			t.Row(itoa(m.ID), m.Name, m.Email, opt(m.Phone, str), date(m.MembershipDate), account)
		}
		return t
	}
}

func borrowingTable(bs []model.Borrowing) func() *table.Table {
	return func() *table.Table {
		t := newTable("ID", "Book", "Member", "Borrowed", "Due", "Returned", "Status", "Fine")
		for _, b := range bs {
			returned := "-"
			if b.ReturnDate != nil {
				returned = date(*b.ReturnDate)
			}
			t.Row(itoa(b.ID), b.Book.Title, b.Member.Name, date(b.BorrowDate), date(b.DueDate), returned,
				string(b.Status), money(b.FineAmount))
		}
		return t
	}
}

func loanTable(loans []model.Loan) func() *table.Table {
	return func() *table.Table {
		t := newTable("ID", "Book", "Due", "Days left", "")
		for _, l := range loans {
			flag := ""
			switch {
			case l.Overdue:
				flag = "overdue"
			case l.DueSoon:
				flag = "due soon"
			}
			t.Row(itoa(l.ID), l.Book.Title, date(l.DueDate), itoa(l.DaysUntilDue), flag)
		}
		return t
	}
}

func statsTable(s model.LibraryStats) func() *table.Table {
	return func() *table.Table {
		return newTable("Books", "Available", "Members", "Borrowings", "Active", "Overdue").
			Row(itoa(s.TotalBooks), itoa(s.AvailableBooks), itoa(s.TotalMembers),
				itoa(s.TotalBorrowings), itoa(s.ActiveBorrowings), itoa(s.OverdueBooks))
	}
}
