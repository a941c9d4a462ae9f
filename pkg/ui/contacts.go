package ui

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/avanderveen/curio/pkg/api"
	"github.com/avanderveen/curio/pkg/model"
	"github.com/avanderveen/curio/pkg/walkthrough"
)

const contactsSearchHeight = 3

// contactDraft backs the new-contact form. Kept behind a pointer so the
// huh field bindings stay valid while the model is copied around.
type contactDraft struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Company   string
}

func (d *contactDraft) toContact() model.Contact {
	return model.Contact{
		FirstName: d.FirstName,
		LastName:  d.LastName,
		Email:     d.Email,
		Phone:     d.Phone,
		Company:   d.Company,
	}
}

// contactsModel lists contacts with search, creation and CSV import.
type contactsModel struct {
	client *api.Client

	table    table.Model
	contacts []model.Contact
	loaded   bool
	loadErr  error

	search    textinput.Model
	searching bool

	form  *huh.Form
	draft *contactDraft
}

func newContactsModel(client *api.Client) contactsModel {
	cols := []table.Column{
		{Title: "Name", Width: 24},
		{Title: "Email", Width: 28},
		{Title: "Company", Width: 18},
		{Title: "Phone", Width: 14},
	}
	tbl := table.New(
		table.WithColumns(cols),
		table.WithFocused(true),
		table.WithHeight(10),
	)

	search := textinput.New()
	search.Placeholder = "search contacts"
	search.CharLimit = 64

	return contactsModel{
		client: client,
		table:  tbl,
		search: search,
	}
}

func (c contactsModel) Update(msg tea.Msg) (contactsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case contactsLoadedMsg:
		if msg.err != nil {
			c.loadErr = msg.err
			return c, nil
		}
		c.contacts = msg.contacts
		c.loaded = true
		c.loadErr = nil
		c.table.SetRows(contactRows(msg.contacts))
		return c, nil

	case contactSavedMsg:
		if msg.err != nil {
			return c, toastErr(fmt.Sprintf("Could not save contact: %v", msg.err))
		}
		return c, tea.Batch(
			loadContactsCmd(c.client, c.search.Value()),
			toastInfo(fmt.Sprintf("Added %s", msg.contact.FullName())),
		)

	case contactsImportedMsg:
		if msg.err != nil {
			return c, toastErr(fmt.Sprintf("Import failed: %v", msg.err))
		}
		return c, tea.Batch(
			loadContactsCmd(c.client, ""),
			toastInfo(fmt.Sprintf("Imported %d contacts", msg.count)),
		)

	case tea.KeyMsg:
		return c.handleKey(msg)
	}

	if c.form != nil {
		return c.updateForm(msg)
	}
	return c, nil
}

func (c contactsModel) handleKey(msg tea.KeyMsg) (contactsModel, tea.Cmd) {
	// The form is modal while open.
	if c.form != nil {
		if msg.String() == "esc" {
			c.form = nil
			c.draft = nil
			return c, nil
		}
		return c.updateForm(msg)
	}

	if c.searching {
		switch msg.String() {
		case "esc":
			c.searching = false
			c.search.Blur()
			c.search.SetValue("")
			return c, loadContactsCmd(c.client, "")
		case "enter":
			c.searching = false
			c.search.Blur()
			return c, loadContactsCmd(c.client, c.search.Value())
		default:
			var cmd tea.Cmd
			c.search, cmd = c.search.Update(msg)
			return c, cmd
		}
	}

	switch msg.String() {
	case "/":
		c.searching = true
		return c, c.search.Focus()
	case "a":
		c.draft = &contactDraft{}
		c.form = newContactForm(c.draft)
		return c, c.form.Init()
	case "y":
		if sel := c.selected(); sel != nil && sel.Email != "" {
			if err := clipboard.WriteAll(sel.Email); err != nil {
				return c, toastErr("Clipboard unavailable")
			}
			return c, toastInfo(fmt.Sprintf("Copied %s", sel.Email))
		}
		return c, nil
	}

	var cmd tea.Cmd
	c.table, cmd = c.table.Update(msg)
	return c, cmd
}

func (c contactsModel) updateForm(msg tea.Msg) (contactsModel, tea.Cmd) {
	f, cmd := c.form.Update(msg)
	if form, ok := f.(*huh.Form); ok {
		c.form = form
	}
	if c.form.State == huh.StateCompleted {
		draft := c.draft
		c.form = nil
		c.draft = nil
		return c, saveContactCmd(c.client, draft.toContact())
	}
	return c, cmd
}

func newContactForm(d *contactDraft) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("First name").Value(&d.FirstName),
			huh.NewInput().Title("Last name").Value(&d.LastName),
			huh.NewInput().Title("Email").Value(&d.Email),
			huh.NewInput().Title("Phone").Value(&d.Phone),
			huh.NewInput().Title("Company").Value(&d.Company),
		),
	)
}

func (c contactsModel) selected() *model.Contact {
	idx := c.table.Cursor()
	if idx < 0 || idx >= len(c.contacts) {
		return nil
	}
	return &c.contacts[idx]
}

func contactRows(contacts []model.Contact) []table.Row {
	rows := make([]table.Row, 0, len(contacts))
	for _, ct := range contacts {
		rows = append(rows, table.Row{ct.FullName(), ct.Email, ct.Company, ct.Phone})
	}
	return rows
}

func (c contactsModel) View(t Theme, width, height int) string {
	if c.form != nil {
		return c.form.View()
	}

	var b strings.Builder

	searchLabel := "/ search"
	if c.searching || c.search.Value() != "" {
		searchLabel = c.search.View()
	}
	b.WriteString(PanelStyle.Width(min(width-2, 40)).Render(searchLabel))
	b.WriteString("\n")

	if c.loadErr != nil {
		b.WriteString(t.DangerText.Render(fmt.Sprintf("Could not load contacts: %v", c.loadErr)))
		return b.String()
	}
	if !c.loaded {
		b.WriteString(t.MutedText.Render("loading…"))
		return b.String()
	}

	tableHeight := height - contactsSearchHeight - 2
	if tableHeight < 3 {
		tableHeight = 3
	}
	c.table.SetHeight(tableHeight)
	b.WriteString(c.table.View())
	b.WriteString("\n")
	b.WriteString(t.MutedText.Render("a add · y copy email · I import CSV"))

	return b.String()
}

func (c contactsModel) Anchors(width, height int) []walkthrough.Anchor {
	searchW := min(width-2, 42)
	tableH := height - contactsSearchHeight - 2
	if tableH < 3 {
		tableH = 3
	}
	return []walkthrough.Anchor{
		{
			ID:      "wt-contacts-search",
			Classes: []string{"search"},
			Rect:    walkthrough.Rect{X: 0, Y: pageTop, W: searchW, H: contactsSearchHeight},
		},
		{
			ID:      "wt-contacts-table",
			Classes: []string{"table"},
			Rect:    walkthrough.Rect{X: 0, Y: pageTop + contactsSearchHeight, W: min(width-2, 88), H: tableH},
		},
		{
			ID:      "wt-contacts-add",
			Classes: []string{"hint"},
			Rect:    walkthrough.Rect{X: 0, Y: pageTop + contactsSearchHeight + tableH + 1, W: 30, H: 1},
		},
	}
}
