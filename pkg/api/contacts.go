package api

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/avanderveen/curio/pkg/model"
)

// Contacts lists all contacts, optionally filtered by a search query.
func (c *Client) Contacts(ctx context.Context, query string) ([]model.Contact, error) {
	path := "/contacts"
	if query != "" {
		path += "?q=" + queryEscape(query)
	}
	var out []model.Contact
	if err := c.get(ctx, path, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Contact fetches a single contact by ID.
func (c *Client) Contact(ctx context.Context, id string) (model.Contact, error) {
	var out model.Contact
	err := c.get(ctx, "/contacts/"+id, &out)
	return out, err
}

// CreateContact creates a contact and returns the stored record.
func (c *Client) CreateContact(ctx context.Context, in model.Contact) (model.Contact, error) {
	var out model.Contact
	err := c.post(ctx, "/contacts", in, &out)
	return out, err
}

// UpdateContact patches a contact and returns the stored record.
func (c *Client) UpdateContact(ctx context.Context, in model.Contact) (model.Contact, error) {
	var out model.Contact
	err := c.patch(ctx, "/contacts/"+in.ID, in, &out)
	return out, err
}

// DeleteContact removes a contact.
func (c *Client) DeleteContact(ctx context.Context, id string) error {
	return c.delete(ctx, "/contacts/"+id)
}

// csvHeader is the accepted import column layout.
var csvHeader = []string{"first_name", "last_name", "email", "phone", "company"}

// ParseContactsCSV reads a contact import file. The first row must be
// the header; rows with a malformed column count are reported with
// their line number rather than silently dropped.
func ParseContactsCSV(r io.Reader) ([]model.Contact, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("csv import: read header: %w", err)
	}
	if len(header) < len(csvHeader) {
		return nil, fmt.Errorf("csv import: expected header %v", csvHeader)
	}
	for i, want := range csvHeader {
		if !strings.EqualFold(strings.TrimSpace(header[i]), want) {
			return nil, fmt.Errorf("csv import: column %d should be %q, got %q", i+1, want, header[i])
		}
	}

	var contacts []model.Contact
	line := 1
	for {
		record, err := reader.Read()
		line++
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("csv import: line %d: %w", line, err)
		}
		contacts = append(contacts, model.Contact{
			FirstName: strings.TrimSpace(record[0]),
			LastName:  strings.TrimSpace(record[1]),
			Email:     strings.TrimSpace(record[2]),
			Phone:     strings.TrimSpace(record[3]),
			Company:   strings.TrimSpace(record[4]),
		})
	}
	return contacts, nil
}

// ImportContacts parses a CSV stream and creates every row, returning
// the number imported. It stops at the first create failure so a retry
// can resume from a known point.
func (c *Client) ImportContacts(ctx context.Context, r io.Reader) (int, error) {
	contacts, err := ParseContactsCSV(r)
	if err != nil {
		return 0, err
	}
	for i, contact := range contacts {
		if _, err := c.CreateContact(ctx, contact); err != nil {
			return i, fmt.Errorf("csv import: row %d: %w", i+1, err)
		}
	}
	return len(contacts), nil
}
