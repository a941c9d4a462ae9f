// Package model defines the CRM domain types exchanged with the remote
// backend. Fields mirror the REST wire format; the TUI never invents
// state of its own beyond view concerns.
package model

import "time"

// Contact is a person or organization in the CRM.
type Contact struct {
	ID        string    `json:"id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Company   string    `json:"company,omitempty"`
	Title     string    `json:"title,omitempty"`
	TagIDs    []string  `json:"tagIds,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// FullName returns "First Last", tolerating either part being empty.
func (c Contact) FullName() string {
	switch {
	case c.FirstName == "":
		return c.LastName
	case c.LastName == "":
		return c.FirstName
	default:
		return c.FirstName + " " + c.LastName
	}
}

// Tag groups contacts across views.
type Tag struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
}

// ActivityKind is the type of a logged activity.
type ActivityKind string

const (
	ActivityCall    ActivityKind = "call"
	ActivityEmail   ActivityKind = "email"
	ActivityMeeting ActivityKind = "meeting"
	ActivityNote    ActivityKind = "note"
)

// Activity is one logged interaction with a contact.
type Activity struct {
	ID        string       `json:"id"`
	ContactID string       `json:"contactId"`
	Kind      ActivityKind `json:"kind"`
	Subject   string       `json:"subject"`
	Body      string       `json:"body,omitempty"`
	OccurredAt time.Time   `json:"occurredAt"`
	CreatedAt time.Time    `json:"createdAt"`
}

// Notification is a server-pushed alert shown in the notification feed.
type Notification struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"createdAt"`
}

// ChatMessage is one message in the team chat.
type ChatMessage struct {
	ID        string    `json:"id"`
	Author    string    `json:"author"`
	Text      string    `json:"text"`
	Direct    bool      `json:"direct,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// User is the signed-in account, including the per-page walkthrough
// completion flags the tour engine reads and writes.
type User struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Email        string          `json:"email"`
	Workspace    string          `json:"workspace,omitempty"`
	Walkthroughs map[string]bool `json:"walkthroughs"`
}
