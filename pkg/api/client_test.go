package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	json "github.com/goccy/go-json"

	"github.com/avanderveen/curio/pkg/model"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *Client) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv, NewClient(srv.URL, "test-token")
}

func TestClientSendsAuthHeader(t *testing.T) {
	var gotAuth string
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`[]`))
	})

	if _, err := client.Contacts(context.Background(), ""); err != nil {
		t.Fatal(err)
	}
	if gotAuth != "Bearer test-token" {
		t.Errorf("Authorization header = %q", gotAuth)
	}
}

func TestClientStatusError(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "token expired", http.StatusUnauthorized)
	})

	_, err := client.Me(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
	if !IsAuthError(err) {
		t.Errorf("expected auth error, got %v", err)
	}
	if !strings.Contains(err.Error(), "token expired") {
		t.Errorf("error should carry the body snippet: %v", err)
	}
}

func TestContactsQueryEscaped(t *testing.T) {
	var gotQuery string
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		w.Write([]byte(`[]`))
	})

	if _, err := client.Contacts(context.Background(), "smith & co"); err != nil {
		t.Fatal(err)
	}
	if gotQuery != "smith & co" {
		t.Errorf("query roundtrip failed: %q", gotQuery)
	}
}

func TestCreateContact(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/contacts" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var in model.Contact
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			t.Fatal(err)
		}
		in.ID = "c-1"
		json.NewEncoder(w).Encode(in)
	})

	out, err := client.CreateContact(context.Background(), model.Contact{FirstName: "Ada", LastName: "Lovelace"})
	if err != nil {
		t.Fatal(err)
	}
	if out.ID != "c-1" || out.FullName() != "Ada Lovelace" {
		t.Errorf("unexpected contact %+v", out)
	}
}

func TestSetWalkthroughFlag(t *testing.T) {
	var got map[string]any
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPatch || r.URL.Path != "/users/me/walkthroughs" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		json.NewDecoder(r.Body).Decode(&got)
		w.WriteHeader(http.StatusNoContent)
	})

	if err := client.SetWalkthroughFlag(context.Background(), "contacts", true); err != nil {
		t.Fatal(err)
	}
	if got["page"] != "contacts" || got["completed"] != true {
		t.Errorf("unexpected payload %+v", got)
	}
}

func TestParseContactsCSV(t *testing.T) {
	input := `first_name,last_name,email,phone,company
Ada,Lovelace,ada@example.com,555-0100,Analytical Engines
Grace,Hopper,grace@example.com,,Navy
`
	contacts, err := ParseContactsCSV(strings.NewReader(input))
	if err != nil {
		t.Fatal(err)
	}
	if len(contacts) != 2 {
		t.Fatalf("expected 2 contacts, got %d", len(contacts))
	}
	if contacts[0].Email != "ada@example.com" || contacts[1].Phone != "" {
		t.Errorf("unexpected contacts %+v", contacts)
	}
}

func TestParseContactsCSVBadHeader(t *testing.T) {
	input := "name,email\nAda,ada@example.com\n"
	if _, err := ParseContactsCSV(strings.NewReader(input)); err == nil {
		t.Error("expected header error")
	}
}

func TestParseContactsCSVRaggedRow(t *testing.T) {
	input := "first_name,last_name,email,phone,company\nAda,Lovelace\n"
	_, err := ParseContactsCSV(strings.NewReader(input))
	if err == nil {
		t.Fatal("expected error for short row")
	}
	if !strings.Contains(err.Error(), "line 2") {
		t.Errorf("error should name the offending line: %v", err)
	}
}
