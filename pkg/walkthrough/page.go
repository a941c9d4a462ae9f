package walkthrough

import "fmt"

// Page identifies one application page that carries its own walkthrough.
//
// This is the single source of truth for the page vocabulary: the step
// registry, the skip-all fan-out and the all-pages-completed check all
// derive from Pages(). Adding a page means adding it here and giving it a
// step sequence in the registry; nothing else needs to change.
type Page string

const (
	PageDashboard  Page = "dashboard"
	PageContacts   Page = "contacts"
	PageActivities Page = "activities"
	PageTags       Page = "tags"
	PageProfile    Page = "profile"
	PageChat       Page = "chat"
)

// Pages returns every known page in display order.
func Pages() []Page {
	return []Page{
		PageDashboard,
		PageContacts,
		PageActivities,
		PageTags,
		PageProfile,
		PageChat,
	}
}

// ParsePage converts a string into a Page, validating it against the
// known set.
func ParsePage(s string) (Page, error) {
	for _, p := range Pages() {
		if string(p) == s {
			return p, nil
		}
	}
	return "", fmt.Errorf("unknown page %q", s)
}

// KnownPage reports whether p is one of the pages returned by Pages().
func KnownPage(p Page) bool {
	_, err := ParsePage(string(p))
	return err == nil
}
