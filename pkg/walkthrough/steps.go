package walkthrough

// Built-in walkthrough content for every page. Target IDs refer to the
// anchors each page registers in its layout document; see pkg/ui. The
// last step of each page is targetless so the closing tooltip is
// centered on screen.

func defaultSteps() map[Page][]Step {
	return map[Page][]Step{
		PageDashboard: {
			{
				ID:          "dash-welcome",
				Title:       "Welcome to curio",
				Description: "This short tour shows you around. Use **→** and **←** to move between steps, or **Esc** to skip this page's tour.",
				Position:    PosCenter,
			},
			{
				ID:          "dash-stats",
				Title:       "Your numbers at a glance",
				Description: "Contact, activity and tag totals, with weekly trends. These update whenever the backend syncs.",
				TargetID:    "wt-dash-stats",
				Position:    PosBottom,
			},
			{
				ID:          "dash-recent",
				Title:       "Recent activity",
				Description: "The latest calls, emails and notes across all your contacts.",
				TargetID:    "wt-dash-recent",
				Position:    PosRight,
			},
			{
				ID:               "dash-nav-contacts",
				Title:            "Head to your contacts",
				Description:      "Press **2** to open the contacts page. The tour continues there.",
				TargetID:         "wt-nav-contacts",
				Position:         PosBottom,
				Action:           ActionClick,
				NavigationTarget: "contacts",
			},
			{
				ID:          "dash-done",
				Title:       "Dashboard tour complete",
				Description: "That's the dashboard. Each page has its own short tour the first time you visit.",
			},
		},
		PageContacts: {
			{
				ID:          "contacts-table",
				Title:       "Your contacts",
				Description: "Everyone you know, sortable and searchable. Use **j/k** or the arrow keys to move through the list.",
				TargetID:    "wt-contacts-table",
				Position:    PosTop,
			},
			{
				ID:          "contacts-search",
				Title:       "Find anyone fast",
				Description: "Press **/** and start typing. Matches narrow as you type.",
				TargetID:    "wt-contacts-search",
				Position:    PosBottom,
			},
			{
				ID:          "contacts-add",
				Title:       "Add a contact",
				Description: "Press **a** to open the new-contact form. CSV import is available with **I** for bringing in an existing address book.",
				TargetID:    "wt-contacts-add",
				Position:    PosBottomLeft,
			},
			{
				ID:          "contacts-done",
				Title:       "Contacts tour complete",
				Description: "You know your way around contacts now.",
			},
		},
		PageActivities: {
			{
				ID:          "activities-list",
				Title:       "Activity timeline",
				Description: "Calls, emails, meetings and notes in reverse chronological order.",
				TargetID:    "wt-activities-list",
				Position:    PosRight,
			},
			{
				ID:          "activities-filter",
				Title:       "Filter by kind",
				Description: "Press **f** to cycle between all, calls, emails, meetings and notes.",
				TargetID:    "wt-activities-filter",
				Position:    PosBottom,
			},
			{
				ID:          "activities-done",
				Title:       "Activities tour complete",
				Description: "Log an activity from any contact with **l**.",
			},
		},
		PageTags: {
			{
				ID:          "tags-list",
				Title:       "Organize with tags",
				Description: "Tags group contacts across every other view. A contact can carry any number of them.",
				TargetID:    "wt-tags-list",
				Position:    PosRight,
			},
			{
				ID:          "tags-create",
				Title:       "Create a tag",
				Description: "Press **a**, pick a name and a color, and start tagging.",
				TargetID:    "wt-tags-create",
				Position:    PosBottom,
			},
			{
				ID:          "tags-done",
				Title:       "Tags tour complete",
				Description: "Filter any list by tag with **t**.",
			},
		},
		PageProfile: {
			{
				ID:          "profile-details",
				Title:       "Your profile",
				Description: "Name, email and workspace details, synced from your account.",
				TargetID:    "wt-profile-details",
				Position:    PosBottom,
			},
			{
				ID:          "profile-tours",
				Title:       "Tour progress",
				Description: "Which page tours you've finished. Restart any of them from here with **r**.",
				TargetID:    "wt-profile-tours",
				Position:    PosTop,
			},
			{
				ID:          "profile-done",
				Title:       "Profile tour complete",
				Description: "Your preferences live here too.",
			},
		},
		PageChat: {
			{
				ID:          "chat-messages",
				Title:       "Team chat",
				Description: "Conversations with your teammates, delivered in real time.",
				TargetID:    "wt-chat-messages",
				Position:    PosRight,
			},
			{
				ID:          "chat-compose",
				Title:       "Say something",
				Description: "Type your message here and press **Enter** to send.",
				TargetID:    "wt-chat-compose",
				Position:    PosTop,
				Action:      ActionType,
			},
			{
				ID:          "chat-done",
				Title:       "Chat tour complete",
				Description: "That's the last page — you've seen everything.",
			},
		},
	}
}
