package navigation

// EdgeKind says what may trigger a transition.
type EdgeKind string

const (
	// Link edges are followed by a plain user click.
	Link EdgeKind = "link"
	// Select edges carry the id of the item that was clicked.
	Select EdgeKind = "select"
	// Action edges are only taken after a screen action succeeds.
	Action EdgeKind = "action"
	// Back edges return to the statically configured parent.
	Back EdgeKind = "back"
)

// Edge is one allowed transition.
type Edge struct {
	From Page     `json:"from"`
	To   Page     `json:"to"`
	Kind EdgeKind `json:"kind"`
}

var edges = []Edge{
	{Welcome, Login, Link},
	{Welcome, Register, Link},

	{Login, Home, Action},
	{Login, Welcome, Back},

	{Register, Login, Action},
	{Register, Welcome, Back},

	{Home, Booking, Link},
	{Home, Activity, Link},
	{Home, Announcement, Link},
	{Home, Profile, Link},

	{Booking, BookingRecord, Action},
	{Booking, Home, Back},

	{Activity, ActivityDetail, Select},
	{Activity, Home, Back},
	{ActivityDetail, Activity, Back},

	{Announcement, AnnouncementDetail, Select},
	{Announcement, Home, Back},
	{AnnouncementDetail, Announcement, Back},

	{Profile, VisitorRegistration, Link},
	{Profile, BookingRecord, Link},
	{Profile, EditProfile, Link},
	{Profile, Home, Back},

	{EditProfile, Profile, Action},
	{EditProfile, Profile, Back},
	{VisitorRegistration, Profile, Back},
	{BookingRecord, Profile, Back},
}

// Edges returns the transition table. Logout, which leads from every
// authenticated page to Welcome, is not listed.
func Edges() []Edge {
	out := make([]Edge, len(edges))
	copy(out, edges)
	return out
}

// Allowed reports whether from → to exists with the given kind.
func Allowed(from, to Page, kind EdgeKind) bool {
	for _, e := range edges {
		if e.From == from && e.To == to && e.Kind == kind {
			return true
		}
	}
	return false
}

// Parent returns the back target of a page. Welcome and Home have none.
func Parent(p Page) (Page, bool) {
	for _, e := range edges {
		if e.From == p && e.Kind == Back {
			return e.To, true
		}
	}
	return "", false
}
