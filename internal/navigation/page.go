// Package navigation provides the screen state machine of the booking app.
package navigation

// Page is one screen of the app.
type Page string

const (
	Welcome             Page = "welcome"
	Login               Page = "login"
	Register            Page = "register"
	Home                Page = "home"
	Booking             Page = "booking"
	Activity            Page = "activity"
	ActivityDetail      Page = "activityDetail"
	Announcement        Page = "announcement"
	AnnouncementDetail  Page = "announcementDetail"
	Profile             Page = "profile"
	EditProfile         Page = "editProfile"
	VisitorRegistration Page = "visitorRegistration"
	BookingRecord       Page = "bookingRecord"
)

// Pages lists every screen in display order.
var Pages = []Page{
	Welcome, Login, Register, Home, Booking, Activity, ActivityDetail,
	Announcement, AnnouncementDetail, Profile, EditProfile,
	VisitorRegistration, BookingRecord,
}

// IsValid checks if a page is one of the known screens.
func (p Page) IsValid() bool {
	for _, v := range Pages {
		if p == v {
			return true
		}
	}
	return false
}

// Authenticated reports whether the page is only reachable after login.
func (p Page) Authenticated() bool {
	switch p {
	case Welcome, Login, Register:
		return false
	default:
		return p.IsValid()
	}
}

// Title returns the heading shown for the page.
func (p Page) Title() string {
	switch p {
	case Welcome:
		return "博物馆预约系统"
	case Login:
		return "登录"
	case Register:
		return "注册"
	case Home:
		return "首页"
	case Booking:
		return "参观预约"
	case Activity:
		return "活动查看"
	case ActivityDetail:
		return "活动详情"
	case Announcement:
		return "公告通知"
	case AnnouncementDetail:
		return "公告详情"
	case Profile:
		return "个人中心"
	case EditProfile:
		return "编辑个人信息"
	case VisitorRegistration:
		return "预约人登记"
	case BookingRecord:
		return "预约记录"
	default:
		return string(p)
	}
}

// ParsePage converts a route segment to a Page.
func ParsePage(s string) (Page, bool) {
	p := Page(s)
	return p, p.IsValid()
}
