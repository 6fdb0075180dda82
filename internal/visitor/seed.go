package visitor

// RegistrationSeed returns the visitors listed on the registration screen
// of a new session. warning is shown next to the flagged visitor.
func RegistrationSeed(warning string) []Visitor {
	return []Visitor{
		{ID: 1, Name: "张三", Phone: "138****5678", IDCard: "320102**********1234"},
		{ID: 2, Name: "李四", Phone: "139****9012", IDCard: "110101**********5678"},
		{ID: 3, Name: "王五", Phone: "136****3456", IDCard: "440103**********9012", Blacklisted: true, Warning: warning},
	}
}

// BookingSeed returns the visitors offered on the booking screen of a new
// session. notice is shown under the blacklisted visitor.
func BookingSeed(notice string) []Visitor {
	return []Visitor{
		{ID: 1, Name: "张建国", IDCard: "110101198001011234", Selected: true},
		{ID: 2, Name: "李明", IDCard: "110101199001011235"},
		{ID: 3, Name: "王芳", IDCard: "110101198501011236", Blacklisted: true, Warning: notice},
	}
}
