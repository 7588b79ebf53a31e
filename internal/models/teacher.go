package models

// TeacherRecord is one row of the teacher-metadata sheet, keyed by the short
// code used in timetable cells.
type TeacherRecord struct {
	ShortName string
	Name      string
	Gender    string
	Post      string
	InCharge  string
	Extra     map[string]string
}

// Label renders the display label for the teacherwise sheet. With fullName
// set the long form "NAME, CODE" is used when a name is known.
func (r TeacherRecord) Label(fullName bool) string {
	if fullName && r.Name != "" {
		return r.Name + ", " + r.ShortName
	}
	return r.ShortName
}

// InChargeTitle renders the honorific used on per-class sheets.
func (r TeacherRecord) InChargeTitle() string {
	if r.Gender == "f" || r.Gender == "F" {
		return "Ms"
	}
	return "Mr"
}
