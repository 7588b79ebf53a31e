// Package grammar parses the line formats used in timetable cells.
//
// Classwise cells hold lines like "MATH (1-3) SK": subject, day range,
// teacher code. Teacherwise cells hold the inverse form "10A (1-3) MATH":
// class, day range, subject. Lines starting with "#" are comments and a
// cell whose text starts with "##" is disabled as a whole.
package grammar

import (
	"regexp"
	"strings"
	"unicode"
)

// ClashMark prefixes clash annotations in teacherwise cells. Marker lines
// are never re-parsed as schedule data.
const ClashMark = "**CLASH** "

var (
	classLineRe   = regexp.MustCompile(`^(?P<subject>[\w \-.]+)\s*\((?P<days>[1-6,\- ]+)\)\s*(?P<teacher>[A-Z]+)$`)
	teacherLineRe = regexp.MustCompile(`^(?P<class>\w+)\s*\((?P<days>.*)\)\s*(?P<subject>[\w \-.]+)$`)
)

// ClassAssignment is a parsed classwise cell line.
type ClassAssignment struct {
	Subject string
	Days    string
	Teacher string
}

// TeacherAssignment is a parsed teacherwise cell line.
type TeacherAssignment struct {
	ClassName string
	Days      string
	Subject   string
}

// ParseClassLine parses one classwise line. Matching is case-insensitive:
// the line is uppercased first, so "math (1-3) sk" and "MATH (1-3) SK" are
// equivalent.
func ParseClassLine(line string) (ClassAssignment, bool) {
	m := classLineRe.FindStringSubmatch(strings.ToUpper(strings.TrimSpace(line)))
	if m == nil {
		return ClassAssignment{}, false
	}
	return ClassAssignment{
		Subject: strings.TrimSpace(m[1]),
		Days:    m[2],
		Teacher: m[3],
	}, true
}

// ParseTeacherLine parses one teacherwise line, the serialized form written
// by the teacherwise generator (and possibly edited by hand since).
func ParseTeacherLine(line string) (TeacherAssignment, bool) {
	m := teacherLineRe.FindStringSubmatch(strings.TrimSpace(line))
	if m == nil {
		return TeacherAssignment{}, false
	}
	return TeacherAssignment{
		ClassName: m[1],
		Days:      m[2],
		Subject:   strings.TrimSpace(m[3]),
	}, true
}

// IsComment reports whether a line is blank or a "#" comment.
func IsComment(line string) bool {
	line = strings.TrimSpace(line)
	return line == "" || strings.HasPrefix(line, "#")
}

// IsCellDisabled reports whether a whole cell is commented out with "##".
func IsCellDisabled(text string) bool {
	return strings.HasPrefix(strings.TrimSpace(text), "##")
}

// IsClashMark reports whether a line is a clash annotation header.
func IsClashMark(line string) bool {
	return strings.HasPrefix(strings.TrimSpace(line), strings.TrimSpace(ClashMark))
}

// ClassNumber strips a single trailing section letter: "10A" -> "10".
// Two sections of the same class number are the same class for clash
// purposes.
func ClassNumber(name string) string {
	if name == "" {
		return name
	}
	runes := []rune(name)
	if unicode.IsLetter(runes[len(runes)-1]) {
		return string(runes[:len(runes)-1])
	}
	return name
}

// SplitClassName splits an optional "@alias" display suffix off a classwise
// row label: "10A@Science" -> ("10A", "Science").
func SplitClassName(raw string) (name, alias string) {
	raw = strings.TrimSpace(raw)
	if i := strings.Index(raw, "@"); i >= 0 {
		return strings.TrimSpace(raw[:i]), strings.TrimSpace(raw[i+1:])
	}
	return raw, ""
}
