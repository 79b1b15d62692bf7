package domain

import (
	"regexp"
	"time"
)

// TimeLayout is the single date-time convention used across all collections:
// day first, zero-padded components, four-digit year. Course dates are
// validated against it and generated timestamps are formatted with it.
const TimeLayout = "02/01/2006 15:04:05"

var timePattern = regexp.MustCompile(`^\d{2}/\d{2}/\d{4} \d{2}:\d{2}:\d{2}$`)

// Timestamp formats t per TimeLayout using the server's wall clock location.
func Timestamp(t time.Time) string {
	return t.Format(TimeLayout)
}

// ParseTimestamp parses s per TimeLayout. time.Parse alone accepts unpadded
// components ("1/1/2021"), so the shape is checked first.
func ParseTimestamp(s string) (time.Time, error) {
	if !timePattern.MatchString(s) {
		return time.Time{}, ErrInvalidDate
	}
	t, err := time.ParseInLocation(TimeLayout, s, time.Local)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return t, nil
}

// Enrollment links one student to one course. Its lifecycle is
// registered (SignedAt == nil) → signed (SignedAt set); signed is terminal
// and SignedAt is never cleared or overwritten.
type Enrollment struct {
	ID           int     `json:"id" bson:"_id"`
	StudentID    int     `json:"student_id" bson:"student_id"`
	CourseID     int     `json:"course_id" bson:"course_id"`
	RegisteredAt string  `json:"registered_at" bson:"registered_at"`
	SignedAt     *string `json:"signed_at" bson:"signed_at"`
}

// Signed reports whether the student has already confirmed attendance.
func (e *Enrollment) Signed() bool {
	return e.SignedAt != nil
}

// Sign records the one-time attendance confirmation. It fails with
// ErrAlreadySigned once SignedAt is set.
func (e *Enrollment) Sign(at time.Time) error {
	if e.SignedAt != nil {
		return ErrAlreadySigned
	}
	ts := Timestamp(at)
	e.SignedAt = &ts
	return nil
}
