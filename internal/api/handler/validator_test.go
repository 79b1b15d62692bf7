package handler

import (
	"strings"
	"testing"
)

func TestValidator_CreateUserRequest(t *testing.T) {
	v := NewValidator()

	valid := createUserRequest{Email: "a@x.com", Password: "p", Role: "student"}
	if err := v.Validate(valid); err != nil {
		t.Fatalf("valid request rejected: %v", err)
	}

	cases := []struct {
		name string
		req  createUserRequest
		want string
	}{
		{"missing email", createUserRequest{Password: "p", Role: "admin"}, "email is required"},
		{"bad email", createUserRequest{Email: "nope", Password: "p", Role: "admin"}, "email must be a valid email"},
		{"missing password", createUserRequest{Email: "a@x.com", Role: "admin"}, "password is required"},
		{"bad role", createUserRequest{Email: "a@x.com", Password: "p", Role: "teacher"}, "role must be one of"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := v.Validate(tc.req)
			if err == nil {
				t.Fatalf("expected validation error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("error %q does not mention %q", err, tc.want)
			}
		})
	}
}

func TestValidator_CourseDate(t *testing.T) {
	v := NewValidator()

	if err := v.Validate(createCourseRequest{Title: "Intro", Date: "11/11/2021 11:11:11"}); err != nil {
		t.Fatalf("canonical date rejected: %v", err)
	}

	for _, date := range []string{
		"1/1/2021 00:00:00",
		"11-11-2021 11:11:11",
		"2021/11/11 11:11:11",
		"11/11/2021",
		"11/11/21 11:11:11",
	} {
		err := v.Validate(createCourseRequest{Title: "Intro", Date: date})
		if err == nil {
			t.Errorf("date %q accepted, want rejection", date)
			continue
		}
		if !strings.Contains(err.Error(), "date must match DD/MM/YYYY HH:MM:SS") {
			t.Errorf("date %q: unexpected message %q", date, err)
		}
	}
}

func TestValidator_EnrollmentIDs(t *testing.T) {
	v := NewValidator()

	if err := v.Validate(createEnrollmentRequest{StudentID: 1, CourseID: 2}); err != nil {
		t.Fatalf("valid request rejected: %v", err)
	}
	if err := v.Validate(createEnrollmentRequest{StudentID: 0, CourseID: 2}); err == nil {
		t.Fatalf("zero student_id accepted")
	}
	if err := v.Validate(createEnrollmentRequest{StudentID: 1, CourseID: -3}); err == nil {
		t.Fatalf("negative course_id accepted")
	}
}
