package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/guilliammrst/enrollment-api/internal/core/ports"
)

// EnrollmentHandler handles enrollment registration (admin) and attendance
// signing (student).
type EnrollmentHandler struct {
	enrollments ports.EnrollmentService
}

func NewEnrollmentHandler(enrollments ports.EnrollmentService) *EnrollmentHandler {
	return &EnrollmentHandler{enrollments: enrollments}
}

// List returns every enrollment.
//
// @Summary      List enrollments
// @Tags         enrollments
// @Produce      json
// @Security     BasicAuth
// @Success      200  {array}   domain.Enrollment
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /enrollments [get]
func (h *EnrollmentHandler) List(c echo.Context) error {
	enrollments, err := h.enrollments.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, enrollments)
}

// Create enrolls a student in a course on their behalf.
//
// @Summary      Enroll a student in a course
// @Tags         enrollments
// @Accept       json
// @Produce      json
// @Security     BasicAuth
// @Param        body  body      createEnrollmentRequest  true  "Student and course ids"
// @Success      201   {object}  domain.Enrollment
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /enrollments [post]
func (h *EnrollmentHandler) Create(c echo.Context) error {
	var req createEnrollmentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	enrollment, err := h.enrollments.Register(c.Request().Context(), ports.RegisterEnrollmentInput{
		StudentID: req.StudentID,
		CourseID:  req.CourseID,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, enrollment)
}

// Sign records the calling student's attendance for a course. The student is
// taken from the authenticated identity, never from the payload.
//
// @Summary      Sign a course
// @Tags         enrollments
// @Accept       json
// @Produce      json
// @Security     BasicAuth
// @Param        body  body      signCourseRequest  true  "Course id"
// @Success      200   {object}  signCourseResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /sign-course [patch]
func (h *EnrollmentHandler) Sign(c echo.Context) error {
	studentID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req signCourseRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	enrollment, err := h.enrollments.Sign(c.Request().Context(), studentID, req.CourseID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, signCourseResponse{
		Message:    "course signed",
		Enrollment: enrollment,
	})
}
