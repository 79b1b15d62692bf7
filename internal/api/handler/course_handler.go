package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/guilliammrst/enrollment-api/internal/core/ports"
)

// CourseHandler handles the admin-only course routes.
type CourseHandler struct {
	courses ports.CourseService
}

func NewCourseHandler(courses ports.CourseService) *CourseHandler {
	return &CourseHandler{courses: courses}
}

// List returns every course.
//
// @Summary      List courses
// @Tags         courses
// @Produce      json
// @Security     BasicAuth
// @Success      200  {array}   domain.Course
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /courses [get]
func (h *CourseHandler) List(c echo.Context) error {
	courses, err := h.courses.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, courses)
}

// Create provisions a new course.
//
// @Summary      Create a course
// @Tags         courses
// @Accept       json
// @Produce      json
// @Security     BasicAuth
// @Param        body  body      createCourseRequest  true  "Course details, date as DD/MM/YYYY HH:MM:SS"
// @Success      201   {object}  domain.Course
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /courses [post]
func (h *CourseHandler) Create(c echo.Context) error {
	var req createCourseRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	course, err := h.courses.Provision(c.Request().Context(), ports.ProvisionCourseInput{
		Title: req.Title,
		Date:  req.Date,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, course)
}
