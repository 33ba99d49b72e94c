package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"studentapi/internal/model"
)

const (
	// CustomHeader is set on the fixed-student response.
	CustomHeader = "custom-header"
	// DeletedMessage is the plain-text body of a delete.
	DeletedMessage = "Student deleted successfully!"
)

var fixedStudent = model.Student{ID: 1, FirstName: "Kyaw Zaw", LastName: "Htet"}

// parseID parses a path or query id into the 32-bit range of model.Student.ID.
func parseID(raw string) (int32, error) {
	id, err := strconv.ParseInt(raw, 10, 32)
	if err != nil {
		return 0, bindError(err)
	}
	return int32(id), nil
}

// bindStudent decodes a JSON body. Other content types are rejected with 415.
func bindStudent(c *fiber.Ctx) (model.Student, error) {
	var s model.Student
	if !c.Is("json") {
		return s, fiber.ErrUnsupportedMediaType
	}
	if err := c.App().Config().JSONDecoder(c.Body(), &s); err != nil {
		return s, bindError(err)
	}
	return s, nil
}

// GetStudent returns the fixed student with a custom header.
//
// @Summary Get the fixed student
// @Tags students
// @Produce json
// @Success 200 {object} model.Student
// @Header 200 {string} custom-header "Kyaw Zaw"
// @Router /students/student [get]
func GetStudent() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Set(CustomHeader, fixedStudent.FirstName)
		return c.JSON(fixedStudent)
	}
}

// ListStudents returns the fixed roster.
//
// @Summary List students
// @Tags students
// @Produce json
// @Success 200 {array} model.Student
// @Router /students [get]
func ListStudents() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(model.Roster())
	}
}

// StudentFromPath builds a student from the id, firstName and lastName path segments.
//
// @Summary Student from path variables
// @Tags students
// @Produce json
// @Param id path int true "Student ID"
// @Param firstName path string true "First name"
// @Param lastName path string true "Last name"
// @Success 200 {object} model.Student
// @Failure 400 {object} errorPayload
// @Router /students/{id}/{firstName}/{lastName} [get]
func StudentFromPath() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c.Params("id"))
		if err != nil {
			return err
		}
		return c.JSON(model.Student{
			ID:        id,
			FirstName: c.Params("firstName"),
			LastName:  c.Params("lastName"),
		})
	}
}

// StudentFromQuery builds a student from the id, firstName and lastName query
// parameters. All three are required.
//
// @Summary Student from query parameters
// @Tags students
// @Produce json
// @Param id query int true "Student ID"
// @Param firstName query string true "First name"
// @Param lastName query string true "Last name"
// @Success 200 {object} model.Student
// @Failure 400 {object} errorPayload
// @Router /students/query [get]
func StudentFromQuery() fiber.Handler {
	return func(c *fiber.Ctx) error {
		args := c.Context().QueryArgs()
		for _, key := range []string{"id", "firstName", "lastName"} {
			if !args.Has(key) {
				return fiber.NewError(fiber.StatusBadRequest, "missing query parameter "+key)
			}
		}

		id, err := parseID(c.Query("id"))
		if err != nil {
			return err
		}
		return c.JSON(model.Student{
			ID:        id,
			FirstName: c.Query("firstName"),
			LastName:  c.Query("lastName"),
		})
	}
}

// CreateStudent echoes the posted student with 201. Nothing is stored.
//
// @Summary Create a student
// @Tags students
// @Accept json
// @Produce json
// @Param student body model.Student true "Student"
// @Success 201 {object} model.Student
// @Failure 400 {object} errorPayload
// @Failure 415 {object} errorPayload
// @Router /students/create [post]
func CreateStudent() fiber.Handler {
	return func(c *fiber.Ctx) error {
		s, err := bindStudent(c)
		if err != nil {
			return err
		}

		zerolog.Ctx(c.UserContext()).Info().
			Int32("id", s.ID).
			Str("first_name", s.FirstName).
			Str("last_name", s.LastName).
			Msg("student_created")

		return c.Status(fiber.StatusCreated).JSON(s)
	}
}

// UpdateStudent echoes the body as sent. The path id must be an integer but
// is not applied to the response.
//
// @Summary Update a student
// @Tags students
// @Accept json
// @Produce json
// @Param id path int true "Student ID"
// @Param student body model.Student true "Student"
// @Success 200 {object} model.Student
// @Failure 400 {object} errorPayload
// @Failure 415 {object} errorPayload
// @Router /students/{id}/update [put]
func UpdateStudent() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c.Params("id"))
		if err != nil {
			return err
		}

		s, err := bindStudent(c)
		if err != nil {
			return err
		}

		zerolog.Ctx(c.UserContext()).Info().
			Int32("path_id", id).
			Str("first_name", s.FirstName).
			Str("last_name", s.LastName).
			Msg("student_updated")

		return c.JSON(s)
	}
}

// DeleteStudent logs the id and confirms. Nothing is deleted.
//
// @Summary Delete a student
// @Tags students
// @Produce plain
// @Param id path int true "Student ID"
// @Success 200 {string} string "Student deleted successfully!"
// @Failure 400 {object} errorPayload
// @Router /students/{id}/delete [delete]
func DeleteStudent() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c.Params("id"))
		if err != nil {
			return err
		}

		zerolog.Ctx(c.UserContext()).Info().Int32("id", id).Msg("student_deleted")

		return c.SendString(DeletedMessage)
	}
}
