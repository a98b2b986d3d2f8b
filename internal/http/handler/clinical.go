package handler

import (
	"github.com/gofiber/fiber/v2"

	"clinicapi/internal/model"
	"clinicapi/internal/service"
)

// patientScope resolves the authenticated user and the :patientId parameter.
func patientScope(c *fiber.Ctx) (userID, patientID int64, err error) {
	userID, err = currentUser(c)
	if err != nil {
		return 0, 0, err
	}
	patientID, ok := paramID(c, "patientId")
	if !ok {
		return 0, 0, fiber.NewError(fiber.StatusBadRequest, "invalid patient id")
	}
	return userID, patientID, nil
}

func created(c *fiber.Ctx, id int64, message string) error {
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": id, "message": message})
}

// AddVisit
//
// @Summary  Record a visit
// @Tags     clinical
// @Accept   json
// @Produce  json
// @Security BearerAuth
// @Param    patientId path int true "patient id"
// @Param    body body model.Visit true "visit"
// @Success  201 {object} map[string]any
// @Failure  400 {object} errorPayload
// @Failure  404 {object} errorPayload
// @Router   /patient/{patientId}/visits [post]
func AddVisit(svc service.ClinicalService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		uid, pid, err := patientScope(c)
		if err != nil {
			return err
		}
		var v model.Visit
		if err := c.BodyParser(&v); err != nil {
			return invalidBody(c)
		}
		id, err := svc.AddVisit(c.UserContext(), uid, pid, v)
		if err != nil {
			return serviceError(c, err)
		}
		return created(c, id, "Visit added successfully")
	}
}

func ListVisits(svc service.ClinicalService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		uid, pid, err := patientScope(c)
		if err != nil {
			return err
		}
		visits, err := svc.ListVisits(c.UserContext(), uid, pid)
		if err != nil {
			return serviceError(c, err)
		}
		if visits == nil {
			visits = []model.Visit{}
		}
		return c.JSON(visits)
	}
}

func AddMedication(svc service.ClinicalService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		uid, pid, err := patientScope(c)
		if err != nil {
			return err
		}
		var m model.Medication
		if err := c.BodyParser(&m); err != nil {
			return invalidBody(c)
		}
		id, err := svc.AddMedication(c.UserContext(), uid, pid, m)
		if err != nil {
			return serviceError(c, err)
		}
		return created(c, id, "Medication added successfully")
	}
}

func ListMedications(svc service.ClinicalService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		uid, pid, err := patientScope(c)
		if err != nil {
			return err
		}
		meds, err := svc.ListMedications(c.UserContext(), uid, pid)
		if err != nil {
			return serviceError(c, err)
		}
		if meds == nil {
			meds = []model.Medication{}
		}
		return c.JSON(meds)
	}
}

// SearchMedications matches ?name= as a case-insensitive substring.
//
// @Summary  Search medications
// @Tags     clinical
// @Produce  json
// @Security BearerAuth
// @Param    patientId path int true "patient id"
// @Param    name query string false "substring"
// @Success  200 {array} model.Medication
// @Router   /patient/{patientId}/medications/search [get]
func SearchMedications(svc service.ClinicalService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		uid, pid, err := patientScope(c)
		if err != nil {
			return err
		}
		meds, err := svc.SearchMedications(c.UserContext(), uid, pid, c.Query("name"))
		if err != nil {
			return serviceError(c, err)
		}
		if meds == nil {
			meds = []model.Medication{}
		}
		return c.JSON(meds)
	}
}

func AddLabTest(svc service.ClinicalService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		uid, pid, err := patientScope(c)
		if err != nil {
			return err
		}
		var lt model.LabTest
		if err := c.BodyParser(&lt); err != nil {
			return invalidBody(c)
		}
		id, err := svc.AddLabTest(c.UserContext(), uid, pid, lt)
		if err != nil {
			return serviceError(c, err)
		}
		return created(c, id, "Lab test added successfully")
	}
}

func ListLabTests(svc service.ClinicalService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		uid, pid, err := patientScope(c)
		if err != nil {
			return err
		}
		tests, err := svc.ListLabTests(c.UserContext(), uid, pid)
		if err != nil {
			return serviceError(c, err)
		}
		if tests == nil {
			tests = []model.LabTest{}
		}
		return c.JSON(tests)
	}
}

func SearchLabTests(svc service.ClinicalService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		uid, pid, err := patientScope(c)
		if err != nil {
			return err
		}
		tests, err := svc.SearchLabTests(c.UserContext(), uid, pid, c.Query("name"))
		if err != nil {
			return serviceError(c, err)
		}
		if tests == nil {
			tests = []model.LabTest{}
		}
		return c.JSON(tests)
	}
}
