package handler

import (
	"github.com/gofiber/fiber/v2"

	"clinicapi/internal/model"
	"clinicapi/internal/service"
)

// ListPatients returns the user's patients by name.
//
// @Summary  List patients
// @Tags     patients
// @Produce  json
// @Security BearerAuth
// @Success  200 {array} model.Patient
// @Router   /patient [get]
func ListPatients(svc service.PatientService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		uid, err := currentUser(c)
		if err != nil {
			return err
		}
		patients, err := svc.List(c.UserContext(), uid)
		if err != nil {
			return serviceError(c, err)
		}
		if patients == nil {
			patients = []model.Patient{}
		}
		return c.JSON(patients)
	}
}

// GetPatientByID
//
// @Summary  Get patient by id
// @Tags     patients
// @Produce  json
// @Security BearerAuth
// @Param    id path int true "patient id"
// @Success  200 {object} model.Patient
// @Failure  404 {object} errorPayload
// @Router   /patient/id/{id} [get]
func GetPatientByID(svc service.PatientService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		uid, err := currentUser(c)
		if err != nil {
			return err
		}
		id, ok := paramID(c, "id")
		if !ok {
			return invalidID(c, "patient id")
		}
		p, err := svc.GetByID(c.UserContext(), uid, id)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(p)
	}
}

func GetPatientByName(svc service.PatientService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		uid, err := currentUser(c)
		if err != nil {
			return err
		}
		p, err := svc.GetByName(c.UserContext(), uid, c.Params("name"))
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(p)
	}
}

// CreatePatient
//
// @Summary  Create patient
// @Tags     patients
// @Accept   json
// @Produce  json
// @Security BearerAuth
// @Param    body body model.Patient true "patient"
// @Success  201 {object} map[string]any
// @Failure  400 {object} errorPayload
// @Failure  409 {object} errorPayload
// @Router   /patient [post]
func CreatePatient(svc service.PatientService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		uid, err := currentUser(c)
		if err != nil {
			return err
		}
		var p model.Patient
		if err := c.BodyParser(&p); err != nil {
			return invalidBody(c)
		}
		id, err := svc.Create(c.UserContext(), uid, p)
		if err != nil {
			return serviceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": id, "message": "Patient created successfully"})
	}
}

func UpdatePatient(svc service.PatientService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		uid, err := currentUser(c)
		if err != nil {
			return err
		}
		id, ok := paramID(c, "id")
		if !ok {
			return invalidID(c, "patient id")
		}
		var p model.Patient
		if err := c.BodyParser(&p); err != nil {
			return invalidBody(c)
		}
		if err := svc.Update(c.UserContext(), uid, id, p); err != nil {
			return serviceError(c, err)
		}
		return c.JSON(fiber.Map{"message": "Patient updated successfully"})
	}
}

// DeletePatient removes the patient with everything recorded for them.
//
// @Summary  Delete patient
// @Tags     patients
// @Security BearerAuth
// @Param    id path int true "patient id"
// @Success  204
// @Failure  404 {object} errorPayload
// @Router   /patient/{id} [delete]
func DeletePatient(svc service.PatientService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		uid, err := currentUser(c)
		if err != nil {
			return err
		}
		id, ok := paramID(c, "id")
		if !ok {
			return invalidID(c, "patient id")
		}
		if err := svc.Delete(c.UserContext(), uid, id); err != nil {
			return serviceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
