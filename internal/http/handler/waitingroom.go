package handler

import (
	"github.com/gofiber/fiber/v2"

	"clinicapi/internal/model"
	"clinicapi/internal/service"
)

type addWaitingRequest struct {
	PatientID int64 `json:"patient_id"`
}

type statusRequest struct {
	Status string `json:"status"`
}

// AddToWaitingRoom queues a patient.
//
// @Summary  Add a patient to the waiting room
// @Tags     waiting-room
// @Accept   json
// @Produce  json
// @Security BearerAuth
// @Param    body body addWaitingRequest true "patient"
// @Success  201 {object} model.WaitingRoomEntry
// @Failure  404 {object} errorPayload
// @Failure  409 {object} errorPayload
// @Router   /patient/waiting-room/add [post]
func AddToWaitingRoom(svc service.WaitingRoomService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		uid, err := currentUser(c)
		if err != nil {
			return err
		}
		var req addWaitingRequest
		if err := c.BodyParser(&req); err != nil {
			return invalidBody(c)
		}
		e, err := svc.Add(c.UserContext(), uid, req.PatientID)
		if err != nil {
			return serviceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(e)
	}
}

func ListWaitingRoom(svc service.WaitingRoomService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		uid, err := currentUser(c)
		if err != nil {
			return err
		}
		entries, err := svc.List(c.UserContext(), uid)
		if err != nil {
			return serviceError(c, err)
		}
		if entries == nil {
			entries = []model.WaitingRoomEntry{}
		}
		return c.JSON(entries)
	}
}

func UpdateWaitingStatus(svc service.WaitingRoomService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		uid, err := currentUser(c)
		if err != nil {
			return err
		}
		id, ok := paramID(c, "entryId")
		if !ok {
			return invalidID(c, "entry id")
		}
		var req statusRequest
		if err := c.BodyParser(&req); err != nil {
			return invalidBody(c)
		}
		if err := svc.UpdateStatus(c.UserContext(), uid, id, req.Status); err != nil {
			return serviceError(c, err)
		}
		return c.JSON(fiber.Map{"message": "Status updated successfully"})
	}
}

func RemoveFromWaitingRoom(svc service.WaitingRoomService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		uid, err := currentUser(c)
		if err != nil {
			return err
		}
		id, ok := paramID(c, "entryId")
		if !ok {
			return invalidID(c, "entry id")
		}
		if err := svc.Remove(c.UserContext(), uid, id); err != nil {
			return serviceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
