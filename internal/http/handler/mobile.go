package handler

import (
	"fmt"
	"mime/multipart"
	"net/url"

	"github.com/gofiber/fiber/v2"
	"github.com/skip2/go-qrcode"

	"clinicapi/internal/service"
)

const qrSize = 256

type createSessionRequest struct {
	PatientID int64 `json:"patientId"`
}

type createSessionResponse struct {
	SessionID string `json:"sessionId"`
}

// CreateUploadSession issues a mobile upload token for a patient named in the body.
//
// @Summary  Create a mobile upload session
// @Tags     mobile-upload
// @Accept   json
// @Produce  json
// @Security BearerAuth
// @Param    body body createSessionRequest true "patient"
// @Success  200 {object} createSessionResponse
// @Failure  400 {object} errorPayload
// @Failure  404 {object} errorPayload
// @Router   /session [post]
func CreateUploadSession(svc service.MobileUploadService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		uid, err := currentUser(c)
		if err != nil {
			return err
		}
		var req createSessionRequest
		if err := c.BodyParser(&req); err != nil {
			return invalidBody(c)
		}
		return issueSession(c, svc, uid, req.PatientID)
	}
}

// CreatePatientUploadSession is CreateUploadSession with the patient taken from the path.
func CreatePatientUploadSession(svc service.MobileUploadService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		uid, pid, err := patientScope(c)
		if err != nil {
			return err
		}
		return issueSession(c, svc, uid, pid)
	}
}

func issueSession(c *fiber.Ctx, svc service.MobileUploadService, userID, patientID int64) error {
	token, err := svc.CreateSession(c.UserContext(), userID, patientID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(createSessionResponse{SessionID: token})
}

// MobileUploadURL is the page a phone opens after scanning the session's QR code.
func MobileUploadURL(publicBaseURL, token string) string {
	return publicBaseURL + "/mobile-upload.html?session=" + url.QueryEscape(token)
}

// SessionQRCode renders the mobile upload URL of a live session as a PNG.
//
// @Summary  QR code for a mobile upload session
// @Tags     mobile-upload
// @Produce  png
// @Security BearerAuth
// @Param    sessionId path string true "session token"
// @Success  200 {file} file
// @Failure  403 {object} errorPayload
// @Router   /session/{sessionId}/qr [get]
func SessionQRCode(svc service.MobileUploadService, publicBaseURL string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		uid, err := currentUser(c)
		if err != nil {
			return err
		}
		token := c.Params("sessionId")
		if _, err := svc.SessionPatient(c.UserContext(), uid, token); err != nil {
			return serviceError(c, err)
		}

		png, err := qrcode.Encode(MobileUploadURL(publicBaseURL, token), qrcode.Medium, qrSize)
		if err != nil {
			return fmt.Errorf("encode qr code: %w", err)
		}
		c.Set(fiber.HeaderCacheControl, "no-store")
		c.Type("png")
		return c.Send(png)
	}
}

// MobileUpload receives the phone's batch. It is not behind RequireAuth: the
// session token is the credential.
//
// @Summary  Upload documents from a phone
// @Tags     mobile-upload
// @Accept   multipart/form-data
// @Produce  json
// @Param    sessionId formData string true "session token"
// @Param    document formData file true "files (repeatable)"
// @Success  201 {object} map[string]any
// @Failure  400 {object} errorPayload
// @Failure  403 {object} errorPayload
// @Router   /mobile-upload [post]
func MobileUpload(svc service.MobileUploadService, maxFiles int) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var (
			headers []*multipart.FileHeader
			token   string
		)
		if form, err := c.MultipartForm(); err == nil {
			headers = form.File[DocumentField]
			if v := form.Value["sessionId"]; len(v) > 0 {
				token = v[0]
			}
		}
		if token == "" {
			token = c.Query("session")
		}
		if maxFiles > 0 && len(headers) > maxFiles {
			return writeError(c, fiber.StatusBadRequest, "TOO_MANY_FILES", fmt.Sprintf("at most %d files per upload", maxFiles))
		}

		files := make([]service.UploadFile, 0, len(headers))
		for _, fh := range headers {
			upload, f, err := uploadFile(fh)
			if err != nil {
				return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
			}
			defer f.Close()
			files = append(files, upload)
		}

		n, err := svc.HandleUpload(c.UserContext(), token, files)
		if err != nil {
			return serviceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"message": "Documents received successfully.",
			"count":   n,
		})
	}
}
