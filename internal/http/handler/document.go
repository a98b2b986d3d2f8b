package handler

import (
	"fmt"
	"mime/multipart"
	"net/url"

	"github.com/gofiber/fiber/v2"

	"clinicapi/internal/model"
	"clinicapi/internal/service"
)

// DocumentField is the multipart field carrying uploaded files.
const DocumentField = "document"

func uploadFile(fh *multipart.FileHeader) (service.UploadFile, multipart.File, error) {
	f, err := fh.Open()
	if err != nil {
		return service.UploadFile{}, nil, err
	}
	ct := fh.Header.Get("Content-Type")
	if ct == "" {
		ct = "application/octet-stream"
	}
	return service.UploadFile{Filename: fh.Filename, ContentType: ct, Size: fh.Size, Reader: f}, f, nil
}

// UploadDocument stores one file for the patient.
//
// @Summary  Upload a document
// @Tags     documents
// @Accept   multipart/form-data
// @Produce  json
// @Security BearerAuth
// @Param    patientId path int true "patient id"
// @Param    document formData file true "file"
// @Success  201 {object} model.Document
// @Failure  400 {object} errorPayload
// @Failure  404 {object} errorPayload
// @Router   /patient/{patientId}/documents [post]
func UploadDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		uid, pid, err := patientScope(c)
		if err != nil {
			return err
		}
		fh, err := c.FormFile(DocumentField)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_REQUIRED", "file is required")
		}

		upload, f, err := uploadFile(fh)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
		}
		defer f.Close()

		doc, err := svc.Upload(c.UserContext(), uid, pid, upload)
		if err != nil {
			return serviceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(doc)
	}
}

func ListDocuments(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		uid, pid, err := patientScope(c)
		if err != nil {
			return err
		}
		docs, err := svc.List(c.UserContext(), uid, pid)
		if err != nil {
			return serviceError(c, err)
		}
		if docs == nil {
			docs = []model.Document{}
		}
		return c.JSON(docs)
	}
}

// DownloadDocument streams the stored file inline under its original name.
//
// @Summary  Download a document
// @Tags     documents
// @Produce  octet-stream
// @Security BearerAuth
// @Param    patientId path int true "patient id"
// @Param    documentId path int true "document id"
// @Success  200 {file} file
// @Failure  404 {object} errorPayload
// @Router   /patient/{patientId}/documents/{documentId}/file [get]
func DownloadDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		uid, pid, err := patientScope(c)
		if err != nil {
			return err
		}
		did, ok := paramID(c, "documentId")
		if !ok {
			return invalidID(c, "document id")
		}
		f, err := svc.Open(c.UserContext(), uid, pid, did)
		if err != nil {
			return serviceError(c, err)
		}

		c.Set(fiber.HeaderContentType, f.ContentType)
		c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`inline; filename*=UTF-8''%s`, url.PathEscape(f.Document.Name)))
		// fasthttp closes the body once it has been sent.
		return c.SendStream(f.Body, int(f.Size))
	}
}

// DeleteDocument
//
// @Summary  Delete a document
// @Tags     documents
// @Security BearerAuth
// @Param    patientId path int true "patient id"
// @Param    documentId path int true "document id"
// @Success  204
// @Failure  404 {object} errorPayload
// @Router   /patient/{patientId}/documents/{documentId} [delete]
func DeleteDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		uid, pid, err := patientScope(c)
		if err != nil {
			return err
		}
		did, ok := paramID(c, "documentId")
		if !ok {
			return invalidID(c, "document id")
		}
		if err := svc.Delete(c.UserContext(), uid, pid, did); err != nil {
			return serviceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
