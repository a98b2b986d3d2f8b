package handler

import (
	"database/sql"
	_ "embed"

	"github.com/gofiber/fiber/v2"

	"clinicapi/internal/auth"
	"clinicapi/internal/http/middleware"
	"clinicapi/internal/service"
)

//go:embed web/mobile-upload.html
var mobileUploadPage []byte

// Services groups the use cases the HTTP layer exposes.
type Services struct {
	Auth        service.AuthService
	Patients    service.PatientService
	Clinical    service.ClinicalService
	Documents   service.DocumentService
	Mobile      service.MobileUploadService
	WaitingRoom service.WaitingRoomService
}

// Options carries the non-service dependencies of the routes.
type Options struct {
	DB             *sql.DB
	Tokens         *auth.TokenIssuer
	PublicBaseURL  string
	MobileMaxFiles int
}

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
// Unauthenticated routes are registered before the bearer-protected groups.
func RegisterRoutes(app *fiber.App, svc Services, opt Options) {
	app.Get("/health", HealthCheck(opt.DB))
	app.Get("/healthz", LivenessProbe())

	app.Post("/api/auth/register", Register(svc.Auth))
	app.Post("/api/auth/login", Login(svc.Auth))

	app.Get("/mobile-upload.html", func(c *fiber.Ctx) error {
		return c.Type("html").Send(mobileUploadPage)
	})
	mobileUpload := MobileUpload(svc.Mobile, opt.MobileMaxFiles)
	app.Post("/mobile-upload", mobileUpload)
	app.Post("/patient/mobile-upload", mobileUpload)

	requireAuth := middleware.RequireAuth(opt.Tokens, Unauthorized)

	sessions := app.Group("/session", requireAuth)
	sessions.Post("/", CreateUploadSession(svc.Mobile))
	sessions.Get("/:sessionId/qr", SessionQRCode(svc.Mobile, opt.PublicBaseURL))

	patients := app.Group("/patient", requireAuth)

	waiting := patients.Group("/waiting-room")
	waiting.Post("/add", AddToWaitingRoom(svc.WaitingRoom))
	waiting.Get("/", ListWaitingRoom(svc.WaitingRoom))
	waiting.Put("/:entryId/status", UpdateWaitingStatus(svc.WaitingRoom))
	waiting.Delete("/:entryId", RemoveFromWaitingRoom(svc.WaitingRoom))

	patients.Get("/", ListPatients(svc.Patients))
	patients.Post("/", CreatePatient(svc.Patients))
	patients.Get("/id/:id", GetPatientByID(svc.Patients))
	patients.Get("/name/:name", GetPatientByName(svc.Patients))
	patients.Put("/:id", UpdatePatient(svc.Patients))
	patients.Delete("/:id", DeletePatient(svc.Patients))

	patients.Post("/:patientId/visits", AddVisit(svc.Clinical))
	patients.Get("/:patientId/visits", ListVisits(svc.Clinical))
	patients.Post("/:patientId/medications", AddMedication(svc.Clinical))
	patients.Get("/:patientId/medications", ListMedications(svc.Clinical))
	patients.Get("/:patientId/medications/search", SearchMedications(svc.Clinical))
	patients.Post("/:patientId/labtests", AddLabTest(svc.Clinical))
	patients.Get("/:patientId/labtests", ListLabTests(svc.Clinical))
	patients.Get("/:patientId/labtests/search", SearchLabTests(svc.Clinical))

	patients.Post("/:patientId/documents/upload-session", CreatePatientUploadSession(svc.Mobile))
	patients.Post("/:patientId/documents", UploadDocument(svc.Documents))
	patients.Get("/:patientId/documents", ListDocuments(svc.Documents))
	patients.Get("/:patientId/documents/:documentId/file", DownloadDocument(svc.Documents))
	patients.Delete("/:patientId/documents/:documentId", DeleteDocument(svc.Documents))
}
