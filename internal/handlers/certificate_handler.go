package handlers

import (
	"giftcerts/internal/apperr"
	"giftcerts/internal/models"
	"giftcerts/internal/services"

	"github.com/gofiber/fiber/v2"
)

// CertificateHandler handles HTTP requests for gift certificates.
type CertificateHandler struct {
	service *services.CertificateService
}

// NewCertificateHandler creates a new CertificateHandler.
func NewCertificateHandler(service *services.CertificateService) *CertificateHandler {
	return &CertificateHandler{
		service: service,
	}
}

// RegisterRoutes registers certificate routes: reads on the public router,
// writes on the protected one.
func (h *CertificateHandler) RegisterRoutes(public, protected fiber.Router) {
	publicRoutes := public.Group("/certificates")
	publicRoutes.Get("/", h.HandleListCertificates)
	publicRoutes.Get("/:id", h.HandleGetCertificateByID)

	protectedRoutes := protected.Group("/certificates")
	protectedRoutes.Post("/", h.HandleCreateCertificate)
	protectedRoutes.Put("/:id", h.HandleUpdateCertificate)
	protectedRoutes.Patch("/:id", h.HandlePatchCertificate)
	protectedRoutes.Delete("/:id", h.HandleDeleteCertificate)
}

// HandleListCertificates lists certificates filtered, sorted and windowed by
// the query parameters.
func (h *CertificateHandler) HandleListCertificates(c *fiber.Ctx) error {
	page, err := h.service.ListCertificates(queryParams(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(page)
}

// HandleGetCertificateByID retrieves a single certificate.
func (h *CertificateHandler) HandleGetCertificateByID(c *fiber.Ctx) error {
	id, err := parseID(c, "id", apperr.CodeInvalidCertificateID)
	if err != nil {
		return writeError(c, err)
	}
	certificate, err := h.service.GetCertificateByID(id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(certificate)
}

// HandleCreateCertificate creates a new certificate with its tags.
func (h *CertificateHandler) HandleCreateCertificate(c *fiber.Ctx) error {
	var certificate models.Certificate
	if err := c.BodyParser(&certificate); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	certificate.ID = 0

	if err := h.service.CreateCertificate(&certificate); err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(certificate)
}

// HandleUpdateCertificate fully replaces a certificate's mutable fields.
func (h *CertificateHandler) HandleUpdateCertificate(c *fiber.Ctx) error {
	id, err := parseID(c, "id", apperr.CodeInvalidCertificateID)
	if err != nil {
		return writeError(c, err)
	}
	var payload models.Certificate
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	updated, err := h.service.UpdateCertificate(id, &payload)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(updated)
}

// HandlePatchCertificate applies a partial update; absent fields stay as
// they are.
func (h *CertificateHandler) HandlePatchCertificate(c *fiber.Ctx) error {
	id, err := parseID(c, "id", apperr.CodeInvalidCertificateID)
	if err != nil {
		return writeError(c, err)
	}
	var patch services.CertificatePatch
	if err := c.BodyParser(&patch); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	updated, err := h.service.PatchCertificate(id, patch)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(updated)
}

// HandleDeleteCertificate soft-deletes a certificate.
func (h *CertificateHandler) HandleDeleteCertificate(c *fiber.Ctx) error {
	id, err := parseID(c, "id", apperr.CodeInvalidCertificateID)
	if err != nil {
		return writeError(c, err)
	}
	if err := h.service.DeleteCertificate(id); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
