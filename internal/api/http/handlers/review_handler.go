package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/accreditation-service/internal/api/dto"
	"github.com/spec-kit/accreditation-service/internal/domain"
	"github.com/spec-kit/accreditation-service/internal/export"
	"github.com/spec-kit/accreditation-service/internal/repository"
	"github.com/spec-kit/accreditation-service/internal/service"
	apperrors "github.com/spec-kit/accreditation-service/pkg/util"
)

// ReviewHandler exposes the reviewer workspace endpoints.
type ReviewHandler struct {
	review *service.ReviewService
}

// NewReviewHandler constructs handler.
func NewReviewHandler(reviewService *service.ReviewService) *ReviewHandler {
	return &ReviewHandler{review: reviewService}
}

// List handles GET /accreditations. Area and status constrain the store
// query; the q term filters the loaded list in memory.
func (h *ReviewHandler) List(c *fiber.Ctx) error {
	filter, err := parseListFilter(c)
	if err != nil {
		return err
	}

	records, err := h.review.List(c.Context(), filter)
	if err != nil {
		return err
	}
	records = service.Search(records, c.Query("q"))

	items := make([]dto.AccreditationResponse, 0, len(records))
	for i := range records {
		items = append(items, dto.NewAccreditationResponse(&records[i]))
	}
	return c.JSON(fiber.Map{"data": items, "count": len(items)})
}

// Export handles GET /accreditations/export, serializing the same filtered
// view the list endpoint would return.
func (h *ReviewHandler) Export(c *fiber.Ctx) error {
	filter, err := parseListFilter(c)
	if err != nil {
		return err
	}

	records, err := h.review.List(c.Context(), filter)
	if err != nil {
		return err
	}
	records = service.Search(records, c.Query("q"))

	csvBytes, err := export.RecordsCSV(records)
	if err != nil {
		return apperrors.NewInternalError(err)
	}

	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+export.Filename(time.Now())+`"`)
	return c.Send(csvBytes)
}

// UpdateStatus handles PATCH /accreditations/:id/status.
func (h *ReviewHandler) UpdateStatus(c *fiber.Ctx) error {
	id, err := recordID(c)
	if err != nil {
		return err
	}
	var req dto.UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	record, err := h.review.SetStatus(c.Context(), id, domain.AccreditationStatus(req.Status))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewAccreditationResponse(record)})
}

// UpdateZone handles PATCH /accreditations/:id/zone.
func (h *ReviewHandler) UpdateZone(c *fiber.Ctx) error {
	id, err := recordID(c)
	if err != nil {
		return err
	}
	var req dto.UpdateZoneRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	var zone *domain.Zone
	if req.Zone != nil {
		z := domain.Zone(*req.Zone)
		zone = &z
	}
	record, err := h.review.SetZone(c.Context(), id, zone)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewAccreditationResponse(record)})
}

// Approve handles POST /accreditations/:id/approve.
func (h *ReviewHandler) Approve(c *fiber.Ctx) error {
	id, err := recordID(c)
	if err != nil {
		return err
	}
	record, err := h.review.ApproveWithZone(c.Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewAccreditationResponse(record)})
}

func recordID(c *fiber.Ctx) (int64, error) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return 0, apperrors.NewValidationError("invalid record id", nil)
	}
	return int64(id), nil
}

func parseListFilter(c *fiber.Ctx) (repository.AccreditationFilter, error) {
	filter := repository.AccreditationFilter{}

	if areaStr := c.Query("area"); areaStr != "" {
		area := domain.Area(areaStr)
		if !area.Valid() {
			return filter, apperrors.NewValidationError("unknown area", map[string]any{"area": areaStr})
		}
		filter.Area = &area
	}
	if statusStr := c.Query("status"); statusStr != "" {
		status := domain.AccreditationStatus(statusStr)
		if !status.Valid() {
			return filter, apperrors.NewValidationError("unknown status", map[string]any{"status": statusStr})
		}
		filter.Status = &status
	}
	return filter, nil
}
