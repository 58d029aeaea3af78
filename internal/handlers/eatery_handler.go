package handlers

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/sentreats/sentreats-server/internal/dto"
	"github.com/sentreats/sentreats-server/internal/middleware"
	"github.com/sentreats/sentreats-server/internal/services"
)

type EateryHandler struct {
	eateryService *services.EateryService
}

func NewEateryHandler(eateryService *services.EateryService) *EateryHandler {
	return &EateryHandler{eateryService: eateryService}
}

// List handles GET /eateries with an optional userId filter.
func (h *EateryHandler) List(c *fiber.Ctx) error {
	ownerID := uint(c.QueryInt("userId", 0))

	eateries, err := h.eateryService.List(ownerID)
	if err != nil {
		slog.Error("failed to list eateries", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Internal server error",
		})
	}

	return c.JSON(dto.EateriesResponse{Count: len(eateries), Eateries: eateries})
}

// Create handles POST /eateries: merge into an existing eatery by
// normalized address or create a new one.
func (h *EateryHandler) Create(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	var req dto.SubmissionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}
	if details := dto.Validate(&req); details != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Validation failed", Details: details,
		})
	}

	eatery, review, merged, err := h.eateryService.CreateSubmission(userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUserNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "User not found",
			})
		case errors.Is(err, services.ErrUnknownPlaceType):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		slog.Error("submission failed", "user_id", userID, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Internal server error",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(dto.SubmissionResponse{
		Eatery: *eatery,
		Review: *review,
		Merged: merged,
	})
}

// Delete handles DELETE /eateries/:id; only the owner may delete.
func (h *EateryHandler) Delete(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid eatery id",
		})
	}

	if err := h.eateryService.DeleteEatery(uint(id), userID); err != nil {
		switch {
		case errors.Is(err, services.ErrEateryNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Eatery not found",
			})
		case errors.Is(err, services.ErrNotOwner):
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Error: true, Message: "Not authorized to delete this eatery",
			})
		}
		slog.Error("eatery deletion failed", "eatery_id", id, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Internal server error",
		})
	}

	return c.JSON(dto.MessageResponse{Message: "Eatery deleted successfully"})
}
