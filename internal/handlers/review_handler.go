package handlers

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/sentreats/sentreats-server/internal/dto"
	"github.com/sentreats/sentreats-server/internal/middleware"
	"github.com/sentreats/sentreats-server/internal/services"
)

type ReviewHandler struct {
	eateryService *services.EateryService
}

func NewReviewHandler(eateryService *services.EateryService) *ReviewHandler {
	return &ReviewHandler{eateryService: eateryService}
}

// ByEatery handles GET /reviews/eatery/:eateryId.
func (h *ReviewHandler) ByEatery(c *fiber.Ctx) error {
	eateryID, err := c.ParamsInt("eateryId")
	if err != nil || eateryID < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid eatery id",
		})
	}

	reviews, err := h.eateryService.ReviewsByEatery(uint(eateryID))
	if err != nil {
		if errors.Is(err, services.ErrEateryNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Eatery not found",
			})
		}
		slog.Error("failed to list eatery reviews", "eatery_id", eateryID, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Internal server error",
		})
	}

	return c.JSON(dto.ReviewsResponse{Count: len(reviews), Reviews: reviews})
}

// ByUser handles GET /reviews/user/:userId.
func (h *ReviewHandler) ByUser(c *fiber.Ctx) error {
	userID, err := c.ParamsInt("userId")
	if err != nil || userID < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid user id",
		})
	}

	reviews, err := h.eateryService.ReviewsByUser(uint(userID))
	if err != nil {
		slog.Error("failed to list user reviews", "user_id", userID, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Internal server error",
		})
	}

	return c.JSON(dto.ReviewsResponse{Count: len(reviews), Reviews: reviews})
}

// Create handles POST /reviews for an existing eatery id.
func (h *ReviewHandler) Create(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	var req dto.ReviewRequest
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

	review, err := h.eateryService.CreateReview(userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUserNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "User not found",
			})
		case errors.Is(err, services.ErrEateryNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Eatery not found",
			})
		case errors.Is(err, services.ErrUnknownPlaceType):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		slog.Error("review creation failed", "user_id", userID, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Internal server error",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(dto.ReviewResponse{Review: *review})
}

// Delete handles DELETE /reviews/:id; only the author may delete.
func (h *ReviewHandler) Delete(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid review id",
		})
	}

	if err := h.eateryService.DeleteReview(uint(id), userID); err != nil {
		switch {
		case errors.Is(err, services.ErrReviewNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Review not found",
			})
		case errors.Is(err, services.ErrNotOwner):
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Error: true, Message: "Not authorized to delete this review",
			})
		}
		slog.Error("review deletion failed", "review_id", id, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Internal server error",
		})
	}

	return c.JSON(dto.MessageResponse{Message: "Review deleted successfully"})
}
