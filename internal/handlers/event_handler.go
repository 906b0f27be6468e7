package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/DmitriiShilkin/creative-hub/internal/httpx"
	"github.com/DmitriiShilkin/creative-hub/internal/repository"
	"github.com/DmitriiShilkin/creative-hub/internal/service"
	"github.com/DmitriiShilkin/creative-hub/internal/validation"
)

type EventHandler struct {
	readService          *service.EventReadService
	favoriteService      *service.FavoriteService
	participationService *service.ParticipationService
}

func NewEventHandler(
	readService *service.EventReadService,
	favoriteService *service.FavoriteService,
	participationService *service.ParticipationService,
) *EventHandler {
	return &EventHandler{
		readService:          readService,
		favoriteService:      favoriteService,
		participationService: participationService,
	}
}

func (h *EventHandler) List(c *fiber.Ctx) error {
	viewer := currentViewer(c)

	params := repository.EventListParams{
		Viewer: viewer,
		Offset: validation.ParseOffset(c.Query("offset")),
		Limit:  validation.ParseLimit(c.Query("limit")),
	}

	if c.QueryBool("favorite") {
		if !viewer.Authenticated() {
			return httpx.Unauthorized(c, "unauthorized", "Sign in to filter by favorites")
		}
		params.FavoritesOnly = true
	}
	params.UpcomingOnly = c.QueryBool("upcoming")

	if authorStr := c.Query("author_id"); authorStr != "" {
		authorID, err := strconv.ParseUint(authorStr, 10, 32)
		if err != nil || authorID == 0 {
			return httpx.BadRequest(c, "invalid_author", "Invalid author_id")
		}
		id := uint(authorID)
		params.AuthorID = &id
	}

	result, err := h.readService.ListEvents(params)
	if err != nil {
		return httpx.Internal(c, "list_events_failed")
	}
	return c.JSON(result)
}

func (h *EventHandler) ListMine(c *fiber.Ctx) error {
	userID, err := httpx.LocalUint(c, "userID")
	if err != nil {
		return httpx.Unauthorized(c, "unauthorized", "Unauthorized")
	}

	params := repository.EventListParams{
		Viewer:     currentViewer(c),
		AuthorView: true,
		Offset:     validation.ParseOffset(c.Query("offset")),
		Limit:      validation.ParseLimit(c.Query("limit")),
	}
	id := userID
	params.AuthorID = &id

	if raw := c.Query("is_draft"); raw != "" {
		v := c.QueryBool("is_draft")
		params.IsDraft = &v
	}
	if raw := c.Query("is_archived"); raw != "" {
		v := c.QueryBool("is_archived")
		params.IsArchived = &v
	}

	result, err := h.readService.ListEvents(params)
	if err != nil {
		return httpx.Internal(c, "list_events_failed")
	}
	return c.JSON(result)
}

func (h *EventHandler) Get(c *fiber.Ctx) error {
	eventID, err := parseIDParam(c, "id")
	if err != nil {
		return httpx.BadRequest(c, "invalid_event_id", "Invalid event id")
	}

	event, err := h.readService.GetEvent(eventID, currentViewer(c))
	if err != nil {
		return respondServiceError(c, err, "fetch_event_failed")
	}
	return c.JSON(event)
}

type markViewedInput struct {
	IDs []uint `json:"ids"`
}

func (h *EventHandler) MarkViewed(c *fiber.Ctx) error {
	var input markViewedInput
	if err := c.BodyParser(&input); err != nil {
		return httpx.BadRequest(c, "invalid_request_body", "Invalid request body")
	}
	if !validation.ValidateBatchIDs(input.IDs) {
		return httpx.BadRequest(c, "invalid_ids", "ids must hold 1 to "+strconv.Itoa(validation.MaxBatchIDs())+" non-zero values")
	}

	if err := h.readService.MarkViewed(input.IDs, currentViewer(c)); err != nil {
		return respondServiceError(c, err, "mark_viewed_failed")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// StopBrowsing lets a client drop out of the "browsing now" count when it
// navigates away instead of waiting out the presence TTL.
func (h *EventHandler) StopBrowsing(c *fiber.Ctx) error {
	eventID, err := parseIDParam(c, "id")
	if err != nil {
		return httpx.BadRequest(c, "invalid_event_id", "Invalid event id")
	}
	h.readService.StopBrowsing(eventID, currentViewer(c))
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *EventHandler) Favorite(c *fiber.Ctx) error {
	userID, err := httpx.LocalUint(c, "userID")
	if err != nil {
		return httpx.Unauthorized(c, "unauthorized", "Unauthorized")
	}
	eventID, err := parseIDParam(c, "id")
	if err != nil {
		return httpx.BadRequest(c, "invalid_event_id", "Invalid event id")
	}

	if err := h.favoriteService.AddEventFavorite(userID, eventID); err != nil {
		return respondServiceError(c, err, "add_favorite_failed")
	}
	return c.SendStatus(fiber.StatusCreated)
}

func (h *EventHandler) Unfavorite(c *fiber.Ctx) error {
	userID, err := httpx.LocalUint(c, "userID")
	if err != nil {
		return httpx.Unauthorized(c, "unauthorized", "Unauthorized")
	}
	eventID, err := parseIDParam(c, "id")
	if err != nil {
		return httpx.BadRequest(c, "invalid_event_id", "Invalid event id")
	}

	if err := h.favoriteService.RemoveEventFavorite(userID, eventID); err != nil {
		return respondServiceError(c, err, "remove_favorite_failed")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *EventHandler) Join(c *fiber.Ctx) error {
	userID, err := httpx.LocalUint(c, "userID")
	if err != nil {
		return httpx.Unauthorized(c, "unauthorized", "Unauthorized")
	}
	eventID, err := parseIDParam(c, "id")
	if err != nil {
		return httpx.BadRequest(c, "invalid_event_id", "Invalid event id")
	}

	if err := h.participationService.JoinEvent(userID, eventID); err != nil {
		return respondServiceError(c, err, "join_event_failed")
	}
	return c.SendStatus(fiber.StatusCreated)
}

func (h *EventHandler) Leave(c *fiber.Ctx) error {
	userID, err := httpx.LocalUint(c, "userID")
	if err != nil {
		return httpx.Unauthorized(c, "unauthorized", "Unauthorized")
	}
	eventID, err := parseIDParam(c, "id")
	if err != nil {
		return httpx.BadRequest(c, "invalid_event_id", "Invalid event id")
	}

	if err := h.participationService.LeaveEvent(userID, eventID); err != nil {
		return respondServiceError(c, err, "leave_event_failed")
	}
	return c.SendStatus(fiber.StatusNoContent)
}
