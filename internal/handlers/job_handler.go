package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/DmitriiShilkin/creative-hub/internal/httpx"
	"github.com/DmitriiShilkin/creative-hub/internal/repository"
	"github.com/DmitriiShilkin/creative-hub/internal/service"
	"github.com/DmitriiShilkin/creative-hub/internal/validation"
)

type JobHandler struct {
	readService          *service.JobReadService
	favoriteService      *service.FavoriteService
	participationService *service.ParticipationService
}

func NewJobHandler(
	readService *service.JobReadService,
	favoriteService *service.FavoriteService,
	participationService *service.ParticipationService,
) *JobHandler {
	return &JobHandler{
		readService:          readService,
		favoriteService:      favoriteService,
		participationService: participationService,
	}
}

func (h *JobHandler) List(c *fiber.Ctx) error {
	viewer := currentViewer(c)

	sortRaw := c.Query("sort")
	if !validation.ValidSortKey(sortRaw) {
		return httpx.BadRequest(c, "invalid_sort", "Unknown sort key")
	}

	params := repository.JobListParams{
		Viewer: viewer,
		Sort:   repository.SortKey(sortRaw),
		Offset: validation.ParseOffset(c.Query("offset")),
		Limit:  validation.ParseLimit(c.Query("limit")),
	}

	if c.QueryBool("favorite") {
		if !viewer.Authenticated() {
			return httpx.Unauthorized(c, "unauthorized", "Sign in to filter by favorites")
		}
		params.FavoritesOnly = true
	}

	if authorStr := c.Query("author_id"); authorStr != "" {
		authorID, err := strconv.ParseUint(authorStr, 10, 32)
		if err != nil || authorID == 0 {
			return httpx.BadRequest(c, "invalid_author", "Invalid author_id")
		}
		id := uint(authorID)
		params.AuthorID = &id
	}

	result, err := h.readService.ListJobs(params)
	if err != nil {
		return httpx.Internal(c, "list_jobs_failed")
	}
	return c.JSON(result)
}

func (h *JobHandler) ListMine(c *fiber.Ctx) error {
	userID, err := httpx.LocalUint(c, "userID")
	if err != nil {
		return httpx.Unauthorized(c, "unauthorized", "Unauthorized")
	}

	params := repository.JobListParams{
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

	result, err := h.readService.ListJobs(params)
	if err != nil {
		return httpx.Internal(c, "list_jobs_failed")
	}
	return c.JSON(result)
}

func (h *JobHandler) Get(c *fiber.Ctx) error {
	jobID, err := parseIDParam(c, "id")
	if err != nil {
		return httpx.BadRequest(c, "invalid_job_id", "Invalid job id")
	}

	job, err := h.readService.GetJob(jobID, currentViewer(c))
	if err != nil {
		return respondServiceError(c, err, "fetch_job_failed")
	}
	return c.JSON(job)
}

func (h *JobHandler) MarkViewed(c *fiber.Ctx) error {
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

func (h *JobHandler) StopBrowsing(c *fiber.Ctx) error {
	jobID, err := parseIDParam(c, "id")
	if err != nil {
		return httpx.BadRequest(c, "invalid_job_id", "Invalid job id")
	}
	h.readService.StopBrowsing(jobID, currentViewer(c))
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *JobHandler) Favorite(c *fiber.Ctx) error {
	userID, err := httpx.LocalUint(c, "userID")
	if err != nil {
		return httpx.Unauthorized(c, "unauthorized", "Unauthorized")
	}
	jobID, err := parseIDParam(c, "id")
	if err != nil {
		return httpx.BadRequest(c, "invalid_job_id", "Invalid job id")
	}

	if err := h.favoriteService.AddJobFavorite(userID, jobID); err != nil {
		return respondServiceError(c, err, "add_favorite_failed")
	}
	return c.SendStatus(fiber.StatusCreated)
}

func (h *JobHandler) Unfavorite(c *fiber.Ctx) error {
	userID, err := httpx.LocalUint(c, "userID")
	if err != nil {
		return httpx.Unauthorized(c, "unauthorized", "Unauthorized")
	}
	jobID, err := parseIDParam(c, "id")
	if err != nil {
		return httpx.BadRequest(c, "invalid_job_id", "Invalid job id")
	}

	if err := h.favoriteService.RemoveJobFavorite(userID, jobID); err != nil {
		return respondServiceError(c, err, "remove_favorite_failed")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

type proposalInput struct {
	CoverLetter string `json:"cover_letter"`
	Price       *int64 `json:"price"`
}

func (h *JobHandler) Propose(c *fiber.Ctx) error {
	userID, err := httpx.LocalUint(c, "userID")
	if err != nil {
		return httpx.Unauthorized(c, "unauthorized", "Unauthorized")
	}
	jobID, err := parseIDParam(c, "id")
	if err != nil {
		return httpx.BadRequest(c, "invalid_job_id", "Invalid job id")
	}

	var input proposalInput
	if err := c.BodyParser(&input); err != nil {
		return httpx.BadRequest(c, "invalid_request_body", "Invalid request body")
	}
	input.CoverLetter = validation.TrimAndLimit(input.CoverLetter, validation.MaxCoverLetterLength())

	proposal, err := h.participationService.SubmitProposal(userID, jobID, service.SubmitProposalInput{
		CoverLetter: input.CoverLetter,
		Price:       input.Price,
	})
	if err != nil {
		return respondServiceError(c, err, "submit_proposal_failed")
	}
	return c.Status(fiber.StatusCreated).JSON(proposal)
}

func (h *JobHandler) Withdraw(c *fiber.Ctx) error {
	userID, err := httpx.LocalUint(c, "userID")
	if err != nil {
		return httpx.Unauthorized(c, "unauthorized", "Unauthorized")
	}
	jobID, err := parseIDParam(c, "id")
	if err != nil {
		return httpx.BadRequest(c, "invalid_job_id", "Invalid job id")
	}

	if err := h.participationService.WithdrawProposal(userID, jobID); err != nil {
		return respondServiceError(c, err, "withdraw_proposal_failed")
	}
	return c.SendStatus(fiber.StatusNoContent)
}
