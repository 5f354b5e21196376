package handlers

import (
	"context"
	"errors"
	"strconv"

	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"

	"github.com/lumehq/lume-api/internal/models"
	"github.com/lumehq/lume-api/internal/services"
	"github.com/lumehq/lume-api/pkg/dto"
)

type UserHandler struct {
	profileService ProfileServiceInterface
}

func NewUserHandler(profileService ProfileServiceInterface) *UserHandler {
	return &UserHandler{profileService: profileService}
}

func (h *UserHandler) List(c *drift.Context) {
	users, err := h.profileService.All(context.Background())
	if err != nil {
		c.InternalServerError("failed to list users")
		return
	}

	c.JSON(200, toUserResponses(users))
}

func (h *UserHandler) Get(c *drift.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.BadRequest("invalid user id")
		return
	}

	user, err := h.profileService.Find(context.Background(), userID)
	if err != nil {
		c.NotFound("user not found")
		return
	}

	c.JSON(200, dto.NewUserResponse(user))
}

func (h *UserHandler) Search(c *drift.Context) {
	query := c.QueryParam("q")
	pageSize, _ := strconv.Atoi(c.QueryParam("page_size"))

	users, err := h.profileService.Search(context.Background(), query, pageSize)
	if err != nil {
		c.InternalServerError("search failed")
		return
	}

	c.JSON(200, toUserResponses(users))
}

func (h *UserHandler) Invite(c *drift.Context) {
	var req dto.InviteUserRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	if req.Email == "" || req.Name == "" {
		c.BadRequest("email and name are required")
		return
	}
	if req.Role == "" {
		req.Role = models.RoleMember
	}

	user, err := h.profileService.Invite(context.Background(), services.InviteInput{
		Email: req.Email,
		Name:  req.Name,
		Role:  req.Role,
	})
	if err != nil {
		c.InternalServerError(err.Error())
		return
	}

	c.JSON(201, dto.NewUserResponse(user))
}

func (h *UserHandler) Update(c *drift.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.BadRequest("invalid user id")
		return
	}

	var req dto.UpdateUserRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	updated, err := h.profileService.Update(context.Background(), userID, services.ProfileUpdate{
		UserUpdate: models.UserUpdate{Email: req.Email, Name: req.Name},
		Meta:       req.Meta,
		Roles:      req.Roles,
	})
	if err != nil {
		if errors.Is(err, services.ErrTermsNotAccepted) {
			c.BadRequest(err.Error())
			return
		}
		c.InternalServerError(err.Error())
		return
	}

	c.JSON(200, dto.UpdateUserResponse{Updated: updated})
}

func (h *UserHandler) Delete(c *drift.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.BadRequest("invalid user id")
		return
	}

	deleted, err := h.profileService.Destroy(context.Background(), userID)
	if err != nil {
		c.InternalServerError(err.Error())
		return
	}

	c.JSON(200, dto.DeleteUserResponse{Deleted: deleted})
}

func toUserResponses(users []models.User) []dto.UserResponse {
	responses := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		responses = append(responses, dto.NewUserResponse(&users[i]))
	}
	return responses
}
