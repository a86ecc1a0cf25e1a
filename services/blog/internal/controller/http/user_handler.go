package http

import (
	"net/http"

	"blog-api/pkg/logger"
	"blog-api/services/blog/internal/serializer"
	"blog-api/services/blog/internal/usecase"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userUseCase usecase.UserUseCase
	media       serializer.MediaResolver
	logger      *logger.Logger
}

func NewUserHandler(userUseCase usecase.UserUseCase, media serializer.MediaResolver, logger *logger.Logger) *UserHandler {
	return &UserHandler{
		userUseCase: userUseCase,
		media:       media,
		logger:      logger,
	}
}

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email,max=254"`
	Username string `json:"username" binding:"omitempty,max=100"`
	FullName string `json:"full_name" binding:"omitempty,max=100"`
	Password string `json:"password" binding:"required,min=8"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type UpdateUserRequest struct {
	Email    *string `json:"email" binding:"omitempty,email,max=254"`
	Username *string `json:"username" binding:"omitempty,max=100"`
	FullName *string `json:"full_name" binding:"omitempty,max=100"`
	Password *string `json:"password" binding:"omitempty,min=8"`
}

type ProfileRequest struct {
	Image     *string `json:"image" binding:"omitempty,max=255"`
	FullName  *string `json:"full_name" binding:"omitempty,max=100"`
	Bio       *string `json:"bio"`
	About     *string `json:"about"`
	Author    *bool   `json:"author"`
	Country   *string `json:"country" binding:"omitempty,max=100"`
	Github    *string `json:"github" binding:"omitempty,max=100"`
	Instagram *string `json:"instagram" binding:"omitempty,max=100"`
}

type AuthResponse struct {
	Token string                   `json:"token"`
	User  *serializer.UserResponse `json:"user"`
}

// Register godoc
// @Summary      Register a new user
// @Description  Username and full name default to the local part of the email. A profile is created with the user.
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        request body RegisterRequest true "Registration data"
// @Success      201  {object}  AuthResponse
// @Failure      400  {object}  map[string][]string
// @Failure      409  {object}  map[string]string
// @Router       /users [post]
func (h *UserHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if !bindJSON(c, &req) {
		return
	}

	user, token, err := h.userUseCase.Register(c.Request.Context(), usecase.RegisterInput{
		Email:    req.Email,
		Username: req.Username,
		FullName: req.FullName,
		Password: req.Password,
	})
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, AuthResponse{Token: token, User: serializer.User(user)})
}

// Login godoc
// @Summary      Login user
// @Description  Authenticate user and return JWT token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body LoginRequest true "Login credentials"
// @Success      200  {object}  AuthResponse
// @Failure      400  {object}  map[string][]string
// @Failure      401  {object}  map[string]string
// @Router       /auth/login [post]
func (h *UserHandler) Login(c *gin.Context) {
	var req LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	user, token, err := h.userUseCase.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, AuthResponse{Token: token, User: serializer.User(user)})
}

// Me godoc
// @Summary      Get current user info
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  serializer.UserResponse
// @Failure      401  {object}  map[string]string
// @Router       /me [get]
func (h *UserHandler) Me(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	user, err := h.userUseCase.GetUser(c.Request.Context(), userID)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, serializer.User(user))
}

// GetUser godoc
// @Summary      Get user by ID
// @Tags         users
// @Produce      json
// @Param        id path string true "User ID"
// @Success      200  {object}  serializer.UserResponse
// @Failure      404  {object}  map[string]string
// @Router       /users/{id} [get]
func (h *UserHandler) GetUser(c *gin.Context) {
	user, err := h.userUseCase.GetUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, serializer.User(user))
}

// UpdateUser godoc
// @Summary      Update user
// @Description  Users can only change their own account. The profile is saved again with the user.
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "User ID"
// @Param        request body UpdateUserRequest true "Fields to change"
// @Success      200  {object}  serializer.UserResponse
// @Failure      400  {object}  map[string][]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /users/{id} [patch]
func (h *UserHandler) UpdateUser(c *gin.Context) {
	id, ok := h.self(c)
	if !ok {
		return
	}

	var req UpdateUserRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.userUseCase.UpdateUser(c.Request.Context(), id, usecase.UpdateUserInput{
		Email:    req.Email,
		Username: req.Username,
		FullName: req.FullName,
		Password: req.Password,
	})
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, serializer.User(user))
}

// DeleteUser godoc
// @Summary      Delete user
// @Description  Deletes the account with its profile, posts and engagement.
// @Tags         users
// @Security     BearerAuth
// @Param        id path string true "User ID"
// @Success      204
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /users/{id} [delete]
func (h *UserHandler) DeleteUser(c *gin.Context) {
	id, ok := h.self(c)
	if !ok {
		return
	}

	if err := h.userUseCase.DeleteUser(c.Request.Context(), id); err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// GetProfile godoc
// @Summary      Get a user's profile
// @Tags         profiles
// @Produce      json
// @Param        id path string true "User ID"
// @Success      200  {object}  serializer.ProfileResponse
// @Failure      404  {object}  map[string]string
// @Router       /users/{id}/profile [get]
func (h *UserHandler) GetProfile(c *gin.Context) {
	profile, user, err := h.userUseCase.GetProfile(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, serializer.Profile(profile, user, h.media))
}

// UpdateProfile godoc
// @Summary      Update own profile
// @Tags         profiles
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body ProfileRequest true "Fields to change"
// @Success      200  {object}  serializer.ProfileResponse
// @Failure      400  {object}  map[string][]string
// @Failure      401  {object}  map[string]string
// @Router       /me/profile [patch]
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req ProfileRequest
	if !bindJSON(c, &req) {
		return
	}

	profile, user, err := h.userUseCase.UpdateProfile(c.Request.Context(), userID, usecase.ProfileInput{
		Image:     req.Image,
		FullName:  req.FullName,
		Bio:       req.Bio,
		About:     req.About,
		Author:    req.Author,
		Country:   req.Country,
		Github:    req.Github,
		Instagram: req.Instagram,
	})
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, serializer.Profile(profile, user, h.media))
}

// self checks that the path user is the caller.
func (h *UserHandler) self(c *gin.Context) (string, bool) {
	userID, ok := currentUser(c)
	if !ok {
		return "", false
	}
	if id := c.Param("id"); id != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "You can only change your own account"})
		return "", false
	}
	return userID, true
}
