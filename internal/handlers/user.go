package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/actionanand/Ctrl-Alt-Del/internal/avatar"
	"github.com/actionanand/Ctrl-Alt-Del/internal/constants"
	"github.com/actionanand/Ctrl-Alt-Del/internal/dto"
	apierrors "github.com/actionanand/Ctrl-Alt-Del/internal/errors"
	"github.com/actionanand/Ctrl-Alt-Del/internal/middleware"
	"github.com/actionanand/Ctrl-Alt-Del/internal/services"
	"github.com/actionanand/Ctrl-Alt-Del/internal/validation"
	"github.com/gin-gonic/gin"
)

const (
	msgEmailTaken      = "Email already exists!"
	msgUserNotFound    = "User not found in Database, please sign up first!"
	msgInvalidPassword = "Please check your password, Try again!"
	msgAvatarUploaded  = "Avatar uploaded successfully!"
	msgAvatarRemoved   = "Avatar removed successfully!"
	msgNoAvatar        = "No image found in database!"
	msgInvalidBody     = "Invalid request body"
)

// UserHandler serves the account, session and avatar routes.
type UserHandler struct {
	userService  *services.UserService
	tokenService *services.TokenService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService *services.UserService, tokenService *services.TokenService) *UserHandler {
	return &UserHandler{
		userService:  userService,
		tokenService: tokenService,
	}
}

// Signup registers a new user and returns it with its first token.
func (h *UserHandler) Signup(c *gin.Context) {
	type SignupRequest struct {
		Name     string          `json:"name"`
		Email    string          `json:"email"`
		Password string          `json:"password"`
		Age      json.RawMessage `json:"age"`
	}

	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, msgInvalidBody)
		return
	}

	var age *int
	if len(req.Age) > 0 && string(req.Age) != "null" {
		value, err := validation.DecodeAge(req.Age)
		if err != nil {
			respondUserError(c, err)
			return
		}
		age = &value
	}

	user, token, err := h.userService.Create(c.Request.Context(), services.SignupInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Age:      age,
	})
	if err != nil {
		respondUserError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.AuthResponse{
		User:  dto.ToUserDTO(*user),
		Token: token,
	})
}

// Login checks the credentials and issues a new token.
func (h *UserHandler) Login(c *gin.Context) {
	type LoginRequest struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.Error(c, http.StatusBadRequest, msgInvalidBody)
		return
	}

	user, token, err := h.userService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUserNotFound):
			apierrors.Error(c, http.StatusBadRequest, msgUserNotFound)
		case errors.Is(err, services.ErrInvalidPassword):
			apierrors.Error(c, http.StatusBadRequest, msgInvalidPassword)
		default:
			apierrors.Error(c, http.StatusBadRequest, apierrors.MessageInternal)
		}
		return
	}

	c.JSON(http.StatusOK, dto.AuthResponse{
		User:  dto.ToUserDTO(*user),
		Token: token,
	})
}

// Me returns the authenticated user.
func (h *UserHandler) Me(c *gin.Context) {
	user, ok := middleware.GetCurrentUser(c)
	if !ok {
		apierrors.Unauthorized(c)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}

// Logout revokes the token the request was made with.
func (h *UserHandler) Logout(c *gin.Context) {
	user, ok := middleware.GetCurrentUser(c)
	if !ok {
		apierrors.Unauthorized(c)
		return
	}
	token, _ := middleware.GetCurrentToken(c)

	if err := h.tokenService.RevokeOne(c.Request.Context(), user.ID, token); err != nil {
		apierrors.Status(c, http.StatusInternalServerError)
		return
	}

	c.Status(http.StatusOK)
}

// LogoutAll revokes every token of the authenticated user.
func (h *UserHandler) LogoutAll(c *gin.Context) {
	user, ok := middleware.GetCurrentUser(c)
	if !ok {
		apierrors.Unauthorized(c)
		return
	}

	if err := h.tokenService.RevokeAll(c.Request.Context(), user.ID); err != nil {
		apierrors.Status(c, http.StatusInternalServerError)
		return
	}

	c.Status(http.StatusOK)
}

// UpdateMe applies a partial profile update.
func (h *UserHandler) UpdateMe(c *gin.Context) {
	user, ok := middleware.GetCurrentUser(c)
	if !ok {
		apierrors.Unauthorized(c)
		return
	}

	var patch map[string]json.RawMessage
	if err := c.ShouldBindJSON(&patch); err != nil {
		apierrors.BadRequest(c, apierrors.MessageInvalidUpdate)
		return
	}

	updated, err := h.userService.Update(c.Request.Context(), user, patch)
	if err != nil {
		respondUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*updated))
}

// DeleteMe removes the authenticated user together with its tasks.
func (h *UserHandler) DeleteMe(c *gin.Context) {
	user, ok := middleware.GetCurrentUser(c)
	if !ok {
		apierrors.Unauthorized(c)
		return
	}

	removed, err := h.userService.Delete(c.Request.Context(), user)
	if err != nil {
		respondUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*removed))
}

// UploadAvatar stores the multipart image as the user's avatar.
func (h *UserHandler) UploadAvatar(c *gin.Context) {
	user, ok := middleware.GetCurrentUser(c)
	if !ok {
		apierrors.Unauthorized(c)
		return
	}

	header, err := c.FormFile(constants.AvatarFormField)
	if err != nil {
		apierrors.BadRequest(c, avatar.ErrMissingFile.Message)
		return
	}

	if err := avatar.CheckUpload(header.Filename, header.Size); err != nil {
		respondUserError(c, err)
		return
	}

	file, err := header.Open()
	if err != nil {
		apierrors.BadRequest(c, avatar.ErrMissingFile.Message)
		return
	}
	defer file.Close()

	if err := h.userService.SetAvatar(c.Request.Context(), user, header.Filename, header.Size, file); err != nil {
		respondUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: msgAvatarUploaded})
}

// DeleteAvatar clears the user's avatar.
func (h *UserHandler) DeleteAvatar(c *gin.Context) {
	user, ok := middleware.GetCurrentUser(c)
	if !ok {
		apierrors.Unauthorized(c)
		return
	}

	if err := h.userService.ClearAvatar(c.Request.Context(), user); err != nil {
		respondUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: msgAvatarRemoved})
}

// GetAvatar serves a user's avatar as PNG. No authentication is required.
func (h *UserHandler) GetAvatar(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, msgNoAvatar)
		return
	}

	image, err := h.userService.GetAvatar(c.Request.Context(), userID)
	if err != nil {
		respondUserError(c, err)
		return
	}

	c.Data(http.StatusOK, "image/png", image)
}

func respondUserError(c *gin.Context, err error) {
	var validationErr *validation.Error
	var rejectErr *avatar.RejectError

	switch {
	case errors.As(err, &validationErr):
		apierrors.BadRequest(c, validationErr.Message)
	case errors.As(err, &rejectErr):
		apierrors.BadRequest(c, rejectErr.Message)
	case errors.Is(err, services.ErrEmailTaken):
		apierrors.BadRequest(c, msgEmailTaken)
	case errors.Is(err, services.ErrInvalidUpdate):
		apierrors.BadRequest(c, apierrors.MessageInvalidUpdate)
	case errors.Is(err, services.ErrAvatarNotFound):
		apierrors.BadRequest(c, msgNoAvatar)
	case errors.Is(err, services.ErrUserNotFound):
		apierrors.BadRequest(c, msgUserNotFound)
	default:
		apierrors.InternalError(c)
	}
}
