package auth

import (
	"errors"
	"net/http"
	"net/mail"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler translates HTTP requests to the core operations. It holds no
// auth logic of its own: every decision comes from the service, guard or
// provisioner.
type Handler struct {
	service     *Service
	guard       *Guard
	provisioner *Provisioner
	log         *zap.Logger
}

func NewHandler(service *Service, guard *Guard, provisioner *Provisioner, log *zap.Logger) *Handler {
	return &Handler{
		service:     service,
		guard:       guard,
		provisioner: provisioner,
		log:         log,
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type createUserRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Role      Role   `json:"role"`
}

type emailRequest struct {
	Email string `json:"email"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email and password required"})
		return
	}

	session, err := h.service.Login(req.Email, req.Password)
	if err != nil {
		h.log.Warn("login rejected",
			zap.String("email", req.Email),
			zap.Error(err))
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":      "login successful",
		"access_token": session.Token,
		"expires_at":   session.ExpiresAt,
		"user":         session.User,
	})
}

func (h *Handler) CreateUser(c *gin.Context) {
	actor, ok := h.authorize(c, CapProvisionAccounts)
	if !ok {
		return
	}

	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if req.Email != "" && !isValidEmail(req.Email) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid email format"})
		return
	}

	created, err := h.provisioner.CreateAccount(actor.Role, req.FirstName, req.LastName, req.Email, req.Role)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":      "user created successfully",
		"created_user": created,
	})
}

func (h *Handler) ListUsers(c *gin.Context) {
	actor, ok := h.authorize(c, CapListUsers)
	if !ok {
		return
	}

	users, err := h.provisioner.ListUsers(actor.Role)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"users": users})
}

func (h *Handler) UnlockUser(c *gin.Context) {
	actor, ok := h.authorize(c, CapUnlockAccounts)
	if !ok {
		return
	}

	var req emailRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email required"})
		return
	}

	if err := h.provisioner.UnlockAccount(actor.Role, req.Email); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "account unlocked successfully"})
}

func (h *Handler) ActivateUser(c *gin.Context) {
	h.setActive(c, true, "account activated successfully")
}

func (h *Handler) DeactivateUser(c *gin.Context) {
	h.setActive(c, false, "account deactivated successfully")
}

func (h *Handler) setActive(c *gin.Context, active bool, message string) {
	actor, ok := h.authorize(c, CapManageAccounts)
	if !ok {
		return
	}

	var req emailRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email required"})
		return
	}

	if err := h.provisioner.SetActive(actor.Role, req.Email, active); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": message})
}

func (h *Handler) ChangePassword(c *gin.Context) {
	actor, ok := h.authorize(c, CapAuthenticated)
	if !ok {
		return
	}

	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.CurrentPassword == "" || req.NewPassword == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "current and new password required"})
		return
	}

	if err := h.service.ChangePassword(actor.UserID, req.CurrentPassword, req.NewPassword); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "password changed successfully"})
}

func (h *Handler) Me(c *gin.Context) {
	actor, ok := h.authorize(c, CapAuthenticated)
	if !ok {
		return
	}

	user, err := h.provisioner.FindUser(actor.UserID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

func (h *Handler) authorize(c *gin.Context, capability Capability) (*ActorContext, bool) {
	actor, err := h.guard.Authorize(TokenFromContext(c), capability)
	if err != nil {
		respondError(c, err)
		return nil, false
	}
	return actor, true
}

// respondError maps the core error taxonomy onto HTTP statuses. Locked and
// deactivated render distinctly; invalid credentials stay uniform.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
	case errors.Is(err, ErrLocked):
		c.JSON(http.StatusForbidden, gin.H{"error": "account is locked, contact management"})
	case errors.Is(err, ErrDeactivated):
		c.JSON(http.StatusForbidden, gin.H{"error": "account is deactivated"})
	case errors.Is(err, ErrInvalidToken):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
	case errors.Is(err, ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
	case errors.Is(err, ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": "already exists"})
	case errors.Is(err, ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing or invalid fields"})
	case errors.Is(err, ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, ErrUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "service unavailable"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func isValidEmail(email string) bool {
	_, err := mail.ParseAddress(email)
	return err == nil
}
