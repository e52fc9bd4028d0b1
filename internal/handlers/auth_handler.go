package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"taskpad/internal/models"
	"taskpad/internal/services"
)

type AuthHandler struct {
	otpService  services.OTPService
	userService services.UserService
	authService services.AuthService
}

func NewAuthHandler(otpService services.OTPService, userService services.UserService, authService services.AuthService) *AuthHandler {
	return &AuthHandler{otpService: otpService, userService: userService, authService: authService}
}

// @Summary      Запрос кода входа
// @Description  Отправляет одноразовый код и magic-ссылку на email
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request  body      models.RequestCodeRequest  true  "Email"
// @Success      200      {object}  map[string]interface{}
// @Failure      400      {object}  map[string]string
// @Failure      429      {object}  map[string]string
// @Failure      502      {object}  map[string]string
// @Router       /auth/request-code [post]
func (h *AuthHandler) RequestCode(c *gin.Context) {
	var req models.RequestCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	expiresAt, err := h.otpService.Issue(c.Request.Context(), req.Email)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidEmail):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Please provide a valid email address"})
		case errors.Is(err, services.ErrRateLimited):
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "Too many attempts, please try again later"})
		case errors.Is(err, services.ErrDeliveryFailed):
			c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to send email, please try again"})
		default:
			log.Printf("[auth][request-code] internal error: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "An error occurred while processing your request"})
		}
		return
	}

	// сам код в ответ не попадает — только срок годности
	c.JSON(http.StatusOK, gin.H{
		"message":    "Code sent to your email",
		"expires_at": expiresAt,
	})
}

// @Summary      Проверка кода входа
// @Description  Проверяет код, создаёт пользователя при первом входе и выдаёт сессионный токен
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request  body      models.VerifyCodeRequest  true  "Email и код"
// @Success      200      {object}  map[string]interface{}
// @Failure      400      {object}  map[string]string
// @Failure      401      {object}  map[string]string
// @Failure      429      {object}  map[string]string
// @Router       /auth/verify-code [post]
func (h *AuthHandler) VerifyCode(c *gin.Context) {
	var req models.VerifyCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.otpService.Verify(c.Request.Context(), req.Email, req.Code); err != nil {
		h.verifyError(c, err)
		return
	}

	h.finishLogin(c, req.Email)
}

// @Summary      Вход по magic-ссылке
// @Tags         Auth
// @Produce      json
// @Param        email  query     string  true  "Email"
// @Param        token  query     string  true  "Токен из письма"
// @Success      200    {object}  map[string]interface{}
// @Failure      401    {object}  map[string]string
// @Router       /auth/magic [get]
func (h *AuthHandler) MagicCallback(c *gin.Context) {
	email := c.Query("email")
	token := c.Query("token")

	if err := h.otpService.VerifyMagicLink(c.Request.Context(), email, token); err != nil {
		h.verifyError(c, err)
		return
	}

	h.finishLogin(c, email)
}

func (h *AuthHandler) verifyError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidEmail):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please provide a valid email address"})
	case errors.Is(err, services.ErrBadFormat):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid code format"})
	case errors.Is(err, services.ErrRateLimited):
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "Too many attempts, please request a new code"})
	case errors.Is(err, services.ErrCodeInvalid):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired code"})
	default:
		log.Printf("[auth][verify] internal error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "An unexpected error occurred during login"})
	}
}

// finishLogin — общий хвост обоих способов входа: пользователь + сессия.
func (h *AuthHandler) finishLogin(c *gin.Context, email string) {
	user, isNew, err := h.userService.GetOrCreateByEmail(c.Request.Context(), email)
	if err != nil {
		log.Printf("[auth][login] get or create user failed for %s: %v", email, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "An unexpected error occurred during login"})
		return
	}

	token, err := h.authService.IssueSession(user)
	if err != nil {
		log.Printf("[auth][login] issue session failed for userID=%d: %v", user.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate session token"})
		return
	}

	log.Printf("[auth][login] success userID=%d is_new=%v", user.ID, isNew)
	c.JSON(http.StatusOK, gin.H{
		"token":       token,
		"is_new_user": isNew,
		"onboarded":   user.Onboarded,
		"email":       user.Email,
	})
}
