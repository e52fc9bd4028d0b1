package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"taskpad/internal/models"
	"taskpad/internal/services"
)

type UserHandler struct {
	userService services.UserService
}

func NewUserHandler(userService services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// @Summary      Профиль текущего пользователя
// @Tags         Profile
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  models.User
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /profile [get]
func (h *UserHandler) GetProfile(c *gin.Context) {
	userID, ok := ctxUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	user, err := h.userService.GetByID(c.Request.Context(), userID)
	if err != nil {
		log.Printf("[profile][get] failed for userID=%d: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch profile"})
		return
	}
	if user == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User profile not found"})
		return
	}
	c.JSON(http.StatusOK, user)
}

// @Summary      Обновление профиля (онбординг)
// @Description  Сохраняет имя и название рабочего пространства, помечает онбординг пройденным
// @Tags         Profile
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      models.UpdateProfileRequest  true  "Профиль"
// @Success      200      {object}  models.User
// @Failure      400      {object}  map[string]string
// @Failure      401      {object}  map[string]string
// @Router       /profile [put]
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	userID, ok := ctxUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	var req models.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Full name and workspace name are required"})
		return
	}

	user, err := h.userService.UpdateProfile(c.Request.Context(), userID, req.FullName, req.WorkspaceName)
	if err != nil {
		log.Printf("[profile][update] failed for userID=%d: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
		return
	}
	c.JSON(http.StatusOK, user)
}
