package handlers

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/study-planner-api/internal/constants"
	"github.com/yukikurage/study-planner-api/internal/dto"
	apierrors "github.com/yukikurage/study-planner-api/internal/errors"
	"github.com/yukikurage/study-planner-api/internal/middleware"
	"github.com/yukikurage/study-planner-api/internal/services"
	"github.com/yukikurage/study-planner-api/internal/utils"
)

// AuthHandler coordinates authentication-related HTTP handlers.
// Register and Login accept both JSON bodies and HTML form posts.
type AuthHandler struct {
	authService *services.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

type registerRequest struct {
	Username string `json:"username" form:"username" binding:"required,max=80"`
	Email    string `json:"email" form:"email" binding:"required,max=120"`
	Password string `json:"password" form:"password" binding:"required"`
}

type loginRequest struct {
	Username string `json:"username" form:"username" binding:"required"`
	Password string `json:"password" form:"password" binding:"required"`
}

// Index sends signed-in users to the dashboard and everyone else to login.
func (h *AuthHandler) Index(c *gin.Context) {
	if sessions.Default(c).Get(constants.ContextKeyUserID) != nil {
		c.Redirect(http.StatusFound, "/dashboard")
		return
	}
	c.Redirect(http.StatusFound, "/login")
}

// RegisterPage renders the registration form.
func (h *AuthHandler) RegisterPage(c *gin.Context) {
	c.HTML(http.StatusOK, "register.html", gin.H{
		"flashes": popFlashes(c),
	})
}

// LoginPage renders the login form.
func (h *AuthHandler) LoginPage(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", gin.H{
		"flashes": popFlashes(c),
	})
}

// Register creates a new user.
func (h *AuthHandler) Register(c *gin.Context) {
	form := isFormPost(c)

	var req registerRequest
	if err := c.ShouldBind(&req); err != nil {
		if form {
			redirectWithFlash(c, "/register", utils.ValidationMessage(err))
			return
		}
		apierrors.BadRequest(c, utils.ValidationMessage(err))
		return
	}

	user, err := h.authService.Register(services.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		if form {
			redirectWithFlash(c, "/register", flashMessage(err))
			return
		}
		respondServiceError(c, err)
		return
	}

	if form {
		redirectWithFlash(c, "/login", "Registration successful")
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"status": statusSuccess,
		"id":     user.ID,
	})
}

// Login authenticates a user and initializes the session.
func (h *AuthHandler) Login(c *gin.Context) {
	form := isFormPost(c)

	var req loginRequest
	if err := c.ShouldBind(&req); err != nil {
		if form {
			redirectWithFlash(c, "/login", utils.ValidationMessage(err))
			return
		}
		apierrors.BadRequest(c, utils.ValidationMessage(err))
		return
	}

	user, err := h.authService.Login(services.LoginInput{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		if form {
			redirectWithFlash(c, "/login", flashMessage(err))
			return
		}
		respondServiceError(c, err)
		return
	}

	session := sessions.Default(c)
	session.Clear()
	session.Set(constants.ContextKeyUserID, user.ID)
	if err := session.Save(); err != nil {
		_ = c.Error(err)
		apierrors.InternalError(c, "Failed to save session")
		return
	}

	if form {
		c.Redirect(http.StatusFound, "/dashboard")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status": statusSuccess,
		"user":   dto.ToUserDTO(*user),
	})
}

// Logout removes the authentication session.
func (h *AuthHandler) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	if err := session.Save(); err != nil {
		_ = c.Error(err)
		apierrors.InternalError(c, "Failed to logout")
		return
	}

	if middleware.WantsHTML(c) {
		c.Redirect(http.StatusFound, "/login")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status": statusSuccess,
	})
}

// GetCurrentUser returns the authenticated user.
func (h *AuthHandler) GetCurrentUser(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	user, err := h.authService.GetUser(userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}

func isFormPost(c *gin.Context) bool {
	switch c.ContentType() {
	case gin.MIMEPOSTForm, gin.MIMEMultipartPOSTForm:
		return true
	default:
		return false
	}
}

func redirectWithFlash(c *gin.Context, location, message string) {
	session := sessions.Default(c)
	session.AddFlash(message)
	if err := session.Save(); err != nil {
		_ = c.Error(err)
	}
	c.Redirect(http.StatusFound, location)
}

func popFlashes(c *gin.Context) []string {
	session := sessions.Default(c)
	raw := session.Flashes()
	if len(raw) == 0 {
		return nil
	}
	if err := session.Save(); err != nil {
		_ = c.Error(err)
	}

	flashes := make([]string, 0, len(raw))
	for _, f := range raw {
		if s, ok := f.(string); ok {
			flashes = append(flashes, s)
		}
	}
	return flashes
}
