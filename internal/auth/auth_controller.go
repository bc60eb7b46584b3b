package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/roborush/portal/config"
	"github.com/roborush/portal/internal/common"
	"github.com/roborush/portal/internal/user"
	"github.com/roborush/portal/pkg/responses"
	"github.com/roborush/portal/pkg/token"
	"github.com/roborush/portal/utils"
)

// AuthController handles signup, login and current-user lookups.
type AuthController struct {
	repo      AuthRepository
	appConfig *config.Config
}

func NewAuthController(repo AuthRepository, appConfig *config.Config) *AuthController {
	return &AuthController{repo: repo, appConfig: appConfig}
}

// Register godoc
// @Summary Register a new participant account
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body RegisterRequest true "Signup data"
// @Success 201 {object} responses.SuccessResponse{data=AuthResponse}
// @Failure 400 {object} responses.ErrorResponse "Invalid input"
// @Failure 409 {object} responses.ErrorResponse "Email already registered"
// @Router /auth/signup [post]
func (ac *AuthController) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	existing, err := ac.repo.GetUserByEmail(req.Email)
	if err != nil {
		responses.InternalServerError(c, "Failed to check existing users")
		return
	}
	if existing != nil {
		responses.SendError(c, http.StatusConflict, "User already exists")
		return
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		responses.InternalServerError(c, "Failed to hash password")
		return
	}

	u := user.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         user.RoleParticipant,
		PhoneNumber:  req.PhoneNumber,
		RollNumber:   req.RollNumber,
		Branch:       req.Branch,
	}
	if err := ac.repo.CreateUser(&u); err != nil {
		// Unique index on email closes the check-then-create race.
		responses.SendError(c, http.StatusConflict, "User already exists")
		return
	}

	tok, err := token.GenerateJWT(u.ID, u.Role, ac.appConfig.JWT.Secret, ac.appConfig.JWT.ExpiryDays)
	if err != nil {
		responses.InternalServerError(c, "Failed to issue token")
		return
	}

	responses.SendSuccess(c, http.StatusCreated, "Account created", AuthResponse{
		Token: tok,
		User:  FilterUserRecord(&u),
	})
}

// Login godoc
// @Summary Log in with email and password
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body LoginRequest true "Credentials"
// @Success 200 {object} responses.SuccessResponse{data=AuthResponse}
// @Failure 401 {object} responses.ErrorResponse "Invalid email or password"
// @Router /auth/login [post]
func (ac *AuthController) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	u, err := ac.repo.GetUserByEmail(req.Email)
	if err != nil {
		responses.InternalServerError(c, "Failed to look up user")
		return
	}
	if u == nil || !utils.CheckPassword(u.PasswordHash, req.Password) {
		responses.Unauthorized(c, "Invalid email or password")
		return
	}

	tok, err := token.GenerateJWT(u.ID, u.Role, ac.appConfig.JWT.Secret, ac.appConfig.JWT.ExpiryDays)
	if err != nil {
		responses.InternalServerError(c, "Failed to issue token")
		return
	}

	responses.SendSuccess(c, http.StatusOK, "Logged in", AuthResponse{
		Token: tok,
		User:  FilterUserRecord(u),
	})
}

// Me godoc
// @Summary Get the current authenticated user
// @Tags Auth
// @Produce json
// @Success 200 {object} responses.SuccessResponse{data=UserResponse}
// @Failure 401 {object} responses.ErrorResponse
// @Security ApiKeyAuth
// @Router /auth/me [get]
func (ac *AuthController) Me(c *gin.Context) {
	userID, err := common.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, err.Error())
		return
	}

	u, err := ac.repo.GetUserByID(userID)
	if err != nil {
		responses.InternalServerError(c, "Failed to look up user")
		return
	}
	if u == nil {
		responses.NotFound(c, "User")
		return
	}

	responses.SendSuccess(c, http.StatusOK, "", FilterUserRecord(u))
}
