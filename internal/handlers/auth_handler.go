package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"h2grid/internal/middlewares"
	"h2grid/internal/models"
	"h2grid/internal/responses"
	"h2grid/internal/services"
	"h2grid/internal/validation"
)

// CookieConfig controls the session cookie flags.
type CookieConfig struct {
	// Secure is set in production, where the SPA is served cross-site and the
	// cookie needs SameSite=None.
	Secure bool
}

type registerDeveloperRequest struct {
	Name      string `json:"name" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required"`
	AssetType string `json:"asset_type" binding:"required,oneof=plant storage pipeline distribution_hub"`
}

type registerCompanyRequest struct {
	Name        string   `json:"name" binding:"required"`
	Website     string   `json:"website" binding:"required"`
	GSTIN       *string  `json:"GSTIN"`
	AboutUs     string   `json:"about_us" binding:"required"`
	CompanySize int      `json:"company_size" binding:"required,gt=0"`
	Location    string   `json:"location" binding:"required"`
	Email       string   `json:"email" binding:"required,email"`
	Contact     string   `json:"contact" binding:"required"`
	Password    string   `json:"password" binding:"required"`
	AssetType   string   `json:"asset_type" binding:"required,oneof=plant storage pipeline distribution_hub"`
	Latitude    *float64 `json:"latitude" binding:"required,gte=-90,lte=90"`
	Longitude   *float64 `json:"longitude" binding:"required,gte=-180,lte=180"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// accountBinder turns a register body into an account and its password.
type accountBinder func(c *gin.Context) (models.Account, string, error)

func bindDeveloper(c *gin.Context) (models.Account, string, error) {
	var req registerDeveloperRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return nil, "", validation.Describe(err)
	}
	return &models.ProjectDeveloper{
		Name:      req.Name,
		Email:     req.Email,
		AssetType: req.AssetType,
	}, req.Password, nil
}

func bindCompany(c *gin.Context) (models.Account, string, error) {
	var req registerCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return nil, "", validation.Describe(err)
	}
	return &models.Company{
		Name:        req.Name,
		Website:     req.Website,
		GSTIN:       req.GSTIN,
		AboutUs:     req.AboutUs,
		CompanySize: req.CompanySize,
		Location:    req.Location,
		Email:       req.Email,
		Contact:     req.Contact,
		AssetType:   req.AssetType,
		Latitude:    *req.Latitude,
		Longitude:   *req.Longitude,
	}, req.Password, nil
}

// AuthHandler serves register, login, logout and session checks for one
// account kind.
type AuthHandler struct {
	authService *services.AuthService
	cookie      CookieConfig
	bind        accountBinder
}

func NewProjectDeveloperAuthHandler(authService *services.AuthService, cookie CookieConfig) *AuthHandler {
	return &AuthHandler{authService: authService, cookie: cookie, bind: bindDeveloper}
}

func NewCompanyAuthHandler(authService *services.AuthService, cookie CookieConfig) *AuthHandler {
	return &AuthHandler{authService: authService, cookie: cookie, bind: bindCompany}
}

func (h *AuthHandler) Register(c *gin.Context) {
	account, password, err := h.bind(c)
	if err != nil {
		responses.Error(c, err, "Invalid request body")
		return
	}

	token, err := h.authService.Register(c.Request.Context(), account, password)
	if err != nil {
		responses.Error(c, err, "Could not register account")
		return
	}

	h.setToken(c, token)
	responses.Success(c, http.StatusCreated, gin.H{
		"account": account,
		"token":   token,
	}, "Account registered successfully")
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.Error(c, validation.Describe(err), "Invalid request body")
		return
	}

	account, token, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		responses.Error(c, err, "Failed to login")
		return
	}

	h.setToken(c, token)
	responses.Success(c, http.StatusOK, gin.H{
		"account": account,
		"token":   token,
	}, "Logged in successfully")
}

// Logout always clears the cookie, even without a session.
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.authService.Logout(c.Request.Context(), middlewares.TokenFromRequest(c)); err != nil {
		_ = c.Error(err)
	}

	h.clearToken(c)
	responses.Success(c, http.StatusOK, nil, "Logged out successfully")
}

// Exists runs behind middlewares.Session and returns the session's account.
func (h *AuthHandler) Exists(c *gin.Context) {
	account, ok := middlewares.CurrentAccount(c)
	if !ok {
		responses.Fail(c, http.StatusUnauthorized, nil, "Not authenticated")
		return
	}

	responses.Success(c, http.StatusOK, account, "Session is valid")
}

func (h *AuthHandler) setToken(c *gin.Context, token string) {
	h.sameSite(c)
	maxAge := int(h.authService.TokenTTL() / time.Second)
	c.SetCookie(middlewares.TokenCookieName, token, maxAge, "/", "", h.cookie.Secure, true)
}

func (h *AuthHandler) clearToken(c *gin.Context) {
	h.sameSite(c)
	c.SetCookie(middlewares.TokenCookieName, "", -1, "/", "", h.cookie.Secure, true)
}

func (h *AuthHandler) sameSite(c *gin.Context) {
	if h.cookie.Secure {
		c.SetSameSite(http.SameSiteNoneMode)
		return
	}
	c.SetSameSite(http.SameSiteLaxMode)
}
