package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	googleOAuth2 "google.golang.org/api/oauth2/v2"
	"google.golang.org/api/option"

	"github.com/eventhub-app/backend/internal/config"
	"github.com/eventhub-app/backend/internal/dto"
	"github.com/eventhub-app/backend/internal/middleware"
	"github.com/eventhub-app/backend/internal/models"
	"github.com/eventhub-app/backend/internal/store"
	"github.com/eventhub-app/backend/internal/utils"
)

// GoogleAuthHandler handles Google OAuth sign-in
type GoogleAuthHandler struct {
	store        store.Store
	oauth2Config *oauth2.Config
	cfg          *config.Config
}

// NewGoogleAuthHandler creates a new GoogleAuthHandler instance
func NewGoogleAuthHandler(st store.Store, cfg *config.Config) *GoogleAuthHandler {
	oauth2Config := &oauth2.Config{
		ClientID:     cfg.GoogleOAuth.ClientID,
		ClientSecret: cfg.GoogleOAuth.ClientSecret,
		RedirectURL:  cfg.GoogleOAuth.RedirectURL,
		Scopes: []string{
			"https://www.googleapis.com/auth/userinfo.email",
			"https://www.googleapis.com/auth/userinfo.profile",
		},
		Endpoint: google.Endpoint,
	}

	return &GoogleAuthHandler{
		store:        st,
		oauth2Config: oauth2Config,
		cfg:          cfg,
	}
}

// GoogleLogin initiates the Google OAuth flow
// @Summary Google OAuth login
// @Description Returns the Google authorization URL to redirect the user to
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]string
// @Router /auth/google/login [get]
func (h *GoogleAuthHandler) GoogleLogin(w http.ResponseWriter, r *http.Request) {
	// State parameter for CSRF protection
	state := uuid.New().String()

	authURL := h.oauth2Config.AuthCodeURL(state, oauth2.AccessTypeOffline)

	utils.WriteJSONResponse(w, http.StatusOK, map[string]string{
		"auth_url": authURL,
		"state":    state,
	})
}

// GoogleCallback handles the Google OAuth callback
// @Summary Google OAuth callback
// @Description Exchanges the authorization code, provisioning the account on first sign-in
// @Tags auth
// @Produce json
// @Param code query string true "Authorization code from Google"
// @Param state query string false "State parameter"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /auth/google/callback [get]
func (h *GoogleAuthHandler) GoogleCallback(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("code")
	if code == "" {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", "Authorization code is required")
		return
	}

	ctx := r.Context()
	token, err := h.oauth2Config.Exchange(ctx, code)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "Invalid authorization code")
		return
	}

	userInfo, err := h.getGoogleUserInfo(ctx, token.AccessToken)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Internal server error", "Failed to get user info")
		return
	}

	user, err := h.store.Users().GetByEmail(ctx, userInfo.Email)
	if errors.Is(err, store.ErrNotFound) {
		user, err = h.createGoogleUser(ctx, userInfo)
	}
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Internal server error", err.Error())
		return
	}

	jwtToken, err := middleware.GenerateToken(user.ID, user.Email, &h.cfg.JWT)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Internal server error", "Failed to generate token")
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.LoginResponse{
		Message: "Login successful",
		User: dto.UserSummary{
			Email:    user.Email,
			Username: user.Username,
		},
		AccessToken: jwtToken,
	})
}

// getGoogleUserInfo fetches user information from Google
func (h *GoogleAuthHandler) getGoogleUserInfo(ctx context.Context, accessToken string) (*dto.GoogleUserInfo, error) {
	service, err := googleOAuth2.NewService(ctx, option.WithTokenSource(oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken: accessToken,
	})))
	if err != nil {
		return nil, err
	}

	userInfo, err := service.Userinfo.Get().Do()
	if err != nil {
		return nil, err
	}

	verified := false
	if userInfo.VerifiedEmail != nil {
		verified = *userInfo.VerifiedEmail
	}

	return &dto.GoogleUserInfo{
		ID:       userInfo.Id,
		Email:    userInfo.Email,
		Name:     userInfo.Name,
		Picture:  userInfo.Picture,
		Verified: verified,
	}, nil
}

// createGoogleUser provisions an account on first Google sign-in. The
// password hash is a random secret the user never knows, so password login
// stays impossible until they set one.
func (h *GoogleAuthHandler) createGoogleUser(ctx context.Context, googleUser *dto.GoogleUserInfo) (*models.User, error) {
	username := googleUser.Email
	if at := strings.Index(username, "@"); at > 0 {
		username = username[:at]
	}
	// Avoid a username collision with an unrelated account.
	if _, err := h.store.Users().GetByUsername(ctx, username); err == nil {
		username = username + "-" + uuid.New().String()[:8]
	}

	passwordHash, err := hashPassword(uuid.New().String())
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := &models.User{
		ID:           uuid.New(),
		Username:     username,
		Email:        googleUser.Email,
		PasswordHash: passwordHash,
		IsApproved:   googleUser.Verified,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := h.store.Users().Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
