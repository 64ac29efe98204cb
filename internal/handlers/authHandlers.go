package handlers

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/markbates/goth/gothic"
	"github.com/rs/zerolog/log"

	"skilltwin/internal/apperrors"
	"skilltwin/internal/services"
	"skilltwin/internal/utils"
)

// AuthHandler runs the social login round trip for end users.
type AuthHandler struct {
	authService  services.AuthService
	frontendURL  string
	secureCookie bool
	enabled      bool
}

func NewAuthHandler(authService services.AuthService, frontendURL string, secureCookie, enabled bool) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		frontendURL:  strings.TrimRight(frontendURL, "/"),
		secureCookie: secureCookie,
		enabled:      enabled,
	}
}

func (a *AuthHandler) ProviderAuth(w http.ResponseWriter, r *http.Request) {
	if !a.enabled {
		utils.WriteError(w, apperrors.Unavailable("Social login is not configured"))
		return
	}

	provider := mux.Vars(r)["provider"]
	if provider == "" {
		utils.WriteError(w, apperrors.Validation("Provider not specified"))
		return
	}

	log.Info().Str("provider", provider).Msg("Initiating authentication with provider")
	gothic.BeginAuthHandler(w, r)
}

func (a *AuthHandler) ProviderCallback(w http.ResponseWriter, r *http.Request) {
	if !a.enabled {
		utils.WriteError(w, apperrors.Unavailable("Social login is not configured"))
		return
	}

	providerUser, err := gothic.CompleteUserAuth(w, r)
	if err != nil {
		log.Error().Err(err).Msg("Error completing user authentication")
		http.Redirect(w, r, a.frontendURL+"/auth/error", http.StatusTemporaryRedirect)
		return
	}

	token, err := a.authService.HandleLogin(r.Context(), providerUser)
	if err != nil {
		log.Error().Err(err).Str("provider", providerUser.Provider).Msg("Error handling login after provider authentication")
		http.Redirect(w, r, a.frontendURL+"/auth/error", http.StatusTemporaryRedirect)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     "jwt",
		Value:    token,
		HttpOnly: true,
		Secure:   a.secureCookie,
		SameSite: http.SameSiteLaxMode,
		Path:     "/",
	})
	log.Info().Str("provider", providerUser.Provider).Msg("Social login completed")

	http.Redirect(w, r, a.frontendURL+"/auth/success", http.StatusTemporaryRedirect)
}
