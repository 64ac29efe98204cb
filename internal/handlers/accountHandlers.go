package handlers

import (
	"net/http"

	"skilltwin/internal/models"
	"skilltwin/internal/services"
	"skilltwin/internal/utils"
)

// AccountHandler serves register, login, profile and password recovery
// for one account kind. The user and admin route trees each get their own.
type AccountHandler struct {
	kind            models.AccountKind
	accountService  services.AccountService
	recoveryService services.RecoveryService
}

func NewAccountHandler(kind models.AccountKind, accountService services.AccountService, recoveryService services.RecoveryService) *AccountHandler {
	return &AccountHandler{
		kind:            kind,
		accountService:  accountService,
		recoveryService: recoveryService,
	}
}

// authPayload keys the account under "user" or "admin" to match the route tree.
func (h *AccountHandler) authPayload(result *models.AuthResult) map[string]interface{} {
	return map[string]interface{}{
		"token":        result.Token,
		string(h.kind): result.Account,
	}
}

func (h *AccountHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := utils.DecodeAndValidate(w, r, &req); err != nil {
		utils.WriteError(w, err)
		return
	}

	result, err := h.accountService.Register(r.Context(), h.kind, &req)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, h.authPayload(result))
}

func (h *AccountHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := utils.DecodeAndValidate(w, r, &req); err != nil {
		utils.WriteError(w, err)
		return
	}

	result, err := h.accountService.Login(r.Context(), h.kind, &req)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, h.authPayload(result))
}

func (h *AccountHandler) Profile(w http.ResponseWriter, r *http.Request) {
	id, err := utils.GetUserIDFromContext(r)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	account, err := h.accountService.Profile(r.Context(), h.kind, id)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, account)
}

func (h *AccountHandler) CheckEmail(w http.ResponseWriter, r *http.Request) {
	var req models.CheckEmailRequest
	if err := utils.DecodeAndValidate(w, r, &req); err != nil {
		utils.WriteError(w, err)
		return
	}

	exists, err := h.accountService.EmailExists(r.Context(), h.kind, req.Email)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]bool{"exists": exists})
}

func (h *AccountHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req models.ForgotPasswordRequest
	if err := utils.DecodeAndValidate(w, r, &req); err != nil {
		utils.WriteError(w, err)
		return
	}

	ack, err := h.recoveryService.Initiate(r.Context(), h.kind, req.Email)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, ack)
}

func (h *AccountHandler) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	var req models.VerifyOTPRequest
	if err := utils.DecodeAndValidate(w, r, &req); err != nil {
		utils.WriteError(w, err)
		return
	}

	result, err := h.recoveryService.Verify(r.Context(), h.kind, req.Email, req.OTP)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, result)
}

func (h *AccountHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req models.ResetPasswordRequest
	if err := utils.DecodeAndValidate(w, r, &req); err != nil {
		utils.WriteError(w, err)
		return
	}

	if err := h.recoveryService.Reset(r.Context(), h.kind, req.Email, req.ResetToken, req.NewPassword); err != nil {
		utils.WriteError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "Password reset successfully"})
}
