package handler

import "net/http"

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

type verifyOTPRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

type resetPasswordRequest struct {
	Email       string `json:"email"`
	OTP         string `json:"otp"`
	NewPassword string `json:"newPassword"`
}

func (h *Handler) forgotPassword(w http.ResponseWriter, r *http.Request) {
	var req forgotPasswordRequest
	if err := decode(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Email == "" {
		writeError(w, r, http.StatusBadRequest, "email is required")
		return
	}

	if err := h.reset.RequestCode(r.Context(), req.Email); err != nil {
		respondDomainError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, map[string]string{"message": "OTP sent to your email"})
}

func (h *Handler) verifyOTP(w http.ResponseWriter, r *http.Request) {
	var req verifyOTPRequest
	if err := decode(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.reset.VerifyCode(r.Context(), req.Email, req.OTP); err != nil {
		respondDomainError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, map[string]string{"message": "OTP verified"})
}

func (h *Handler) resetPassword(w http.ResponseWriter, r *http.Request) {
	var req resetPasswordRequest
	if err := decode(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.NewPassword == "" {
		writeError(w, r, http.StatusBadRequest, "new password is required")
		return
	}

	if err := h.reset.ResetPassword(r.Context(), req.Email, req.OTP, req.NewPassword); err != nil {
		respondDomainError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, map[string]string{"message": "password reset successfully"})
}
