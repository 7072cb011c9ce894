package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/somapoll/internal/common"
	"github.com/dmitrijs2005/somapoll/internal/server/catalog"
	"github.com/dmitrijs2005/somapoll/internal/server/users"
	"github.com/dmitrijs2005/somapoll/internal/shared"
)

type userPayload struct {
	ID              int64   `json:"id"`
	Username        string  `json:"username"`
	Email           string  `json:"email"`
	FullName        string  `json:"full_name"`
	ProfilePicture  *string `json:"profile_picture"`
	Bio             string  `json:"bio"`
	PrivacySettings *string `json:"privacy_settings"`
	Structure       string  `json:"structure"`
	Facebook        *string `json:"user_facebook"`
	Instagram       *string `json:"user_instagram"`
	XTwitter        *string `json:"user_x_twitter"`
	Threads         *string `json:"user_threads"`
	YouTube         *string `json:"user_youtube"`
	LinkedIn        *string `json:"user_linkedin"`
	TikTok          *string `json:"user_tiktok"`
	CreatedAt       string  `json:"created_at"`
	UpdatedAt       string  `json:"updated_at"`
	IsEmailVerified bool    `json:"is_email_verified"`
}

func newUserPayload(u *users.User) userPayload {
	return userPayload{
		ID:              u.ID,
		Username:        u.Username,
		Email:           u.Email,
		FullName:        u.FullName,
		Bio:             u.Bio,
		Structure:       u.Structure,
		CreatedAt:       u.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:       u.UpdatedAt.UTC().Format(time.RFC3339),
		IsEmailVerified: u.EmailVerified,
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Username string `json:"username"`
	Message  string `json:"message"`
	JWT      string `json:"jwt"`
}

type otpChallenge struct {
	OTPRequired bool   `json:"otp_required"`
	Email       string `json:"email"`
	Message     string `json:"message"`
}

type signupRequest struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	FullName  string `json:"full_name"`
	Structure string `json:"structure"`
	Resend    bool   `json:"resend"`
}

type signupResponse struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Message  string `json:"message"`
}

type emailRequest struct {
	Email string `json:"email"`
}

type checkRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

type otpRequest struct {
	Email   string `json:"email"`
	OTPCode string `json:"otp_code"`
}

type candidatesResponse struct {
	Message    string              `json:"message"`
	Candidates []catalog.Candidate `json:"candidates"`
	Count      int                 `json:"count"`
}

type partiesResponse struct {
	Message string          `json:"message"`
	Parties []catalog.Party `json:"parties"`
	Count   int             `json:"count"`
}

func (s *Server) CurrentUser(w http.ResponseWriter, r *http.Request) {
	u := userFromContext(r.Context())
	if u == nil {
		writeJSON(w, http.StatusUnauthorized, detailBody{Detail: "Unauthenticated!"})
		return
	}
	writeJSON(w, http.StatusOK, newUserPayload(u))
}

func (s *Server) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decode(w, r, &req) {
		return
	}

	res, err := s.users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, shared.ErrorInvalidLoginPassword):
			writeError(w, http.StatusUnauthorized, "Invalid credentials")
		case errors.Is(err, common.ErrRegistrationPending):
			writeError(w, http.StatusForbidden, "Registration not completed")
		default:
			s.logger.Error(r.Context(), "login failed", "error", err)
			writeError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	if res.OTPRequired {
		writeJSON(w, http.StatusOK, otpChallenge{
			OTPRequired: true,
			Email:       res.User.Email,
			Message:     "OTP sent to your email",
		})
		return
	}

	s.setSessionCookie(w, res.Token)
	writeJSON(w, http.StatusOK, loginResponse{
		Username: res.User.Username,
		Message:  "Login successful",
		JWT:      res.Token,
	})
}

// Signup registers an account, or with resend set re-issues the pending
// one-time code.
func (s *Server) Signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if !decode(w, r, &req) {
		return
	}

	if req.Resend {
		if err := s.users.ResendOTP(r.Context(), req.Email); err != nil {
			writeError(w, http.StatusBadRequest, "Unable to resend OTP")
			return
		}
		writeJSON(w, http.StatusOK, messageBody{Message: "OTP resent"})
		return
	}

	u, err := s.users.Signup(r.Context(), users.SignupInput{
		Username:  req.Username,
		Email:     req.Email,
		Password:  req.Password,
		FullName:  req.FullName,
		Structure: req.Structure,
	})
	if err != nil {
		switch {
		case errors.Is(err, shared.ErrorValidation):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, common.ErrUserExists):
			writeError(w, http.StatusConflict, "Username or email already exists")
		default:
			s.logger.Error(r.Context(), "signup failed", "error", err)
			writeError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	writeJSON(w, http.StatusCreated, signupResponse{
		Username: u.Username,
		Email:    u.Email,
		Message:  "User registered",
	})
}

func (s *Server) VerifySignup(w http.ResponseWriter, r *http.Request) {
	var req emailRequest
	if !decode(w, r, &req) {
		return
	}
	if err := s.users.VerifySignup(r.Context(), req.Email); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			writeError(w, http.StatusNotFound, "User not found")
			return
		}
		s.logger.Error(r.Context(), "verify signup failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeJSON(w, http.StatusOK, messageBody{Message: "Signup verified"})
}

func (s *Server) CleanupSignup(w http.ResponseWriter, r *http.Request) {
	var req emailRequest
	if !decode(w, r, &req) {
		return
	}
	if err := s.users.CleanupSignup(r.Context(), req.Email); err != nil {
		s.logger.Error(r.Context(), "cleanup signup failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeJSON(w, http.StatusOK, messageBody{Message: "Signup cleaned up"})
}

func (s *Server) CheckExistingUser(w http.ResponseWriter, r *http.Request) {
	var req checkRequest
	if !decode(w, r, &req) {
		return
	}
	problems, err := s.users.CheckExisting(r.Context(), req.Username, req.Email)
	if err != nil {
		s.logger.Error(r.Context(), "check existing user failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if len(problems) > 0 {
		writeJSON(w, http.StatusConflict, errorsBody{Errors: problems})
		return
	}
	writeJSON(w, http.StatusOK, messageBody{Message: "Username and email are available"})
}

func (s *Server) Logout(w http.ResponseWriter, _ *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     common.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	writeJSON(w, http.StatusOK, messageBody{Message: "success"})
}

func (s *Server) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	var req otpRequest
	if !decode(w, r, &req) {
		return
	}
	res, err := s.users.VerifyOTP(r.Context(), req.Email, req.OTPCode)
	if err != nil {
		if !errors.Is(err, common.ErrInvalidOTP) {
			s.logger.Error(r.Context(), "verify otp failed", "error", err)
		}
		writeError(w, http.StatusBadRequest, "Invalid or expired OTP")
		return
	}
	s.setSessionCookie(w, res.Token)
	writeJSON(w, http.StatusOK, struct {
		Message string `json:"message"`
		JWT     string `json:"jwt"`
	}{Message: "OTP verified", JWT: res.Token})
}

func (s *Server) ListCandidates(w http.ResponseWriter, _ *http.Request) {
	c := s.catalog.Candidates()
	writeJSON(w, http.StatusOK, candidatesResponse{Message: "Candidates retrieved", Candidates: c, Count: len(c)})
}

func (s *Server) ListParties(w http.ResponseWriter, _ *http.Request) {
	p := s.catalog.Parties()
	writeJSON(w, http.StatusOK, partiesResponse{Message: "Parties retrieved", Parties: p, Count: len(p)})
}

func (s *Server) setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     common.SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(s.users.TokenValidity().Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
