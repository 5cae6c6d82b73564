package handler

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/studyspot/studyspot/internal/service"
)

// AccountHandler handles signup, login and logout.
type AccountHandler struct {
	deps Deps
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(deps Deps) *AccountHandler {
	return &AccountHandler{deps: deps}
}

type loginData struct {
	Email string
	Next  string
}

type signupData struct {
	Email  string
	Domain string
}

// LoginForm handles GET /login.
func (h *AccountHandler) LoginForm(w http.ResponseWriter, r *http.Request) {
	h.renderLogin(w, r, loginData{Next: localPath(r.URL.Query().Get("next"))}, "")
}

// Login handles POST /login.
func (h *AccountHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeText(w, http.StatusBadRequest, "Invalid form submission")
		return
	}

	email := strings.TrimSpace(r.PostForm.Get("email"))
	next := localPath(r.FormValue("next"))

	user, err := h.deps.Accounts.Login(r.Context(), email, r.PostForm.Get("password"))
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			h.deps.Logger.Info("login_failed")
			h.renderLogin(w, r, loginData{Email: email, Next: next}, "Invalid email or password.")
			return
		}
		h.deps.serverError(w, r, err)
		return
	}

	if err := h.deps.Sessions.Begin(r.Context(), w, r, user.ID); err != nil {
		h.deps.serverError(w, r, err)
		return
	}

	h.deps.Logger.Info("login_succeeded", "user_id", user.ID)

	if next == "" {
		next = "/home"
	}
	http.Redirect(w, r, next, http.StatusFound)
}

// SignupForm handles GET /signup.
func (h *AccountHandler) SignupForm(w http.ResponseWriter, r *http.Request) {
	h.renderSignup(w, r, "", "")
}

// Signup handles POST /signup.
func (h *AccountHandler) Signup(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeText(w, http.StatusBadRequest, "Invalid form submission")
		return
	}

	input := service.SignupInput{
		Email:           r.PostForm.Get("email"),
		Password:        r.PostForm.Get("password"),
		ConfirmPassword: r.PostForm.Get("confirm_password"),
	}

	user, err := h.deps.Accounts.Signup(r.Context(), input)
	if err != nil {
		if msg := h.signupMessage(err); msg != "" {
			h.renderSignup(w, r, strings.TrimSpace(input.Email), msg)
			return
		}
		h.deps.serverError(w, r, err)
		return
	}

	h.deps.Logger.Info("user_created", "user_id", user.ID, "netid", user.NetID)
	http.Redirect(w, r, "/login", http.StatusFound)
}

// Logout handles GET /logout.
func (h *AccountHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.deps.Sessions.End(w, r); err != nil {
		h.deps.Logger.Warn("logout_failed", "error", err)
	}
	http.Redirect(w, r, "/", http.StatusFound)
}

// signupMessage maps a signup validation error to its form message.
// It returns "" for errors that are not the user's to fix.
func (h *AccountHandler) signupMessage(err error) string {
	switch {
	case errors.Is(err, service.ErrInvalidEmail):
		return "Must use valid " + h.deps.Accounts.Domain() + " email."
	case errors.Is(err, service.ErrPasswordTooShort):
		return "Password must be at least 8 characters."
	case errors.Is(err, service.ErrPasswordMismatch):
		return "Passwords do not match."
	case errors.Is(err, service.ErrEmailExists):
		return "User already exists."
	default:
		return ""
	}
}

func (h *AccountHandler) renderLogin(w http.ResponseWriter, r *http.Request, data loginData, msg string) {
	h.deps.Views.Render(w, http.StatusOK, "login", Page{
		Title: "Log in",
		User:  h.deps.currentUser(r),
		Error: msg,
		Data:  data,
	})
}

func (h *AccountHandler) renderSignup(w http.ResponseWriter, r *http.Request, email, msg string) {
	h.deps.Views.Render(w, http.StatusOK, "signup", Page{
		Title: "Sign up",
		User:  h.deps.currentUser(r),
		Error: msg,
		Data:  signupData{Email: email, Domain: h.deps.Accounts.Domain()},
	})
}

// localPath returns next if it is a path on this site, otherwise "".
func localPath(next string) string {
	next = strings.TrimSpace(next)
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.Contains(next, `\`) {
		return ""
	}

	u, err := url.Parse(next)
	if err != nil || u.Scheme != "" || u.Host != "" {
		return ""
	}
	return next
}
