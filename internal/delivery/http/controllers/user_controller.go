package controllers

import (
	"log/slog"
	"net/http"
	"strings"

	"eventmanagement/internal/delivery/http/helpers"
	"eventmanagement/internal/delivery/http/middleware"
	"eventmanagement/internal/domain"
)

// SignUpRequest is the request body for POST /api/users/registration
type SignUpRequest struct {
	Username    string `json:"username" validate:"required,min=2,max=50"`
	Email       string `json:"email" validate:"required,email,max=50"`
	Password    string `json:"password" validate:"required"`
	FirstName   string `json:"first_name" validate:"max=50"`
	LastName    string `json:"last_name" validate:"max=50"`
	PhoneNumber string `json:"phone_number" validate:"max=13"`
}

// Validate implements Validator.
func (s SignUpRequest) Validate() []string {
	errs := helpers.ValidateStruct(s)
	if s.Password != "" {
		errs = append(errs, domain.CheckPassword(s.Password)...)
	}
	return errs
}

// LoginRequest is the request body for POST /api/users/login. Username also accepts an email.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Validate implements Validator.
func (l LoginRequest) Validate() []string {
	return helpers.ValidateStruct(l)
}

// LoginResponse is the response body for POST /api/users/login
type LoginResponse struct {
	Token     string       `json:"token"`
	TokenType string       `json:"token_type"`
	User      *domain.User `json:"user"`
}

// UpdateUserRequest is the request body for PATCH /api/users/{userId}. All fields are optional.
type UpdateUserRequest struct {
	Username    *string `json:"username" validate:"omitempty,min=2,max=50"`
	Email       *string `json:"email" validate:"omitempty,email,max=50"`
	Password    *string `json:"password"`
	FirstName   *string `json:"first_name" validate:"omitempty,max=50"`
	LastName    *string `json:"last_name" validate:"omitempty,max=50"`
	PhoneNumber *string `json:"phone_number" validate:"omitempty,max=13"`
}

// Validate implements Validator.
func (u UpdateUserRequest) Validate() []string {
	errs := helpers.ValidateStruct(u)
	if u.Password != nil {
		errs = append(errs, domain.CheckPassword(*u.Password)...)
	}
	return errs
}

func (u UpdateUserRequest) toDomain() domain.UserUpdate {
	return domain.UserUpdate{
		Username:    u.Username,
		Email:       u.Email,
		Password:    u.Password,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		PhoneNumber: u.PhoneNumber,
	}
}

// TakenResponse answers the duplicate checks.
type TakenResponse struct {
	Taken bool `json:"taken"`
}

// ListUsersResponse is the data payload for GET /api/users.
type ListUsersResponse struct {
	Items      []*domain.User         `json:"items"`
	Pagination helpers.PaginationMeta `json:"pagination"`
}

// UserSuccessResponse is the success response envelope for endpoints returning one user.
type UserSuccessResponse struct {
	Data  *domain.User      `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// LoginSuccessResponse is the success response envelope for POST /api/users/login (200).
type LoginSuccessResponse struct {
	Data  LoginResponse     `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// ListUsersSuccessResponse is the success response envelope for GET /api/users (200).
type ListUsersSuccessResponse struct {
	Data  ListUsersResponse `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// TakenSuccessResponse is the success response envelope for the duplicate checks (200).
type TakenSuccessResponse struct {
	Data  TakenResponse     `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// UserController handles registration, login and user profile endpoints.
type UserController struct {
	Logger  *slog.Logger
	Service domain.UserService
}

// NewUserController creates a UserController with the given logger and service.
func NewUserController(logger *slog.Logger, svc domain.UserService) *UserController {
	return &UserController{
		Logger:  logger,
		Service: svc,
	}
}

// SignUp godoc
// @Summary Register a new user
// @Description Create a user with username, email and password. The password must contain an uppercase letter, a lowercase letter, a digit and a special character. New users get the User role.
// @Tags users
// @Accept json
// @Produce json
// @Param body body SignUpRequest true "Sign-up data"
// @Success 201 {object} controllers.UserSuccessResponse "data contains the created user"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/users/registration [post]
func (c *UserController) SignUp(w http.ResponseWriter, r *http.Request) {
	var req SignUpRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	user, err := c.Service.SignUp(r.Context(), domain.SignUpInput{
		Username:    req.Username,
		Email:       req.Email,
		Password:    req.Password,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		PhoneNumber: req.PhoneNumber,
	})
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, user)
}

// Login godoc
// @Summary Log in
// @Description Authenticate with username (or email) and password. Returns a JWT carrying the user id, username, email and role.
// @Tags users
// @Accept json
// @Produce json
// @Param body body LoginRequest true "Login credentials"
// @Success 200 {object} controllers.LoginSuccessResponse "data contains token, token_type, and user"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/users/login [post]
func (c *UserController) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	token, user, err := c.Service.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, LoginResponse{Token: token, TokenType: "Bearer", User: user})
}

// List godoc
// @Summary List users
// @Tags users
// @Produce json
// @Param page query int false "Page number (default 1)"
// @Param page_size query int false "Page size (default 20, max 100)"
// @Success 200 {object} controllers.ListUsersSuccessResponse
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/users [get]
func (c *UserController) List(w http.ResponseWriter, r *http.Request) {
	params := helpers.ParsePagination(r)
	users, total, err := c.Service.List(r.Context(), params)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	if users == nil {
		users = []*domain.User{}
	}
	meta := helpers.NewPaginationMeta(params, total)
	helpers.WriteJSONSuccess(w, http.StatusOK, ListUsersResponse{Items: users, Pagination: meta})
}

// Get godoc
// @Summary Get a user by id
// @Tags users
// @Produce json
// @Param userId path int true "User ID"
// @Success 200 {object} controllers.UserSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /api/users/{userId} [get]
func (c *UserController) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := helpers.PathID(w, r, "userId")
	if !ok {
		return
	}
	user, err := c.Service.GetByID(r.Context(), id)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, user)
}

// GetByUsername godoc
// @Summary Get a user by username
// @Tags users
// @Produce json
// @Param username query string true "Username"
// @Success 200 {object} controllers.UserSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /api/users/by-username [get]
func (c *UserController) GetByUsername(w http.ResponseWriter, r *http.Request) {
	username := strings.TrimSpace(r.URL.Query().Get("username"))
	if username == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "username is required")
		return
	}
	user, err := c.Service.GetByUsername(r.Context(), username)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, user)
}

// DuplicateEmail godoc
// @Summary Check whether an email is registered
// @Tags users
// @Produce json
// @Param email query string true "Email"
// @Success 200 {object} controllers.TakenSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Router /api/users/duplicate-email [get]
func (c *UserController) DuplicateEmail(w http.ResponseWriter, r *http.Request) {
	email := strings.TrimSpace(r.URL.Query().Get("email"))
	if email == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "email is required")
		return
	}
	taken, err := c.Service.IsEmailTaken(r.Context(), email)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, TakenResponse{Taken: taken})
}

// DuplicateUsername godoc
// @Summary Check whether a username is taken
// @Tags users
// @Produce json
// @Param username query string true "Username"
// @Success 200 {object} controllers.TakenSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Router /api/users/duplicate-username [get]
func (c *UserController) DuplicateUsername(w http.ResponseWriter, r *http.Request) {
	username := strings.TrimSpace(r.URL.Query().Get("username"))
	if username == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "username is required")
		return
	}
	taken, err := c.Service.IsUsernameTaken(r.Context(), username)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, TakenResponse{Taken: taken})
}

// Update godoc
// @Summary Update a user profile
// @Description Users may update only their own profile. Role changes go through the admin endpoint.
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param userId path int true "User ID"
// @Param body body UpdateUserRequest true "Fields to update"
// @Success 200 {object} controllers.UserSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Router /api/users/{userId} [patch]
func (c *UserController) Update(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	id, ok := helpers.PathID(w, r, "userId")
	if !ok {
		return
	}
	var req UpdateUserRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	user, err := c.Service.Update(r.Context(), principal, id, req.toDomain())
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, user)
}
