package auth

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Sandeep-khatri01/court-scheduling-system/pkg/models"
	"github.com/Sandeep-khatri01/court-scheduling-system/pkg/validation"
)

/* ================================ DTOs ================================= */

// Request body for /signup. Court staff (admin/judge/clerk) are provisioned
// out-of-band; self-registration is for lawyers and citizens only.
type SignupRequest struct {
	Role     string `json:"role" validate:"required,oneof=LAWYER CITIZEN"`
	FullName string `json:"full_name" validate:"required,min=2,max=80"`
	Email    string `json:"email" validate:"required,email,max=120"`
	Password string `json:"password" validate:"required,min=6,max=72"`
	// Optional
	Phone     string `json:"phone" validate:"omitempty,max=20"`
	BarNumber string `json:"bar_number" validate:"omitempty,barnum"`
}

// Request body for /login
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email,max=120"`
	Password string `json:"password" validate:"required"`
}

// Standard auth response
type AuthResponse struct {
	Token string   `json:"token"`
	User  UserInfo `json:"user"`
}

// UserInfo is the public view of a user returned with tokens.
type UserInfo struct {
	ID    uuid.UUID   `json:"id"`
	Email string      `json:"email"`
	Name  string      `json:"name"`
	Role  models.Role `json:"role"`
}

// Profile response for /me
type UserProfileResponse struct {
	ID        uuid.UUID   `json:"id"`
	Email     string      `json:"email"`
	Role      models.Role `json:"role"`
	FullName  string      `json:"full_name"`
	Phone     string      `json:"phone,omitempty"`
	BarNumber string      `json:"bar_number,omitempty"`
	CreatedAt time.Time   `json:"created_at"`
}

/* ============================== Handler ================================= */

type Handler struct{ db *gorm.DB }

func NewHandler(db *gorm.DB) *Handler { return &Handler{db: db} }

/* =============================== Signup ================================= */

// Signup registers a lawyer or citizen account and issues a JWT.
func (h *Handler) Signup(c *fiber.Ctx) error {
	var in SignupRequest
	if err := c.BodyParser(&in); err != nil {
		return fiber.ErrBadRequest
	}

	// Normalize email
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))

	if errs, _ := validation.Validate(in); errs != nil {
		return validation.Respond(c, errs)
	}

	hash, _ := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)

	u := models.User{
		Email:        in.Email,
		PasswordHash: string(hash),
		Role:         models.Role(in.Role),
		FullName:     in.FullName,
		Phone:        in.Phone,
		BarNumber:    in.BarNumber,
	}
	if err := h.db.Create(&u).Error; err != nil {
		return fiber.NewError(fiber.StatusConflict, "email already exists")
	}

	token, _ := IssueToken(u.ID.String(), string(u.Role))
	return c.Status(fiber.StatusCreated).JSON(AuthResponse{
		Token: token,
		User:  UserInfo{ID: u.ID, Email: u.Email, Name: u.FullName, Role: u.Role},
	})
}

/* ================================ Login ================================= */

// Login authenticates by email/password and issues a JWT.
func (h *Handler) Login(c *fiber.Ctx) error {
	var in LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return fiber.ErrBadRequest
	}

	in.Email = strings.ToLower(strings.TrimSpace(in.Email))

	if errs, _ := validation.Validate(in); errs != nil {
		return validation.Respond(c, errs)
	}

	var u models.User
	if err := h.db.Where("email = ?", in.Email).First(&u).Error; err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "invalid credentials")
	}

	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(in.Password)) != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "invalid credentials")
	}

	token, _ := IssueToken(u.ID.String(), string(u.Role))
	return c.JSON(AuthResponse{
		Token: token,
		User:  UserInfo{ID: u.ID, Email: u.Email, Name: u.FullName, Role: u.Role},
	})
}

/* ================================= Me =================================== */

// Me returns the full profile of the authenticated user.
func (h *Handler) Me(c *fiber.Ctx) error {
	userID := c.Locals("userID")
	if userID == nil {
		return fiber.ErrUnauthorized
	}

	var u models.User
	if err := h.db.First(&u, "id = ?", userID).Error; err != nil {
		return fiber.ErrUnauthorized
	}

	resp := UserProfileResponse{
		ID:        u.ID,
		Email:     u.Email,
		Role:      u.Role,
		FullName:  u.FullName,
		Phone:     u.Phone,
		BarNumber: u.BarNumber,
		CreatedAt: u.CreatedAt,
	}
	return c.JSON(resp)
}

/* ================================ Users ================================= */

// ListUsers returns every account (admin only; enforced by route middleware).
func (h *Handler) ListUsers(c *fiber.Ctx) error {
	var users []models.User
	if err := h.db.Order("created_at ASC").Find(&users).Error; err != nil {
		return fiber.ErrInternalServerError
	}

	out := make([]UserProfileResponse, 0, len(users))
	for _, u := range users {
		out = append(out, UserProfileResponse{
			ID:        u.ID,
			Email:     u.Email,
			Role:      u.Role,
			FullName:  u.FullName,
			Phone:     u.Phone,
			BarNumber: u.BarNumber,
			CreatedAt: u.CreatedAt,
		})
	}
	return c.JSON(out)
}
