package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/placacenter/pos-api/internal/application/auth"
	"github.com/placacenter/pos-api/internal/application/dto"
)

// AuthHandler maneja registro y login.
type AuthHandler struct {
	uc *auth.AuthUseCase
}

// NewAuthHandler construye el handler.
func NewAuthHandler(uc *auth.AuthUseCase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// Register godoc
// @Summary  Registrar usuario
// @Tags     auth
// @Accept   json
// @Produce  json
// @Param    body  body  dto.RegisterRequest  true  "email, password, name, role"
// @Success  201   {object}  dto.UserResponse
// @Router   /api/auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	user, err := h.uc.Register(in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}

// Login godoc
// @Summary  Iniciar sesión
// @Tags     auth
// @Accept   json
// @Produce  json
// @Param    body  body  dto.LoginRequest  true  "email y password"
// @Success  200   {object}  dto.LoginResponse
// @Router   /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	resp, err := h.uc.Login(in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}
