package http

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/pkg/jwt"
)

// LocalAuthContext key del AuthContext en c.Locals (después del middleware).
const LocalAuthContext = "auth_context"

// UserLoader carga el registro fresco del usuario en cada petición, para que
// un usuario eliminado pierda acceso aunque su token siga vigente.
type UserLoader interface {
	GetByID(ctx context.Context, id string) (*entity.User, error)
}

// AuthMiddleware valida el Bearer Token JWT, verifica que el usuario siga
// existiendo y deja el domain.AuthContext en c.Locals. CompanyID y Role
// efectivos salen del claim del token cuando está presente; si no, del
// registro fresco del usuario.
func AuthMiddleware(jwtSecret string, users UserLoader) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header requerido"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vacío"})
		}
		userID, companyID, role, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}

		user, err := users.GetByID(c.UserContext(), userID)
		if err != nil {
			return respondInternal(c, err)
		}
		if user == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "USER_NOT_FOUND", Message: "el usuario ya no existe"})
		}

		authCtx := domain.AuthContext{
			UserID:    user.ID,
			CompanyID: user.CompanyID,
			Role:      user.Role,
		}
		if companyID != "" {
			authCtx.CompanyID = companyID
		}
		if r, ok := entity.ParseRole(role); ok {
			authCtx.Role = r
		}

		c.Locals(LocalAuthContext, authCtx)
		return c.Next()
	}
}

// RequireRole corta con 403 si el rol efectivo no está en allowed.
// Debe ir después de AuthMiddleware.
func RequireRole(allowed ...entity.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authCtx, ok := c.Locals(LocalAuthContext).(domain.AuthContext)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_ROLE", Message: "contexto de autenticación ausente"})
		}
		if err := authCtx.AuthorizeRole(allowed...); err != nil {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "rol sin permiso para esta operación"})
		}
		return c.Next()
	}
}

// GetAuthContext devuelve el AuthContext del contexto (después del middleware).
func GetAuthContext(c *fiber.Ctx) domain.AuthContext {
	v, _ := c.Locals(LocalAuthContext).(domain.AuthContext)
	return v
}

// GetUserID devuelve el UserID efectivo de la petición.
func GetUserID(c *fiber.Ctx) string {
	return GetAuthContext(c).UserID
}

// GetCompanyID devuelve el CompanyID efectivo de la petición.
func GetCompanyID(c *fiber.Ctx) string {
	return GetAuthContext(c).CompanyID
}

// GetRole devuelve el rol efectivo de la petición.
func GetRole(c *fiber.Ctx) entity.Role {
	return GetAuthContext(c).Role
}
