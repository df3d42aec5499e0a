package auth

import (
	"strings"

	"github.com/SatyaGranuman/import-export-app/internal/config"
	"github.com/SatyaGranuman/import-export-app/internal/models"
	"github.com/SatyaGranuman/import-export-app/internal/storage"

	"github.com/gofiber/fiber/v2"
)

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func LoginHandler(cfg *config.Config, store *storage.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body LoginRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		body.Username = strings.TrimSpace(body.Username)
		if body.Username == "" || body.Password == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Kullanıcı adı ve şifre zorunlu")
		}

		var matched *models.User
		_ = store.Exclusive(func() error {
			for _, u := range store.LoadUsers() {
				// Şifreler düz metin tutulur, kontrol birebir eşleşmedir
				if u.Username == body.Username && u.Password == body.Password {
					user := u
					matched = &user
					return nil
				}
			}
			return nil
		})
		if matched == nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Kullanıcı adı veya şifre hatalı")
		}

		token, err := GenerateToken(cfg.JWTSecret, matched)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Token oluşturulamadı")
		}

		return c.JSON(fiber.Map{
			"token": token,
			"user": fiber.Map{
				"username": matched.Username,
				"role":     matched.Role,
			},
		})
	}
}

func MeHandler(store *storage.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		usernameVal := c.Locals(CtxUsernameKey)
		roleVal := c.Locals(CtxUserRoleKey)

		// Güncel kaydı tablodan çek, kullanıcı bu arada silinmiş olabilir
		if username, ok := usernameVal.(string); ok {
			var found *models.User
			_ = store.Exclusive(func() error {
				for _, u := range store.LoadUsers() {
					if u.Username == username {
						user := u
						found = &user
						return nil
					}
				}
				return nil
			})
			if found != nil {
				return c.JSON(fiber.Map{
					"username": found.Username,
					"role":     found.Role,
				})
			}
		}

		// Fallback: tabloda bulunamazsa token içeriği döndürülür
		return c.JSON(fiber.Map{
			"username": usernameVal,
			"role":     roleVal,
		})
	}
}
