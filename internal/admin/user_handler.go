package admin

import (
	"errors"
	"strings"

	"github.com/SatyaGranuman/import-export-app/internal/models"
	"github.com/SatyaGranuman/import-export-app/internal/storage"

	"github.com/gofiber/fiber/v2"
)

type UserResponse struct {
	Username string `json:"username"`
	Role     string `json:"role"`
}

type CreateUserRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"` // "user" veya "admin"
}

// ----------------------------------------
// KULLANICI YÖNETİMİ (sadece admin)
// ----------------------------------------

// GET /api/users
func ListUsersHandler(store *storage.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var users []models.User
		_ = store.Exclusive(func() error {
			users = store.LoadUsers()
			return nil
		})

		// şifreler yanıtta yer almaz
		resp := make([]UserResponse, 0, len(users))
		for _, u := range users {
			resp = append(resp, UserResponse{
				Username: u.Username,
				Role:     string(u.Role),
			})
		}

		return c.JSON(resp)
	}
}

// POST /api/users
func CreateUserHandler(store *storage.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateUserRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz veri")
		}

		body.Username = strings.TrimSpace(body.Username)
		if body.Username == "" || strings.TrimSpace(body.Password) == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Kullanıcı adı ve şifre zorunlu")
		}

		role := models.UserRole(body.Role)
		if role != models.RoleAdmin && role != models.RoleUser {
			return fiber.NewError(fiber.StatusBadRequest, "role 'user' veya 'admin' olmalı")
		}

		created := models.User{
			Username: body.Username,
			Password: body.Password,
			Role:     role,
		}

		err := store.Exclusive(func() error {
			users := store.LoadUsers()
			for _, u := range users {
				if u.Username == created.Username {
					return fiber.NewError(fiber.StatusBadRequest, "Bu kullanıcı adı zaten kayıtlı")
				}
			}
			return store.SaveUsers(append(users, created))
		})
		if err != nil {
			var fe *fiber.Error
			if errors.As(err, &fe) {
				return fe
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Kullanıcı oluşturulamadı")
		}

		return c.Status(fiber.StatusCreated).JSON(UserResponse{
			Username: created.Username,
			Role:     string(created.Role),
		})
	}
}
