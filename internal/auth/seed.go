package auth

import (
	"log"

	"github.com/SatyaGranuman/import-export-app/internal/models"
	"github.com/SatyaGranuman/import-export-app/internal/storage"
)

// SeedUsers kullanıcı tablosu boşsa varsayılan hesapları oluşturur.
// İlk kurulumda panele girilebilmesi için gerekir.
func SeedUsers(store *storage.Store) error {
	return store.Exclusive(func() error {
		if len(store.LoadUsers()) > 0 {
			return nil
		}

		defaults := []models.User{
			{Username: "admin", Password: "admin123", Role: models.RoleAdmin},
			{Username: "user1", Password: "user123", Role: models.RoleUser},
			{Username: "user2", Password: "user234", Role: models.RoleUser},
		}
		if err := store.SaveUsers(defaults); err != nil {
			return err
		}

		log.Println("Varsayılan kullanıcılar oluşturuldu: admin, user1, user2")
		return nil
	})
}
