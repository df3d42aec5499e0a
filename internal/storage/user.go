package storage

import (
	"github.com/SatyaGranuman/import-export-app/internal/models"

	"github.com/go-gota/gota/dataframe"
)

var userColumns = []string{"username", "password", "role"}

func dfRowToUser(df dataframe.DataFrame, rowIdx int) models.User {
	return models.User{
		Username: getStr(df, "username", rowIdx),
		Password: getStr(df, "password", rowIdx),
		Role:     models.UserRole(getStr(df, "role", rowIdx)),
	}
}

func (s *Store) LoadUsers() []models.User {
	df := s.loadFrame(UsersFile)
	users := make([]models.User, 0, df.Nrow())
	for i := 0; i < df.Nrow(); i++ {
		users = append(users, dfRowToUser(df, i))
	}
	return users
}

func (s *Store) SaveUsers(users []models.User) error {
	rows := make([][]string, 0, len(users))
	for _, u := range users {
		rows = append(rows, []string{u.Username, u.Password, string(u.Role)})
	}
	return s.saveFrame(UsersFile, userColumns, rows)
}
