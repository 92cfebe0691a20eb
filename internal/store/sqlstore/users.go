package sqlstore

import (
	"courier/internal/models"
)

func (s *SQLStore) CreateUser(user *models.User) error {
	res, err := s.db.Exec(
		"INSERT INTO users (username, email, phone_number, password, public_key) VALUES (?, ?, ?, ?, ?)",
		user.Username, user.Email, user.PhoneNumber, user.Password, user.PublicKey,
	)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	user.ID = int(id)
	return nil
}

func (s *SQLStore) GetUserByUsername(username string) (*models.User, error) {
	var user models.User
	err := s.db.QueryRow(
		"SELECT id, username, email, phone_number, password, COALESCE(public_key, ''), created_at FROM users WHERE username = ?",
		username,
	).Scan(&user.ID, &user.Username, &user.Email, &user.PhoneNumber, &user.Password, &user.PublicKey, &user.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *SQLStore) GetUserByID(id int) (*models.User, error) {
	var user models.User
	err := s.db.QueryRow(
		"SELECT id, username, email, phone_number, password, COALESCE(public_key, ''), created_at FROM users WHERE id = ?",
		id,
	).Scan(&user.ID, &user.Username, &user.Email, &user.PhoneNumber, &user.Password, &user.PublicKey, &user.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *SQLStore) SearchUsers(queryStr string) ([]models.User, error) {
	rows, err := s.db.Query(
		"SELECT id, username, email, COALESCE(public_key, '') FROM users WHERE username LIKE ? LIMIT 10",
		"%"+queryStr+"%",
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var user models.User
		if err := rows.Scan(&user.ID, &user.Username, &user.Email, &user.PublicKey); err != nil {
			return nil, err
		}
		user.Email = maskEmail(user.Email)
		users = append(users, user)
	}
	return users, rows.Err()
}
