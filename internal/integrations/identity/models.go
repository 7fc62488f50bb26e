package identity

// User ответ identity provider на GET /auth/v1/user
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// Claims поля JWT, которые нужны сервису
type Claims struct {
	Email string `json:"email"`
}
