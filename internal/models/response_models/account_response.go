package response_models

import "time"

type VerifyTokenResponse struct {
	UID   string  `json:"uid"`
	Email *string `json:"email"`
	Name  *string `json:"name"`
}

type AccountResponse struct {
	ID          string     `json:"id"`
	FirebaseUID string     `json:"firebase_uid"`
	Email       *string    `json:"email"`
	Name        *string    `json:"name"`
	Locale      *string    `json:"locale"`
	LastLoginAt *time.Time `json:"last_login_at"`
	CreatedAt   time.Time  `json:"created_at"`
}
