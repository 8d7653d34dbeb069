package request_models

type VerifyTokenRequest struct {
	Token string `json:"token" binding:"required"`
}
