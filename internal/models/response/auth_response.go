package response

// UserProfileResponse represents public user profile data
type UserProfileResponse struct {
	ID      uint   `json:"id" example:"1"`
	Name    string `json:"name" example:"Budi Santoso"`
	Email   string `json:"email" example:"budi@test.com"`
	Address string `json:"address" example:"Jl. Melati No. 3"`
	Role    string `json:"role" example:"PELANGGAN"`
}

// LoginResponse represents a successful login response
type LoginResponse struct {
	Token string              `json:"token"`
	User  UserProfileResponse `json:"user"`
}
