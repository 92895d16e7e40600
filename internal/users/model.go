package users

import "time"

// DefaultImageURL is the profile picture assigned at registration.
const DefaultImageURL = "https://res.cloudinary.com/dz1qj3x8h/image/upload/v1709308700/Default-Profile-Picture.png"

// User is the persisted account record.
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	ImageURL     string
	CreatedAt    time.Time
}

// PublicUser is the client-facing view of a User; it never carries the hash.
type PublicUser struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	ImageURL  string    `json:"imageUrl"`
	CreatedAt time.Time `json:"createdAt"`
}

// Public strips credentials from the user.
func (u User) Public() PublicUser {
	return PublicUser{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		ImageURL:  u.ImageURL,
		CreatedAt: u.CreatedAt,
	}
}
