package auth

import (
	"anilhas-backend/internal/domain"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// LoginInput for login request body.
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SessionUserShape is the object stored in session and returned by /me.
type SessionUserShape struct {
	UserID     string  `json:"user_id"`
	Email      string  `json:"email"`
	Role       string  `json:"role"`
	ProducerID *string `json:"producer_id"`
	Name       string  `json:"name"`
}

// UserFinder abstracts credential verification (production GORM or test doubles).
type UserFinder interface {
	FindByEmailAndPassword(email, password string) (*domain.User, *domain.Profile, error)
}

// GormUserFinder implements UserFinder using GORM and bcrypt.
type GormUserFinder struct{ DB *gorm.DB }

func (g *GormUserFinder) FindByEmailAndPassword(email, password string) (*domain.User, *domain.Profile, error) {
	return LoginUser(g.DB, LoginInput{Email: email, Password: password})
}

// LoginUser verifies credentials and resolves the active profile. A user with
// no profile or a deactivated profile cannot log in.
func LoginUser(db *gorm.DB, input LoginInput) (*domain.User, *domain.Profile, error) {
	if input.Email == "" || input.Password == "" {
		return nil, nil, ErrEmailPasswordRequired
	}
	var u domain.User
	if err := db.Where("email = ?", input.Email).First(&u).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil, ErrInvalidEmail
		}
		return nil, nil, err
	}
	if u.PasswordHash == "" {
		return nil, nil, ErrInvalidEmail
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(input.Password)); err != nil {
		return nil, nil, ErrIncorrectPassword
	}
	var p domain.Profile
	if err := db.Where("user_id = ?", u.UserID).First(&p).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil, ErrAccountDisabled
		}
		return nil, nil, err
	}
	if !p.IsActive {
		return nil, nil, ErrAccountDisabled
	}
	return &u, &p, nil
}

// VerifyUser validates the session user and returns the shape for /me.
func VerifyUser(sessionUser interface{}) (*SessionUserShape, error) {
	if sessionUser == nil {
		return nil, ErrNotAuthenticated
	}
	m, ok := sessionUser.(map[string]interface{})
	if !ok {
		return nil, ErrNotAuthenticated
	}
	userID, _ := m["user_id"].(string)
	if userID == "" {
		return nil, ErrNotAuthenticated
	}
	out := &SessionUserShape{
		UserID: userID,
		Email:  str(m["email"]),
		Role:   str(m["role"]),
		Name:   str(m["name"]),
	}
	if p, ok := m["producer_id"]; ok && p != nil {
		if s, ok := p.(string); ok {
			out.ProducerID = &s
		}
	}
	return out, nil
}

func str(v interface{}) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}
