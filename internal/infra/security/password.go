package security

import "golang.org/x/crypto/bcrypt"

// BcryptService is the one-way hasher applied to every password before it
// reaches a user store.
type BcryptService struct {
	cost int
}

// NewBcryptService returns a hasher using cost. Zero or out-of-range values
// fall back to bcrypt.DefaultCost.
func NewBcryptService(cost int) *BcryptService {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptService{cost: cost}
}

func (s *BcryptService) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
