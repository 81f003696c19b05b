package services

import (
	"errors"
	"log"
	"os"
	"strings"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// AdminAccount is the single dashboard admin, configured from the
// environment. The service keeps no user database of its own; the commerce
// platform owns all real customer and staff accounts.
type AdminAccount struct {
	ID           string
	Email        string
	Name         string
	PasswordHash string // bcrypt
}

var (
	adminAccount *AdminAccount
	adminOnce    sync.Once
)

// GetAdminAccount loads the admin credentials from ADMIN_EMAIL,
// ADMIN_PASSWORD_HASH and ADMIN_NAME. The ID is generated per process; it
// only exists to populate JWT claims and responses.
func GetAdminAccount() (*AdminAccount, error) {
	adminOnce.Do(func() {
		email := os.Getenv("ADMIN_EMAIL")
		hash := os.Getenv("ADMIN_PASSWORD_HASH")
		if email == "" || hash == "" {
			log.Println("⚠️  ADMIN_EMAIL / ADMIN_PASSWORD_HASH not set, admin login disabled")
			return
		}
		name := os.Getenv("ADMIN_NAME")
		if name == "" {
			name = "Administrator"
		}
		adminAccount = &AdminAccount{
			ID:           uuid.NewString(),
			Email:        strings.ToLower(email),
			Name:         name,
			PasswordHash: hash,
		}
	})
	if adminAccount == nil {
		return nil, errors.New("admin account not configured")
	}
	return adminAccount, nil
}

// VerifyAdminPassword checks a plaintext password against the stored bcrypt hash.
func VerifyAdminPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
