package services

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/periodpain/pain-helper/internal/database"
	"github.com/periodpain/pain-helper/internal/logger"
	"gorm.io/gorm"
)

// identityLength is the number of random characters after the "user_"
// prefix. Matches what the backend expects for anonymous ids.
const identityLength = 9

// IdentityService guarantees a stable anonymous identity per
// installation (one Telegram account = one installation). The identity
// is created once, persisted in the local sqlite database and returned
// unchanged forever after. No network call is involved.
//
// When the database is unavailable the service degrades to an in-memory
// map: the application keeps working, but identities only live for the
// current process. Cross-session continuity is forfeited, not faked.
type IdentityService struct {
	db *gorm.DB

	mu     sync.Mutex
	memory map[int64]string
}

// NewIdentityService creates the identity store. db may be nil, in
// which case the service runs memory-only from the start.
func NewIdentityService(db *gorm.DB) *IdentityService {
	if db == nil {
		logger.Warn("Identity database unavailable, identities will not survive restarts")
	}
	return &IdentityService{
		db:     db,
		memory: make(map[int64]string),
	}
}

// GetOrCreateIdentity returns the anonymous identity for an
// installation, generating and persisting one on first use.
func (s *IdentityService) GetOrCreateIdentity(ctx context.Context, installationID int64) (string, error) {
	if s.db == nil {
		return s.memoryIdentity(installationID), nil
	}

	var row database.Identity
	err := s.db.WithContext(ctx).First(&row, "installation_id = ?", installationID).Error
	if err == nil {
		return row.UserID, nil
	}
	if err != gorm.ErrRecordNotFound {
		logger.Warn("Identity lookup failed, falling back to in-memory identity", "error", err)
		return s.memoryIdentity(installationID), nil
	}

	row = database.Identity{
		InstallationID: installationID,
		UserID:         newIdentity(),
	}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		logger.Warn("Identity write failed, falling back to in-memory identity", "error", err)
		return s.memoryIdentity(installationID), nil
	}

	logger.Info("Created anonymous identity", "installation_id", installationID)
	return row.UserID, nil
}

func (s *IdentityService) memoryIdentity(installationID int64) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if id, ok := s.memory[installationID]; ok {
		return id
	}
	id := newIdentity()
	s.memory[installationID] = id
	return id
}

// newIdentity produces a URL-safe anonymous token. Uniqueness across
// the expected user population is all that matters, so a UUID trimmed
// to identityLength alphanumeric characters is sufficient.
func newIdentity() string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return fmt.Sprintf("user_%s", raw[:identityLength])
}
