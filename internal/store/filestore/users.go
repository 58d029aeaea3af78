package filestore

import (
	"time"

	"github.com/sentreats/sentreats-server/internal/models"
	"github.com/sentreats/sentreats-server/internal/store"
)

// userRecord is the on-disk shape of a user. The API model hides the
// password hash from JSON, so the file record carries it explicitly.
type userRecord struct {
	models.User
	PasswordHash string `json:"passwordHash"`
}

func toUserRecord(u *models.User) userRecord {
	return userRecord{User: *u, PasswordHash: u.Password}
}

func (r userRecord) toModel() *models.User {
	u := r.User
	u.Password = r.PasswordHash
	return &u
}

func (s *Store) UserByID(id uint) (*models.User, error) {
	return s.findUser(func(r userRecord) bool { return r.ID == id })
}

func (s *Store) UserByUsername(username string) (*models.User, error) {
	return s.findUser(func(r userRecord) bool { return r.Username == username })
}

func (s *Store) UserByEmail(email string) (*models.User, error) {
	return s.findUser(func(r userRecord) bool { return r.Email == email })
}

func (s *Store) findUser(match func(userRecord) bool) (*models.User, error) {
	s.users.mu.Lock()
	defer s.users.mu.Unlock()

	records, err := s.users.load()
	if err != nil {
		return nil, err
	}
	for _, r := range records {
		if match(r) {
			return r.toModel(), nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *Store) CreateUser(u *models.User) error {
	s.users.mu.Lock()
	defer s.users.mu.Unlock()

	records, err := s.users.load()
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	u.ID = nextID(records, func(r userRecord) uint { return r.ID })
	u.CreatedAt = now
	u.UpdatedAt = now

	return s.users.save(append(records, toUserRecord(u)))
}

func (s *Store) UpdateUser(u *models.User) error {
	s.users.mu.Lock()
	defer s.users.mu.Unlock()

	records, err := s.users.load()
	if err != nil {
		return err
	}
	for i, r := range records {
		if r.ID == u.ID {
			u.UpdatedAt = time.Now().UTC()
			records[i] = toUserRecord(u)
			return s.users.save(records)
		}
	}
	return store.ErrNotFound
}

func (s *Store) DeleteUser(id uint) error {
	s.users.mu.Lock()
	defer s.users.mu.Unlock()

	records, err := s.users.load()
	if err != nil {
		return err
	}
	for i, r := range records {
		if r.ID == id {
			return s.users.save(append(records[:i], records[i+1:]...))
		}
	}
	return store.ErrNotFound
}
