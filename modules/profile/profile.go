package profile

import (
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrymomot/fieldrules/pkg/validator"
)

// Profile is an accepted profile record. The password is only ever kept as
// a bcrypt hash.
type Profile struct {
	ID           uuid.UUID `json:"id"`
	Username     string    `json:"username"`
	Name         string    `json:"name,omitempty"`
	DisplayName  string    `json:"displayName,omitempty"`
	Email        string    `json:"email,omitempty"`
	PasswordHash []byte    `json:"-"`
	BirthDate    string    `json:"birthDate,omitempty"`
	Biography    string    `json:"biography,omitempty"`
	City         string    `json:"city,omitempty"`
	Tags         []string  `json:"tags,omitempty"`
	Photos       []string  `json:"photos,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// CheckPassword reports whether password matches the stored hash.
func (p Profile) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword(p.PasswordHash, prehash(password)) == nil
}

// prehash folds a password of any length into 44 bytes before bcrypt, which
// refuses inputs over 72 bytes and would otherwise fail passwords the catalog
// accepts.
func prehash(password string) []byte {
	sum := sha256.Sum256([]byte(password))
	out := make([]byte, base64.StdEncoding.EncodedLen(len(sum)))
	base64.StdEncoding.Encode(out, sum[:])
	return out
}

// newProfile builds a profile from an accepted record. The record must have
// passed validation; values of unexpected shape are left empty.
func newProfile(rec validator.Record, cost int) (Profile, error) {
	p := Profile{
		ID:          uuid.New(),
		Username:    text(rec, "username"),
		Name:        text(rec, "name"),
		DisplayName: text(rec, "displayName"),
		Email:       text(rec, "email"),
		BirthDate:   text(rec, "birthDate"),
		Biography:   text(rec, "biography"),
		City:        text(rec, "city"),
		Tags:        list(rec, "tags"),
		Photos:      list(rec, "photos"),
		CreatedAt:   time.Now().UTC(),
	}
	if pw := text(rec, "password"); pw != "" {
		hash, err := bcrypt.GenerateFromPassword(prehash(pw), cost)
		if err != nil {
			return Profile{}, errors.Join(ErrHashPassword, err)
		}
		p.PasswordHash = hash
	}
	return p, nil
}

func text(rec validator.Record, key string) string {
	s, _ := rec[key].(string)
	return s
}

func list(rec validator.Record, key string) []string {
	switch v := rec[key].(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}
