package profile

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	profileKeyPrefix  = "profile:"
	usernameKeyPrefix = "profile:username:"
)

// RedisStore keeps each profile as a JSON document under profile:<id> and
// reserves usernames with SETNX under profile:username:<name>.
type RedisStore struct {
	client redis.UniversalClient
}

func NewRedisStore(client redis.UniversalClient) *RedisStore {
	return &RedisStore{client: client}
}

// stored carries the password hash, which the public JSON form omits.
type stored struct {
	Profile
	PasswordHash []byte `json:"passwordHash,omitempty"`
}

func (s *RedisStore) Save(ctx context.Context, p Profile) error {
	data, err := json.Marshal(stored{Profile: p, PasswordHash: p.PasswordHash})
	if err != nil {
		return errors.Join(ErrStore, err)
	}

	nameKey := usernameKeyPrefix + usernameKey(p.Username)
	ok, err := s.client.SetNX(ctx, nameKey, p.ID.String(), 0).Result()
	if err != nil {
		return errors.Join(ErrStore, err)
	}
	if !ok {
		owner, err := s.client.Get(ctx, nameKey).Result()
		if err != nil {
			return errors.Join(ErrStore, err)
		}
		if owner != p.ID.String() {
			return ErrUsernameTaken
		}
	}

	if err := s.client.Set(ctx, profileKeyPrefix+p.ID.String(), data, 0).Err(); err != nil {
		if ok {
			// release the reservation so the username can be retried
			_ = s.client.Del(context.WithoutCancel(ctx), nameKey).Err()
		}
		return errors.Join(ErrStore, err)
	}
	return nil
}

func (s *RedisStore) Get(ctx context.Context, id uuid.UUID) (Profile, error) {
	data, err := s.client.Get(ctx, profileKeyPrefix+id.String()).Bytes()
	if errors.Is(err, redis.Nil) {
		return Profile{}, ErrNotFound
	}
	if err != nil {
		return Profile{}, errors.Join(ErrStore, err)
	}

	var rec stored
	if err := json.Unmarshal(data, &rec); err != nil {
		return Profile{}, errors.Join(ErrStore, err)
	}
	rec.Profile.PasswordHash = rec.PasswordHash
	return rec.Profile, nil
}

func (s *RedisStore) ByUsername(ctx context.Context, username string) (Profile, error) {
	raw, err := s.client.Get(ctx, usernameKeyPrefix+usernameKey(username)).Result()
	if errors.Is(err, redis.Nil) {
		return Profile{}, ErrNotFound
	}
	if err != nil {
		return Profile{}, errors.Join(ErrStore, err)
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return Profile{}, errors.Join(ErrStore, err)
	}
	return s.Get(ctx, id)
}
