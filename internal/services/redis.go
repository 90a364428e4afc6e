package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"minigames-backend/internal/config"
	"minigames-backend/internal/models"
)

type RedisService struct {
	client *redis.Client
}

func NewRedisService(ctx context.Context, cfg *config.Config) (*RedisService, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisURL,
		Password: cfg.RedisPass,
		DB:       cfg.RedisDB,
	})

	if _, err := client.Ping(ctx).Result(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RedisService{client: client}, nil
}

func NewRedisServiceWithClient(client *redis.Client) *RedisService {
	return &RedisService{client: client}
}

func (s *RedisService) Close() error {
	return s.client.Close()
}

func sessionKey(role models.Role, accountID uint, sessionID string) string {
	return fmt.Sprintf(KeyUserSession, role, accountID, sessionID)
}

func (s *RedisService) StoreUserSession(ctx context.Context, session *models.UserSession, expiry time.Duration) error {
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}
	key := sessionKey(session.Role, session.AccountID, session.SessionID)
	if err := s.client.Set(ctx, key, data, expiry).Err(); err != nil {
		return fmt.Errorf("failed to store session: %w", err)
	}
	return nil
}

// GetUserSession returns the session and records the access time. A missing
// session is ErrUnauthorized.
func (s *RedisService) GetUserSession(ctx context.Context, role models.Role, accountID uint, sessionID string) (*models.UserSession, error) {
	key := sessionKey(role, accountID, sessionID)

	data, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, models.ErrUnauthorized
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	var session models.UserSession
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}

	session.LastAccessed = time.Now()
	if updated, err := json.Marshal(session); err == nil {
		s.client.SetArgs(ctx, key, updated, redis.SetArgs{KeepTTL: true})
	}

	return &session, nil
}

func (s *RedisService) DeleteUserSession(ctx context.Context, role models.Role, accountID uint, sessionID string) error {
	return s.client.Del(ctx, sessionKey(role, accountID, sessionID)).Err()
}

func stateKey(id string) string {
	return fmt.Sprintf(KeyGameState, id)
}

func activeKey(userID uint, game models.GameType) string {
	return fmt.Sprintf(KeyActiveGame, userID, game)
}

// createStateScript writes a new game state unless the user already has a
// live game of the same kind. A dangling index entry is overwritten.
var createStateScript = redis.NewScript(`
	local index = KEYS[1]
	local key = KEYS[2]
	local prefix = ARGV[1]
	local id = ARGV[2]
	local data = ARGV[3]
	local ttl = tonumber(ARGV[4])

	local current = redis.call("GET", index)
	if current and redis.call("EXISTS", prefix .. current) == 1 then
		return 0
	end

	redis.call("SET", key, data, "PX", ttl)
	redis.call("SET", index, id, "PX", ttl)
	return 1
`)

// saveStateScript replaces the state only if its stored version is ARGV[1].
var saveStateScript = redis.NewScript(`
	local key = KEYS[1]
	local index = KEYS[2]
	local expected = tonumber(ARGV[1])
	local data = ARGV[2]
	local ttl = tonumber(ARGV[3])

	local current = redis.call("GET", key)
	if not current then
		return -1
	end

	local state = cjson.decode(current)
	if tonumber(state.version) ~= expected then
		return 0
	end

	redis.call("SET", key, data, "PX", ttl)
	redis.call("PEXPIRE", index, ttl)
	return 1
`)

// deleteStateScript removes the state and its index entry if the stored
// version is ARGV[1]. Only one caller can finish a given game.
var deleteStateScript = redis.NewScript(`
	local key = KEYS[1]
	local index = KEYS[2]
	local expected = tonumber(ARGV[1])
	local id = ARGV[2]

	local current = redis.call("GET", key)
	if not current then
		return -1
	end

	local state = cjson.decode(current)
	if tonumber(state.version) ~= expected then
		return 0
	end

	redis.call("DEL", key)
	if redis.call("GET", index) == id then
		redis.call("DEL", index)
	end
	return 1
`)

func (s *RedisService) CreateGameState(ctx context.Context, state *models.GameState, ttl time.Duration) error {
	now := time.Now()
	state.Version = 1
	state.Status = models.GameStatusActive
	state.CreatedAt = now
	state.UpdatedAt = now

	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to marshal game state: %w", err)
	}

	keys := []string{activeKey(state.UserID, state.Game), stateKey(state.ID)}
	prefix := strings.TrimSuffix(KeyGameState, "%s")
	ok, err := createStateScript.Run(ctx, s.client, keys, prefix, state.ID, data, ttl.Milliseconds()).Int()
	if err != nil {
		return fmt.Errorf("failed to create game state: %w", err)
	}
	if ok == 0 {
		return models.ErrGameInProgress
	}
	return nil
}

func (s *RedisService) GetGameState(ctx context.Context, id string) (*models.GameState, error) {
	data, err := s.client.Get(ctx, stateKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, models.ErrGameNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get game state: %w", err)
	}

	var state models.GameState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("failed to unmarshal game state: %w", err)
	}
	return &state, nil
}

// UpdateGameState writes state if nobody else has written since it was read,
// bumping its version. A lost race is ErrStateConflict.
func (s *RedisService) UpdateGameState(ctx context.Context, state *models.GameState, ttl time.Duration) error {
	expected := state.Version
	next := *state
	next.Version = expected + 1
	next.UpdatedAt = time.Now()

	data, err := json.Marshal(&next)
	if err != nil {
		return fmt.Errorf("failed to marshal game state: %w", err)
	}

	keys := []string{stateKey(state.ID), activeKey(state.UserID, state.Game)}
	res, err := saveStateScript.Run(ctx, s.client, keys, expected, data, ttl.Milliseconds()).Int()
	if err != nil {
		return fmt.Errorf("failed to update game state: %w", err)
	}
	switch res {
	case -1:
		return models.ErrGameNotFound
	case 0:
		return models.ErrStateConflict
	}
	*state = next
	return nil
}

// DeleteGameState removes a game at the version it was read at.
func (s *RedisService) DeleteGameState(ctx context.Context, state *models.GameState) error {
	keys := []string{stateKey(state.ID), activeKey(state.UserID, state.Game)}
	res, err := deleteStateScript.Run(ctx, s.client, keys, state.Version, state.ID).Int()
	if err != nil {
		return fmt.Errorf("failed to delete game state: %w", err)
	}
	switch res {
	case -1:
		return models.ErrGameNotFound
	case 0:
		return models.ErrStateConflict
	}
	return nil
}

// ActiveGame returns the id of the user's live game of the given kind, or "".
func (s *RedisService) ActiveGame(ctx context.Context, userID uint, game models.GameType) (string, error) {
	id, err := s.client.Get(ctx, activeKey(userID, game)).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read active game: %w", err)
	}
	n, err := s.client.Exists(ctx, stateKey(id)).Result()
	if err != nil {
		return "", fmt.Errorf("failed to check game state: %w", err)
	}
	if n == 0 {
		return "", nil
	}
	return id, nil
}

// ActiveGames maps each game type the user has in progress to its game id.
func (s *RedisService) ActiveGames(ctx context.Context, userID uint) (map[models.GameType]string, error) {
	pattern := fmt.Sprintf(KeyActiveGames, userID)
	prefix := strings.TrimSuffix(pattern, "*")

	active := make(map[models.GameType]string)
	iter := s.client.Scan(ctx, 0, pattern, 100).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()
		id, err := s.client.Get(ctx, key).Result()
		if errors.Is(err, redis.Nil) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read active game: %w", err)
		}
		if n, err := s.client.Exists(ctx, stateKey(id)).Result(); err != nil || n == 0 {
			continue
		}
		active[models.GameType(strings.TrimPrefix(key, prefix))] = id
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan active games: %w", err)
	}
	return active, nil
}

func (s *RedisService) CheckRateLimit(ctx context.Context, scope string, accountID uint, action string, limit int, window time.Duration) (bool, error) {
	key := fmt.Sprintf(KeyRateLimit, scope, accountID, action)

	count, err := s.client.Incr(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check rate limit: %w", err)
	}

	if count == 1 {
		s.client.Expire(ctx, key, window)
	}

	return count <= int64(limit), nil
}
