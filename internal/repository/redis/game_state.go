package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Key patterns for Redis game state.
func stateKey(gameID string) string            { return "game:" + gameID + ":state" }
func ordersKey(gameID, playerID string) string { return "game:" + gameID + ":orders:" + playerID }
func readyKey(gameID string) string            { return "game:" + gameID + ":ready" }
func lockKey(gameID string) string             { return "game:" + gameID + ":lock" }

// SetGameState stores the live game snapshot JSON.
func (c *Client) SetGameState(ctx context.Context, gameID string, state json.RawMessage) error {
	return c.rdb.Set(ctx, stateKey(gameID), []byte(state), 0).Err()
}

// GetGameState retrieves the live game snapshot JSON.
func (c *Client) GetGameState(ctx context.Context, gameID string) (json.RawMessage, error) {
	data, err := c.rdb.Get(ctx, stateKey(gameID)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get game state: %w", err)
	}
	return json.RawMessage(data), nil
}

// SetOrders stores a player's order batch for the open turn.
func (c *Client) SetOrders(ctx context.Context, gameID, playerID string, orders json.RawMessage) error {
	return c.rdb.Set(ctx, ordersKey(gameID, playerID), []byte(orders), 0).Err()
}

// GetOrders retrieves a player's submitted order batch.
func (c *Client) GetOrders(ctx context.Context, gameID, playerID string) (json.RawMessage, error) {
	data, err := c.rdb.Get(ctx, ordersKey(gameID, playerID)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get orders: %w", err)
	}
	return json.RawMessage(data), nil
}

// GetAllOrders retrieves orders from every player that has submitted.
func (c *Client) GetAllOrders(ctx context.Context, gameID string, playerIDs []string) (map[string]json.RawMessage, error) {
	result := make(map[string]json.RawMessage)
	for _, id := range playerIDs {
		data, err := c.GetOrders(ctx, gameID, id)
		if err != nil {
			return nil, err
		}
		if data != nil {
			result[id] = data
		}
	}
	return result, nil
}

// MarkReady adds a player to the ready set for the game.
func (c *Client) MarkReady(ctx context.Context, gameID, playerID string) error {
	return c.rdb.SAdd(ctx, readyKey(gameID), playerID).Err()
}

// UnmarkReady removes a player from the ready set.
func (c *Client) UnmarkReady(ctx context.Context, gameID, playerID string) error {
	return c.rdb.SRem(ctx, readyKey(gameID), playerID).Err()
}

// ReadyCount returns how many players have marked ready.
func (c *Client) ReadyCount(ctx context.Context, gameID string) (int64, error) {
	return c.rdb.SCard(ctx, readyKey(gameID)).Result()
}

// ReadyPlayers returns the players that have marked ready.
func (c *Client) ReadyPlayers(ctx context.Context, gameID string) ([]string, error) {
	return c.rdb.SMembers(ctx, readyKey(gameID)).Result()
}

// turnLockTTL bounds how long a crashed resolver can hold a game.
const turnLockTTL = 30 * time.Second

// AcquireTurnLock takes the per-game resolution lock. Returns false when
// another resolver holds it.
func (c *Client) AcquireTurnLock(ctx context.Context, gameID string) (bool, error) {
	ok, err := c.rdb.SetNX(ctx, lockKey(gameID), 1, turnLockTTL).Result()
	if err != nil {
		return false, fmt.Errorf("acquire turn lock: %w", err)
	}
	return ok, nil
}

// ReleaseTurnLock releases the per-game resolution lock.
func (c *Client) ReleaseTurnLock(ctx context.Context, gameID string) error {
	return c.rdb.Del(ctx, lockKey(gameID)).Err()
}

// ClearTurnData removes submitted orders and ready marks after resolution.
func (c *Client) ClearTurnData(ctx context.Context, gameID string, playerIDs []string) error {
	keys := []string{readyKey(gameID)}
	for _, id := range playerIDs {
		keys = append(keys, ordersKey(gameID, id))
	}
	return c.rdb.Del(ctx, keys...).Err()
}

// DeleteGameData removes all Redis keys for a game.
func (c *Client) DeleteGameData(ctx context.Context, gameID string, playerIDs []string) error {
	keys := []string{stateKey(gameID), readyKey(gameID), lockKey(gameID)}
	for _, id := range playerIDs {
		keys = append(keys, ordersKey(gameID, id))
	}
	return c.rdb.Del(ctx, keys...).Err()
}
