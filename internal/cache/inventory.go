package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	UserKeyPrefix        = "user:%d"
	LeaderboardKeyPrefix = "leaderboard:%d:%d"
)

const (
	UserTTL = 5 * time.Minute
	// LeaderboardTTL is deliberately short: the leaderboard is advisory and
	// slightly stale reads are acceptable, so toggles do not invalidate it.
	LeaderboardTTL = 30 * time.Second
)

func UserKey(userID uint) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

func LeaderboardKey(limit, hours int) string {
	return fmt.Sprintf(LeaderboardKeyPrefix, limit, hours)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateUser(ctx context.Context, userID uint) {
	Invalidate(ctx, UserKey(userID))
}
