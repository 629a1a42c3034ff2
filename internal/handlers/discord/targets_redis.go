package discord

import (
	"context"
	"fmt"
	"sort"

	"github.com/redis/go-redis/v9"
)

type redisTargets struct {
	client redis.UniversalClient
}

// NewRedisTargetStore keeps each user's targets in a set so they survive a restart
func NewRedisTargetStore(client redis.UniversalClient) TargetStore {
	if client == nil {
		panic("redis client is required")
	}
	return &redisTargets{client: client}
}

func targetsKey(userID string) string {
	return fmt.Sprintf("targets:%s", userID)
}

func (s *redisTargets) Set(ctx context.Context, userID string, targets []string) error {
	targets = normalizeTargets(targets)
	key := targetsKey(userID)

	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, key)
		if len(targets) == 0 {
			return nil
		}
		members := make([]any, len(targets))
		for i, t := range targets {
			members[i] = t
		}
		pipe.SAdd(ctx, key, members...)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to store targets: %w", err)
	}
	return nil
}

func (s *redisTargets) Get(ctx context.Context, userID string) ([]string, error) {
	members, err := s.client.SMembers(ctx, targetsKey(userID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to load targets: %w", err)
	}
	sort.Strings(members)
	return members, nil
}

func (s *redisTargets) Clear(ctx context.Context, userID string) error {
	if err := s.client.Del(ctx, targetsKey(userID)).Err(); err != nil {
		return fmt.Errorf("failed to clear targets: %w", err)
	}
	return nil
}
