package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	profileKeyPrefix = "profile:%d"
	githubKeyPrefix  = "github:%s"
	// ProfileListKey caches the public profile directory.
	ProfileListKey = "profiles:all"
)

const (
	ProfileTTL     = 5 * time.Minute
	ProfileListTTL = time.Minute
	GithubTTL      = 10 * time.Minute
)

// ProfileKey returns the cache key for a profile by owning user ID.
func ProfileKey(userID uint) string {
	return fmt.Sprintf(profileKeyPrefix, userID)
}

// GithubKey returns the cache key for a GitHub repo listing.
func GithubKey(username string) string {
	return fmt.Sprintf(githubKeyPrefix, username)
}

// Invalidate removes a key. No-op when Redis is unavailable.
func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

// InvalidateProfile drops the cached profile for the user and the directory listing.
func InvalidateProfile(ctx context.Context, userID uint) {
	Invalidate(ctx, ProfileKey(userID))
	Invalidate(ctx, ProfileListKey)
}
