package cache

import (
	"context"
	"fmt"
	"log/slog"
)

// SafeInvalidatePattern safely invalidates cache pattern with logging
func SafeInvalidatePattern(ctx context.Context, helper *CacheHelper, pattern string) {
	if err := helper.InvalidatePattern(ctx, pattern); err != nil {
		slog.ErrorContext(ctx, "Failed to invalidate cache pattern",
			"error", err,
			"pattern", pattern)
	}
}

// SafeDelete safely deletes cache keys with logging
func SafeDelete(ctx context.Context, helper *CacheHelper, keys ...string) {
	if err := helper.Delete(ctx, keys...); err != nil {
		slog.ErrorContext(ctx, "Failed to delete cache keys",
			"error", err,
			"keys", keys)
	}
}

// InvalidateUserCache invalidates every cache entry tied to one user record.
// Username and email existence flags have to go too: either may have just
// become stale (create or delete). Cached list pages cannot be tied to a
// single record, so the whole list cache goes.
func InvalidateUserCache(ctx context.Context, cm *CacheManager, userID, username, email string) {
	SafeDelete(ctx, cm.User, fmt.Sprintf("id:%s", userID))
	SafeDelete(ctx, cm.Exists,
		fmt.Sprintf("username:%s", username),
		fmt.Sprintf("email:%s", email))
	SafeInvalidatePattern(ctx, cm.User, "list:*")
}
