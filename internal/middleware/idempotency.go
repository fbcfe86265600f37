package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go-leave/internal/shared/apperror"
	"go-leave/internal/shared/contextutil"
	"go-leave/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	IdempotencyHeader   = "Idempotency-Key"
	IdempotencyReplayed = "Idempotent-Replayed"

	idempotencyTTL     = 24 * time.Hour
	idempotencyLockTTL = 30 * time.Second
	idempotencyCtxKey  = "idempotency_response"
)

var ErrIdempotencyInFlight = apperror.New(
	"PROCESSING",
	"A request with this Idempotency-Key is still being processed",
	http.StatusConflict,
)

type idempotentResponse struct {
	Status int             `json:"status"`
	Data   json.RawMessage `json:"data"`
}

// IdempotencyCacheKey scopes a client key to the route and the caller.
func IdempotencyCacheKey(path, userID, key string) string {
	return fmt.Sprintf("idemp:%s:%s:%s", path, userID, key)
}

// Idempotency replays the stored success response of a POST that was already
// completed with the same Idempotency-Key. Handlers opt in by calling
// StoreIdempotentResponse; failed requests are never cached.
func Idempotency(rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		idempKey := c.GetHeader(IdempotencyHeader)
		if rdb == nil || idempKey == "" || c.Request.Method != http.MethodPost {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		log := contextutil.GetLogger(ctx, zap.L())
		cacheKey := IdempotencyCacheKey(c.FullPath(), c.GetString("user_id"), idempKey)
		lockKey := cacheKey + ":lock"

		val, err := rdb.Get(ctx, cacheKey).Bytes()
		if err == nil {
			var cached idempotentResponse
			if err := json.Unmarshal(val, &cached); err == nil {
				c.Header(IdempotencyReplayed, "true")
				response.Success(c, cached.Status, cached.Data, nil)
				c.Abort()
				return
			}
			log.Warn("idempotency cache entry unreadable", zap.String("key", cacheKey))
		} else if !errors.Is(err, redis.Nil) {
			// Redis being down must not block submissions.
			log.Warn("idempotency cache read failed", zap.Error(err))
			c.Next()
			return
		}

		isNew, err := rdb.SetNX(ctx, lockKey, "locked", idempotencyLockTTL).Result()
		if err != nil {
			log.Warn("idempotency lock failed", zap.Error(err))
			c.Next()
			return
		}
		if !isNew {
			abortWith(c, ErrIdempotencyInFlight)
			return
		}
		defer rdb.Del(context.WithoutCancel(ctx), lockKey)

		c.Next()

		v, ok := c.Get(idempotencyCtxKey)
		if !ok {
			return
		}
		payload, err := json.Marshal(v)
		if err != nil {
			log.Warn("idempotency encode failed", zap.Error(err))
			return
		}
		if err := rdb.Set(context.WithoutCancel(ctx), cacheKey, payload, idempotencyTTL).Err(); err != nil {
			log.Warn("idempotency cache write failed", zap.Error(err))
		}
	}
}

// StoreIdempotentResponse marks data as the response to replay for this request.
func StoreIdempotentResponse(c *gin.Context, status int, data any) {
	raw, err := json.Marshal(data)
	if err != nil {
		return
	}
	c.Set(idempotencyCtxKey, idempotentResponse{Status: status, Data: raw})
}
