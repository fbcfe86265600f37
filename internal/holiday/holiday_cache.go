package holiday

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"strconv"
	"time"

	"go-leave/internal/domain"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	YearCacheKeyPrefix = "holidays:year:"
	YearCacheTTL       = 1 * time.Hour
)

func GetYearCacheKey(year int) string {
	return YearCacheKeyPrefix + strconv.Itoa(year)
}

// yearDates returns the holiday dates (YYYY-MM-DD) of one calendar year,
// served from redis when possible.
func (s *service) yearDates(ctx context.Context, year int) ([]string, error) {
	key := GetYearCacheKey(year)

	if s.rdb != nil {
		cached, err := s.rdb.Get(ctx, key).Result()
		switch {
		case err == nil:
			var dates []string
			if json.Unmarshal([]byte(cached), &dates) == nil {
				return dates, nil
			}
			s.logger.Warn("holiday cache entry corrupt", zap.String("key", key))
		case !errors.Is(err, redis.Nil):
			s.logger.Warn("holiday cache read failed", zap.String("key", key), zap.Error(err))
		}
	}

	v, err, _ := s.sf.Do(key, func() (interface{}, error) {
		from := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
		to := time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)
		rows, err := s.repo.FindBetween(ctx, from, to)
		if err != nil {
			return nil, mapRepositoryError(err)
		}

		dates := make([]string, 0, len(rows))
		for _, h := range rows {
			dates = append(dates, h.Date.Format(domain.DateLayout))
		}

		if s.rdb != nil {
			if payload, err := json.Marshal(dates); err == nil {
				if err := s.rdb.Set(ctx, key, string(payload), YearCacheTTL).Err(); err != nil {
					s.logger.Warn("holiday cache write failed", zap.String("key", key), zap.Error(err))
				}
			}
		}
		return dates, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]string), nil
}

func (s *service) invalidateYears(ctx context.Context, years map[int]struct{}) {
	if s.rdb == nil || len(years) == 0 {
		return
	}
	sorted := make([]int, 0, len(years))
	for y := range years {
		sorted = append(sorted, y)
	}
	sort.Ints(sorted)

	keys := make([]string, 0, len(sorted))
	for _, y := range sorted {
		keys = append(keys, GetYearCacheKey(y))
	}
	if err := s.rdb.Del(ctx, keys...).Err(); err != nil {
		s.logger.Error("failed to invalidate holiday cache", zap.Strings("keys", keys), zap.Error(err))
	}
}
