package gateway

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStats acumula contadores en hashes de Redis:
//
//	<prefix>:total                 allowed|denied
//	<prefix>:route:<id>            allowed|denied
//	<prefix>:minute:<yyyymmddhhmm> allowed|denied (expira con ttl)
type RedisStats struct {
	rdb    redis.Cmdable
	prefix string
	ttl    time.Duration
	now    func() time.Time
}

func NewRedisStats(rdb redis.Cmdable, prefix string, ttl time.Duration) *RedisStats {
	prefix = strings.Trim(strings.TrimSpace(prefix), ":")
	if prefix == "" {
		prefix = "animal-rescue:ratelimit"
	}
	return &RedisStats{
		rdb:    rdb,
		prefix: prefix,
		ttl:    ttl,
		now:    time.Now,
	}
}

func (s *RedisStats) Record(ctx context.Context, route string, allowed bool) error {
	if s == nil || s.rdb == nil {
		return nil
	}

	field := "denied"
	if allowed {
		field = "allowed"
	}

	pipe := s.rdb.Pipeline()
	pipe.HIncrBy(ctx, s.prefix+":total", field, 1)
	pipe.HIncrBy(ctx, s.routeKey(route), field, 1)

	bucketKey := fmt.Sprintf("%s:minute:%s", s.prefix, s.now().UTC().Format("200601021504"))
	pipe.HIncrBy(ctx, bucketKey, field, 1)
	if s.ttl > 0 {
		pipe.Expire(ctx, bucketKey, s.ttl)
	}

	_, err := pipe.Exec(ctx)
	return err
}

// Get lee los contadores acumulados de una ruta.
func (s *RedisStats) Get(ctx context.Context, route string) (Counters, error) {
	m, err := s.rdb.HGetAll(ctx, s.routeKey(route)).Result()
	if err != nil {
		return Counters{}, err
	}
	var c Counters
	c.Allowed, _ = strconv.ParseInt(m["allowed"], 10, 64)
	c.Denied, _ = strconv.ParseInt(m["denied"], 10, 64)
	return c, nil
}

func (s *RedisStats) routeKey(route string) string {
	return s.prefix + ":route:" + route
}
