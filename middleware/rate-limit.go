package middleware

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/scenesmith/scenesmith/common"
	"github.com/scenesmith/scenesmith/common/config"
	"github.com/scenesmith/scenesmith/common/logger"
)

var timeFormat = "2006-01-02T15:04:05.000Z"

var inMemoryRateLimiter = struct {
	sync.Mutex
	buckets map[string][]time.Time
}{buckets: make(map[string][]time.Time)}

func redisRateLimiter(c *gin.Context, maxRequestNum int, duration int64, mark string) {
	ctx := c.Request.Context()
	rdb := common.RDB
	key := "rateLimit:" + mark + c.ClientIP()
	listLength, err := rdb.LLen(ctx, key).Result()
	if err != nil {
		fmt.Println(err.Error())
		c.Status(http.StatusInternalServerError)
		c.Abort()
		return
	}
	if listLength < int64(maxRequestNum) {
		rdb.LPush(ctx, key, time.Now().Format(timeFormat))
		rdb.Expire(ctx, key, config.RateLimitKeyExpirationDuration)
	} else {
		oldTimeStr, _ := rdb.LIndex(ctx, key, -1).Result()
		oldTime, err := time.Parse(timeFormat, oldTimeStr)
		if err != nil {
			logger.SysError("failed to parse rate limit timestamp: " + err.Error())
			c.Status(http.StatusInternalServerError)
			c.Abort()
			return
		}
		nowTimeStr := time.Now().Format(timeFormat)
		nowTime, err := time.Parse(timeFormat, nowTimeStr)
		if err != nil {
			logger.SysError("failed to parse rate limit timestamp: " + err.Error())
			c.Status(http.StatusInternalServerError)
			c.Abort()
			return
		}
		// time.Since will return negative number!
		// See: https://stackoverflow.com/questions/50970900/why-is-time-since-returning-negative-durations-on-windows
		if int64(nowTime.Sub(oldTime).Seconds()) < duration {
			rdb.Expire(ctx, key, config.RateLimitKeyExpirationDuration)
			c.Status(http.StatusTooManyRequests)
			c.Abort()
			return
		} else {
			rdb.LPush(ctx, key, time.Now().Format(timeFormat))
			rdb.LTrim(ctx, key, 0, int64(maxRequestNum-1))
			rdb.Expire(ctx, key, config.RateLimitKeyExpirationDuration)
		}
	}
}

func memoryRateLimiter(c *gin.Context, maxRequestNum int, duration int64, mark string) {
	key := mark + c.ClientIP()
	now := time.Now()
	cutoff := now.Add(-time.Duration(duration) * time.Second)

	inMemoryRateLimiter.Lock()
	stamps := inMemoryRateLimiter.buckets[key]
	kept := stamps[:0]
	for _, stamp := range stamps {
		if stamp.After(cutoff) {
			kept = append(kept, stamp)
		}
	}
	if len(kept) >= maxRequestNum {
		inMemoryRateLimiter.buckets[key] = kept
		inMemoryRateLimiter.Unlock()
		c.Status(http.StatusTooManyRequests)
		c.Abort()
		return
	}
	inMemoryRateLimiter.buckets[key] = append(kept, now)
	inMemoryRateLimiter.Unlock()
}

func rateLimitFactory(maxRequestNum int, duration int64, mark string) func(c *gin.Context) {
	if common.RedisEnabled {
		return func(c *gin.Context) {
			redisRateLimiter(c, maxRequestNum, duration, mark)
		}
	}
	return func(c *gin.Context) {
		memoryRateLimiter(c, maxRequestNum, duration, mark)
	}
}

func GlobalAPIRateLimit() func(c *gin.Context) {
	return rateLimitFactory(config.GlobalApiRateLimitNum, config.GlobalApiRateLimitDuration, "GA")
}

// GenerateRateLimit guards the expensive generation endpoints.
func GenerateRateLimit() func(c *gin.Context) {
	return rateLimitFactory(config.GenerateRateLimitNum, config.GenerateRateLimitDuration, "GN")
}
