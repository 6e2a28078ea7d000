package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/scenesmith/scenesmith/common/helper"
	"github.com/scenesmith/scenesmith/common/logger"
)

func RequestId() func(c *gin.Context) {
	return func(c *gin.Context) {
		// A caller-provided X-Request-Id wins; otherwise generate one.
		id := c.GetHeader(logger.RequestIdKey)
		if id == "" {
			id = helper.GenRequestID()
		}
		c.Set(logger.RequestIdKey, id)
		ctx := context.WithValue(c.Request.Context(), logger.RequestIdKey, id)
		c.Request = c.Request.WithContext(ctx)
		c.Request.Header.Set(logger.RequestIdKey, id)
		c.Header(logger.RequestIdKey, id)
		c.Next()
	}
}
