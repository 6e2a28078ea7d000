package common

import (
	"bytes"
	"io"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

const KeyRequestBody = "key_request_body"

func GetRequestBody(c *gin.Context) ([]byte, error) {
	requestBody, _ := c.Get(KeyRequestBody)
	if requestBody != nil {
		return requestBody.([]byte), nil
	}
	requestBody, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return nil, err
	}
	_ = c.Request.Body.Close()
	c.Set(KeyRequestBody, requestBody)
	return requestBody.([]byte), nil
}

// UnmarshalBodyReusable binds the request body without consuming it, so a
// handler further down the chain can bind again.
func UnmarshalBodyReusable(c *gin.Context, v any) error {
	requestBody, err := GetRequestBody(c)
	if err != nil {
		return err
	}

	contentType := c.Request.Header.Get("Content-Type")

	if strings.HasPrefix(contentType, "application/json") {
		c.Request.Body = io.NopCloser(bytes.NewBuffer(requestBody))
		return c.ShouldBindJSON(v)
	} else if strings.HasPrefix(contentType, "application/x-www-form-urlencoded") ||
		strings.HasPrefix(contentType, "multipart/form-data") {
		c.Request.Body = io.NopCloser(bytes.NewBuffer(requestBody))
		return c.ShouldBindWith(v, binding.Form)
	}

	// No Content-Type: try JSON first, then form.
	c.Request.Body = io.NopCloser(bytes.NewBuffer(requestBody))
	if err := c.ShouldBindJSON(v); err == nil {
		return nil
	}

	c.Request.Body = io.NopCloser(bytes.NewBuffer(requestBody))
	return c.ShouldBindWith(v, binding.Form)
}
