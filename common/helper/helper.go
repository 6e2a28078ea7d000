package helper

import (
	"fmt"
	"math/rand"
	"time"
)

func GetTimestamp() int64 {
	return time.Now().Unix()
}

func GetTimeString() string {
	now := time.Now()
	return fmt.Sprintf("%s%d", now.Format("20060102150405"), now.UnixNano()%1e9)
}

// GenRequestID returns a sortable id unique enough for log correlation.
func GenRequestID() string {
	return GetTimeString() + fmt.Sprintf("%04d", rand.Intn(10000))
}

func MessageWithRequestId(message string, id string) string {
	if id == "" {
		return message
	}
	return fmt.Sprintf("%s (request id: %s)", message, id)
}
