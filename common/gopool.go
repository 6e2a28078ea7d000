package common

import (
	"context"
	"fmt"
	"math"

	"github.com/bytedance/gopkg/util/gopool"
	"github.com/scenesmith/scenesmith/common/logger"
)

var studioGoPool gopool.Pool

func init() {
	studioGoPool = gopool.NewPool("gopool.StudioPool", math.MaxInt32, gopool.NewConfig())
	studioGoPool.SetPanicHandler(func(ctx context.Context, i interface{}) {
		logger.SysError(fmt.Sprintf("panic in gopool.StudioPool: %v", i))
	})
}

// SafeGoroutine runs f on the shared pool so a panic inside a background
// generation task cannot take the process down.
func SafeGoroutine(f func()) {
	studioGoPool.Go(f)
}
