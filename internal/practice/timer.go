package practice

import (
	"sync"
	"time"
)

// Countdown 每秒一跳的倒计时。到 0 时恰好回调一次 onExpire，
// 之后不再有任何 tick。Stop 幂等，未启动时调用也是安全的。
type Countdown interface {
	Start(seconds int, onTick func(remaining int), onExpire func())
	Stop()
}

// tickerCountdown 基于 time.Ticker 的实现
type tickerCountdown struct {
	interval time.Duration

	mu      sync.Mutex
	stopCh  chan struct{}
	running bool
}

func NewCountdown() Countdown {
	return &tickerCountdown{interval: time.Second}
}

func (c *tickerCountdown) Start(seconds int, onTick func(remaining int), onExpire func()) {
	c.mu.Lock()
	if c.running {
		// 与旧实现一致：重复 Start 先清掉已有的计时
		close(c.stopCh)
	}
	stop := make(chan struct{})
	c.stopCh = stop
	c.running = true
	c.mu.Unlock()

	if seconds <= 0 {
		c.finish(stop)
		onExpire()
		return
	}

	go func() {
		ticker := time.NewTicker(c.interval)
		defer ticker.Stop()

		remaining := seconds
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				// 取消是检查式的：Stop 之后已入队的 tick 不得生效
				select {
				case <-stop:
					return
				default:
				}

				remaining--
				if remaining < 0 {
					remaining = 0
				}
				onTick(remaining)

				if remaining == 0 {
					c.finish(stop)
					onExpire()
					return
				}
			}
		}
	}()
}

func (c *tickerCountdown) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.running {
		return
	}
	c.running = false
	close(c.stopCh)
}

// finish 在自然到期时收尾，避免后续 Stop 重复 close
func (c *tickerCountdown) finish(stop chan struct{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.running && c.stopCh == stop {
		c.running = false
		close(c.stopCh)
	}
}
