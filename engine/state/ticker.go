package state

import (
	"context"
	"sync"
	"time"
)

// Ticker 为一次摸牌/弃牌超时或认领窗口提供可取消的定时器，一个 ticker 对应
// 一次等待。房间协调器在进入 AwaitingDiscard / AwaitingClaims 时创建一个，
// 在对应动作提交时 Cancel 它；超时则触发回调（例如掉线自动弃牌）。
type Ticker struct {
	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// NewTicker 启动一个在 d 后触发 onTimeout 的定时器，除非先被 Cancel。
func NewTicker(d time.Duration, onTimeout func()) *Ticker {
	ctx, cancel := context.WithTimeout(context.Background(), d)
	t := &Ticker{cancel: cancel, done: make(chan struct{})}
	go func() {
		defer close(t.done)
		<-ctx.Done()
		if ctx.Err() == context.DeadlineExceeded {
			onTimeout()
		}
	}()
	return t
}

// Cancel 取消定时器；若超时回调已经在运行，等待其完成再返回。
func (t *Ticker) Cancel() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.cancel == nil {
		return
	}
	t.cancel()
	t.cancel = nil
	<-t.done
}
