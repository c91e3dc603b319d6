package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/iWorld-y/headline_radar/app/headline_radar/pkg/model"
)

// ComputeFunc 缓存未命中时调用，返回的错误不会被缓存
type ComputeFunc func(ctx context.Context) (*model.ProviderResponse, error)

// Stats 缓存统计
type Stats struct {
	Entries int   `json:"entries"`
	Hits    int64 `json:"hits"`
	Misses  int64 `json:"misses"`
}

// Cache 进程内结果缓存，生命周期与进程相同，不做淘汰
type Cache struct {
	mu      sync.RWMutex
	entries map[string]model.CacheEntry
	group   singleflight.Group
	now     func() time.Time

	fmu     sync.Mutex
	flights map[string]*flight

	hits   atomic.Int64
	misses atomic.Int64
}

// flight 一次共享调用，所有等待者都离开后才取消
type flight struct {
	ctx     context.Context
	cancel  context.CancelFunc
	waiters int
}

// New 创建空缓存
func New() *Cache {
	return &Cache{
		entries: make(map[string]model.CacheEntry),
		flights: make(map[string]*flight),
		now:     time.Now,
	}
}

// Get 读取缓存条目，返回的值与缓存内部不共享内存
func (c *Cache) Get(key string) (model.CacheEntry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[key]
	if ok {
		e.Value = *clone(e.Value)
	}
	return e, ok
}

// Put 写入一次成功的结果，已存在的键保持不变
func (c *Cache) Put(key string, value model.ProviderResponse) model.CacheEntry {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		e = model.CacheEntry{Key: key, Value: *clone(value), CreatedAt: c.now()}
		c.entries[key] = e
	}
	e.Value = *clone(e.Value)
	return e
}

// GetOrCompute 命中时直接返回；同一个键的并发未命中只会触发一次 fn。
// 第二个返回值表示结果是否来自缓存。
// fn 收到的 context 与调用方解耦，只有所有等待者都放弃时才会被取消。
func (c *Cache) GetOrCompute(ctx context.Context, key string, fn ComputeFunc) (*model.ProviderResponse, bool, error) {
	if e, ok := c.Get(key); ok {
		c.hits.Add(1)
		return &e.Value, true, nil
	}

	for attempt := 0; ; attempt++ {
		resp, cached, err := c.compute(ctx, key, fn)
		// 加入了一个刚被放弃的调用，自己的 context 仍有效时重新发起一次
		if err != nil && attempt == 0 && errors.Is(err, context.Canceled) && ctx.Err() == nil {
			continue
		}
		return resp, cached, err
	}
}

func (c *Cache) compute(ctx context.Context, key string, fn ComputeFunc) (*model.ProviderResponse, bool, error) {
	f := c.join(ctx, key)
	defer c.leave(key, f)

	computed := false
	ch := c.group.DoChan(key, func() (interface{}, error) {
		// 等待期间其他调用可能已经写入
		if e, ok := c.Get(key); ok {
			return e, nil
		}
		computed = true
		resp, err := fn(f.ctx)
		if err != nil {
			return nil, err
		}
		return c.Put(key, *resp), nil
	})

	select {
	case <-ctx.Done():
		return nil, false, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			c.misses.Add(1)
			return nil, false, res.Err
		}
		v := clone(res.Val.(model.CacheEntry).Value)
		if computed {
			c.misses.Add(1)
			return v, false, nil
		}
		c.hits.Add(1)
		return v, true, nil
	}
}

func (c *Cache) join(ctx context.Context, key string) *flight {
	c.fmu.Lock()
	defer c.fmu.Unlock()
	f, ok := c.flights[key]
	if !ok {
		fctx, cancel := context.WithCancel(context.WithoutCancel(ctx))
		f = &flight{ctx: fctx, cancel: cancel}
		c.flights[key] = f
	}
	f.waiters++
	return f
}

func (c *Cache) leave(key string, f *flight) {
	c.fmu.Lock()
	defer c.fmu.Unlock()
	f.waiters--
	if f.waiters > 0 {
		return
	}
	f.cancel()
	if c.flights[key] == f {
		delete(c.flights, key)
	}
}

func clone(v model.ProviderResponse) *model.ProviderResponse {
	if v.ReasoningTrace != nil {
		trace := *v.ReasoningTrace
		v.ReasoningTrace = &trace
	}
	return &v
}

// Len 当前条目数
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Stats 返回统计快照
func (c *Cache) Stats() Stats {
	return Stats{
		Entries: c.Len(),
		Hits:    c.hits.Load(),
		Misses:  c.misses.Load(),
	}
}
