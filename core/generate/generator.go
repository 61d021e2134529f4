package generate

import (
	"context"
	"fmt"
	"sync"

	"github.com/dnslin/feedback-links/core/crypto"
	coreerrors "github.com/dnslin/feedback-links/core/errors"
	"github.com/dnslin/feedback-links/core/link"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// ErrBusy 在上一次请求仍在生成时返回。
var ErrBusy = coreerrors.New(coreerrors.ErrCodeInvalidState, "generate: 正在生成中")

// Generator 链接生成器，维护 Idle → Building → Succeeded|Failed 状态机。
type Generator struct {
	mu        sync.RWMutex
	state     State
	requestID string
	total     int
	links     []string
	err       error
	callbacks []StateCallback

	maxConcurrent int         // 多访客并发上限
	logger        Logger      // 日志
	intn          crypto.IntN // 访客后缀随机源
	newID         func() string
}

// Option 生成器配置选项。
type Option func(*Generator)

// WithMaxConcurrent 设置多访客生成的并发上限。
func WithMaxConcurrent(n int) Option {
	return func(g *Generator) {
		if n > 0 {
			g.maxConcurrent = n
		}
	}
}

// WithLogger 注入日志。
func WithLogger(logger Logger) Option {
	return func(g *Generator) {
		g.logger = logger
	}
}

// WithRandom 替换访客后缀随机源，便于测试。
func WithRandom(intn crypto.IntN) Option {
	return func(g *Generator) {
		g.intn = intn
	}
}

// WithRequestID 替换请求 ID 生成逻辑。
func WithRequestID(fn func() string) Option {
	return func(g *Generator) {
		g.newID = fn
	}
}

// WithStateCallback 注册状态变化回调。
func WithStateCallback(cb StateCallback) Option {
	return func(g *Generator) {
		if cb != nil {
			g.callbacks = append(g.callbacks, cb)
		}
	}
}

// NewGenerator 创建生成器。
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{
		state:         StateIdle,
		maxConcurrent: 4, // 默认并发数
		logger:        NopLogger{},
		intn:          crypto.DefaultIntN,
		newID:         func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		if opt != nil {
			opt(g)
		}
	}
	if g.logger == nil {
		g.logger = NopLogger{}
	}
	if g.intn == nil {
		g.intn = crypto.DefaultIntN
	}
	if g.newID == nil {
		g.newID = func() string { return uuid.New().String() }
	}
	return g
}

// OnStateChange 注册状态变化回调。
func (g *Generator) OnStateChange(cb StateCallback) {
	if cb == nil {
		return
	}
	g.mu.Lock()
	g.callbacks = append(g.callbacks, cb)
	g.mu.Unlock()
}

// Snapshot 返回当前状态快照。
func (g *Generator) Snapshot() Snapshot {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.snapshotLocked()
}

func (g *Generator) snapshotLocked() Snapshot {
	var links []string
	if g.links != nil {
		links = append([]string(nil), g.links...)
	}
	return Snapshot{
		RequestID: g.requestID,
		State:     g.state,
		Total:     g.total,
		Links:     links,
		Err:       g.err,
	}
}

// Reset 清空上一次的结果，回到 Idle。生成中不允许重置。
func (g *Generator) Reset() error {
	g.mu.Lock()
	if g.state == StateBuilding {
		g.mu.Unlock()
		return ErrBusy
	}
	g.state = StateIdle
	g.requestID = ""
	g.total = 0
	g.links = nil
	g.err = nil
	snap := g.snapshotLocked()
	g.mu.Unlock()
	g.notify(snap)
	return nil
}

// Generate 执行一次生成请求，返回按访客顺序排列的链接。
// 任一访客失败则整个请求失败，不保留部分结果。
func (g *Generator) Generate(ctx context.Context, req Request) ([]string, error) {
	id, err := g.begin(req.Count())
	if err != nil {
		return nil, err
	}
	g.logger.Debugf("generate: 请求 %s 开始，模式=%s 数量=%d", id, req.Form.Encryption.Mode(), req.Count())

	links, err := g.build(ctx, req)
	if err != nil {
		g.logger.Errorf("generate: 请求 %s 失败: %v", id, err)
		g.finish(StateFailed, nil, err)
		return nil, err
	}
	g.logger.Debugf("generate: 请求 %s 完成，共 %d 条链接", id, len(links))
	g.finish(StateSucceeded, links, nil)
	return append([]string(nil), links...), nil
}

// begin 进入 Building 状态并清空上一次的链接。
func (g *Generator) begin(total int) (string, error) {
	g.mu.Lock()
	if g.state == StateBuilding {
		g.mu.Unlock()
		return "", ErrBusy
	}
	g.state = StateBuilding
	g.requestID = g.newID()
	g.total = total
	g.links = nil
	g.err = nil
	id := g.requestID
	snap := g.snapshotLocked()
	g.mu.Unlock()
	g.notify(snap)
	return id, nil
}

func (g *Generator) finish(state State, links []string, err error) {
	g.mu.Lock()
	g.state = state
	g.links = links
	g.err = err
	snap := g.snapshotLocked()
	g.mu.Unlock()
	g.notify(snap)
}

func (g *Generator) notify(snap Snapshot) {
	g.mu.RLock()
	callbacks := make([]StateCallback, len(g.callbacks))
	copy(callbacks, g.callbacks)
	g.mu.RUnlock()
	for _, cb := range callbacks {
		cb(snap)
	}
}

func (g *Generator) build(ctx context.Context, req Request) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if !req.Multiple {
		fields, err := req.Form.SingleFields()
		if err != nil {
			return nil, err
		}
		url, err := link.Build(req.Form.linkRequest(fields))
		if err != nil {
			return nil, err
		}
		return []string{url}, nil
	}

	// 随机源不保证并发安全，先按访客顺序抽取后缀
	suffixes := make([]string, req.Guests)
	for i := range suffixes {
		suffixes[i] = crypto.RandomSuffix(g.intn, req.Guests)
	}

	links := make([]string, req.Guests)
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(g.maxConcurrent)
	for i := range suffixes {
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}
			fields, err := req.Form.GuestFields(suffixes[i])
			if err != nil {
				return err
			}
			url, err := link.Build(req.Form.linkRequest(fields))
			if err != nil {
				return fmt.Errorf("访客 %d: %w", i+1, err)
			}
			links[i] = url
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return links, nil
}
