// Package generate 负责链接生成请求的编排与状态管理。
package generate

// State 生成请求的状态。
type State int

const (
	// StateIdle 空闲，尚未生成或已重置。
	StateIdle State = iota
	// StateBuilding 生成中，期间拒绝重复触发。
	StateBuilding
	// StateSucceeded 生成成功，持有完整链接列表。
	StateSucceeded
	// StateFailed 生成失败，不保留部分结果。
	StateFailed
)

// String 返回状态的字符串表示。
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateBuilding:
		return "building"
	case StateSucceeded:
		return "succeeded"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Terminal 判断是否为终态。
func (s State) Terminal() bool {
	return s == StateSucceeded || s == StateFailed
}

// Snapshot 生成器状态快照，可安全传递给回调。
type Snapshot struct {
	RequestID string   // 当前请求 ID
	State     State    // 当前状态
	Total     int      // 本次请求的链接数量
	Links     []string // 按访客顺序排列的链接
	Err       error    // 失败原因
}

// StateCallback 状态变化回调函数类型。
type StateCallback func(s Snapshot)

// Logger 由外部注入，core 层不直接输出。
type Logger interface {
	Debugf(format string, args ...any)
	Errorf(format string, args ...any)
}

// NopLogger 默认空日志实现。
type NopLogger struct{}

func (NopLogger) Debugf(string, ...any) {}
func (NopLogger) Errorf(string, ...any) {}
