package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

// ErrConfigNotFound 表示配置文件不存在。
var ErrConfigNotFound = errors.New("store: 配置不存在")

// ConfigStore 抽象用户偏好或客户端配置的存储。
type ConfigStore[T any] interface {
	SaveConfig(cfg T) error
	LoadConfig() (T, error)
	ClearConfig() error
}

// YAMLFileStore 以 YAML 文件保存配置。
type YAMLFileStore[T any] struct {
	mu   sync.Mutex
	path string
}

var _ ConfigStore[struct{}] = (*YAMLFileStore[struct{}])(nil)

// NewYAMLFileStore 创建文件存储。
func NewYAMLFileStore[T any](path string) *YAMLFileStore[T] {
	return &YAMLFileStore[T]{path: path}
}

// Path 返回配置文件路径。
func (s *YAMLFileStore[T]) Path() string {
	return s.path
}

// SaveConfig 写入配置，文件权限为 0600（配置中可能包含密钥）。
func (s *YAMLFileStore[T]) SaveConfig(cfg T) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("store: 序列化配置失败: %w", err)
	}
	if dir := filepath.Dir(s.path); dir != "" {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("store: 创建目录失败: %w", err)
		}
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("store: 写入配置失败: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("store: 写入配置失败: %w", err)
	}
	return nil
}

// LoadConfig 读取配置，文件不存在时返回 ErrConfigNotFound。
func (s *YAMLFileStore[T]) LoadConfig() (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var cfg T
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, ErrConfigNotFound
		}
		return cfg, fmt.Errorf("store: 读取配置失败: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("store: 解析配置失败: %w", err)
	}
	return cfg, nil
}

// ClearConfig 删除配置文件，文件不存在视为成功。
func (s *YAMLFileStore[T]) ClearConfig() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("store: 删除配置失败: %w", err)
	}
	return nil
}
