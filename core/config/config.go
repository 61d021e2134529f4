// Package config 读取链接生成器的 YAML 配置并应用环境变量覆盖。
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	coreerrors "github.com/dnslin/feedback-links/core/errors"
	"github.com/dnslin/feedback-links/core/generate"
	"github.com/dnslin/feedback-links/core/link"
	"github.com/dnslin/feedback-links/core/store"
)

// 环境变量名。
const (
	EnvAPIKey      = "FEEDLINK_API_KEY"
	EnvSecretKey   = "FEEDLINK_SECRET_KEY"
	EnvEnvironment = "FEEDLINK_ENV"
	EnvEncryption  = "FEEDLINK_ENCRYPTION"
)

// 默认值，与原表单初始状态一致。
const (
	DefaultGuests         = 10
	DefaultConcurrency    = 4
	DefaultCheckinOffset  = -14
	DefaultCheckoutOffset = -12
)

// Config 生成器配置。
type Config struct {
	Environment string `yaml:"environment"`
	Encryption  string `yaml:"encryption"`

	APIKey    string `yaml:"api_key"`
	SecretKey string `yaml:"secret_key"`
	SurveyID  string `yaml:"survey_id"`
	PMSID     string `yaml:"pms_id"`

	Guests      int `yaml:"guests"`
	Concurrency int `yaml:"concurrency"`

	// 入住/离店日期相对今天的偏移天数，未设置时使用默认值
	CheckinOffset  *int `yaml:"checkin_offset_days,omitempty"`
	CheckoutOffset *int `yaml:"checkout_offset_days,omitempty"`

	Params   map[string]string `yaml:"params,omitempty"`
	LogLevel string            `yaml:"log_level,omitempty"`
}

// Default 返回默认配置。
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load 读取配置文件。path 为空时只使用默认值与环境变量。
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if path != "" {
		s := store.NewYAMLFileStore[Config](path)
		loaded, err := s.LoadConfig()
		if err != nil {
			if errors.Is(err, store.ErrConfigNotFound) {
				return nil, coreerrors.Wrap(coreerrors.ErrCodeInvalidConfig, fmt.Sprintf("config: 配置文件不存在: %s", s.Path()), err)
			}
			return nil, coreerrors.Wrap(coreerrors.ErrCodeInvalidConfig, "", err)
		}
		cfg = &loaded
	}
	cfg.applyEnvOverrides()
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save 通过 store 写入配置。
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return coreerrors.New(coreerrors.ErrCodeInvalidArgument, "config: 配置为空")
	}
	return store.NewYAMLFileStore[Config](path).SaveConfig(*cfg)
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(EnvAPIKey); v != "" {
		c.APIKey = v
	}
	if v := os.Getenv(EnvSecretKey); v != "" {
		c.SecretKey = v
	}
	if v := os.Getenv(EnvEnvironment); v != "" {
		c.Environment = v
	}
	if v := os.Getenv(EnvEncryption); v != "" {
		c.Encryption = v
	}
}

func (c *Config) applyDefaults() {
	if c.Environment == "" {
		c.Environment = string(link.EnvQA)
	}
	if c.Encryption == "" {
		c.Encryption = string(link.EncryptionNone)
	}
	if c.Guests == 0 {
		c.Guests = DefaultGuests
	}
	if c.Concurrency == 0 {
		c.Concurrency = DefaultConcurrency
	}
	if c.CheckinOffset == nil {
		v := DefaultCheckinOffset
		c.CheckinOffset = &v
	}
	if c.CheckoutOffset == nil {
		v := DefaultCheckoutOffset
		c.CheckoutOffset = &v
	}
}

// Validate 校验配置，汇总全部问题后返回。
func (c *Config) Validate() error {
	var errs []string
	if _, err := link.ParseEnvironment(c.Environment); err != nil {
		errs = append(errs, fmt.Sprintf("environment: 未知环境 %q", c.Environment))
	}
	if _, err := link.ParseEncryption(c.Encryption); err != nil {
		errs = append(errs, fmt.Sprintf("encryption: 未知加密方式 %q", c.Encryption))
	}
	if c.Guests < 0 {
		errs = append(errs, fmt.Sprintf("guests: 必须为正整数，实际 %d", c.Guests))
	}
	if c.Concurrency < 0 {
		errs = append(errs, fmt.Sprintf("concurrency: 必须为正整数，实际 %d", c.Concurrency))
	}
	for k, v := range c.Params {
		if strings.TrimSpace(k) == "" {
			errs = append(errs, "params: 参数名不能为空")
			continue
		}
		if link.IsReserved(k) {
			errs = append(errs, fmt.Sprintf("params.%s: 与保留字段重名", k))
		}
		if v == "" {
			errs = append(errs, fmt.Sprintf("params.%s: 值不能为空", k))
		}
	}
	if len(errs) > 0 {
		return coreerrors.New(coreerrors.ErrCodeInvalidConfig, "config: 配置无效:\n - "+strings.Join(errs, "\n - "))
	}
	return nil
}

// Dates 按偏移量计算入住/离店日期。
func (c *Config) Dates(now time.Time) (checkin, checkout string) {
	in, out := DefaultCheckinOffset, DefaultCheckoutOffset
	if c.CheckinOffset != nil {
		in = *c.CheckinOffset
	}
	if c.CheckoutOffset != nil {
		out = *c.CheckoutOffset
	}
	return now.AddDate(0, 0, in).Format(generate.DateLayout), now.AddDate(0, 0, out).Format(generate.DateLayout)
}

// Form 根据配置生成表单的默认值，访客信息由调用方补充。
func (c *Config) Form(now time.Time) (generate.Form, error) {
	env, err := link.ParseEnvironment(c.Environment)
	if err != nil {
		return generate.Form{}, err
	}
	enc, err := link.ParseEncryption(c.Encryption)
	if err != nil {
		return generate.Form{}, err
	}
	checkin, checkout := c.Dates(now)
	params := make(map[string]string, len(c.Params))
	for k, v := range c.Params {
		params[k] = v
	}
	return generate.Form{
		Environment: env,
		Encryption:  enc,
		APIKey:      c.APIKey,
		SecretKey:   c.SecretKey,
		SurveyID:    c.SurveyID,
		PMSID:       c.PMSID,
		Checkin:     checkin,
		Checkout:    checkout,
		Params:      params,
	}, nil
}
