package main

import (
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/dnslin/feedback-links/core/config"
)

// now 为日期默认值提供时间来源，测试中替换。
var now = time.Now

type rootOptions struct {
	configPath string
	logLevel   string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:           "linkgen",
		Short:         "生成 ReviewPro 反馈问卷测试链接（HMAC 签名或分组加密）",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupLogger(cmd.ErrOrStderr(), opts.logLevel)
		},
	}
	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "YAML 配置文件路径")
	flags.StringVar(&opts.logLevel, "log-level", "info", "日志级别 (debug|info|warn|error)")

	cmd.AddCommand(
		newGenerateCmd(opts),
		newInspectCmd(opts),
		newConfigCmd(),
	)
	return cmd
}

func setupLogger(w io.Writer, level string) error {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		return err
	}
	zerolog.SetGlobalLevel(lvl)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339})
	return nil
}

// loadConfig 读取配置。命令行未显式指定 --log-level 时采用配置中的日志级别。
func (o *rootOptions) loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, err
	}
	if !cmd.Flags().Changed("log-level") && cfg.LogLevel != "" {
		if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
			zerolog.SetGlobalLevel(lvl)
		}
	}
	return cfg, nil
}

// zerologAdapter 将 zerolog 适配为 core 层的 Logger 接口。
type zerologAdapter struct {
	logger zerolog.Logger
}

func (a zerologAdapter) Debugf(format string, args ...any) {
	a.logger.Debug().Msgf(format, args...)
}

func (a zerologAdapter) Errorf(format string, args ...any) {
	a.logger.Error().Msgf(format, args...)
}
