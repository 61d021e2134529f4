package main

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/dnslin/feedback-links/core/config"
	coreerrors "github.com/dnslin/feedback-links/core/errors"
	"github.com/dnslin/feedback-links/core/generate"
	"github.com/dnslin/feedback-links/core/link"
)

// 多访客数量范围，由命令行边界约束。
const (
	minGuests = 2
	maxGuests = 20
)

type generateOptions struct {
	apiKey     string
	secretKey  string
	surveyID   string
	pmsID      string
	checkin    string
	checkout   string
	firstName  string
	lastName   string
	email      string
	params     []string
	encryption string
	env        string
	prod       bool
	multiple   bool
	guests     int
}

func newGenerateCmd(root *rootOptions) *cobra.Command {
	opts := &generateOptions{}
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "生成一条或多条问卷链接",
		Example: `  linkgen generate --api-key K1 --secret-key secret --survey-id S1 --pms-id P1 --email a@b.com
  linkgen generate --config profile.yaml --multiple --guests 5 --encryption tripledes`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := root.loadConfig(cmd)
			if err != nil {
				return err
			}
			req, err := opts.request(cmd, cfg)
			if err != nil {
				return err
			}
			logger := log.With().Str("component", "generate").Logger()
			g := generate.NewGenerator(
				generate.WithMaxConcurrent(cfg.Concurrency),
				generate.WithLogger(zerologAdapter{logger: logger}),
				generate.WithStateCallback(func(s generate.Snapshot) {
					logger.Debug().Str("request_id", s.RequestID).Str("state", s.State.String()).Int("total", s.Total).Msg("[generate] 状态变化")
				}),
			)
			links, err := g.Generate(cmd.Context(), req)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, l := range links {
				fmt.Fprintln(out, l)
			}
			log.Info().
				Str("environment", string(req.Form.Environment)).
				Str("encryption", string(req.Form.Encryption)).
				Int("links", len(links)).
				Msg("[generate] 生成完成")
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.apiKey, "api-key", "", "ApiKey（env: "+config.EnvAPIKey+"）")
	flags.StringVar(&opts.secretKey, "secret-key", "", "SecretKey，加密模式下按原始字节作为密钥（env: "+config.EnvSecretKey+"）")
	flags.StringVar(&opts.surveyID, "survey-id", "", "Survey ID")
	flags.StringVar(&opts.pmsID, "pms-id", "", "PMS ID")
	flags.StringVar(&opts.checkin, "checkin", "", "入住日期 yyyy-MM-dd（默认今天-14 天）")
	flags.StringVar(&opts.checkout, "checkout", "", "离店日期 yyyy-MM-dd（默认今天-12 天）")
	flags.StringVar(&opts.firstName, "first-name", "", "名")
	flags.StringVar(&opts.lastName, "last-name", "", "姓")
	flags.StringVar(&opts.email, "email", "", "邮箱（单访客模式必填）")
	flags.StringArrayVar(&opts.params, "param", nil, "额外参数 key=value，可重复")
	flags.StringVar(&opts.encryption, "encryption", "", "加密方式 no-encryption|tripledes|aes（env: "+config.EnvEncryption+"）")
	flags.StringVar(&opts.env, "env", "", "环境 qa|production（env: "+config.EnvEnvironment+"）")
	flags.BoolVar(&opts.prod, "prod", false, "使用生产环境，等同 --env production")
	flags.BoolVar(&opts.multiple, "multiple", false, "多访客模式，邮箱与姓名随机生成")
	flags.IntVar(&opts.guests, "guests", 0, fmt.Sprintf("多访客数量 %d-%d（默认取配置）", minGuests, maxGuests))
	return cmd
}

// request 合并配置与命令行参数，命令行优先。
func (o *generateOptions) request(cmd *cobra.Command, cfg *config.Config) (generate.Request, error) {
	if o.env != "" {
		cfg.Environment = o.env
	}
	if o.prod {
		cfg.Environment = string(link.EnvProduction)
	}
	if o.encryption != "" {
		cfg.Encryption = o.encryption
	}
	form, err := cfg.Form(now())
	if err != nil {
		return generate.Request{}, err
	}
	if form.Encryption == link.EncryptionAES256 {
		return generate.Request{}, coreerrors.Validation("加密方式 %s 暂未开放", form.Encryption)
	}

	flags := cmd.Flags()
	override := func(name string, dst *string, val string) {
		if flags.Changed(name) {
			*dst = val
		}
	}
	override("api-key", &form.APIKey, o.apiKey)
	override("secret-key", &form.SecretKey, o.secretKey)
	override("survey-id", &form.SurveyID, o.surveyID)
	override("pms-id", &form.PMSID, o.pmsID)
	override("checkin", &form.Checkin, o.checkin)
	override("checkout", &form.Checkout, o.checkout)
	form.FirstName = o.firstName
	form.LastName = o.lastName
	form.Email = o.email

	// 命令行参数覆盖配置中的同名参数，但自身不允许重复
	seen := make(map[string]struct{}, len(o.params))
	for _, kv := range o.params {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || key == "" {
			return generate.Request{}, coreerrors.Validation("额外参数格式应为 key=value: %q", kv)
		}
		if _, dup := seen[key]; dup {
			return generate.Request{}, coreerrors.Validation("额外参数 %s 重复", key)
		}
		seen[key] = struct{}{}
		form.Params[key] = value
	}

	req := generate.Request{Form: form, Multiple: o.multiple}
	if o.multiple {
		req.Guests = cfg.Guests
		if flags.Changed("guests") {
			req.Guests = o.guests
		}
		if req.Guests < minGuests || req.Guests > maxGuests {
			return generate.Request{}, coreerrors.Validation("访客数量应在 %d-%d 之间，实际 %d", minGuests, maxGuests, req.Guests)
		}
	}
	return req, nil
}
