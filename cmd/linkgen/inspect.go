package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/dnslin/feedback-links/core/link"
)

func newInspectCmd(root *rootOptions) *cobra.Command {
	var secretKey string
	cmd := &cobra.Command{
		Use:   "inspect <url>",
		Short: "校验签名链接或解密加密链接并打印字段",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("secret-key") {
				cfg, err := root.loadConfig(cmd)
				if err != nil {
					return err
				}
				secretKey = cfg.SecretKey
			}
			parsed, err := link.Parse(args[0])
			if err != nil {
				return err
			}
			var fields link.FieldSet
			mode := "signed"
			if parsed.Encrypted() {
				mode = "encrypted (" + parsed.Query.Get(link.ParamEncryption) + ")"
				fields, err = link.Decrypt(args[0], secretKey)
			} else {
				fields, err = link.VerifySigned(args[0], secretKey)
			}
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "environment: %s\n", parsed.Environment)
			fmt.Fprintf(out, "mode: %s\n", mode)
			names := make([]string, 0, len(fields))
			for name := range fields {
				names = append(names, name)
			}
			sort.Strings(names)
			for _, name := range names {
				fmt.Fprintf(out, "%s=%s\n", name, fields[name])
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&secretKey, "secret-key", "", "SecretKey（默认取配置或环境变量）")
	return cmd
}
