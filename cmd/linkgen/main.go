// linkgen 命令行生成 ReviewPro 反馈问卷测试链接。
// 运行: go run ./cmd/linkgen generate --help
package main

import (
	"os"

	"github.com/rs/zerolog/log"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Error().Err(err).Msg("[linkgen] 执行失败")
		os.Exit(1)
	}
}
