package link

import (
	"strings"

	"github.com/dnslin/feedback-links/core/crypto"
	coreerrors "github.com/dnslin/feedback-links/core/errors"
)

// Environment 选择问卷服务所在环境。
type Environment string

const (
	// EnvQA 测试环境，域名带 qa1. 前缀。
	EnvQA Environment = "qa"
	// EnvProduction 生产环境。
	EnvProduction Environment = "production"
)

// 问卷服务地址组成部分。
const (
	hostPrefix = "surveys."
	hostSuffix = "reviewpro.com"
	qaPrefix   = "qa1."
	MailPath   = "/feedback/mail"
)

// ParseEnvironment 解析环境名，空值视为测试环境。
func ParseEnvironment(name string) (Environment, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "qa", "qa1", "test":
		return EnvQA, nil
	case "production", "prod":
		return EnvProduction, nil
	default:
		return "", coreerrors.Validation("未知环境: %s", name)
	}
}

// Host 返回环境对应的域名。
func (e Environment) Host() string {
	if e == EnvProduction {
		return hostPrefix + hostSuffix
	}
	return hostPrefix + qaPrefix + hostSuffix
}

// BaseURL 返回不含查询串的链接地址。
func (e Environment) BaseURL() string {
	return "https://" + e.Host() + MailPath
}

// Encryption 表示链接的加密选项，取值与 encryption 参数一致。
type Encryption string

const (
	// EncryptionNone 不加密，使用 HMAC 签名。
	EncryptionNone Encryption = "no-encryption"
	// EncryptionTripleDES 三密钥 3DES。
	EncryptionTripleDES Encryption = "tripledes"
	// EncryptionAES AES-128。
	EncryptionAES Encryption = "aes"
	// EncryptionAES256 AES-256，暂未对外开放。
	EncryptionAES256 Encryption = "aes256"
)

// ParseEncryption 解析加密选项，空值视为不加密。
func ParseEncryption(name string) (Encryption, error) {
	switch e := Encryption(strings.ToLower(strings.TrimSpace(name))); e {
	case "", "none":
		return EncryptionNone, nil
	case EncryptionNone, EncryptionTripleDES, EncryptionAES, EncryptionAES256:
		return e, nil
	default:
		return "", coreerrors.Validation("未知加密方式: %s", name)
	}
}

// Mode 返回加密选项对应的链接模式。
func (e Encryption) Mode() Mode {
	switch e {
	case EncryptionNone:
		return ModeSign
	case EncryptionTripleDES, EncryptionAES, EncryptionAES256:
		return ModeEncrypt
	default:
		return ModeUnsigned
	}
}

// Cipher 返回加密选项对应的分组密码。
func (e Encryption) Cipher() (crypto.Cipher, error) {
	c, err := crypto.ParseCipher(string(e))
	if err != nil {
		return 0, coreerrors.Wrap(coreerrors.ErrCodeValidation, "", err)
	}
	return c, nil
}
