package link

import (
	"strings"

	"github.com/dnslin/feedback-links/core/crypto"
	coreerrors "github.com/dnslin/feedback-links/core/errors"
)

// Canonical 规范化结果。Names 为参与计算的字段，按码点序排列。
type Canonical struct {
	Mode   Mode
	Names  []string
	Values FieldSet
	Text   string
}

// Pairs 按 Names 顺序返回参数。
func (c *Canonical) Pairs() []crypto.Pair {
	pairs := make([]crypto.Pair, 0, len(c.Names))
	for _, name := range c.Names {
		pairs = append(pairs, crypto.Pair{Key: name, Value: c.Values[name]})
	}
	return pairs
}

// Canonicalize 按字段名字典序生成规范化文本。
// 签名模式下直接拼接字段值；加密模式下生成 name=value&... 并排除 apiKey。
// firstName/lastName 为空时省略，其余字段为空则失败。
func Canonicalize(fields FieldSet, mode Mode) (*Canonical, error) {
	if mode != ModeSign && mode != ModeEncrypt {
		return nil, coreerrors.Validation("不支持的链接模式: %s", mode)
	}
	for _, name := range requiredFields(mode) {
		if fields[name] == "" {
			return nil, coreerrors.Validation("字段 %s 不能为空", name)
		}
	}

	values := fields.Clone()
	if mode == ModeEncrypt {
		delete(values, FieldAPIKey)
	}
	for name, value := range values {
		if name == ParamSig || name == ParamEncryption || name == ParamKey {
			return nil, coreerrors.Validation("字段 %s 为保留参数", name)
		}
		if value == "" && !isOptional(name) {
			return nil, coreerrors.Validation("字段 %s 不能为空", name)
		}
	}
	for _, name := range []string{FieldFirstName, FieldLastName} {
		if values[name] == "" {
			delete(values, name)
		}
	}

	pairs := crypto.SortedPairs(values)
	names := make([]string, 0, len(pairs))
	for _, p := range pairs {
		names = append(names, p.Key)
	}

	c := &Canonical{Mode: mode, Names: names, Values: values}
	if mode == ModeSign {
		var buf strings.Builder
		for _, p := range pairs {
			buf.WriteString(p.Value)
		}
		c.Text = buf.String()
	} else {
		c.Text = crypto.EncodeParamsSorted(values)
	}
	return c, nil
}
