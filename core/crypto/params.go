package crypto

import (
	"net/url"
	"sort"
	"strings"
)

// Pair 表示一个有序的查询参数。
type Pair struct {
	Key   string
	Value string
}

// EncodePairs 按给定顺序进行表单编码，与浏览器 URLSearchParams 输出一致。
func EncodePairs(pairs []Pair) string {
	if len(pairs) == 0 {
		return ""
	}
	var buf strings.Builder
	for i, p := range pairs {
		if i > 0 {
			buf.WriteByte('&')
		}
		buf.WriteString(FormEscape(p.Key))
		buf.WriteByte('=')
		buf.WriteString(FormEscape(p.Value))
	}
	return buf.String()
}

// EncodeParamsSorted 以 key 排序后进行表单编码。
func EncodeParamsSorted(params map[string]string) string {
	return EncodePairs(SortedPairs(params))
}

// SortedPairs 按 key 的字典序（码点序）展开参数。
func SortedPairs(params map[string]string) []Pair {
	if len(params) == 0 {
		return nil
	}
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	pairs := make([]Pair, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, Pair{Key: k, Value: params[k]})
	}
	return pairs
}

// FormEscape 在 url.QueryEscape 基础上对齐 application/x-www-form-urlencoded 序列化：
// '*' 保留原样，'~' 需要转义。
func FormEscape(s string) string {
	escaped := url.QueryEscape(s)
	if !strings.ContainsAny(escaped, "%~") {
		return escaped
	}
	escaped = strings.ReplaceAll(escaped, "%2A", "*")
	return strings.ReplaceAll(escaped, "~", "%7E")
}
