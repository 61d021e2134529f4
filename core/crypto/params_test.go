package crypto

import (
	"math"
	"math/rand"
	"testing"
)

func TestEncodeParamsSorted(t *testing.T) {
	params := map[string]string{"b": "2", "a": "1 2"}
	if out := EncodeParamsSorted(params); out != "a=1+2&b=2" {
		t.Fatalf("排序编码不匹配，期望 a=1+2&b=2 实际 %s", out)
	}
	if EncodeParamsSorted(nil) != "" {
		t.Fatalf("空参数应返回空串")
	}
}

// TestEncodeParamsSorted_PermutationIndependent 输入插入顺序不影响输出。
func TestEncodeParamsSorted_PermutationIndependent(t *testing.T) {
	keys := []string{"surveyId", "apiKey", "pmsId", "checkin", "email", "checkout", "lastName", "firstName", "Zeta", "room"}
	expected := ""
	for i := 0; i < 20; i++ {
		rand.Shuffle(len(keys), func(a, b int) { keys[a], keys[b] = keys[b], keys[a] })
		params := make(map[string]string, len(keys))
		for _, k := range keys {
			params[k] = "v-" + k
		}
		out := EncodeParamsSorted(params)
		if expected == "" {
			expected = out
		}
		if out != expected {
			t.Fatalf("排列后输出不一致:\n%s\n%s", expected, out)
		}
	}
	// 码点序：大写字母排在小写字母之前
	if pairs := SortedPairs(map[string]string{"apiKey": "1", "Zeta": "2"}); pairs[0].Key != "Zeta" {
		t.Fatalf("应按码点排序，实际首项 %s", pairs[0].Key)
	}
}

// TestFormEscape 期望值与浏览器 URLSearchParams 的输出一致。
func TestFormEscape(t *testing.T) {
	if out := EncodePairs([]Pair{{Key: "a b", Value: "x*y~z+/=é!'()"}}); out != "a+b=x*y%7Ez%2B%2F%3D%C3%A9%21%27%28%29" {
		t.Fatalf("编码不匹配，实际 %s", out)
	}
	if out := FormEscape("a@b.com"); out != "a%40b.com" {
		t.Fatalf("邮箱编码不匹配，实际 %s", out)
	}
}

func TestRandomSuffix(t *testing.T) {
	var gotN int
	out := RandomSuffix(func(n int) int { gotN = n; return n - 1 }, 3)
	if gotN != 30001 || out != "30000" {
		t.Fatalf("范围不匹配，n=%d out=%s", gotN, out)
	}
	if out := RandomSuffix(nil, 0); out == "" {
		t.Fatalf("默认随机源应返回数字")
	}
	RandomSuffix(func(n int) int { gotN = n; return 0 }, math.MaxInt)
	if gotN <= 0 {
		t.Fatalf("超大访客数不应溢出，n=%d", gotN)
	}
}
