package crypto

import (
	"math"
	"math/rand/v2"
	"strconv"
)

// IntN 抽象随机数来源，返回 [0, n) 内的整数。
type IntN func(n int) int

// DefaultIntN 使用非加密随机源，测试链接无需可复现。
func DefaultIntN(n int) int {
	return rand.IntN(n)
}

// maxSuffixGuests 保证 guests*10000+1 不溢出。
const maxSuffixGuests = (math.MaxInt - 1) / 10000

// RandomSuffix 生成访客后缀，取值范围 [0, guests*10000]。
func RandomSuffix(intn IntN, guests int) string {
	if intn == nil {
		intn = DefaultIntN
	}
	if guests <= 0 {
		guests = 1
	}
	if guests > maxSuffixGuests {
		guests = maxSuffixGuests
	}
	return strconv.Itoa(intn(guests*10000 + 1))
}
