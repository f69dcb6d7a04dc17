package utils

import (
	"math"
	"math/rand"
	"time"
)

// Random 是烟花模拟唯一的随机数来源
//
// 所有随机采样（发射位置、速度、色相、爆炸粒子数等）都经过同一个 Random 实例，
// 这样测试可以通过固定种子得到确定的结果。
//
// 注意：Random 不是并发安全的，只应在模拟循环所在的 goroutine 中使用。
type Random struct {
	r *rand.Rand
}

// NewRandom 使用指定种子创建随机源
func NewRandom(seed int64) *Random {
	return &Random{r: rand.New(rand.NewSource(seed))}
}

// NewTimeSeededRandom 使用当前时间作为种子创建随机源
func NewTimeSeededRandom() *Random {
	return NewRandom(time.Now().UnixNano())
}

// Range 返回 [a, b) 之间的随机数
//
// 与 a、b 的大小顺序无关：当 a > b 时返回 (b, a] 之间的值。
// 公式：a + rand * (b - a)
func (r *Random) Range(a, b float64) float64 {
	return a + r.r.Float64()*(b-a)
}

// IntRange 返回 floor(Range(a, b))
// 例如 IntRange(35, 60) ∈ [35, 59]
func (r *Random) IntRange(a, b float64) int {
	return int(math.Floor(r.Range(a, b)))
}

// Chance 以概率 p 返回 true
func (r *Random) Chance(p float64) bool {
	return r.r.Float64() < p
}
