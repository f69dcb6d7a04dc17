package components

// TrailPoint 拖尾中的一个历史位置
type TrailPoint struct {
	X float64
	Y float64
}

// Trail 固定容量的环形缓冲区，保存火箭最近的位置
//
// 容量满后继续 Push 会覆盖最旧的点，At(0) 始终是最旧的点。
type Trail struct {
	points []TrailPoint
	start  int // 最旧点的下标
	size   int
}

// NewTrail 创建容量为 capacity 的拖尾（capacity < 1 时按 1 处理）
func NewTrail(capacity int) *Trail {
	if capacity < 1 {
		capacity = 1
	}
	return &Trail{points: make([]TrailPoint, capacity)}
}

// Push 追加一个位置，满时淘汰最旧的位置
func (t *Trail) Push(x, y float64) {
	capacity := len(t.points)
	if t.size < capacity {
		t.points[(t.start+t.size)%capacity] = TrailPoint{X: x, Y: y}
		t.size++
		return
	}
	t.points[t.start] = TrailPoint{X: x, Y: y}
	t.start = (t.start + 1) % capacity
}

// Len 返回当前保存的点数
func (t *Trail) Len() int {
	return t.size
}

// Cap 返回容量
func (t *Trail) Cap() int {
	return len(t.points)
}

// At 返回第 i 个点（0 为最旧）
func (t *Trail) At(i int) TrailPoint {
	return t.points[(t.start+i)%len(t.points)]
}
