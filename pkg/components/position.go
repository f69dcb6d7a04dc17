package components

// PositionComponent 实体的世界坐标（逻辑像素，Y 轴向下）
type PositionComponent struct {
	X float64
	Y float64
}
