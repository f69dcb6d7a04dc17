package components

// VelocityComponent 实体速度（像素/帧）
//
// 烟花模拟按固定帧步进，速度与重力都以"每帧"为单位，
// 不乘以 dt。
type VelocityComponent struct {
	VX float64
	VY float64
}
