package entities

import (
	"math"

	"github.com/decker502/fireworks/pkg/components"
	"github.com/decker502/fireworks/pkg/config"
	"github.com/decker502/fireworks/pkg/ecs"
	"github.com/decker502/fireworks/pkg/utils"
)

// NewRocketEntity 创建火箭实体
// 火箭从 (x, y) 出发，朝 (targetX, targetY) 方向飞行
//
// 速度 = 归一化方向 × 随机速率 [Speed.Min, Speed.Max)。
// 归一化时距离至少按 MinDistance 计算，目标过近时火箭不会获得过大的速度。
// 水平和竖直分量各自独立采样速率。
//
// 参数:
//   - em: 实体管理器
//   - rng: 随机源
//   - cfg: 火箭参数
//   - x, y: 发射点
//   - targetX, targetY: 目标点
//
// 返回:
//   - ecs.EntityID: 创建的火箭实体ID
func NewRocketEntity(em *ecs.EntityManager, rng *utils.Random, cfg *config.RocketConfig, x, y, targetX, targetY float64) ecs.EntityID {
	dx := targetX - x
	dy := targetY - y
	dist := math.Max(cfg.MinDistance, math.Hypot(dx, dy))

	vx := dx / dist * rng.Range(cfg.Speed.Min, cfg.Speed.Max)
	vy := dy / dist * rng.Range(cfg.Speed.Min, cfg.Speed.Max)

	id := em.CreateEntity()
	em.AddComponent(id, &components.PositionComponent{X: x, Y: y})
	em.AddComponent(id, &components.VelocityComponent{VX: vx, VY: vy})
	em.AddComponent(id, &components.RocketComponent{
		Hue:   rng.Range(0, 360),
		Trail: components.NewTrail(cfg.TrailLength),
		Alive: true,
	})
	return id
}
