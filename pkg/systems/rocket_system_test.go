package systems

import (
	"math"
	"testing"

	"github.com/decker502/fireworks/pkg/components"
	"github.com/decker502/fireworks/pkg/config"
	"github.com/decker502/fireworks/pkg/ecs"
	"github.com/decker502/fireworks/pkg/entities"
	"github.com/decker502/fireworks/pkg/render"
	"github.com/decker502/fireworks/pkg/utils"
)

// recordingDetonator 记录 Explode 调用
type recordingDetonator struct {
	calls []struct{ x, y, hue float64 }
}

func (d *recordingDetonator) Explode(x, y, hue float64) {
	d.calls = append(d.calls, struct{ x, y, hue float64 }{x, y, hue})
}

func newTestRocket(vx, vy, x, y float64) (*components.RocketComponent, *components.PositionComponent, *components.VelocityComponent) {
	return &components.RocketComponent{Hue: 42, Trail: components.NewTrail(10), Alive: true},
		&components.PositionComponent{X: x, Y: y},
		&components.VelocityComponent{VX: vx, VY: vy}
}

func TestRocketTrailBounded(t *testing.T) {
	cfg := config.DefaultFireworksConfig()
	det := &recordingDetonator{}
	rs := NewRocketSystem(ecs.NewEntityManager(), &cfg.Rocket, utils.NewRandom(1), det)
	rs.SetViewHeight(0)

	// 极快上升且远在阈值之下，200 帧内不会引爆
	rocket, pos, vel := newTestRocket(0, -1000, 0, 1e9)
	for i := 0; i < 200; i++ {
		rs.StepRocket(rocket, pos, vel)
		if rocket.Trail.Len() > 10 {
			t.Fatalf("step %d: trail length %d > 10", i, rocket.Trail.Len())
		}
	}
	if !rocket.Alive || len(det.calls) != 0 {
		t.Fatalf("rocket detonated unexpectedly (%d calls)", len(det.calls))
	}
	if rocket.Trail.Len() != 10 {
		t.Errorf("trail length = %d, want 10", rocket.Trail.Len())
	}
	// 最新的拖尾点是上一帧的位置
	if last := rocket.Trail.At(9); last.Y <= pos.Y {
		t.Errorf("newest trail point %+v should be below current position %v", last, pos.Y)
	}
}

func TestRocketStepPhysics(t *testing.T) {
	cfg := config.DefaultFireworksConfig()
	rs := NewRocketSystem(ecs.NewEntityManager(), &cfg.Rocket, utils.NewRandom(1), &recordingDetonator{})
	rs.SetViewHeight(0)

	rocket, pos, vel := newTestRocket(2, -7, 50, 1000)
	rs.StepRocket(rocket, pos, vel)

	if pos.X != 52 || pos.Y != 993 {
		t.Errorf("position = (%v, %v), want (52, 993)", pos.X, pos.Y)
	}
	if math.Abs(vel.VY-(-7+0.014)) > epsilon {
		t.Errorf("VY = %v, want %v", vel.VY, -7+0.014)
	}
	if math.Abs(vel.VX-2*0.996) > epsilon {
		t.Errorf("VX = %v, want %v", vel.VX, 2*0.996)
	}
	if p := rocket.Trail.At(0); rocket.Trail.Len() != 1 || p.X != 50 || p.Y != 1000 {
		t.Errorf("trail = %d points, first %+v", rocket.Trail.Len(), p)
	}
}

// TestRocketDetonatesWhenSlow 竖直速度高于阈值时引爆，且只引爆一次
func TestRocketDetonatesWhenSlow(t *testing.T) {
	cfg := config.DefaultFireworksConfig()
	det := &recordingDetonator{}
	rs := NewRocketSystem(ecs.NewEntityManager(), &cfg.Rocket, utils.NewRandom(1), det)
	rs.SetViewHeight(600)

	rocket, pos, vel := newTestRocket(0, -0.16, 300, 590)
	rs.StepRocket(rocket, pos, vel)

	if rocket.Alive {
		t.Fatal("rocket still alive after slowing past the detonation velocity")
	}
	if len(det.calls) != 1 {
		t.Fatalf("Explode called %d times, want 1", len(det.calls))
	}
	if c := det.calls[0]; c.x != pos.X || c.y != pos.Y || c.hue != 42 {
		t.Errorf("Explode(%v, %v, %v), want (%v, %v, 42)", c.x, c.y, c.hue, pos.X, pos.Y)
	}

	rs.StepRocket(rocket, pos, vel)
	rs.StepRocket(rocket, pos, vel)
	if len(det.calls) != 1 {
		t.Errorf("dead rocket detonated again: %d calls", len(det.calls))
	}
}

// TestRocketDetonatesAboveApex 高于最高阈值（H*0.20）时必定引爆
func TestRocketDetonatesAboveApex(t *testing.T) {
	cfg := config.DefaultFireworksConfig()
	det := &recordingDetonator{}
	rs := NewRocketSystem(ecs.NewEntityManager(), &cfg.Rocket, utils.NewRandom(3), det)
	rs.SetViewHeight(600)

	rocket, pos, vel := newTestRocket(0, -6, 300, 110)
	rs.StepRocket(rocket, pos, vel)

	if rocket.Alive || len(det.calls) != 1 {
		t.Errorf("rocket at y=%v not detonated (alive=%v, calls=%d)", pos.Y, rocket.Alive, len(det.calls))
	}
}

// TestRocketStaysAliveBelowApex 低于最低阈值（H*0.50）且仍在快速上升时不会引爆
func TestRocketStaysAliveBelowApex(t *testing.T) {
	cfg := config.DefaultFireworksConfig()
	det := &recordingDetonator{}
	rs := NewRocketSystem(ecs.NewEntityManager(), &cfg.Rocket, utils.NewRandom(3), det)
	rs.SetViewHeight(600)

	rocket, pos, vel := newTestRocket(0, -6, 300, 500)
	for i := 0; i < 20; i++ {
		rs.StepRocket(rocket, pos, vel)
	}
	if !rocket.Alive || len(det.calls) != 0 {
		t.Errorf("rocket at y=%v detonated early", pos.Y)
	}
}

// TestRocketDetonationBurstSize 引爆产生 45~76 个粒子，火箭实体在同一次 Update 中被移除
func TestRocketDetonationBurstSize(t *testing.T) {
	cfg := config.DefaultFireworksConfig()

	for seed := int64(1); seed <= 30; seed++ {
		em := ecs.NewEntityManager()
		rng := utils.NewRandom(seed)
		burst := NewBurstSystem(em, &cfg.Burst, &cfg.Particle, rng)
		rs := NewRocketSystem(em, &cfg.Rocket, rng, burst)
		rs.SetViewHeight(600)

		id := entities.NewRocketEntity(em, rng, &cfg.Rocket, 300, 100, 300, 0)
		rs.Update()

		if em.IsAlive(id) {
			t.Fatalf("seed %d: rocket above apex still alive", seed)
		}
		if rs.Count() != 0 {
			t.Errorf("seed %d: Count() = %d, want 0", seed, rs.Count())
		}
		n := len(ecs.GetEntitiesWith1[*components.ParticleComponent](em))
		if n < 45 || n > 76 {
			t.Errorf("seed %d: burst produced %d particles, want [45, 76]", seed, n)
		}

		// 再次 Update 不会产生新的爆炸
		rs.Update()
		if m := len(ecs.GetEntitiesWith1[*components.ParticleComponent](em)); m != n {
			t.Errorf("seed %d: particle count changed from %d to %d without a rocket", seed, n, m)
		}
	}
}

func TestDrawRocket(t *testing.T) {
	cfg := config.DefaultFireworksConfig()
	rs := NewRocketSystem(ecs.NewEntityManager(), &cfg.Rocket, utils.NewRandom(1), &recordingDetonator{})
	surface := render.NewRecordingSurface(800, 600)

	rocket, pos, _ := newTestRocket(0, -5, 100, 200)
	for i := 0; i < 4; i++ {
		rocket.Trail.Push(100, 240-float64(i)*10)
	}

	rs.DrawRocket(surface, rocket, pos)

	if len(surface.Ops) != 5 {
		t.Fatalf("len(Ops) = %d, want 4 trail rects + 1 head", len(surface.Ops))
	}
	for i := 0; i < 4; i++ {
		op := surface.Ops[i]
		c := op.Color.(render.HSLA)
		wantA := float64(i) / 4 * 0.28
		if op.Kind != render.OpFillRect || op.W != 2 || op.H != 2 || math.Abs(c.A-wantA) > epsilon || c.L != 0.70 {
			t.Errorf("trail op %d = %+v (alpha %v, want %v)", i, op, c.A, wantA)
		}
		if op.GlowBlur != 0 {
			t.Errorf("trail op %d drawn with glow %v", i, op.GlowBlur)
		}
	}

	head := surface.Ops[4]
	c := head.Color.(render.HSLA)
	g := head.GlowColor.(render.HSLA)
	if head.Kind != render.OpFillCircle || head.R != 2.0 || head.X != 100 || head.Y != 200 {
		t.Errorf("head op = %+v", head)
	}
	if c.A != 0.92 || head.GlowBlur != 8 || g.A != 0.6 || c.H != 42 {
		t.Errorf("head colour %+v glow %v %+v", c, head.GlowBlur, g)
	}
	if surface.GlowActive() {
		t.Error("glow not reset after DrawRocket")
	}
}

// rocketHeads 统计火箭头部（带火箭光晕的圆）的绘制次数
func rocketHeads(surface *render.RecordingSurface, cfg *config.RocketConfig) []render.Op {
	var heads []render.Op
	for _, op := range surface.Ops {
		if op.Kind == render.OpFillCircle && op.GlowBlur == cfg.GlowBlur && op.R == cfg.HeadRadius {
			heads = append(heads, op)
		}
	}
	return heads
}

// TestDetonatedRocketDrawnOnFinalFrame 引爆当帧火箭仍在爆炸位置绘制一次
func TestDetonatedRocketDrawnOnFinalFrame(t *testing.T) {
	cfg := config.DefaultFireworksConfig()
	em := ecs.NewEntityManager()
	rng := utils.NewRandom(21)
	burst := NewBurstSystem(em, &cfg.Burst, &cfg.Particle, rng)
	rs := NewRocketSystem(em, &cfg.Rocket, rng, burst)
	rs.SetViewHeight(600)

	climbing := entities.NewRocketEntity(em, rng, &cfg.Rocket, 200, 590, 200, 0)
	bursting := entities.NewRocketEntity(em, rng, &cfg.Rocket, 300, 100, 300, 0)
	rs.Update()

	if !em.IsAlive(climbing) || em.IsAlive(bursting) {
		t.Fatalf("alive: climbing=%v bursting=%v", em.IsAlive(climbing), em.IsAlive(bursting))
	}
	pos, _ := ecs.GetComponent[*components.PositionComponent](em, bursting)

	surface := render.NewRecordingSurface(800, 600)
	rs.Draw(surface)
	heads := rocketHeads(surface, &cfg.Rocket)
	if len(heads) != 2 {
		t.Fatalf("drew %d rocket heads on the detonation frame, want 2", len(heads))
	}
	// 按创建顺序绘制，引爆的火箭在后
	if last := heads[1]; last.X != pos.X || last.Y != pos.Y {
		t.Errorf("detonated head at (%v, %v), want burst position (%v, %v)", last.X, last.Y, pos.X, pos.Y)
	}

	surface.Reset()
	rs.Draw(surface)
	if n := len(rocketHeads(surface, &cfg.Rocket)); n != 1 {
		t.Errorf("second Draw drew %d heads, want only the live rocket", n)
	}
}

func TestDetonatedRocketNotDrawnAfterFlush(t *testing.T) {
	cfg := config.DefaultFireworksConfig()
	em := ecs.NewEntityManager()
	rng := utils.NewRandom(22)
	rs := NewRocketSystem(em, &cfg.Rocket, rng, NewBurstSystem(em, &cfg.Burst, &cfg.Particle, rng))
	rs.SetViewHeight(600)

	entities.NewRocketEntity(em, rng, &cfg.Rocket, 300, 100, 300, 0)
	rs.Update()
	em.RemoveMarkedEntities()

	surface := render.NewRecordingSurface(800, 600)
	rs.Draw(surface)
	if n := len(rocketHeads(surface, &cfg.Rocket)); n != 0 {
		t.Errorf("drew %d heads for a flushed rocket, want 0", n)
	}
}
