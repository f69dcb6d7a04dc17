package config

import (
	"fmt"
	"os"

	"github.com/decker502/fireworks/pkg/embedded"
	"gopkg.in/yaml.v3"
)

// FireworksConfigPath 调参表在嵌入文件系统中的路径
const FireworksConfigPath = "data/fireworks.yaml"

// FireworksConfig 烟花调参表
//
// 汇总粒子、火箭、爆炸、发射调度和主循环的全部常量。
// 配置文件位置: data/fireworks.yaml（编译时嵌入）
type FireworksConfig struct {
	Particle ParticleConfig `yaml:"particle"`
	Rocket   RocketConfig   `yaml:"rocket"`
	Burst    BurstConfig    `yaml:"burst"`
	Launch   LaunchConfig   `yaml:"launch"`
	Loop     LoopConfig     `yaml:"loop"`
	Display  DisplayConfig  `yaml:"display"`
}

// Range 随机取值区间 [Min, Max)
type Range struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// ParticleConfig 单个粒子的物理与渲染参数
type ParticleConfig struct {
	Gravity       float64 `yaml:"gravity"`
	Friction      float64 `yaml:"friction"`
	Lightness     float64 `yaml:"lightness"`
	GlowLightness float64 `yaml:"glowLightness"`
	GlowBlur      float64 `yaml:"glowBlur"`
	RadiusBase    float64 `yaml:"radiusBase"`
	RadiusGrowth  float64 `yaml:"radiusGrowth"`
}

// RocketConfig 火箭的物理与渲染参数
type RocketConfig struct {
	Speed            Range   `yaml:"speed"`
	MinDistance      float64 `yaml:"minDistance"`
	Gravity          float64 `yaml:"gravity"`
	Friction         float64 `yaml:"friction"`
	DetonateVelocity float64 `yaml:"detonateVelocity"`
	Apex             Range   `yaml:"apex"` // 相对视口高度
	Lightness        float64 `yaml:"lightness"`
	TrailLength      int     `yaml:"trailLength"`
	TrailSize        float64 `yaml:"trailSize"`
	TrailAlpha       float64 `yaml:"trailAlpha"`
	HeadRadius       float64 `yaml:"headRadius"`
	HeadAlpha        float64 `yaml:"headAlpha"`
	GlowAlpha        float64 `yaml:"glowAlpha"`
	GlowBlur         float64 `yaml:"glowBlur"`
}

// BurstConfig 爆炸参数（主爆炸 + 闪光子爆炸）
type BurstConfig struct {
	Count        Range         `yaml:"count"`
	Spread       Range         `yaml:"spread"`
	MinSpeed     float64       `yaml:"minSpeed"`
	AngleJitter  float64       `yaml:"angleJitter"`
	Life         Range         `yaml:"life"`
	Size         Range         `yaml:"size"`
	HueJitter    float64       `yaml:"hueJitter"`
	MaxParticles int           `yaml:"maxParticles"`
	Glitter      GlitterConfig `yaml:"glitter"`
}

// GlitterConfig 闪光子爆炸参数
type GlitterConfig struct {
	Count   Range   `yaml:"count"`
	Speed   float64 `yaml:"speed"`
	Life    Range   `yaml:"life"`
	Size    Range   `yaml:"size"`
	Hue     float64 `yaml:"hue"`
	Gravity float64 `yaml:"gravity"`
}

// LaunchConfig 发射调度参数
type LaunchConfig struct {
	SpawnX        Range         `yaml:"spawnX"` // 相对视口宽度
	SpawnBelow    float64       `yaml:"spawnBelow"`
	TargetJitterX float64       `yaml:"targetJitterX"`
	TargetY       Range         `yaml:"targetY"` // 相对视口高度
	MultiJitterX  float64       `yaml:"multiJitterX"`
	MultiCount    int           `yaml:"multiCount"`
	Phases        []LaunchPhase `yaml:"phases"`
}

// LaunchPhase 自动序列中的一个阶段
//
// 当 From < elapsed < To（秒）时，每帧以 Chance 的概率发射一枚火箭。
// 各阶段相互独立，时间重叠的阶段可以在同一帧各自发射。
type LaunchPhase struct {
	Name   string  `yaml:"name"`
	From   float64 `yaml:"from"`
	To     float64 `yaml:"to"`
	Chance float64 `yaml:"chance"`
}

// LoopConfig 主循环参数
type LoopConfig struct {
	Overlay OverlayColor `yaml:"overlay"`
}

// OverlayColor 每帧覆盖的半透明背景色（产生拖尾）
type OverlayColor struct {
	R uint8   `yaml:"r"`
	G uint8   `yaml:"g"`
	B uint8   `yaml:"b"`
	A float64 `yaml:"a"`
}

// DisplayConfig 窗口参数
type DisplayConfig struct {
	Title          string  `yaml:"title"`
	Width          int     `yaml:"width"`
	Height         int     `yaml:"height"`
	MaxDeviceScale float64 `yaml:"maxDeviceScale"`
}

// LoadFireworksConfig 加载烟花调参表
//
// embedded 包已初始化时从嵌入文件系统读取，否则从磁盘读取（工具和测试场景）。
//
// 参数:
//   - path: 配置文件路径（如 "data/fireworks.yaml"）
//
// 返回:
//   - *FireworksConfig: 加载并验证后的配置
//   - error: 读取、解析或验证失败时返回错误
func LoadFireworksConfig(path string) (*FireworksConfig, error) {
	var (
		data []byte
		err  error
	)
	if embedded.IsInitialized() {
		data, err = embedded.ReadFile(path)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read fireworks config: %w", err)
	}
	return ParseFireworksConfig(data)
}

// ParseFireworksConfig 解析并验证 YAML 格式的调参表
func ParseFireworksConfig(data []byte) (*FireworksConfig, error) {
	var cfg FireworksConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse fireworks config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid fireworks config: %w", err)
	}
	return &cfg, nil
}

// Validate 验证配置有效性
//
// 检查：
//   - 所有区间 Min <= Max
//   - 概率和透明度在 [0, 1] 内
//   - 粒子上限、拖尾长度为正
//   - 阶段时间窗口 From < To
func (c *FireworksConfig) Validate() error {
	ranges := []struct {
		name string
		r    Range
	}{
		{"rocket.speed", c.Rocket.Speed},
		{"rocket.apex", c.Rocket.Apex},
		{"burst.count", c.Burst.Count},
		{"burst.spread", c.Burst.Spread},
		{"burst.life", c.Burst.Life},
		{"burst.size", c.Burst.Size},
		{"burst.glitter.count", c.Burst.Glitter.Count},
		{"burst.glitter.life", c.Burst.Glitter.Life},
		{"burst.glitter.size", c.Burst.Glitter.Size},
		{"launch.spawnX", c.Launch.SpawnX},
		{"launch.targetY", c.Launch.TargetY},
	}
	for _, r := range ranges {
		if r.r.Min > r.r.Max {
			return fmt.Errorf("%s range invalid: min(%.2f) > max(%.2f)", r.name, r.r.Min, r.r.Max)
		}
	}

	// 爆炸粒子数和寿命至少为 1，否则会产生立即过期的粒子
	if c.Burst.Count.Min < 1 || c.Burst.Glitter.Count.Min < 1 {
		return fmt.Errorf("burst counts must be >= 1")
	}
	if c.Burst.Life.Min < 1 || c.Burst.Glitter.Life.Min < 1 {
		return fmt.Errorf("particle life must be >= 1")
	}

	if c.Burst.MaxParticles <= 0 {
		return fmt.Errorf("burst.maxParticles must be positive, got %d", c.Burst.MaxParticles)
	}
	if c.Rocket.TrailLength <= 0 {
		return fmt.Errorf("rocket.trailLength must be positive, got %d", c.Rocket.TrailLength)
	}
	if c.Rocket.MinDistance <= 0 {
		return fmt.Errorf("rocket.minDistance must be positive, got %.2f", c.Rocket.MinDistance)
	}

	for _, p := range c.Launch.Phases {
		if p.From >= p.To {
			return fmt.Errorf("launch phase %q window invalid: from(%.2f) >= to(%.2f)", p.Name, p.From, p.To)
		}
		if p.Chance < 0 || p.Chance > 1 {
			return fmt.Errorf("launch phase %q chance %.2f out of [0, 1]", p.Name, p.Chance)
		}
	}

	if c.Loop.Overlay.A < 0 || c.Loop.Overlay.A > 1 {
		return fmt.Errorf("loop.overlay.a %.2f out of [0, 1]", c.Loop.Overlay.A)
	}
	if c.Display.MaxDeviceScale <= 0 {
		return fmt.Errorf("display.maxDeviceScale must be positive, got %.2f", c.Display.MaxDeviceScale)
	}

	return nil
}

// DefaultFireworksConfig 返回与 data/fireworks.yaml 一致的默认调参表
//
// 用于无法访问数据文件的测试场景；两者的一致性由测试保证。
func DefaultFireworksConfig() *FireworksConfig {
	return &FireworksConfig{
		Particle: ParticleConfig{
			Gravity:       0.055,
			Friction:      0.988,
			Lightness:     0.65,
			GlowLightness: 0.70,
			GlowBlur:      6,
			RadiusBase:    0.7,
			RadiusGrowth:  0.5,
		},
		Rocket: RocketConfig{
			Speed:            Range{Min: 6, Max: 8.5},
			MinDistance:      100,
			Gravity:          0.014,
			Friction:         0.996,
			DetonateVelocity: -0.15,
			Apex:             Range{Min: 0.20, Max: 0.50},
			Lightness:        0.70,
			TrailLength:      10,
			TrailSize:        2,
			TrailAlpha:       0.28,
			HeadRadius:       2.0,
			HeadAlpha:        0.92,
			GlowAlpha:        0.6,
			GlowBlur:         8,
		},
		Burst: BurstConfig{
			Count:        Range{Min: 35, Max: 60},
			Spread:       Range{Min: 3.0, Max: 5.2},
			MinSpeed:     1.4,
			AngleJitter:  0.05,
			Life:         Range{Min: 44, Max: 72},
			Size:         Range{Min: 0.9, Max: 1.9},
			HueJitter:    22,
			MaxParticles: 1100,
			Glitter: GlitterConfig{
				Count:   Range{Min: 10, Max: 18},
				Speed:   1.0,
				Life:    Range{Min: 18, Max: 30},
				Size:    Range{Min: 0.7, Max: 1.2},
				Hue:     60,
				Gravity: 0.02,
			},
		},
		Launch: LaunchConfig{
			SpawnX:        Range{Min: 0.15, Max: 0.85},
			SpawnBelow:    20,
			TargetJitterX: 120,
			TargetY:       Range{Min: 0.20, Max: 0.50},
			MultiJitterX:  80,
			MultiCount:    2,
			Phases: []LaunchPhase{
				{Name: "warmup", From: -1, To: 1.3, Chance: 0.08},
				{Name: "celebrationA", From: 1.2, To: 4.5, Chance: 0.18},
				{Name: "celebrationB", From: 2.0, To: 3.4, Chance: 0.28},
				{Name: "afterglow", From: 4.5, To: 7.0, Chance: 0.10},
			},
		},
		Loop: LoopConfig{
			Overlay: OverlayColor{R: 8, G: 8, B: 20, A: 0.25},
		},
		Display: DisplayConfig{
			Title:          "Fireworks",
			Width:          960,
			Height:         640,
			MaxDeviceScale: 1.25,
		},
	}
}
