// Package audio 提供爆炸音效
//
// 音效用 beep 即时合成（短促的正弦音），不需要任何音频资源文件。
package audio

import (
	"fmt"
	"log"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const (
	sampleRate  = beep.SampleRate(44100)
	popDuration = 60 * time.Millisecond

	// 粒子越多音调越低
	minParticles = 45
	maxParticles = 76
	highPitch    = 440.0
	lowPitch     = 220.0

	popVolume = -1.5 // 以 2 为底的音量衰减
)

// BurstSound 爆炸音效播放器
//
// speaker 是进程级单例，一个进程只应创建一个 BurstSound。
// Play 可以在任意 goroutine 中调用，多次爆炸的声音由 speaker 混音。
type BurstSound struct {
	sampleRate beep.SampleRate
}

// NewBurstSound 初始化扬声器
// 失败时调用方可以选择静音继续运行
func NewBurstSound() (*BurstSound, error) {
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return nil, fmt.Errorf("speaker init failed: %w", err)
	}
	log.Printf("[Audio] speaker initialized at %d Hz", sampleRate)
	return &BurstSound{sampleRate: sampleRate}, nil
}

// Play 播放一次爆炸音效，particles 为本次爆炸的粒子数
func (s *BurstSound) Play(particles int) {
	pop, err := newPopStreamer(s.sampleRate, particles)
	if err != nil {
		log.Printf("[Audio] failed to build pop: %v", err)
		return
	}
	speaker.Play(pop)
}

// Close 关闭扬声器
func (s *BurstSound) Close() {
	speaker.Close()
}

// PopFrequency 把粒子数线性映射到 [lowPitch, highPitch] 的音高
func PopFrequency(particles int) float64 {
	n := min(max(particles, minParticles), maxParticles)
	t := float64(n-minParticles) / float64(maxParticles-minParticles)
	return highPitch + (lowPitch-highPitch)*t
}

func newPopStreamer(sr beep.SampleRate, particles int) (beep.Streamer, error) {
	tone, err := generators.SineTone(sr, PopFrequency(particles))
	if err != nil {
		return nil, err
	}
	return &effects.Volume{
		Streamer: beep.Take(sr.N(popDuration), tone),
		Base:     2,
		Volume:   popVolume,
	}, nil
}
