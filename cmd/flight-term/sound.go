package main

import (
	"errors"
	"log"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/decker502/flight/pkg/config"
	"github.com/decker502/flight/pkg/round"
	"github.com/decker502/flight/pkg/synth"
)

const sampleRate = beep.SampleRate(48000)

// 编译期检查
var _ round.Listener = (*termSound)(nil)

// termSound 终端版音效，命中和 GAME OVER 时播放一段正弦音
type termSound struct {
	cfg         config.AudioConfig
	initialized bool
	muted       bool
}

// newTermSound 初始化扬声器，失败时静音运行
func newTermSound(cfg config.AudioConfig, muted bool) *termSound {
	s := &termSound{cfg: cfg, muted: muted}
	if muted {
		return s
	}

	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		// 没有声卡时游戏照常运行
		log.Printf("[Sound] Audio initialization failed: %v", err)
		return s
	}
	s.initialized = true
	return s
}

// toggleMute 切换静音
func (s *termSound) toggleMute() bool {
	s.muted = !s.muted
	return s.muted
}

// tone 生成指定频率和时长的正弦音，音效关闭或参数非法时返回 nil
func tone(frequency float64, millis int) beep.Streamer {
	s, err := synth.Tone(sampleRate, frequency, time.Duration(millis)*time.Millisecond)
	if err != nil {
		if !errors.Is(err, synth.ErrSilent) {
			log.Printf("[Sound] Invalid tone %.0fHz: %v", frequency, err)
		}
		return nil
	}
	return s
}

func (s *termSound) play(frequency float64, millis int) {
	if !s.initialized || s.muted {
		return
	}
	if streamer := tone(frequency, millis); streamer != nil {
		speaker.Play(streamer)
	}
}

func (s *termSound) OnRoundStart(round.ShipHandle, float64) {}

func (s *termSound) OnHit(int) {
	s.play(s.cfg.HitFrequency, s.cfg.HitMillis)
}

func (s *termSound) OnGameOver(int) {
	s.play(s.cfg.GameOverFrequency, s.cfg.GameOverMillis)
}

func (s *termSound) close() {
	if s.initialized {
		speaker.Close()
	}
}
