package game

import (
	"testing"

	"github.com/decker502/flight/pkg/config"
	"github.com/decker502/flight/pkg/save"
)

// TestAudioManagerWithoutContext 测试无音频上下文时静音运行
func TestAudioManagerWithoutContext(t *testing.T) {
	am := NewAudioManager(nil, nil, config.Default().Audio)

	if am.PlaySound(SoundHit) {
		t.Error("PlaySound without audio context should report false")
	}
	am.OnHit(1)
	am.OnGameOver(1)
	am.PreloadSounds()

	if am.GetSoundVolume() != save.DefaultSettings().SoundVolume {
		t.Errorf("default volume mismatch: %v", am.GetSoundVolume())
	}
}

// TestAudioManagerVolumeFollowsSettings 测试音量读写设置管理器
func TestAudioManagerVolumeFollowsSettings(t *testing.T) {
	sm := save.NewSettingsManager(nil)
	am := NewAudioManager(nil, sm, config.Default().Audio)

	am.SetSoundVolume(1.5)
	if got := sm.GetSettings().SoundVolume; got != 1.0 {
		t.Errorf("volume should be clamped to 1.0, got %v", got)
	}
	if am.GetSoundVolume() != 1.0 {
		t.Errorf("GetSoundVolume: got %v, want 1.0", am.GetSoundVolume())
	}

	sm.SetSoundEnabled(false)
	if am.PlaySound(SoundGameOver) {
		t.Error("PlaySound should be skipped when sound is disabled")
	}
}

// TestAudioManagerToneFor 测试音效ID到音调的映射
func TestAudioManagerToneFor(t *testing.T) {
	cfg := config.Default().Audio
	am := NewAudioManager(nil, nil, cfg)

	if f, ms, ok := am.toneFor(SoundHit); !ok || f != cfg.HitFrequency || ms != cfg.HitMillis {
		t.Errorf("hit tone: got (%v, %d, %v)", f, ms, ok)
	}
	if f, ms, ok := am.toneFor(SoundGameOver); !ok || f != cfg.GameOverFrequency || ms != cfg.GameOverMillis {
		t.Errorf("game over tone: got (%v, %d, %v)", f, ms, ok)
	}
	if _, _, ok := am.toneFor("unknown"); ok {
		t.Error("unknown sound should not resolve")
	}
}
