package game

import (
	"log"
	"time"

	"github.com/gopxl/beep"
	"github.com/hajimehoshi/ebiten/v2/audio"

	"github.com/decker502/flight/pkg/config"
	"github.com/decker502/flight/pkg/round"
	"github.com/decker502/flight/pkg/save"
	"github.com/decker502/flight/pkg/synth"
)

// 音效ID
const (
	SoundHit      = "hit"
	SoundGameOver = "game_over"
)

// 编译期检查
var _ round.Listener = (*AudioManager)(nil)

// AudioManager 音频管理器
//
// 音效在运行时按配置合成为正弦波 PCM，无需音频资源文件。
// 作为 round.Listener 注册到回合控制器：命中和 GAME OVER 时各播放一次音效。
type AudioManager struct {
	context         *audio.Context        // 为 nil 时静音运行
	settingsManager *save.SettingsManager // 可为 nil
	cfg             config.AudioConfig
	soundPlayers    map[string]*audio.Player
}

// NewAudioManager 创建新的音频管理器
//
// 参数：
//   - ctx: 音频上下文，为 nil 时所有播放请求都被忽略
//   - sm: 设置管理器（用于读取音效开关和音量，可为 nil）
//   - cfg: 音效配置
func NewAudioManager(ctx *audio.Context, sm *save.SettingsManager, cfg config.AudioConfig) *AudioManager {
	return &AudioManager{
		context:         ctx,
		settingsManager: sm,
		cfg:             cfg,
		soundPlayers:    make(map[string]*audio.Player),
	}
}

// PlaySound 播放音效
//
// 返回：
//   - bool: 是否成功播放
func (am *AudioManager) PlaySound(soundID string) bool {
	if am.settingsManager != nil && !am.settingsManager.GetSettings().SoundEnabled {
		return false
	}

	player := am.getSoundPlayer(soundID)
	if player == nil {
		return false
	}

	player.SetVolume(am.GetSoundVolume())
	if err := player.Rewind(); err != nil {
		log.Printf("[AudioManager] Warning: Failed to rewind sound %s: %v", soundID, err)
	}
	player.Play()
	return true
}

// SetSoundVolume 设置音效音量，影响已缓存和后续创建的播放器
func (am *AudioManager) SetSoundVolume(volume float64) {
	if am.settingsManager != nil {
		am.settingsManager.SetSoundVolume(volume)
		volume = am.settingsManager.GetSettings().SoundVolume
	}
	for _, player := range am.soundPlayers {
		player.SetVolume(volume)
	}
}

// GetSoundVolume 获取当前音效音量
func (am *AudioManager) GetSoundVolume() float64 {
	if am.settingsManager != nil {
		return am.settingsManager.GetSettings().SoundVolume
	}
	return save.DefaultSettings().SoundVolume
}

// PreloadSounds 预先合成所有音效，避免首次播放时的延迟
func (am *AudioManager) PreloadSounds() {
	for _, id := range []string{SoundHit, SoundGameOver} {
		am.getSoundPlayer(id)
	}
	log.Printf("[AudioManager] Preloaded %d sounds", len(am.soundPlayers))
}

// OnRoundStart 新飞船出现
func (am *AudioManager) OnRoundStart(round.ShipHandle, float64) {}

// OnHit 命中音效
func (am *AudioManager) OnHit(int) {
	am.PlaySound(SoundHit)
}

// OnGameOver GAME OVER 音效
func (am *AudioManager) OnGameOver(int) {
	am.PlaySound(SoundGameOver)
}

// getSoundPlayer 获取或合成音效播放器
func (am *AudioManager) getSoundPlayer(soundID string) *audio.Player {
	if am.context == nil {
		return nil
	}
	if player, exists := am.soundPlayers[soundID]; exists {
		return player
	}

	frequency, millis, ok := am.toneFor(soundID)
	if !ok {
		log.Printf("[AudioManager] Warning: Sound not found: %s", soundID)
		return nil
	}

	pcm := synth.TonePCM(beep.SampleRate(am.context.SampleRate()), frequency, time.Duration(millis)*time.Millisecond)
	if pcm == nil {
		log.Printf("[AudioManager] Warning: Sound %s is disabled by config", soundID)
		return nil
	}

	player := am.context.NewPlayerFromBytes(pcm)
	am.soundPlayers[soundID] = player
	return player
}

// toneFor 返回音效对应的频率和时长
func (am *AudioManager) toneFor(soundID string) (float64, int, bool) {
	switch soundID {
	case SoundHit:
		return am.cfg.HitFrequency, am.cfg.HitMillis, true
	case SoundGameOver:
		return am.cfg.GameOverFrequency, am.cfg.GameOverMillis, true
	default:
		return 0, 0, false
	}
}
