package save

import (
	"testing"

	"github.com/quasilyte/gdata/v2"
)

// openTestStorage 在临时目录中打开 gdata 存储
func openTestStorage(t *testing.T, appName string) *gdata.Manager {
	t.Helper()
	tempDir := t.TempDir()
	t.Setenv("HOME", tempDir)
	t.Setenv("XDG_CONFIG_HOME", tempDir)
	t.Setenv("XDG_DATA_HOME", tempDir)

	manager, err := gdata.Open(gdata.Config{
		AppName: appName,
	})
	if err != nil {
		t.Fatalf("Failed to create gdata manager: %v", err)
	}
	return manager
}

// TestDefaultSettings 测试默认设置
func TestDefaultSettings(t *testing.T) {
	settings := DefaultSettings()

	if settings.SoundVolume != 0.8 {
		t.Errorf("SoundVolume: got %v, want 0.8", settings.SoundVolume)
	}
	if !settings.SoundEnabled {
		t.Error("SoundEnabled: got false, want true")
	}
	if settings.Fullscreen {
		t.Error("Fullscreen: got true, want false")
	}
	if !settings.ShowStatistics {
		t.Error("ShowStatistics: got false, want true")
	}
}

// TestSettingsManagerNilGdata 测试降级模式
func TestSettingsManagerNilGdata(t *testing.T) {
	sm := NewSettingsManager(nil)

	sm.SetSoundEnabled(false)
	if err := sm.Save(); err != nil {
		t.Errorf("Save() in degraded mode should not fail: %v", err)
	}
	if sm.GetSettings().SoundEnabled {
		t.Error("in-memory setting should be kept in degraded mode")
	}

	if err := sm.Load(); err != nil {
		t.Errorf("Load() in degraded mode should not fail: %v", err)
	}
	if !sm.GetSettings().SoundEnabled {
		t.Error("Load() in degraded mode should reset to defaults")
	}
}

// TestSettingsLoadSave 测试设置持久化
func TestSettingsLoadSave(t *testing.T) {
	manager := openTestStorage(t, "test_flight_settings")

	sm1 := NewSettingsManager(manager)
	sm1.SetSoundVolume(0.3)
	sm1.SetSoundEnabled(false)
	sm1.SetFullscreen(true)
	sm1.SetShowStatistics(false)
	if err := sm1.Save(); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	sm2 := NewSettingsManager(manager)
	got := sm2.GetSettings()
	if got.SoundVolume != 0.3 || got.SoundEnabled || !got.Fullscreen || got.ShowStatistics {
		t.Errorf("reloaded settings mismatch: %+v", *got)
	}
}

// TestSettingsCorruptedData 测试损坏数据回退到默认设置
func TestSettingsCorruptedData(t *testing.T) {
	manager := openTestStorage(t, "test_flight_settings_corrupt")

	if err := manager.SaveObjectProp(settingsObject, settingsProperty, []byte("soundVolume: [oops")); err != nil {
		t.Fatalf("SaveObjectProp() error: %v", err)
	}

	sm := NewSettingsManager(manager)
	if err := sm.Load(); err == nil {
		t.Error("Load() should report corrupted data")
	}
	if *sm.GetSettings() != *DefaultSettings() {
		t.Errorf("corrupted data should fall back to defaults, got %+v", *sm.GetSettings())
	}
}

// TestClampVolume 测试音量范围限制
func TestClampVolume(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{-0.5, 0},
		{0, 0},
		{0.4, 0.4},
		{1, 1},
		{1.7, 1},
	}
	for _, tt := range tests {
		if got := clampVolume(tt.in); got != tt.want {
			t.Errorf("clampVolume(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

// TestRecordManagerTracksBestScore 测试最高分记录
func TestRecordManagerTracksBestScore(t *testing.T) {
	manager := openTestStorage(t, "test_flight_records")

	rm := NewRecordManager(manager)
	rm.OnHit(1)
	rm.OnHit(2)
	rm.OnHit(3)
	rm.OnGameOver(3)
	if rm.BestScore() != 3 || !rm.IsNewBest() {
		t.Errorf("expected new best 3, got %d (newBest=%v)", rm.BestScore(), rm.IsNewBest())
	}

	rm.OnGameOver(1)
	if rm.BestScore() != 3 || rm.IsNewBest() {
		t.Errorf("lower score must not replace best, got %d (newBest=%v)", rm.BestScore(), rm.IsNewBest())
	}

	// 重新加载后战绩保持
	reloaded := NewRecordManager(manager)
	want := Records{BestScore: 3, RoundsPlayed: 2, TotalHits: 3}
	if reloaded.Records() != want {
		t.Errorf("reloaded records: got %+v, want %+v", reloaded.Records(), want)
	}
}

// TestRecordManagerNilGdata 测试战绩降级模式
func TestRecordManagerNilGdata(t *testing.T) {
	rm := NewRecordManager(nil)
	rm.OnGameOver(5)
	if rm.BestScore() != 5 {
		t.Errorf("expected in-memory best 5, got %d", rm.BestScore())
	}
}
