package save

import (
	"fmt"
	"log"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"

	"github.com/decker502/flight/pkg/round"
)

// 编译期检查
var _ round.Listener = (*RecordManager)(nil)

// Records 战绩
type Records struct {
	BestScore    int `yaml:"bestScore"`    // 历史最高分
	RoundsPlayed int `yaml:"roundsPlayed"` // 已结束的回合数
	TotalHits    int `yaml:"totalHits"`    // 累计命中数
}

// RecordManager 战绩管理器
//
// 作为 round.Listener 注册到回合控制器：每次命中累计命中数，
// 每次 GAME OVER 更新最高分并立即持久化。
type RecordManager struct {
	gdataManager *gdata.Manager // 可为 nil（降级模式）
	records      Records
	newBest      bool
}

const (
	recordsObject   = "records"
	recordsProperty = "best"
)

// NewRecordManager 创建战绩管理器并加载已保存的战绩
func NewRecordManager(gdataManager *gdata.Manager) *RecordManager {
	rm := &RecordManager{gdataManager: gdataManager}
	if err := rm.Load(); err != nil {
		log.Printf("[RecordManager] Warning: Failed to load records: %v (starting fresh)", err)
	}
	return rm
}

// Load 从 gdata 加载战绩
func (rm *RecordManager) Load() error {
	rm.records = Records{}
	if rm.gdataManager == nil || !rm.gdataManager.ObjectPropExists(recordsObject, recordsProperty) {
		return nil
	}

	data, err := rm.gdataManager.LoadObjectProp(recordsObject, recordsProperty)
	if err != nil {
		return fmt.Errorf("failed to load records: %w", err)
	}

	var loaded Records
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return fmt.Errorf("failed to unmarshal records: %w", err)
	}
	rm.records = loaded
	return nil
}

// Save 保存战绩到 gdata
func (rm *RecordManager) Save() error {
	if rm.gdataManager == nil {
		return nil
	}

	data, err := yaml.Marshal(&rm.records)
	if err != nil {
		return fmt.Errorf("failed to marshal records: %w", err)
	}
	if err := rm.gdataManager.SaveObjectProp(recordsObject, recordsProperty, data); err != nil {
		return fmt.Errorf("failed to save records: %w", err)
	}
	return nil
}

// Records 返回当前战绩
func (rm *RecordManager) Records() Records {
	return rm.records
}

// BestScore 返回历史最高分
func (rm *RecordManager) BestScore() int {
	return rm.records.BestScore
}

// IsNewBest 最近一次结束的回合是否刷新了最高分
func (rm *RecordManager) IsNewBest() bool {
	return rm.newBest
}

// OnRoundStart 新飞船出现
func (rm *RecordManager) OnRoundStart(round.ShipHandle, float64) {}

// OnHit 命中后累计命中数
func (rm *RecordManager) OnHit(int) {
	rm.records.TotalHits++
}

// OnGameOver 回合结束：更新最高分并持久化
func (rm *RecordManager) OnGameOver(score int) {
	rm.records.RoundsPlayed++
	rm.newBest = score > rm.records.BestScore
	if rm.newBest {
		rm.records.BestScore = score
		log.Printf("[RecordManager] New best score: %d", score)
	}

	if err := rm.Save(); err != nil {
		log.Printf("[RecordManager] ERROR: %v", err)
	}
}
