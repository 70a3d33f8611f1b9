package game

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"
)

// SceneFactory 场景工厂函数类型
// 按名称创建场景，避免 game 包依赖具体场景实现
type SceneFactory func(name string) Scene

// SceneManager manages the game's high-level state by controlling which scene is active.
// It ensures only one scene's Update and Draw methods are called at any given time.
type SceneManager struct {
	currentScene Scene
	currentName  string
	sceneFactory SceneFactory
}

// NewSceneManager creates and returns a new SceneManager instance.
// The manager starts with no active scene; use SwitchTo or Load to set the initial scene.
func NewSceneManager() *SceneManager {
	return &SceneManager{}
}

// SetSceneFactory 设置场景工厂函数
func (sm *SceneManager) SetSceneFactory(factory SceneFactory) {
	sm.sceneFactory = factory
}

// SwitchTo changes the active scene to the provided scene.
// 被替换的场景如果实现了 Saveable，会先调用 SaveOnExit 停止并保存
func (sm *SceneManager) SwitchTo(scene Scene) {
	if sm.currentScene != nil && sm.currentScene != scene {
		if saveable, ok := sm.currentScene.(Saveable); ok && !saveable.SaveOnExit() {
			log.Printf("[SceneManager] Warning: outgoing scene %q failed to save", sm.currentName)
		}
	}
	sm.currentScene = scene
}

// GetCurrentScene 返回当前活动的场景，没有活动场景时返回 nil
func (sm *SceneManager) GetCurrentScene() Scene {
	return sm.currentScene
}

// CurrentName 返回通过 Load 加载的当前场景名称
func (sm *SceneManager) CurrentName() string {
	return sm.currentName
}

// Load 通过工厂函数创建并切换到指定名称的场景
//
// 返回：
//   - bool: 是否成功切换
func (sm *SceneManager) Load(name string) bool {
	log.Printf("[SceneManager] Loading scene: %s", name)

	if sm.sceneFactory == nil {
		log.Printf("[SceneManager] Error: SceneFactory not set")
		return false
	}

	newScene := sm.sceneFactory(name)
	if newScene == nil {
		log.Printf("[SceneManager] Error: failed to create scene: %s", name)
		return false
	}

	sm.SwitchTo(newScene)
	sm.currentName = name
	return true
}

// SaveOnExit 让当前场景保存状态（如果它实现了 Saveable）
func (sm *SceneManager) SaveOnExit() bool {
	if saveable, ok := sm.currentScene.(Saveable); ok {
		return saveable.SaveOnExit()
	}
	return true
}

// Resize 通知当前场景逻辑屏幕尺寸变化（如果它实现了 Resizable）
func (sm *SceneManager) Resize(width, height int) {
	if resizable, ok := sm.currentScene.(Resizable); ok {
		resizable.Resize(width, height)
	}
}

// Update updates the currently active scene.
// If no scene is active, this method does nothing.
func (sm *SceneManager) Update(deltaTime float64) {
	if sm.currentScene != nil {
		sm.currentScene.Update(deltaTime)
	}
}

// Draw renders the currently active scene to the provided screen.
// If no scene is active, this method does nothing.
func (sm *SceneManager) Draw(screen *ebiten.Image) {
	if sm.currentScene != nil {
		sm.currentScene.Draw(screen)
	}
}
