// Package synth 用 beep 合成音效，供 ebiten 和终端两个前端共用
package synth

import (
	"encoding/binary"
	"errors"
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
)

const (
	// Gain 音量
	Gain = 0.5
	// FadeTime 起止淡入淡出时长，避免爆音
	FadeTime = 5 * time.Millisecond
)

// ErrSilent 频率或时长不为正，音效被配置关闭
var ErrSilent = errors.New("tone disabled: frequency and duration must be positive")

// Tone 返回一段带淡入淡出的正弦音
//
// 参数：
//   - sr: 采样率
//   - frequency: 频率（Hz），必须低于 sr 的一半
//   - duration: 时长
//
// 返回的流恰好输出 sr.N(duration) 个采样，首尾采样为 0。
func Tone(sr beep.SampleRate, frequency float64, duration time.Duration) (beep.Streamer, error) {
	if frequency <= 0 || duration <= 0 {
		return nil, ErrSilent
	}
	sine, err := generators.SineTone(sr, frequency)
	if err != nil {
		return nil, err
	}

	total := sr.N(duration)
	fade := sr.N(FadeTime)
	if fade*2 > total {
		fade = total / 2
	}
	if fade < 2 {
		return effects.Transition(beep.Take(total, sine), total, Gain, Gain, effects.TransitionLinear), nil
	}

	// 同一个正弦发生器顺序读取，三段之间相位连续
	return beep.Seq(
		effects.Transition(beep.Take(fade, sine), fade, 0, Gain, effects.TransitionLinear),
		effects.Transition(beep.Take(total-2*fade, sine), total-2*fade, Gain, Gain, effects.TransitionLinear),
		effects.Transition(beep.Take(fade, sine), fade-1, Gain, 0, effects.TransitionLinear),
	), nil
}

// PCM16 读完整个流并编码为 16 位有符号小端立体声 PCM
// 结果可直接交给 ebiten audio.Context.NewPlayerFromBytes
func PCM16(s beep.Streamer) []byte {
	var out []byte
	buf := make([][2]float64, 512)
	for {
		n, ok := s.Stream(buf)
		for _, frame := range buf[:n] {
			out = binary.LittleEndian.AppendUint16(out, uint16(toInt16(frame[0])))
			out = binary.LittleEndian.AppendUint16(out, uint16(toInt16(frame[1])))
		}
		if !ok {
			return out
		}
	}
}

func toInt16(v float64) int16 {
	v = math.Max(-1, math.Min(1, v))
	return int16(v * math.MaxInt16)
}

// TonePCM 合成正弦音并编码为 PCM，参数非法时返回 nil
func TonePCM(sr beep.SampleRate, frequency float64, duration time.Duration) []byte {
	s, err := Tone(sr, frequency, duration)
	if err != nil {
		return nil
	}
	return PCM16(s)
}
