package utils

import "math"

// Easing Functions (缓动函数)
//
// 缓动函数用于控制动画的速度曲线，使动画看起来更自然。
// 所有函数接受一个进度值 t ∈ [0, 1]，返回缓动后的值 ∈ [0, 1]。
//
// 参考：https://easings.net/

// EaseLinear 线性缓动（无缓动）
func EaseLinear(t float64) float64 {
	return t
}

// EaseOutCubic 三次方缓出
// 特点：开始快，结束慢（用于文字淡入、卡片回正）
// 公式：f(t) = 1 - (1-t)³
func EaseOutCubic(t float64) float64 {
	return 1 - math.Pow(1-t, 3)
}

// EaseInOutCubic 三次方缓入缓出
//
//	t < 0.5: f(t) = 4t³
//	t >= 0.5: f(t) = 1 - (-2t + 2)³ / 2
func EaseInOutCubic(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	return 1 - math.Pow(-2*t+2, 3)/2
}

// Lerp 线性插值
// t=0 返回 a，t=1 返回 b
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Clamp01 把值限制在 [0, 1]
func Clamp01(t float64) float64 {
	return math.Max(0, math.Min(1, t))
}

// CubicBezier CSS cubic-bezier(x1, y1, x2, y2) 缓动曲线
// 端点固定为 (0,0) 和 (1,1)
type CubicBezier struct {
	X1, Y1, X2, Y2 float64
}

// SlideUpCurve 开场遮罩上滑使用的曲线：cubic-bezier(.2,.9,.2,1)
// 起步极快、尾部长时间减速
var SlideUpCurve = CubicBezier{X1: 0.2, Y1: 0.9, X2: 0.2, Y2: 1}

// Ease 返回进度 x 对应的曲线值
func (c CubicBezier) Ease(x float64) float64 {
	x = Clamp01(x)
	if x == 0 || x == 1 {
		return x
	}
	return c.sample(c.Y1, c.Y2, c.solveX(x))
}

// sample 计算一维三次贝塞尔在参数 s 处的值（P0=0, P3=1）
func (c CubicBezier) sample(p1, p2, s float64) float64 {
	inv := 1 - s
	return 3*inv*inv*s*p1 + 3*inv*s*s*p2 + s*s*s
}

func (c CubicBezier) sampleDerivative(p1, p2, s float64) float64 {
	inv := 1 - s
	return 3*inv*inv*p1 + 6*inv*s*(p2-p1) + 3*s*s*(1-p2)
}

// solveX 求参数 s 使 bx(s) = x：先牛顿迭代，失败再二分
func (c CubicBezier) solveX(x float64) float64 {
	const epsilon = 1e-7

	s := x
	for i := 0; i < 8; i++ {
		err := c.sample(c.X1, c.X2, s) - x
		if math.Abs(err) < epsilon {
			return s
		}
		d := c.sampleDerivative(c.X1, c.X2, s)
		if math.Abs(d) < 1e-6 {
			break
		}
		s -= err / d
	}

	lo, hi := 0.0, 1.0
	s = x
	for i := 0; i < 64; i++ {
		v := c.sample(c.X1, c.X2, s)
		if math.Abs(v-x) < epsilon {
			return s
		}
		if v < x {
			lo = s
		} else {
			hi = s
		}
		s = (lo + hi) / 2
	}
	return s
}
