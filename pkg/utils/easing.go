package utils

// Easing Functions (缓动函数)
//
// 所有函数接受一个进度值 t ∈ [0, 1]，返回缓动后的值 ∈ [0, 1]。
//
// 参考：https://easings.net/

// EaseInQuad 二次方缓入
// 特点：开始慢，结束较快
// 公式：f(t) = t²
//
// 粒子透明度用 t = life/maxLife 代入：寿命刚开始时淡出很慢，接近结束时加速消失
func EaseInQuad(t float64) float64 {
	return t * t
}

// Lerp 线性插值
// 公式：f(t) = a + (b-a)·t
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Clamp01 将值限制在 [0, 1] 范围内
func Clamp01(t float64) float64 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}
