package render

import "github.com/chewxy/math32"

// Idle animation defaults: a small vertical bob and a slow spin about the
// vertical axis.
const (
	BobAmplitude float32 = 0.1
	BobPeriod    float32 = 3
	SpinRate     float32 = 0.4
)

// IdleMotion parameterizes the cosmetic animation of a graph's parent
// transform. It never touches node-local transforms.
type IdleMotion struct {
	BobAmplitude float32 `json:"bobAmplitude"`
	BobPeriod    float32 `json:"bobPeriod"`
	SpinRate     float32 `json:"spinRate"`
}

// DefaultMotion returns the idle parameters every rendered graph carries.
func DefaultMotion() IdleMotion {
	return IdleMotion{BobAmplitude: BobAmplitude, BobPeriod: BobPeriod, SpinRate: SpinRate}
}

// Pose returns the parent pose at elapsed seconds: a sinusoidal vertical
// offset and a yaw angle in radians growing at a constant rate. Pure; a zero
// or negative period disables the bob rather than dividing by zero.
func (m IdleMotion) Pose(elapsed float32) (yOffset, yaw float32) {
	if m.BobPeriod > 0 {
		yOffset = m.BobAmplitude * math32.Sin(2*math32.Pi*elapsed/m.BobPeriod)
	}
	yaw = m.SpinRate * elapsed
	return yOffset, yaw
}
