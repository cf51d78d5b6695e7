package gym

// Screen dimensions of Atari games in Gym
const (
	DefaultWidth  = 160
	DefaultHeight = 210
)
