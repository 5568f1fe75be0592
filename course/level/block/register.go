package block

import "github.com/df-mc/gauntlet/course/level"

// DefaultRegistry returns a new Registry holding every Operation of this
// package in the order daily courses are generated with.
func DefaultRegistry() *level.Registry {
	return level.NewRegistry(
		Spawn{},
		Finish{},
		Hill{},
		WaterBalloonDrop{},
		SaggyBridge{},
		Straight{},
		Cliff{},
		FluidFunnel{},
		DropDirectionReverse{},
		Elevator{},
	)
}
