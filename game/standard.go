package game

const (
	StandardCaptureScore          = 1
	StandardGoalScore             = 5
	StandardHostileCaptureReward  = 20
	StandardFriendlyCaptureReward = 50
	StandardGoalReward            = 100
)

func NewStandardRules() Rules {
	return Rules{
		CaptureScore:          StandardCaptureScore,
		GoalScore:             StandardGoalScore,
		HostileCaptureReward:  StandardHostileCaptureReward,
		FriendlyCaptureReward: StandardFriendlyCaptureReward,
		GoalReward:            StandardGoalReward,
	}
}

// captureReward is the reward swing when side captures an opposing piece.
func (r Rules) captureReward(side Side) int {
	if side == Hostile {
		return r.HostileCaptureReward
	}
	return r.FriendlyCaptureReward
}
