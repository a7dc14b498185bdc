package game

// Rules holds the score and reward magnitudes applied by a move. Scores move
// the running differential, rewards move the [X, O] reward vector.
type Rules struct {
	CaptureScore          int
	GoalScore             int
	HostileCaptureReward  int // X captures O
	FriendlyCaptureReward int // O captures X
	GoalReward            int
}
