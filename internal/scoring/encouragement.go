package scoring

// Tier selects the encouragement line shown under a day's total.
type Tier string

const (
	TierStarting        Tier = "starting"
	TierOutstanding     Tier = "outstanding"
	TierGreat           Tier = "great"
	TierKeepItUp        Tier = "keep_it_up"
	TierEveryStepCounts Tier = "every_step_counts"
)

var tierMessages = map[Tier]string{
	TierStarting:        "Let's get started! 🌱",
	TierOutstanding:     "Outstanding work! 🌟",
	TierGreat:           "Great progress! 💪",
	TierKeepItUp:        "Keep it up! 🎯",
	TierEveryStepCounts: "Every step counts! 🚀",
}

// Encouragement picks a tier from the day's total and task count.
//
// A zero total is always TierStarting, even when the list holds highly
// relevant tasks that simply are not completed yet.
func Encouragement(totalScore, taskCount int) Tier {
	avg := 0.0
	if taskCount > 0 {
		avg = float64(totalScore) / float64(taskCount)
	}

	switch {
	case totalScore == 0:
		return TierStarting
	case avg >= 80:
		return TierOutstanding
	case avg >= 60:
		return TierGreat
	case avg >= 40:
		return TierKeepItUp
	default:
		return TierEveryStepCounts
	}
}

func (t Tier) Message() string {
	return tierMessages[t]
}
