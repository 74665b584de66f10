package entity

import "fmt"

// OutcomeMessage renders the success or retry line shown to the player.
// Outcomes that need no message render as an empty string.
func OutcomeMessage(outcome Outcome, lang string) string {
	switch outcome.Kind {
	case OutcomeWon:
		if lang == LangEN {
			return fmt.Sprintf("Well done! Solved in %d moves.", outcome.MoveCount)
		}
		return fmt.Sprintf("恭喜成功！一共用了%d步。", outcome.MoveCount)
	case OutcomeFailedAttempt:
		if lang == LangEN {
			return "Not connected, try again!"
		}
		return "失败了，再来一次，加油！"
	default:
		return ""
	}
}
