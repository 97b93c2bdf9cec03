// Package scoring evaluates submitted answers against the question bank.
//
// All functions are pure. The total is computed once from the final answer set
// when a test is submitted.
package scoring

import (
	"math"
	"strings"
	"time"

	"github.com/sbilibin2017/accounting-marathon/internal/questions"
)

// Points awarded per correct answer.
const (
	MultipleChoicePoints = 1
	VendorPoints         = 1
	CategoryPoints       = 2
)

// EvaluateMultipleChoice awards a point when submitted equals the correct answer exactly.
func EvaluateMultipleChoice(q questions.MultipleChoice, submitted string) int {
	if submitted == q.Answer {
		return MultipleChoicePoints
	}
	return 0
}

// EvaluateFreeTextVendor compares the trimmed, lower-cased submission with the
// already normalized expected vendor.
func EvaluateFreeTextVendor(expectedVendor, submitted string) int {
	if strings.ToLower(strings.TrimSpace(submitted)) == expectedVendor {
		return VendorPoints
	}
	return 0
}

// EvaluateCategory awards points only for an exact GL label match.
func EvaluateCategory(expectedGL, submitted string) int {
	if submitted == expectedGL {
		return CategoryPoints
	}
	return 0
}

// TotalScore sums the awards over the whole bank. Missing answers score zero and
// keys that are not part of the bank are ignored.
func TotalScore(bank *questions.Bank, answers map[string]string) int {
	total := 0
	for _, q := range bank.MultipleChoice {
		if v, ok := answers[q.ID]; ok {
			total += EvaluateMultipleChoice(q, v)
		}
	}
	for _, task := range bank.BankTasks {
		if v, ok := answers[questions.VendorKey(task.ID)]; ok {
			total += EvaluateFreeTextVendor(task.Vendor, v)
		}
		if v, ok := answers[questions.CategoryKey(task.ID)]; ok {
			total += EvaluateCategory(task.GL, v)
		}
	}
	return total
}

// MaxScore is the score of a fully correct attempt.
func MaxScore(bank *questions.Bank) int {
	return len(bank.MultipleChoice)*MultipleChoicePoints +
		len(bank.BankTasks)*(VendorPoints+CategoryPoints)
}

// ElapsedTime returns the seconds between start and end rounded to two decimals.
// A negative duration (clock skew) is clamped to zero and reported via clamped.
func ElapsedTime(start, end time.Time) (seconds float64, clamped bool) {
	d := end.Sub(start)
	if d < 0 {
		return 0, true
	}
	return math.Round(d.Seconds()*100) / 100, false
}
