package quiz

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tennis-rally-api/internal/domain"
)

func lowestAnswers() map[string]string {
	answers := make(map[string]string)
	for _, q := range questions {
		answers[q.Key] = q.Choices[0].Value
	}
	return answers
}

func TestScore_Thresholds(t *testing.T) {
	tests := []struct {
		name   string
		tenths int
		want   domain.SkillLevel
	}{
		{"exactly 10 is beginner", 100, domain.SkillBeginner},
		{"10.5 is intermediate", 105, domain.SkillIntermediate},
		{"exactly 17 is intermediate", 170, domain.SkillIntermediate},
		{"17.5 is advanced", 175, domain.SkillAdvanced},
		{"zero is beginner", 0, domain.SkillBeginner},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, LevelFor(tt.tenths))
		})
	}
}

func TestScore_Lowest(t *testing.T) {
	result, err := Score(lowestAnswers())
	require.NoError(t, err)
	// 0 + 0 + 0.2 + 0.1 + 7*1
	assert.Equal(t, 73, result.TotalTenths)
	assert.InDelta(t, 7.3, result.Total(), 1e-9)
	assert.Equal(t, domain.SkillBeginner, result.Level)
}

func TestScore_Highest(t *testing.T) {
	answers := make(map[string]string)
	for _, q := range questions {
		answers[q.Key] = q.Choices[len(q.Choices)-1].Value
	}

	result, err := Score(answers)
	require.NoError(t, err)
	// 1 + 0.9 + 1 + 0.7 + 7*3
	assert.Equal(t, 246, result.TotalTenths)
	assert.Equal(t, domain.SkillAdvanced, result.Level)
}

func TestScore_MixedIntermediate(t *testing.T) {
	answers := lowestAnswers()
	answers["q0"] = "1"
	answers["q4"] = "3"
	answers["q5"] = "3"

	result, err := Score(answers)
	require.NoError(t, err)
	// 73 + 10 + 20 + 20
	assert.Equal(t, 123, result.TotalTenths)
	assert.Equal(t, domain.SkillIntermediate, result.Level)
}

func TestScore_MissingAnswer(t *testing.T) {
	answers := lowestAnswers()
	delete(answers, "q7")

	_, err := Score(answers)
	assert.ErrorIs(t, err, ErrMissingAnswer)
	assert.Contains(t, err.Error(), "q7")
}

func TestScore_InvalidAnswer(t *testing.T) {
	answers := lowestAnswers()
	answers["q2"] = "0.3"

	_, err := Score(answers)
	assert.ErrorIs(t, err, ErrInvalidAnswer)
}

func TestQuestions_ReturnsCopy(t *testing.T) {
	qs := Questions()
	require.Len(t, qs, 11)
	qs[0].Choices[0].Value = "tampered"

	assert.Equal(t, "0", questions[0].Choices[0].Value)
}

// Every combination of valid answers scores between the lowest and highest totals,
// and the level agrees with the threshold table.
func TestScore_Property_LevelMatchesTotal(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("score is bounded and level follows thresholds", prop.ForAll(
		func(picks []int) bool {
			answers := make(map[string]string)
			for i, q := range questions {
				answers[q.Key] = q.Choices[picks[i]%len(q.Choices)].Value
			}
			result, err := Score(answers)
			if err != nil {
				return false
			}
			if result.TotalTenths < 73 || result.TotalTenths > 246 {
				return false
			}
			switch {
			case result.TotalTenths <= 100:
				return result.Level == domain.SkillBeginner
			case result.TotalTenths <= 170:
				return result.Level == domain.SkillIntermediate
			default:
				return result.Level == domain.SkillAdvanced
			}
		},
		gen.SliceOfN(len(questions), gen.IntRange(0, 11)),
	))

	properties.TestingRun(t)
}
