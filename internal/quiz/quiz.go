// Package quiz scores the self-assessment questionnaire that sets a player's skill level.
package quiz

import (
	"errors"
	"fmt"

	"tennis-rally-api/internal/domain"
)

// Level thresholds in tenths of a point, both inclusive
const (
	BeginnerMaxTenths     = 100
	IntermediateMaxTenths = 170
)

var (
	ErrMissingAnswer = errors.New("missing answer")
	ErrInvalidAnswer = errors.New("invalid answer")
)

// Choice is one selectable answer; Value is the submitted token and Tenths its weight
type Choice struct {
	Value  string `json:"value"`
	Label  string `json:"label"`
	Tenths int    `json:"-"`
}

// Question is a single-choice question identified by Key
type Question struct {
	Key     string   `json:"key"`
	Text    string   `json:"text"`
	Choices []Choice `json:"choices"`
}

// Result is a scored questionnaire
type Result struct {
	TotalTenths int               `json:"total_tenths"`
	Level       domain.SkillLevel `json:"skill_level"`
}

// Total returns the score in points
func (r Result) Total() float64 {
	return float64(r.TotalTenths) / 10
}

func threePoint(low, mid, high string) []Choice {
	return []Choice{
		{Value: "1", Label: low, Tenths: 10},
		{Value: "2", Label: mid, Tenths: 20},
		{Value: "3", Label: high, Tenths: 30},
	}
}

var questions = []Question{
	{Key: "q0", Text: "How long have you been playing tennis?", Choices: []Choice{
		{Value: "0", Label: "Just starting", Tenths: 0},
		{Value: "0.5", Label: "Less than a year", Tenths: 5},
		{Value: "0.8", Label: "Less than 2 years", Tenths: 8},
		{Value: "1", Label: "More than 2 years", Tenths: 10},
	}},
	{Key: "q1", Text: "How often do you play?", Choices: []Choice{
		{Value: "0", Label: "Under 1h a week", Tenths: 0},
		{Value: "0.5", Label: "1h a week", Tenths: 5},
		{Value: "0.7", Label: "2h a week", Tenths: 7},
		{Value: "0.9", Label: "Over 2h a week", Tenths: 9},
	}},
	{Key: "q2", Text: "How would you rate your forehand?", Choices: []Choice{
		{Value: "0.2", Label: "Unsteady", Tenths: 2},
		{Value: "0.5", Label: "Consistent", Tenths: 5},
		{Value: "1", Label: "Powerful and accurate", Tenths: 10},
	}},
	{Key: "q3", Text: "How would you rate your backhand?", Choices: []Choice{
		{Value: "0.1", Label: "Often miss", Tenths: 1},
		{Value: "0.4", Label: "I get it back", Tenths: 4},
		{Value: "0.7", Label: "Powerful and deep", Tenths: 7},
	}},
	{Key: "q4", Text: "Is your serve reliable?", Choices: threePoint("No", "Fairly", "Yes")},
	{Key: "q5", Text: "How are you at the net?", Choices: threePoint("Uncomfortable", "I defend", "Aggressive")},
	{Key: "q6", Text: "Do you know the tie-break rules?", Choices: threePoint("No", "Partly", "Perfectly")},
	{Key: "q7", Text: "Can you sustain a long rally?", Choices: threePoint("Rarely", "Sometimes", "Consistently")},
	{Key: "q8", Text: "Do you use topspin or slice?", Choices: threePoint("Never", "Occasionally", "Often")},
	{Key: "q9", Text: "How is your stamina?", Choices: threePoint("Low", "Medium", "High")},
	{Key: "q10", Text: "What is your main goal?", Choices: threePoint("Have fun", "Improve", "Compete")},
}

// Questions returns a copy of the questionnaire in display order
func Questions() []Question {
	out := make([]Question, len(questions))
	for i, q := range questions {
		out[i] = q
		out[i].Choices = append([]Choice(nil), q.Choices...)
	}
	return out
}

// LevelFor maps a total in tenths to a skill level
func LevelFor(totalTenths int) domain.SkillLevel {
	switch {
	case totalTenths <= BeginnerMaxTenths:
		return domain.SkillBeginner
	case totalTenths <= IntermediateMaxTenths:
		return domain.SkillIntermediate
	default:
		return domain.SkillAdvanced
	}
}

// Score sums the weight of every answer. Each question must be answered with one of its choice values.
func Score(answers map[string]string) (Result, error) {
	total := 0
	for _, q := range questions {
		value, ok := answers[q.Key]
		if !ok || value == "" {
			return Result{}, fmt.Errorf("%w: %s", ErrMissingAnswer, q.Key)
		}
		tenths, ok := q.weight(value)
		if !ok {
			return Result{}, fmt.Errorf("%w: %s=%q", ErrInvalidAnswer, q.Key, value)
		}
		total += tenths
	}
	return Result{TotalTenths: total, Level: LevelFor(total)}, nil
}

func (q Question) weight(value string) (int, bool) {
	for _, c := range q.Choices {
		if c.Value == value {
			return c.Tenths, true
		}
	}
	return 0, false
}
