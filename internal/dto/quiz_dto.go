package dto

import (
	"tennis-rally-api/internal/domain"
	"tennis-rally-api/internal/quiz"
)

// QuizSubmitRequest maps question keys (q0..q10) to the chosen value
type QuizSubmitRequest struct {
	Answers map[string]string `json:"answers" binding:"required" example:"q0:1,q1:0.5"`
}

// QuizResultResponse is a scored quiz
type QuizResultResponse struct {
	TotalTenths int               `json:"totalTenths" example:"123"`
	Score       float64           `json:"score" example:"12.3"`
	SkillLevel  domain.SkillLevel `json:"skillLevel" example:"Intermediate"`
}

// QuizResponse is the questionnaire plus the viewer's latest result, if any
type QuizResponse struct {
	Questions []quiz.Question     `json:"questions"`
	Latest    *QuizResultResponse `json:"latest,omitempty"`
}

func ToQuizResultResponse(totalTenths int, level domain.SkillLevel) QuizResultResponse {
	return QuizResultResponse{
		TotalTenths: totalTenths,
		Score:       float64(totalTenths) / 10,
		SkillLevel:  level,
	}
}
