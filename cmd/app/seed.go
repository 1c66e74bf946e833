package main

import (
	"gorm.io/datatypes"

	"quizportal-backend/internal/model"
	"quizportal-backend/internal/repository"
	"quizportal-backend/utilities"
)

// seedQuestionBank loads the starter question set on first boot. Skipped when
// the bank already holds questions, so repeated starts stay idempotent.
func seedQuestionBank(questionRepo repository.QuestionRepository) {
	count, err := questionRepo.CountQuestions()
	if err != nil {
		utilities.Error("seed: failed to count questions: %v", err)
		return
	}
	if count > 0 {
		utilities.Info("seed: question bank already populated (%d questions), skipping", count)
		return
	}

	if err := questionRepo.CreateQuestions(sampleQuestions()); err != nil {
		utilities.Error("seed: failed to insert sample questions: %v", err)
		return
	}
	utilities.Info("seed: inserted %d sample questions", len(sampleQuestions()))
}

func sampleQuestions() []model.Question {
	opts := func(values ...string) datatypes.JSONSlice[string] {
		return datatypes.NewJSONSlice(values)
	}

	return []model.Question{
		// Aptitude
		{
			Text:          "If a train travels 360 kilometers in 4 hours, what is its speed in kilometers per hour?",
			Options:       opts("80 km/h", "90 km/h", "85 km/h", "95 km/h"),
			CorrectAnswer: 1,
			Category:      model.CategoryAptitude,
			Difficulty:    model.DifficultyEasy,
			Explanation:   "Speed = Distance/Time = 360/4 = 90 km/h",
		},
		{
			Text:          "What is 15% of 200?",
			Options:       opts("25", "30", "35", "40"),
			CorrectAnswer: 1,
			Category:      model.CategoryAptitude,
			Difficulty:    model.DifficultyEasy,
			Explanation:   "15% of 200 = (15/100) x 200 = 30",
		},
		{
			Text:          "If 6 workers can complete a task in 12 days, how many days will it take for 8 workers to complete the same task?",
			Options:       opts("9 days", "10 days", "8 days", "7 days"),
			CorrectAnswer: 0,
			Category:      model.CategoryAptitude,
			Difficulty:    model.DifficultyMedium,
			Explanation:   "(6 x 12) = (8 x x), so x = 72/8 = 9 days",
		},

		// Logical Reasoning
		{
			Text:          "If all flowers are plants, and all roses are flowers, which statement must be true?",
			Options:       opts("All plants are flowers", "All roses are plants", "All flowers are roses", "None of the above"),
			CorrectAnswer: 1,
			Category:      model.CategoryLogicalReasoning,
			Difficulty:    model.DifficultyMedium,
			Explanation:   "A syllogism: if A includes B, and B includes C, then A includes C.",
		},
		{
			Text:          "In a row of children, if A is 8th from the left and 4th from the right, how many children are there in the row?",
			Options:       opts("11", "12", "13", "10"),
			CorrectAnswer: 0,
			Category:      model.CategoryLogicalReasoning,
			Difficulty:    model.DifficultyEasy,
			Explanation:   "Position from left + position from right - 1 = 8 + 4 - 1 = 11",
		},
		{
			Text:          "Complete the series: 2, 6, 12, 20, ?",
			Options:       opts("30", "28", "32", "25"),
			CorrectAnswer: 0,
			Category:      model.CategoryLogicalReasoning,
			Difficulty:    model.DifficultyMedium,
			Explanation:   "The pattern adds consecutive even numbers: +4, +6, +8, +10",
		},

		// Technical
		{
			Text:          "Which of the following is NOT a JavaScript data type?",
			Options:       opts("String", "Boolean", "Integer", "Undefined"),
			CorrectAnswer: 2,
			Category:      model.CategoryTechnical,
			Difficulty:    model.DifficultyEasy,
			Explanation:   "JavaScript has Number instead of Integer.",
		},
		{
			Text:          "What does CSS stand for?",
			Options:       opts("Computer Style Sheets", "Creative Style System", "Cascading Style Sheets", "Colorful Style Sheets"),
			CorrectAnswer: 2,
			Category:      model.CategoryTechnical,
			Difficulty:    model.DifficultyEasy,
			Explanation:   "CSS stands for Cascading Style Sheets.",
		},
		{
			Text:          "Which HTTP status code indicates a successful request?",
			Options:       opts("200", "404", "500", "301"),
			CorrectAnswer: 0,
			Category:      model.CategoryTechnical,
			Difficulty:    model.DifficultyMedium,
			Explanation:   "200 OK indicates that the request has succeeded.",
		},

		// General Knowledge
		{
			Text:          "Which is the largest planet in our solar system?",
			Options:       opts("Mars", "Saturn", "Jupiter", "Neptune"),
			CorrectAnswer: 2,
			Category:      model.CategoryGeneralKnowledge,
			Difficulty:    model.DifficultyEasy,
			Explanation:   "Jupiter is the largest planet in our solar system.",
		},
		{
			Text:          "Who wrote 'Romeo and Juliet'?",
			Options:       opts("Charles Dickens", "William Shakespeare", "Jane Austen", "Mark Twain"),
			CorrectAnswer: 1,
			Category:      model.CategoryGeneralKnowledge,
			Difficulty:    model.DifficultyEasy,
			Explanation:   "Romeo and Juliet was written by William Shakespeare.",
		},
		{
			Text:          "What is the chemical symbol for gold?",
			Options:       opts("Ag", "Fe", "Au", "Cu"),
			CorrectAnswer: 2,
			Category:      model.CategoryGeneralKnowledge,
			Difficulty:    model.DifficultyMedium,
			Explanation:   "Au, from the Latin aurum.",
		},
	}
}
