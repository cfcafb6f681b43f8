package quizgen

import (
	"fmt"
	"strings"
)

const systemPrompt = `You are a quiz author for an online learning platform.

Rules:
- Write multiple-choice questions testing the requested course topic at the requested difficulty.
- Each question has exactly 4 options and exactly one correct option.
- Options are plain answer text. Never prefix options with "A)", "b." or similar letters; the platform assigns letters by position.
- The correct_answer field is the letter (A-D) of the correct option's position.
- Distractors should reflect plausible misconceptions, not random noise.
- Questions must be self-contained and unambiguous. No "all of the above".`

// buildUserMessage renders the generation request for the model.
func buildUserMessage(in GenerateInput) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Course: %s\n", in.CourseTitle)
	if in.Topic != "" {
		fmt.Fprintf(&b, "Topic: %s\n", in.Topic)
	}
	fmt.Fprintf(&b, "Difficulty: %s\n", in.Difficulty)
	fmt.Fprintf(&b, "Number of questions: %d\n", in.NumQuestions)
	return b.String()
}
