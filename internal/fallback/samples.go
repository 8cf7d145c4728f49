package fallback

import (
	"fmt"

	"github.com/HendryAvila/educhain-mcp/internal/content"
)

// sampleQuestions is the fixed MCQ set cycled to reach a requested count.
var sampleQuestions = []content.MCQItem{
	{
		ID:            1,
		Question:      "What is the correct way to assign a value to a variable in Python?",
		Options:       []string{"x = 5", "x := 5", "x == 5", "x <- 5"},
		CorrectAnswer: "x = 5",
		Explanation:   "In Python, a variable is assigned a value using the '=' operator, e.g., `x = 5`.",
	},
	{
		ID:            2,
		Question:      "What does the print() function do in Python?",
		Options:       []string{"Saves a file", "Displays output", "Creates a loop", "Defines a variable"},
		CorrectAnswer: "Displays output",
		Explanation:   "The print() function outputs text or values to the console.",
	},
	{
		ID:            3,
		Question:      "What is the output of: `for i in range(3): print(i)`?",
		Options:       []string{"0, 1, 2", "1, 2, 3", "0, 1, 2, 3", "1, 2"},
		CorrectAnswer: "0, 1, 2",
		Explanation:   "The range(3) generates numbers from 0 to 2, which are printed by the loop.",
	},
	{
		ID:            4,
		Question:      "Which data type is used for text in Python?",
		Options:       []string{"int", "float", "str", "bool"},
		CorrectAnswer: "str",
		Explanation:   "The 'str' data type is used for text (strings) in Python.",
	},
	{
		ID:            5,
		Question:      "What symbol is used for assignment in Python?",
		Options:       []string{"==", "=", ":", "+"},
		CorrectAnswer: "=",
		Explanation:   "The '=' symbol assigns a value to a variable in Python.",
	},
}

// sampleFlashcards is the fixed card set cycled to reach a requested count.
var sampleFlashcards = []content.Flashcard{
	{
		ID:       1,
		Front:    "How do you assign a value to a variable in Python?",
		Back:     "Use the '=' operator, e.g., `x = 5`.",
		Category: "Variables",
	},
	{
		ID:       2,
		Front:    "What does the print() function do?",
		Back:     "It displays text or values to the console, e.g., `print('Hello')`.",
		Category: "Output",
	},
	{
		ID:       3,
		Front:    "What is the syntax for a basic for loop in Python?",
		Back:     "`for i in range(n):`, e.g., `for i in range(3): print(i)`.",
		Category: "Loops",
	},
}

// lessonObjectives returns the learning objectives of the substitute plan.
func lessonObjectives(topic string) []string {
	return []string{
		fmt.Sprintf("Understand basic concepts of %s", topic),
		"Write simple programs using variables and loops",
		"Use the print function to display output",
	}
}

// lessonStructure returns the two-phase structure of the substitute plan.
func lessonStructure(topic string) []content.LessonPhase {
	return []content.LessonPhase{
		{
			Phase:      "Introduction",
			Duration:   "10 minutes",
			Activities: []string{fmt.Sprintf("Overview of %s and its importance", topic)},
		},
		{
			Phase:      "Main Content",
			Duration:   "40 minutes",
			Activities: []string{"Explain variables and print function", "Practice writing simple for loops"},
		},
	}
}

// SampleSizes reports how many distinct sample items back each list kind.
func SampleSizes() map[content.Kind]int {
	return map[content.Kind]int{
		content.KindMCQ:        len(sampleQuestions),
		content.KindFlashcards: len(sampleFlashcards),
	}
}
