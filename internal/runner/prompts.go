package runner

import (
	"fmt"
	"strings"

	"github.com/kenneds6/LLM-cognitive-flexibility/internal/lnt"
	"github.com/kenneds6/LLM-cognitive-flexibility/internal/wcst"
)

const wcstSystemPrompt = `You are participating in a card matching exercise.
For each trial, you will be presented with a card and four option cards.
Your task is to match the presented card with one of the options by responding with just the number (1-4).
There is always a correct way to match the cards, but you will need to discover it through trial and error.
When your match is correct, continue using the same matching approach until you receive feedback that it's incorrect.
When incorrect, you must switch to a completely different matching approach - do not persist with an approach that failed.
Respond only with a single number between 1 and 4.
Do not explain your choice or thought process.`

const lntSystemPrompt = `You are participating in a sequence classification exercise.
For each trial, you will see a sequence containing one letter followed by one number.
Your task is to classify the sequence in one of two ways:
For letters: respond with 'vowel' or 'consonant'
For numbers: respond with 'even' or 'odd'
You must choose ONE type of classification and stick with it while it works.
If you receive incorrect feedback, you must switch to the other classification task - do not persist with a failed approach.
Respond only with a single word: 'vowel', 'consonant', 'even', or 'odd'.
Do not explain your choice or provide both classifications.`

const wcstShapePrompt = `You are performing a card sorting task.
Match the card to the option that has the same shape.
Respond only with the number of the matching card.`

const wcstColorPrompt = `You are performing a card sorting task.
Match the card to the option that has the same color.
Respond only with the number of the matching card.`

const wcstNumberPrompt = `You are performing a card sorting task.
Match the card to the option that has the same number of shapes.
Respond only with the number of the matching card.`

const lntLetterPrompt = `You are performing a letter classification task.
For each sequence, identify if the letter is a vowel or consonant.
Respond only with 'vowel' or 'consonant'.`

const lntNumberPrompt = `You are performing a number classification task.
For each sequence, identify if the number is even or odd.
Respond only with 'even' or 'odd'.`

// Feedback sent after each scored trial.
const (
	feedbackCorrect   = "Correct!"
	feedbackIncorrect = "Incorrect!"
)

// wcstSystemPromptFor returns the full-test prompt, or the rule-specific
// prompt when the rule is pinned.
func wcstSystemPromptFor(rule wcst.Rule, pinned bool) string {
	if !pinned {
		return wcstSystemPrompt
	}
	switch rule {
	case wcst.RuleShape:
		return wcstShapePrompt
	case wcst.RuleColor:
		return wcstColorPrompt
	default:
		return wcstNumberPrompt
	}
}

// lntSystemPromptFor returns the full-test prompt, or the task-specific
// prompt when the task is pinned.
func lntSystemPromptFor(task lnt.Task, pinned bool) string {
	if !pinned {
		return lntSystemPrompt
	}
	if task == lnt.TaskLetter {
		return lntLetterPrompt
	}
	return lntNumberPrompt
}

// wcstTrialPrompt formats one card and its options.
func wcstTrialPrompt(card wcst.Card, options []wcst.Card) string {
	var builder strings.Builder
	fmt.Fprintf(&builder, "\nNew Card: %s\n", card)
	for i, option := range options {
		fmt.Fprintf(&builder, "Option %d: %s\n", i+1, option)
	}
	builder.WriteString("Choose the correct option (1-4): ")
	return builder.String()
}

// lntTrialPrompt formats one letter-number sequence.
func lntTrialPrompt(sequence string) string {
	return fmt.Sprintf("\nSequence: %s\n", sequence)
}
