// Package lnt implements the Letter-Number Test task state.
//
// Each trial presents a two-character sequence of one letter and one
// digit. The hidden task alternates between classifying the letter
// (vowel/consonant) and the number (even/odd), switching after a run of
// consecutive correct responses.
package lnt

import (
	"fmt"
	"math/rand"
	"strings"
)

// Task identifies the active classification dimension.
type Task string

const (
	TaskLetter Task = "letter"
	TaskNumber Task = "number"
)

// Tasks lists both classification dimensions.
var Tasks = []Task{TaskLetter, TaskNumber}

// Valid responses per task.
const (
	ResponseVowel     = "vowel"
	ResponseConsonant = "consonant"
	ResponseEven      = "even"
	ResponseOdd       = "odd"
)

const (
	letters = "abcdefghijklmnopqrstuvwxyz"
	digits  = "123456789"
	vowels  = "aeiou"
)

// Config describes a test instance.
type Config struct {
	Trials                int
	SuccessesBeforeSwitch int
}

// DefaultConfig returns the standard test configuration.
func DefaultConfig() Config {
	return Config{Trials: 25, SuccessesBeforeSwitch: 6}
}

// TaskSwitch records a task change triggered by consecutive correct answers.
type TaskSwitch struct {
	Trial int  `json:"trial"`
	From  Task `json:"from"`
	To    Task `json:"to"`
}

// Test tracks the hidden task and running tally for one evaluation.
type Test struct {
	config   Config
	rng      *rand.Rand
	task     Task
	pinned   bool
	score    int
	trials   int
	streak   int
	switches []TaskSwitch
}

// New picks an initial task at random.
func New(cfg Config, rng *rand.Rand) (*Test, error) {
	if rng == nil {
		return nil, fmt.Errorf("lnt: rng is required")
	}
	if cfg.Trials <= 0 {
		return nil, fmt.Errorf("lnt: trials must be positive")
	}
	if cfg.SuccessesBeforeSwitch <= 0 {
		return nil, fmt.Errorf("lnt: successes before switch must be positive")
	}
	return &Test{
		config: cfg,
		rng:    rng,
		task:   Tasks[rng.Intn(len(Tasks))],
	}, nil
}

// Config returns the test configuration.
func (t *Test) Config() Config {
	return t.config
}

// Task returns the active classification task.
func (t *Test) Task() Task {
	return t.task
}

// PinTask fixes the task for component runs; it never switches afterwards.
func (t *Test) PinTask(task Task) {
	t.task = task
	t.pinned = true
}

// Switches returns the task switch history.
func (t *Test) Switches() []TaskSwitch {
	return t.switches
}

// GenerateSequence returns a random letter-digit pair such as "a5".
func (t *Test) GenerateSequence() string {
	letter := letters[t.rng.Intn(len(letters))]
	digit := digits[t.rng.Intn(len(digits))]
	return string([]byte{letter, digit})
}

// CorrectResponse returns the expected classification for a sequence under
// the active task.
func CorrectResponse(sequence string, task Task) (string, error) {
	if len(sequence) != 2 {
		return "", fmt.Errorf("lnt: sequence %q must be a letter followed by a digit", sequence)
	}
	letter := sequence[0]
	digit := sequence[1]
	if letter < 'a' || letter > 'z' || digit < '0' || digit > '9' {
		return "", fmt.Errorf("lnt: sequence %q must be a letter followed by a digit", sequence)
	}
	switch task {
	case TaskLetter:
		if strings.IndexByte(vowels, letter) >= 0 {
			return ResponseVowel, nil
		}
		return ResponseConsonant, nil
	case TaskNumber:
		if (digit-'0')%2 == 0 {
			return ResponseEven, nil
		}
		return ResponseOdd, nil
	default:
		return "", fmt.Errorf("lnt: unknown task %q", task)
	}
}

// EvaluateResponse scores a classification against the active task and
// updates the tally, switching the task when the streak threshold is met.
func (t *Test) EvaluateResponse(sequence, response string) (bool, error) {
	expected, err := CorrectResponse(sequence, t.task)
	if err != nil {
		return false, err
	}
	correct := strings.EqualFold(strings.TrimSpace(response), expected)
	t.trials++
	if !correct {
		t.streak = 0
		return false, nil
	}
	t.score++
	t.streak++
	if !t.pinned && t.streak >= t.config.SuccessesBeforeSwitch {
		t.switchTask()
	}
	return true, nil
}

// switchTask flips to the other task and resets the streak.
func (t *Test) switchTask() {
	next := TaskLetter
	if t.task == TaskLetter {
		next = TaskNumber
	}
	t.switches = append(t.switches, TaskSwitch{Trial: t.trials, From: t.task, To: next})
	t.task = next
	t.streak = 0
}

// Performance summarizes the running tally.
type Performance struct {
	Accuracy float64
	Score    int
	Trials   int
}

// Performance returns accuracy, score, and trials evaluated so far.
func (t *Test) Performance() Performance {
	perf := Performance{Score: t.score, Trials: t.trials}
	if t.trials > 0 {
		perf.Accuracy = float64(t.score) / float64(t.trials)
	}
	return perf
}
