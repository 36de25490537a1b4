package lnt

import (
	"math/rand"
	"testing"
)

func newTest(t *testing.T, cfg Config, seed int64) *Test {
	t.Helper()
	test, err := New(cfg, rand.New(rand.NewSource(seed)))
	if err != nil {
		t.Fatalf("new test: %v", err)
	}
	return test
}

func TestInitialTaskIsValid(t *testing.T) {
	test := newTest(t, DefaultConfig(), 1)
	switch test.Task() {
	case TaskLetter, TaskNumber:
	default:
		t.Fatalf("unexpected initial task %q", test.Task())
	}
}

func TestNewRejectsBadConfig(t *testing.T) {
	if _, err := New(Config{Trials: 0, SuccessesBeforeSwitch: 6}, rand.New(rand.NewSource(1))); err == nil {
		t.Fatalf("expected error for zero trials")
	}
	if _, err := New(Config{Trials: 25, SuccessesBeforeSwitch: 0}, rand.New(rand.NewSource(1))); err == nil {
		t.Fatalf("expected error for zero switch threshold")
	}
	if _, err := New(DefaultConfig(), nil); err == nil {
		t.Fatalf("expected error for nil rng")
	}
}

func TestGenerateSequenceFormat(t *testing.T) {
	test := newTest(t, DefaultConfig(), 2)
	for i := 0; i < 50; i++ {
		sequence := test.GenerateSequence()
		if len(sequence) != 2 {
			t.Fatalf("expected two characters, got %q", sequence)
		}
		if sequence[0] < 'a' || sequence[0] > 'z' {
			t.Fatalf("expected letter first, got %q", sequence)
		}
		if sequence[1] < '1' || sequence[1] > '9' {
			t.Fatalf("expected digit second, got %q", sequence)
		}
	}
}

func TestCorrectResponse(t *testing.T) {
	cases := []struct {
		sequence string
		task     Task
		want     string
	}{
		{"a5", TaskLetter, ResponseVowel},
		{"b5", TaskLetter, ResponseConsonant},
		{"x2", TaskNumber, ResponseEven},
		{"x3", TaskNumber, ResponseOdd},
		{"u8", TaskLetter, ResponseVowel},
		{"u8", TaskNumber, ResponseEven},
	}
	for _, tc := range cases {
		got, err := CorrectResponse(tc.sequence, tc.task)
		if err != nil {
			t.Fatalf("%s/%s: %v", tc.sequence, tc.task, err)
		}
		if got != tc.want {
			t.Fatalf("%s/%s: expected %q, got %q", tc.sequence, tc.task, tc.want, got)
		}
	}
}

func TestCorrectResponseRejectsMalformedSequence(t *testing.T) {
	for _, sequence := range []string{"", "a", "5a", "ab", "a5x"} {
		if _, err := CorrectResponse(sequence, TaskLetter); err == nil {
			t.Fatalf("expected error for sequence %q", sequence)
		}
	}
}

func TestEvaluateResponse(t *testing.T) {
	test := newTest(t, DefaultConfig(), 3)
	test.PinTask(TaskLetter)

	correct, err := test.EvaluateResponse("a5", ResponseVowel)
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if !correct {
		t.Fatalf("expected vowel to be correct for a5")
	}

	// Number-task answer is incorrect while the letter task is active.
	correct, err = test.EvaluateResponse("a4", ResponseEven)
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if correct {
		t.Fatalf("expected even to be incorrect under letter task")
	}
}

func TestTaskSwitchAfterConsecutiveCorrect(t *testing.T) {
	test := newTest(t, DefaultConfig(), 4)
	initial := test.Task()

	for trial := 0; trial < 6; trial++ {
		sequence := test.GenerateSequence()
		expected, err := CorrectResponse(sequence, test.Task())
		if err != nil {
			t.Fatalf("correct response: %v", err)
		}
		correct, err := test.EvaluateResponse(sequence, expected)
		if err != nil {
			t.Fatalf("evaluate: %v", err)
		}
		if !correct {
			t.Fatalf("trial %d: expected correct response", trial)
		}
	}

	if test.Task() == initial {
		t.Fatalf("expected task to switch away from %s", initial)
	}
	switches := test.Switches()
	if len(switches) != 1 {
		t.Fatalf("expected one recorded switch, got %d", len(switches))
	}
	if switches[0].Trial != 6 {
		t.Fatalf("expected switch at trial 6, got %d", switches[0].Trial)
	}
}

func TestIncorrectResetsStreak(t *testing.T) {
	test := newTest(t, DefaultConfig(), 5)
	initial := test.Task()

	for trial := 0; trial < 5; trial++ {
		sequence := test.GenerateSequence()
		expected, _ := CorrectResponse(sequence, test.Task())
		if _, err := test.EvaluateResponse(sequence, expected); err != nil {
			t.Fatalf("evaluate: %v", err)
		}
	}

	sequence := test.GenerateSequence()
	expected, _ := CorrectResponse(sequence, test.Task())
	wrong := ResponseVowel
	if expected == ResponseVowel {
		wrong = ResponseConsonant
	}
	if expected == ResponseEven || expected == ResponseOdd {
		wrong = ResponseOdd
		if expected == ResponseOdd {
			wrong = ResponseEven
		}
	}
	if _, err := test.EvaluateResponse(sequence, wrong); err != nil {
		t.Fatalf("evaluate: %v", err)
	}

	sequence = test.GenerateSequence()
	expected, _ = CorrectResponse(sequence, test.Task())
	if _, err := test.EvaluateResponse(sequence, expected); err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if test.Task() != initial {
		t.Fatalf("expected task to stay %s after streak reset", initial)
	}
}

func TestPinnedTaskNeverSwitches(t *testing.T) {
	test := newTest(t, DefaultConfig(), 6)
	test.PinTask(TaskNumber)

	for trial := 0; trial < 15; trial++ {
		sequence := test.GenerateSequence()
		expected, _ := CorrectResponse(sequence, TaskNumber)
		if _, err := test.EvaluateResponse(sequence, expected); err != nil {
			t.Fatalf("evaluate: %v", err)
		}
	}

	if test.Task() != TaskNumber {
		t.Fatalf("expected pinned task to remain number, got %s", test.Task())
	}
	if len(test.Switches()) != 0 {
		t.Fatalf("expected no switches for pinned task")
	}
}

func TestPerformanceTally(t *testing.T) {
	test := newTest(t, DefaultConfig(), 7)
	test.PinTask(TaskNumber)

	responses := []struct {
		sequence string
		response string
	}{
		{"a2", ResponseEven},
		{"b3", ResponseEven},
		{"c4", ResponseEven},
		{"d5", ResponseEven},
	}
	for _, step := range responses {
		if _, err := test.EvaluateResponse(step.sequence, step.response); err != nil {
			t.Fatalf("evaluate: %v", err)
		}
	}

	perf := test.Performance()
	if perf.Trials != 4 {
		t.Fatalf("expected 4 trials, got %d", perf.Trials)
	}
	if perf.Score != 2 {
		t.Fatalf("expected score 2, got %d", perf.Score)
	}
	if perf.Accuracy != 0.5 {
		t.Fatalf("expected accuracy 0.5, got %f", perf.Accuracy)
	}
}
