// Package wcst implements the Wisconsin Card Sorting Test task state.
//
// A deck of stimulus cards is matched against four option cards under a
// hidden sorting rule (shape, color, or number). The rule switches to a
// different dimension after a run of consecutive correct responses, and
// the subject must re-infer it from feedback alone.
package wcst

import (
	"fmt"
	"math/rand"
	"strconv"
)

// Rule identifies the active sorting dimension.
type Rule string

const (
	RuleShape  Rule = "shape"
	RuleColor  Rule = "color"
	RuleNumber Rule = "number"
)

// Rules lists all sorting dimensions.
var Rules = []Rule{RuleShape, RuleColor, RuleNumber}

// Card is a single stimulus with three independent dimensions.
type Card struct {
	Shape string
	Color string
	Count int
}

// String renders a card as "shape color count".
func (c Card) String() string {
	return c.Shape + " " + c.Color + " " + strconv.Itoa(c.Count)
}

// deckRepeats is how many times each dimension combination appears in the deck.
const deckRepeats = 5

// Config describes a test instance.
type Config struct {
	Trials                int
	SuccessesBeforeSwitch int
	Shapes                []string
	Colors                []string
	Counts                []int
}

// DefaultConfig returns the standard test configuration.
func DefaultConfig() Config {
	return Config{
		Trials:                25,
		SuccessesBeforeSwitch: 6,
		Shapes:                []string{"circle", "triangle", "cross", "star"},
		Colors:                []string{"red", "green", "yellow", "blue"},
		Counts:                []int{1, 2, 3, 4},
	}
}

// RuleSwitch records a rule change triggered by consecutive correct answers.
type RuleSwitch struct {
	Trial int  `json:"trial"`
	From  Rule `json:"from"`
	To    Rule `json:"to"`
}

// Test tracks the deck, hidden rule, and running tally for one evaluation.
type Test struct {
	config   Config
	rng      *rand.Rand
	deck     []Card
	rule     Rule
	pinned   bool
	score    int
	trials   int
	streak   int
	switches []RuleSwitch
}

// New builds a shuffled deck and picks an initial rule.
func New(cfg Config, rng *rand.Rand) (*Test, error) {
	if rng == nil {
		return nil, fmt.Errorf("wcst: rng is required")
	}
	if len(cfg.Shapes) < 2 || len(cfg.Colors) < 2 || len(cfg.Counts) < 2 {
		return nil, fmt.Errorf("wcst: each dimension needs at least two values")
	}
	if cfg.Trials <= 0 {
		return nil, fmt.Errorf("wcst: trials must be positive")
	}
	if cfg.SuccessesBeforeSwitch <= 0 {
		return nil, fmt.Errorf("wcst: successes before switch must be positive")
	}
	test := &Test{
		config: cfg,
		rng:    rng,
		rule:   Rules[rng.Intn(len(Rules))],
	}
	test.deck = buildDeck(cfg, rng)
	if len(test.deck) < cfg.Trials {
		return nil, fmt.Errorf("wcst: deck of %d cards cannot cover %d trials", len(test.deck), cfg.Trials)
	}
	return test, nil
}

// buildDeck enumerates every dimension combination deckRepeats times and shuffles.
func buildDeck(cfg Config, rng *rand.Rand) []Card {
	deck := make([]Card, 0, deckRepeats*len(cfg.Shapes)*len(cfg.Colors)*len(cfg.Counts))
	for i := 0; i < deckRepeats; i++ {
		for _, shape := range cfg.Shapes {
			for _, color := range cfg.Colors {
				for _, count := range cfg.Counts {
					deck = append(deck, Card{Shape: shape, Color: color, Count: count})
				}
			}
		}
	}
	rng.Shuffle(len(deck), func(i, j int) {
		deck[i], deck[j] = deck[j], deck[i]
	})
	return deck
}

// Config returns the test configuration.
func (t *Test) Config() Config {
	return t.config
}

// Deck returns the shuffled stimulus deck.
func (t *Test) Deck() []Card {
	return t.deck
}

// Card returns the stimulus for a trial index.
func (t *Test) Card(trial int) Card {
	return t.deck[trial]
}

// Rule returns the active sorting rule.
func (t *Test) Rule() Rule {
	return t.rule
}

// PinRule fixes the rule for component tasks; it never switches afterwards.
func (t *Test) PinRule(rule Rule) {
	t.rule = rule
	t.pinned = true
}

// Switches returns the rule switch history.
func (t *Test) Switches() []RuleSwitch {
	return t.switches
}

// Options generates four candidates: one matching the stimulus on each
// dimension and one matching on none, in shuffled order. Each matching
// option agrees with the stimulus on exactly one dimension, so every rule
// selects a single correct option.
func (t *Test) Options(card Card) []Card {
	options := []Card{
		{Shape: card.Shape, Color: t.otherColor(card.Color), Count: t.otherCount(card.Count)},
		{Shape: t.otherShape(card.Shape), Color: card.Color, Count: t.otherCount(card.Count)},
		{Shape: t.otherShape(card.Shape), Color: t.otherColor(card.Color), Count: card.Count},
		{Shape: t.otherShape(card.Shape), Color: t.otherColor(card.Color), Count: t.otherCount(card.Count)},
	}
	t.rng.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})
	return options
}

// EvaluateChoice scores a 0-based option choice against the active rule and
// updates the tally, switching the rule when the streak threshold is met.
func (t *Test) EvaluateChoice(card Card, choice int, options []Card) (bool, error) {
	if choice < 0 || choice >= len(options) {
		return false, fmt.Errorf("wcst: choice %d out of range", choice)
	}
	correct := Matches(card, options[choice], t.rule)
	t.trials++
	if !correct {
		t.streak = 0
		return false, nil
	}
	t.score++
	t.streak++
	if !t.pinned && t.streak >= t.config.SuccessesBeforeSwitch {
		t.switchRule()
	}
	return true, nil
}

// switchRule moves to a different random rule and resets the streak.
func (t *Test) switchRule() {
	candidates := make([]Rule, 0, len(Rules)-1)
	for _, rule := range Rules {
		if rule != t.rule {
			candidates = append(candidates, rule)
		}
	}
	next := candidates[t.rng.Intn(len(candidates))]
	t.switches = append(t.switches, RuleSwitch{Trial: t.trials, From: t.rule, To: next})
	t.rule = next
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

// Matches reports whether two cards agree on the given dimension.
func Matches(a, b Card, rule Rule) bool {
	switch rule {
	case RuleShape:
		return a.Shape == b.Shape
	case RuleColor:
		return a.Color == b.Color
	case RuleNumber:
		return a.Count == b.Count
	default:
		return false
	}
}

// otherShape picks a shape different from the given one.
func (t *Test) otherShape(shape string) string {
	for {
		candidate := t.config.Shapes[t.rng.Intn(len(t.config.Shapes))]
		if candidate != shape {
			return candidate
		}
	}
}

// otherColor picks a color different from the given one.
func (t *Test) otherColor(color string) string {
	for {
		candidate := t.config.Colors[t.rng.Intn(len(t.config.Colors))]
		if candidate != color {
			return candidate
		}
	}
}

// otherCount picks a count different from the given one.
func (t *Test) otherCount(count int) int {
	for {
		candidate := t.config.Counts[t.rng.Intn(len(t.config.Counts))]
		if candidate != count {
			return candidate
		}
	}
}
