package puzzle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRound_Guess(t *testing.T) {
	tests := []struct {
		name       string
		guesses    []string
		want       []Outcome
		wantMasked string
		wantMisses int
	}{
		{
			name:       "new correct letter",
			guesses:    []string{"r"},
			want:       []Outcome{Revealed},
			wantMasked: "*r****",
		},
		{
			name:       "repeated correct letter is free",
			guesses:    []string{"r", "r"},
			want:       []Outcome{Revealed, AlreadyRevealed},
			wantMasked: "*r****",
		},
		{
			name:       "first wrong letter costs a try",
			guesses:    []string{"z"},
			want:       []Outcome{Miss},
			wantMasked: "******",
			wantMisses: 1,
		},
		{
			name:       "repeated wrong letter is free",
			guesses:    []string{"z", "z", "q"},
			want:       []Outcome{Miss, AlreadyMissed, Miss},
			wantMasked: "******",
			wantMisses: 2,
		},
		{
			name:       "invalid input has no penalty",
			guesses:    []string{"", "ab", "7", " ", "?"},
			want:       []Outcome{Invalid, Invalid, Invalid, Invalid, Invalid},
			wantMasked: "******",
		},
		{
			name:       "upper case is folded",
			guesses:    []string{"E"},
			want:       []Outcome{Revealed},
			wantMasked: "*****e",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRound("bridge", 10)
			var got []Outcome
			for _, g := range tt.guesses {
				got = append(got, r.Guess(g))
			}
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantMasked, r.Masked())
			assert.Equal(t, tt.wantMisses, r.Misses())
		})
	}
}

func TestRound_SolveAndFail(t *testing.T) {
	r := NewRound("go", 2)
	assert.False(t, r.Solved())
	r.Guess("g")
	r.Guess("o")
	assert.True(t, r.Solved())
	assert.False(t, r.Failed())

	r = NewRound("go", 2)
	r.Guess("x")
	assert.False(t, r.Failed())
	assert.Equal(t, 1, r.Remaining())
	r.Guess("y")
	assert.True(t, r.Failed())
	assert.Equal(t, 0, r.Remaining())
}

func TestRound_NonLettersShown(t *testing.T) {
	r := NewRound("t-shirt", 10)
	assert.Equal(t, "*-*****", r.Masked())
}

func TestGate_Pass(t *testing.T) {
	g := NewGate([]string{"ignored"}, 10, FixedPicker{Word: "mug"})
	assert.Equal(t, Pending, g.Status())
	assert.Contains(t, g.Prompt(), "***")

	_, status := g.Input("m")
	assert.Equal(t, Pending, status)
	_, status = g.Input("u")
	assert.Equal(t, Pending, status)
	msg, status := g.Input("g")
	assert.Equal(t, Passed, status)
	assert.Contains(t, msg, "The word is mug")

	msg, status = g.Input("x")
	assert.Empty(t, msg, "input after the gate closes is ignored")
	assert.Equal(t, Passed, status)
}

func TestGate_FailThenRetry(t *testing.T) {
	g := NewGate(nil, 2, FixedPicker{Word: "mug"})

	g.Input("a")
	msg, status := g.Input("b")
	require.Equal(t, Pending, status)
	assert.Contains(t, msg, "the word was mug")
	assert.Contains(t, g.Prompt(), "try again")

	msg, _ = g.Input("maybe")
	assert.Equal(t, "Invalid input", msg)

	_, status = g.Input("y")
	assert.Equal(t, Pending, status)
	assert.Equal(t, 0, g.Round().Misses(), "a retry starts a fresh round")
	assert.Equal(t, "***", g.Round().Masked())

	for _, c := range []string{"m", "u", "g"} {
		_, status = g.Input(c)
	}
	assert.Equal(t, Passed, status)
}

func TestGate_Abandon(t *testing.T) {
	g := NewGate(nil, 1, FixedPicker{Word: "mug"})
	g.Input("z")

	msg, status := g.Input("n")
	assert.Equal(t, Abandoned, status)
	assert.Equal(t, "Puzzle Over", msg)
}

func TestRandomPicker(t *testing.T) {
	words := []string{"library", "archive", "catalogue"}
	a := NewRandomPicker(7)
	b := NewRandomPicker(7)
	for range 20 {
		w := a.Pick(words)
		assert.Contains(t, words, w)
		assert.Equal(t, w, b.Pick(words), "same seed must give the same sequence")
	}
	assert.Empty(t, a.Pick(nil))
}

func TestRound_RevealsEveryOccurrence(t *testing.T) {
	r := NewRound("mirror", 10)
	assert.Equal(t, Revealed, r.Guess("r"))
	assert.Equal(t, "**rr*r", r.Masked())
}
