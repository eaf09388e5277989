package bramble

import (
	"fmt"
	"image"

	"gopkg.in/yaml.v3"
)

// testStep represents a single action in a test script.
type testStep struct {
	Action string `yaml:"action"`
	X      int    `yaml:"x,omitempty"`
	Y      int    `yaml:"y,omitempty"`
	FromX  int    `yaml:"fromX,omitempty"`
	FromY  int    `yaml:"fromY,omitempty"`
	ToX    int    `yaml:"toX,omitempty"`
	ToY    int    `yaml:"toY,omitempty"`
	Frames int    `yaml:"frames,omitempty"`
	Text   string `yaml:"text,omitempty"`
	Label  string `yaml:"label,omitempty"`
}

// testScript is the top-level structure for a test script.
type testScript struct {
	Steps []testStep `yaml:"steps"`
}

// TestRunner sequences injected input across frames for automated UI
// testing. Attach to a Game via SetTestRunner.
type TestRunner struct {
	steps     []testStep
	cursor    int
	waitCount int
	done      bool
}

// LoadTestScript parses a YAML (or JSON) test script and returns a
// TestRunner ready to be attached to a Game via SetTestRunner.
//
// Supported actions are click, drag, type, wait and screenshot.
func LoadTestScript(data []byte) (*TestRunner, error) {
	var script testScript
	if err := yaml.Unmarshal(data, &script); err != nil {
		return nil, fmt.Errorf("parse test script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse test script: no steps")
	}
	for i, st := range script.Steps {
		switch st.Action {
		case "click", "drag", "type", "wait", "screenshot":
		default:
			return nil, fmt.Errorf("parse test script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &TestRunner{steps: script.Steps}, nil
}

// SetTestRunner attaches a TestRunner to the game. The runner advances one
// step per Update, before input is processed.
func (g *Game) SetTestRunner(runner *TestRunner) {
	g.runner = runner
}

// Done reports whether all steps in the test script have been executed.
func (r *TestRunner) Done() bool {
	return r.done
}

// step advances the test runner by one frame. Called from Game.Update.
func (r *TestRunner) step(g *Game) {
	if r.done {
		return
	}
	// Wait for pending injections to drain before advancing.
	if len(g.injectQueue) > 0 {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case "click":
		g.InjectClick(st.X, st.Y)
	case "drag":
		g.InjectDrag(image.Pt(st.FromX, st.FromY), image.Pt(st.ToX, st.ToY), st.Frames)
	case "type":
		g.InjectText(st.Text)
	case "screenshot":
		g.Screenshot(st.Label)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && len(g.injectQueue) == 0 {
		r.done = true
	}
}
