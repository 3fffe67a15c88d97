package canvas

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// inputStep is a single action in an input script.
type inputStep struct {
	Action string  `yaml:"action"`
	Label  string  `yaml:"label,omitempty"`
	X      float64 `yaml:"x,omitempty"`
	Y      float64 `yaml:"y,omitempty"`
	FromX  float64 `yaml:"fromX,omitempty"`
	FromY  float64 `yaml:"fromY,omitempty"`
	ToX    float64 `yaml:"toX,omitempty"`
	ToY    float64 `yaml:"toY,omitempty"`
	Frames int     `yaml:"frames,omitempty"`
	Key    string  `yaml:"key,omitempty"`
}

type inputScriptFile struct {
	Steps []inputStep `yaml:"steps"`
}

// InputScript sequences injected input across frames for automated runs.
// Steps are "pointer", "click", "path", "keydown", "keyup", "wait" and
// "capture". Attach to a Scene with SetInputScript.
type InputScript struct {
	steps     []inputStep
	cursor    int
	waitCount int
	done      bool

	// OnCapture is called for "capture" steps with the step's label, for
	// example to take a screenshot. Nil ignores captures.
	OnCapture func(label string)
}

// LoadInputScript parses a YAML (or JSON) input script.
func LoadInputScript(data []byte) (*InputScript, error) {
	var file inputScriptFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse input script: %w", err)
	}
	if len(file.Steps) == 0 {
		return nil, fmt.Errorf("parse input script: no steps")
	}
	for i, st := range file.Steps {
		switch st.Action {
		case "pointer", "click", "path", "wait", "capture":
		case "keydown", "keyup":
			if st.Key == "" {
				return nil, fmt.Errorf("parse input script: step %d: %s without key", i, st.Action)
			}
		default:
			return nil, fmt.Errorf("parse input script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &InputScript{steps: file.Steps}, nil
}

// SetInputScript attaches an input script. The script advances at the start
// of every AdvanceFrame, before injected input is consumed. Nil detaches.
func (s *Scene) SetInputScript(script *InputScript) {
	s.inputScript = script
}

// Done reports whether every step has run and its input has been consumed.
func (r *InputScript) Done() bool {
	return r.done
}

// step advances the script by one frame.
func (r *InputScript) step(s *Scene) {
	if r.done {
		return
	}
	// Wait for pending injections to drain before advancing.
	if len(s.injectQueue) > 0 {
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
	case "pointer":
		s.InjectPointer(st.X, st.Y)
	case "click":
		s.InjectClick(st.X, st.Y)
	case "path":
		s.InjectPath(st.FromX, st.FromY, st.ToX, st.ToY, st.Frames)
	case "keydown":
		s.InjectKey(st.Key, true)
	case "keyup":
		s.InjectKey(st.Key, false)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	case "capture":
		if r.OnCapture != nil {
			r.OnCapture(st.Label)
		}
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && len(s.injectQueue) == 0 {
		r.done = true
	}
}
