package driftgrid

import (
	"encoding/json"
	"fmt"
)

// scriptStep represents a single action in a demo script.
type scriptStep struct {
	Action string  `json:"action"`
	Label  string  `json:"label,omitempty"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	FromX  float64 `json:"fromX,omitempty"`
	FromY  float64 `json:"fromY,omitempty"`
	ToX    float64 `json:"toX,omitempty"`
	ToY    float64 `json:"toY,omitempty"`
	DX     float64 `json:"dx,omitempty"`
	DY     float64 `json:"dy,omitempty"`
	Frames int     `json:"frames,omitempty"`
}

// script is the top-level JSON structure for a demo script.
type script struct {
	Steps []scriptStep `json:"steps"`
}

// ScriptRunner sequences injected input, host signals, and screenshots
// across frames for demos and automated visual checks. Attach one via
// RunConfig.Script.
type ScriptRunner struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	done      bool
}

// LoadScript parses a JSON demo script. Supported actions: "click" (x, y),
// "drag" (fromX, fromY, toX, toY, frames), "wheel" (dx, dy),
// "wait" (frames), "ready", "detail-open", "detail-close", and
// "screenshot" (label).
func LoadScript(data []byte) (*ScriptRunner, error) {
	var sc script
	if err := json.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("driftgrid: parse script: %w", err)
	}
	if len(sc.Steps) == 0 {
		return nil, fmt.Errorf("driftgrid: parse script: no steps")
	}
	return &ScriptRunner{steps: sc.Steps}, nil
}

// Done reports whether all steps in the script have been executed.
func (r *ScriptRunner) Done() bool {
	return r.done
}

// step advances the script by one frame. Called from the host's Update
// before input polling each frame.
func (r *ScriptRunner) step(h *host) {
	if r.done {
		return
	}
	e := h.engine
	// Wait for pending injections to drain before advancing.
	if len(e.inject) > 0 {
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
		e.InjectClick(st.X, st.Y)
	case "drag":
		frames := st.Frames
		if frames < 2 {
			frames = 2
		}
		e.InjectDrag(st.FromX, st.FromY, st.ToX, st.ToY, frames)
	case "wheel":
		e.Wheel(st.DX, st.DY)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	case "ready":
		e.SetIntroReady()
	case "detail-open":
		e.SetDetailOpen(true)
	case "detail-close":
		e.SetDetailOpen(false)
	case "screenshot":
		h.queueScreenshot(st.Label)
	}

	// Check if we've reached the end after executing.
	if r.cursor >= len(r.steps) && r.waitCount == 0 && len(e.inject) == 0 {
		r.done = true
	}
}
