package scanflow

import (
	"errors"
	"fmt"
	"sync"

	"ecogenius/internal/capture"
	"ecogenius/internal/classify"
	"ecogenius/internal/relay"
)

// State is a scan screen state.
type State string

const (
	StateIdle       State = "idle"
	StateCapturing  State = "capturing"
	StatePreviewing State = "previewing"
	StateAnalyzing  State = "analyzing"
	StateResult     State = "result"
	StateError      State = "error"
)

// ErrInvalidTransition is returned when an event does not apply to the
// current state.
var ErrInvalidTransition = errors.New("scanflow: invalid transition")

type transition struct {
	from State
	to   State
}

var allowed = map[transition]struct{}{
	{StateIdle, StateCapturing}:       {},
	{StateIdle, StatePreviewing}:      {}, // file picker
	{StateCapturing, StatePreviewing}: {},
	{StateCapturing, StateIdle}:       {}, // capture failed or cancelled
	{StatePreviewing, StateCapturing}: {}, // retake
	{StatePreviewing, StateAnalyzing}: {},
	{StateAnalyzing, StateResult}:     {},
	{StateAnalyzing, StateError}:      {},
	{StateAnalyzing, StatePreviewing}: {}, // upload failed or cancelled
	{StateResult, StateIdle}:          {},
	{StateError, StateCapturing}:      {},
	{StateError, StatePreviewing}:     {},
	{StateError, StateIdle}:           {},
}

// Snapshot is a copy of the machine's observable state.
type Snapshot struct {
	State      State
	Image      *capture.Image
	Result     *classify.Result
	Message    string
	Generation uint64
}

// Machine is safe for concurrent use.
type Machine struct {
	mu         sync.Mutex
	state      State
	image      *capture.Image
	result     *classify.Result
	message    string
	generation uint64
}

// NewMachine returns a machine in StateIdle.
func NewMachine() *Machine {
	return &Machine{state: StateIdle}
}

// Snapshot returns the current state.
func (m *Machine) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return Snapshot{
		State:      m.state,
		Image:      m.image,
		Result:     m.result,
		Message:    m.message,
		Generation: m.generation,
	}
}

// State returns the current state.
func (m *Machine) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

func (m *Machine) moveLocked(to State) error {
	if _, ok := allowed[transition{m.state, to}]; !ok {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, m.state, to)
	}
	m.state = to
	return nil
}

// Start opens the camera view. Valid from Idle and Error.
func (m *Machine) Start() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.moveLocked(StateCapturing); err != nil {
		return err
	}
	m.message = ""
	m.result = nil
	return nil
}

// Captured records the shutter image and shows the preview.
func (m *Machine) Captured(img capture.Image) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != StateCapturing {
		return fmt.Errorf("%w: captured in %s", ErrInvalidTransition, m.state)
	}
	m.state = StatePreviewing
	m.image = &img
	m.message = ""
	return nil
}

// Pick loads a file-picker image straight into the preview.
func (m *Machine) Pick(img capture.Image) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != StateIdle {
		return fmt.Errorf("%w: pick in %s", ErrInvalidTransition, m.state)
	}
	m.state = StatePreviewing
	m.image = &img
	m.message = ""
	return nil
}

// CaptureFailed returns to Idle with the capture error's message.
func (m *Machine) CaptureFailed(err error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.moveLocked(StateIdle); err != nil {
		return err
	}
	m.message = classify.UserMessage(err)
	return nil
}

// Retake discards the preview and reopens the camera.
func (m *Machine) Retake() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != StatePreviewing {
		return fmt.Errorf("%w: retake in %s", ErrInvalidTransition, m.state)
	}
	m.state = StateCapturing
	m.image = nil
	m.message = ""
	return nil
}

// Analyze begins classification of the previewed image. It returns the new
// generation together with the image locked in for it.
func (m *Machine) Analyze() (uint64, capture.Image, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.image == nil {
		return 0, capture.Image{}, fmt.Errorf("%w: nothing to analyze", ErrInvalidTransition)
	}
	if err := m.moveLocked(StateAnalyzing); err != nil {
		return 0, capture.Image{}, err
	}
	m.generation++
	m.message = ""
	return m.generation, *m.image, nil
}

// Complete stores result if gen is still current. It reports whether the
// result was accepted.
func (m *Machine) Complete(gen uint64, result classify.Result) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if gen != m.generation || m.state != StateAnalyzing {
		return false
	}
	m.state = StateResult
	m.result = &result
	return true
}

// Fail records err if gen is still current. Upload failures return to the
// preview so the same image can be sent again; anything else moves to Error.
func (m *Machine) Fail(gen uint64, err error) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if gen != m.generation || m.state != StateAnalyzing {
		return false
	}
	var upErr *relay.UploadError
	if errors.As(err, &upErr) {
		m.state = StatePreviewing
	} else {
		m.state = StateError
	}
	m.message = classify.UserMessage(err)
	return true
}

// Cancel abandons an in-flight analysis. Its eventual reply is discarded.
func (m *Machine) Cancel() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != StateAnalyzing {
		return fmt.Errorf("%w: cancel in %s", ErrInvalidTransition, m.state)
	}
	m.state = StatePreviewing
	m.generation++
	return nil
}

// Retry returns from Error to the preview of the same image.
func (m *Machine) Retry() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != StateError || m.image == nil {
		return fmt.Errorf("%w: retry in %s", ErrInvalidTransition, m.state)
	}
	m.state = StatePreviewing
	m.message = ""
	return nil
}

// Reset clears everything for a new scan. Valid from Result and Error.
func (m *Machine) Reset() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != StateResult && m.state != StateError {
		return fmt.Errorf("%w: reset in %s", ErrInvalidTransition, m.state)
	}
	m.state = StateIdle
	m.image = nil
	m.result = nil
	m.message = ""
	return nil
}
