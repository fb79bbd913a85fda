package sessionservice

// State enumerates the countdown lifecycle.
type State int

// Countdown states.
const (
	Stopped State = iota
	Running
	Expired
)

func (s State) String() string {
	switch s {
	case Stopped:
		return "stopped"
	case Running:
		return "running"
	case Expired:
		return "expired"
	}

	return "unknown"
}

// Countdown is the logout timer as plain state transitions. It owns no
// goroutine and no timer; an external scheduler calls Tick at the configured
// interval. At most one run is active: Start and Reset always begin a fresh
// full-length run regardless of the current state.
type Countdown struct {
	state     State
	remaining int
	full      int

	// OnTick is invoked with the remaining seconds after every decrement.
	OnTick func(remaining int)
	// OnExpire is invoked once when the countdown reaches zero.
	OnExpire func()
}

// NewCountdown returns a Stopped countdown of the given full length.
func NewCountdown(seconds int) *Countdown {
	return &Countdown{state: Stopped, full: seconds}
}

// Start begins a fresh run at the full length, superseding any prior run.
func (c *Countdown) Start() {
	c.state = Running
	c.remaining = c.full
}

// Reset is Start under the name qualifying user actions call it by.
func (c *Countdown) Reset() {
	c.Start()
}

// Stop cancels the run without expiring it.
func (c *Countdown) Stop() {
	if c.state == Running {
		c.state = Stopped
	}
}

// Tick advances a running countdown by one interval. Reaching zero flips the
// state to Expired and fires OnExpire; every decrement fires OnTick.
func (c *Countdown) Tick() {
	if c.state != Running {
		return
	}

	c.remaining--

	if c.OnTick != nil {
		c.OnTick(c.remaining)
	}

	if c.remaining <= 0 {
		c.state = Expired

		if c.OnExpire != nil {
			c.OnExpire()
		}
	}
}

// State returns the current lifecycle state.
func (c *Countdown) State() State { return c.state }

// Remaining returns the seconds left in the current run.
func (c *Countdown) Remaining() int { return c.remaining }
