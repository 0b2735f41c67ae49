package obj

// Input is the per-tick control state the player reads. Polling devices is
// the frame driver's job.
type Input struct {
	Left   bool
	Right  bool
	Jump   bool
	Attack bool
}
