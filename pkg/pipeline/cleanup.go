package pipeline

// cleanupEntry is a step's deferred teardown, bound at the moment the
// step starts running.
type cleanupEntry struct {
	step    string
	cleanup func(ctx *Context, runErr error) error
}

// cleanupStack records steps that have begun cleanup-relevant work.
// Entries are appended as steps start and drained in reverse order
// once the whole run has finished or failed, so innermost work is torn
// down first.
type cleanupStack struct {
	entries []cleanupEntry
}

func (s *cleanupStack) push(step string, cleanup func(*Context, error) error) {
	s.entries = append(s.entries, cleanupEntry{step: step, cleanup: cleanup})
}

func (s *cleanupStack) depth() int { return len(s.entries) }

// drain pops and runs every registered cleanup, last-in first-out,
// passing runErr (nil when the run succeeded). A failing cleanup is
// logged and never stops the remaining entries.
func (s *cleanupStack) drain(ctx *Context, runErr error) {
	for len(s.entries) > 0 {
		entry := s.entries[len(s.entries)-1]
		s.entries = s.entries[:len(s.entries)-1]

		ctx.Logger.Debug("cleaning up step", "step", entry.step)
		if err := entry.cleanup(ctx, runErr); err != nil {
			ctx.Logger.Error("step cleanup failed", "step", entry.step, "error", err)
		}
	}
}
