package ir

// resolveEventMockups is pass 2: each op with an event block is given
// a synthesized do.reply mirroring the event attributes, so the
// emitter can reuse the same response-parsing code path for
// notifications as it does for a real do response (spec.md §4.2
// pass 2).
func resolveEventMockups(f *Family) error {
	for _, op := range f.Operations {
		if op.Event == nil {
			continue
		}
		if op.Do == nil {
			op.Do = &OpSpec{}
			op.IsEventMock = true
		}
		if len(op.Do.ReplyAttrs) == 0 {
			op.Do.ReplyAttrs = op.Event.ReplyAttrs
		}
	}
	return nil
}
