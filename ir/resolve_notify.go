package ir

// resolveNotifications is pass 1: every operation referenced by
// `notify:` on another op gets HasNtf (spec.md §4.2 pass 1).
func resolveNotifications(f *Family) error {
	for _, op := range f.Operations {
		if op.NotifyOf == "" {
			continue
		}
		target, ok := f.OperationByName(op.NotifyOf)
		if !ok {
			return wrapf(ErrUnresolvedOp, "operation %s notify %s", op.Name, op.NotifyOf)
		}
		op.Notifies = target
		target.HasNtf = true
	}
	return nil
}
