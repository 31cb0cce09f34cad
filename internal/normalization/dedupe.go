package normalization

// DedupeBy removes records that refer to the same real-world entity listed
// under different keys. Two records are duplicates when their IDs match or
// when their folded names match; the first occurrence wins and relative order
// is preserved, so repeated application is a no-op.
//
// idOf reports the record's canonical ID and whether it has one. nameOf may
// return "" for records without a usable name; such records only dedupe by ID.
func DedupeBy[T any](records []T, idOf func(T) (int, bool), nameOf func(T) string) []T {
	if len(records) == 0 {
		return records
	}
	out := make([]T, 0, len(records))
	seenIDs := make(map[int]struct{}, len(records))
	seenNames := make(map[string]struct{}, len(records))
	for _, rec := range records {
		id, hasID := idOf(rec)
		name := NormalizeName(nameOf(rec))

		dup := false
		if hasID {
			if _, ok := seenIDs[id]; ok {
				dup = true
			}
		}
		if !dup && name != "" {
			if _, ok := seenNames[name]; ok {
				dup = true
			}
		}
		// Register both keys even for a duplicate, so a later record that
		// shares only the other key still collapses onto the same entity.
		if hasID {
			seenIDs[id] = struct{}{}
		}
		if name != "" {
			seenNames[name] = struct{}{}
		}
		if dup {
			continue
		}
		out = append(out, rec)
	}
	return out
}
