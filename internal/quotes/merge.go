package quotes

// mergeForReplace computes the final row set for a full-replace write as a
// keyed three-way merge: persisted rows first, submitted rows overlaid on top
// (winning on conflict), catalog defaults added only for keys absent from
// both. Output order is first-appearance order, which keeps repeated
// identical submissions producing identical row sequences.
//
// overlay reconciles a submitted row with the persisted row it replaces
// (typically carrying over the row identity so delete-then-insert round-trips
// byte-identically); it is ignored for keys with no persisted counterpart.
func mergeForReplace[T any](persisted, submitted, defaults []T, key func(T) string, overlay func(existing, incoming T) T) []T {
	final := make(map[string]T, len(persisted)+len(submitted))
	var order []string

	for _, row := range persisted {
		k := key(row)
		if _, ok := final[k]; ok {
			continue
		}
		final[k] = row
		order = append(order, k)
	}

	for _, row := range submitted {
		k := key(row)
		if existing, ok := final[k]; ok {
			final[k] = overlay(existing, row)
			continue
		}
		final[k] = row
		order = append(order, k)
	}

	for _, row := range defaults {
		k := key(row)
		if _, ok := final[k]; ok {
			continue
		}
		final[k] = row
		order = append(order, k)
	}

	out := make([]T, 0, len(order))
	for _, k := range order {
		out = append(out, final[k])
	}
	return out
}
