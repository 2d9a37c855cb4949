package catalog

// Reconcile merges a batch of incoming records into an existing catalog.
// Distinct names keep first-seen order; a record whose name was already
// seen only backfills fields the surviving record left empty, it never
// overwrites a non-empty field and never produces a second entry.
//
// The merge is associative across batches, but field precedence follows
// batch order: run the batches in the same order to get the same catalog.
func Reconcile(existing, incoming []College) []College {
	merged := make([]College, len(existing))
	copy(merged, existing)

	index := make(map[string]int, len(merged))
	for i, c := range merged {
		if _, seen := index[c.Name]; !seen {
			index[c.Name] = i
		}
	}

	for _, rec := range incoming {
		if i, seen := index[rec.Name]; seen {
			fillMissing(&merged[i], rec)
			continue
		}
		index[rec.Name] = len(merged)
		merged = append(merged, rec)
	}

	return merged
}

// fillMissing copies each non-empty field of src into dst when dst's
// field is empty. Nothing present in src is ever silently lost across a
// merge; nothing already in dst is ever replaced.
func fillMissing(dst *College, src College) {
	if dst.Location == "" {
		dst.Location = src.Location
	}
	if dst.Type == "" {
		dst.Type = src.Type
	}
	if dst.Established == "" {
		dst.Established = src.Established
	}
	if dst.Rating == "" {
		dst.Rating = src.Rating
	}
	if dst.Fees == "" {
		dst.Fees = src.Fees
	}
	if dst.Courses.IsEmpty() && !src.Courses.IsEmpty() {
		dst.Courses = src.Courses
	}
	if dst.AdmissionProcess == "" {
		dst.AdmissionProcess = src.AdmissionProcess
	}
	if dst.ApprovedBy.IsEmpty() && !src.ApprovedBy.IsEmpty() {
		dst.ApprovedBy = src.ApprovedBy
	}
	if dst.Address == "" {
		dst.Address = src.Address
	}
	if dst.Website == "" {
		dst.Website = src.Website
	}
	if dst.Source == "" {
		dst.Source = src.Source
	}
}
