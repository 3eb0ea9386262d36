package scheduler

// ConflictType describes why a session cannot share a slot with another.
type ConflictType string

// ConflictTypeTrainee indicates the trainee already has a session in the slot.
const ConflictTypeTrainee ConflictType = "trainee"

// Conflict details a clash between a candidate session and an existing one.
type Conflict struct {
	WithSessionID string
	Type          ConflictType
	TraineeID     string
}

// DetectConflicts reports the sessions in existing that clash with candidate.
// Sessions stack freely within a slot; only a second session for the same
// trainee in the same slot conflicts. The candidate itself is skipped by ID.
func DetectConflicts(existing []Session, candidate Session) []Conflict {
	var conflicts []Conflict
	for _, s := range existing {
		if s.ID == candidate.ID && candidate.ID != "" {
			continue
		}
		if s.Slot() != candidate.Slot() || s.TraineeID != candidate.TraineeID {
			continue
		}
		conflicts = append(conflicts, Conflict{
			WithSessionID: s.ID,
			Type:          ConflictTypeTrainee,
			TraineeID:     s.TraineeID,
		})
	}
	return conflicts
}
