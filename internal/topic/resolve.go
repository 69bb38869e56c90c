package topic

// Resolve derives a topic's effective status from its own stored state and
// its prerequisites' stored states, in priority order:
//
//  1. stored Mastered   → Mastered
//  2. stored InProgress → InProgress
//  3. no prerequisites, or every prerequisite mastered → Ready
//  4. otherwise → Locked
//
// A prerequisite id with no entry in allTopics counts as not mastered, so a
// topic referencing an unknown prerequisite stays Locked rather than
// silently unlocking.
//
// This is a pure query. The result must be recomputed on demand, never
// stored: mastering any prerequisite changes the derived status of every
// dependent.
func Resolve(t Topic, allTopics map[string]Topic) EffectiveStatus {
	switch t.Status {
	case StatusMastered:
		return Mastered
	case StatusInProgress:
		return InProgress
	}

	for _, prereqID := range t.Prerequisites {
		prereq, ok := allTopics[prereqID]
		if !ok || prereq.Status != StatusMastered {
			return Locked
		}
	}
	return Ready
}

// Index builds an id lookup map for Resolve from a topic slice.
func Index(topics []Topic) map[string]Topic {
	m := make(map[string]Topic, len(topics))
	for _, t := range topics {
		m[t.ID] = t
	}
	return m
}
