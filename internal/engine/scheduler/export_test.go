package scheduler

import "go.trai.ch/libpack/internal/core/domain"

// GetStatusMap returns a copy of the internal status map.
// This is exported for testing purposes only.
func (s *Scheduler) GetStatusMap() map[domain.InternedString]EntryPointStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()

	statusMap := make(map[domain.InternedString]EntryPointStatus, len(s.status))
	for k, v := range s.status {
		statusMap[k] = v
	}
	return statusMap
}
