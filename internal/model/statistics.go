package model

// Statistics holds per-podcast episode counts.
type Statistics struct {
	Total      int
	Deleted    int
	New        int // new and not yet downloaded
	Downloaded int
	Unplayed   int // downloaded and not yet played
}

// Add returns the field-wise sum of s and o
func (s Statistics) Add(o Statistics) Statistics {
	return Statistics{
		Total:      s.Total + o.Total,
		Deleted:    s.Deleted + o.Deleted,
		New:        s.New + o.New,
		Downloaded: s.Downloaded + o.Downloaded,
		Unplayed:   s.Unplayed + o.Unplayed,
	}
}

// ShowUndeleted reports whether any episode is not deleted
func (s Statistics) ShowUndeleted() bool { return s.Total-s.Deleted > 0 }

// ShowDownloaded reports whether any episode is downloaded or new
func (s Statistics) ShowDownloaded() bool { return s.Downloaded+s.New > 0 }

// ShowUnplayed reports whether any episode is unplayed or new
func (s Statistics) ShowUnplayed() bool { return s.Unplayed+s.New > 0 }

// CountEpisode adds a single episode to the counts
func (s *Statistics) CountEpisode(e *Episode) {
	s.Total++
	switch e.State {
	case StateDeleted:
		s.Deleted++
	case StateDownloaded:
		s.Downloaded++
		if e.IsNew {
			s.Unplayed++
		}
	case StateNormal:
		if e.IsNew {
			s.New++
		}
	}
}
