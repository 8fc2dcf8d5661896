package listmodel

// Package listmodel maps podcasts and episodes onto row stores for the list
// widgets. EpisodeList fills its rows incrementally in time-bounded slices;
// PodcastList groups podcasts into sections with aggregated statistics.
// Both expose a filtered projection driven by a view mode or a search term.
