package platform

// Package platform contains OS integration: data and download directories,
// filesystem-safe names for podcast folders and episode files, themed icon
// names for downloaded files, and opening/revealing files in the desktop.
