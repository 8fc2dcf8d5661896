// Package coverart keeps one full-size cover file per podcast in the data
// directory and downloads missing covers on request.
package coverart
