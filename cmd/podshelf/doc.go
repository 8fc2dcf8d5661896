// Command podshelf is the headless companion of the podshelf desktop app.
// It subscribes to feeds, refreshes them and prints the podcast and episode
// lists using the same row models the desktop app renders.
package main
