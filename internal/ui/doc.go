// Package ui contains the Fyne user interface of podshelf.
// It shows the podcast and episode lists, drives subscriptions, feed
// refreshes and episode downloads, and keeps every visible string localized.
package ui
