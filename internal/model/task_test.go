package model

import (
	"testing"
	"time"
)

func TestDownloadTask_GetETAString(t *testing.T) {
	tests := []struct {
		etaSec   int
		expected string
	}{
		{-1, "—"},
		{0, "—"},
		{30, "00:30"},
		{90, "01:30"},
		{3600, "01:00:00"},
		{3661, "01:01:01"},
		{7323, "02:02:03"},
	}

	for _, test := range tests {
		task := &DownloadTask{ETASec: test.etaSec}
		result := task.GetETAString()
		if result != test.expected {
			t.Errorf("GetETAString() with ETASec=%d = %s, expected %s", test.etaSec, result, test.expected)
		}
	}
}

func TestDownloadTask_GetDisplayTitle(t *testing.T) {
	tests := []struct {
		title    string
		output   string
		url      string
		expected string
	}{
		{"Episode 12", "", "https://example.com/e12.mp3", "Episode 12"},
		{"", "", "https://example.com/e12.mp3", "https://example.com/e12.mp3"},
		{"", "/data/show/e12-final.mp3", "https://example.com/e12.mp3", "e12-final"},
		{"https://example.com/e12.mp3", "C:\\pods\\e12.ogg", "", "e12"},
	}

	for _, test := range tests {
		task := &DownloadTask{
			Title:      test.title,
			OutputPath: test.output,
			EpisodeURL: test.url,
		}
		result := task.GetDisplayTitle()
		if result != test.expected {
			t.Errorf("GetDisplayTitle() with title='%s', output='%s' = '%s', expected '%s'",
				test.title, test.output, result, test.expected)
		}
	}
}

func TestDownloadTask_Creation(t *testing.T) {
	now := time.Now()
	task := &DownloadTask{
		ID:         "test-123",
		EpisodeURL: "https://example.com/e1.mp3",
		Status:     TaskStatusPending,
		ETASec:     -1,
		StartedAt:  now,
	}

	if task.ID != "test-123" {
		t.Errorf("Expected ID to be 'test-123', got '%s'", task.ID)
	}

	if task.Status != TaskStatusPending {
		t.Errorf("Expected status to be TaskStatusPending, got %s", task.Status)
	}

	if !task.StartedAt.Equal(now) {
		t.Errorf("Expected StartedAt to be %v, got %v", now, task.StartedAt)
	}
}
