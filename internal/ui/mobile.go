package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
)

// MobileUI picks between the split desktop layout and a tabbed layout for
// narrow touch screens
type MobileUI struct {
	device fyne.Device
	tabs   *container.AppTabs
}

// NewMobileUI creates a new mobile UI helper
func NewMobileUI(device fyne.Device) *MobileUI {
	return &MobileUI{device: device}
}

// IsMobileDevice checks if the app is running on a mobile device
func (m *MobileUI) IsMobileDevice() bool {
	return m.device != nil && m.device.IsMobile()
}

// IsLandscape returns true if device is in landscape orientation
func (m *MobileUI) IsLandscape() bool {
	if m.device == nil {
		return true
	}
	o := m.device.Orientation()
	return o == fyne.OrientationHorizontalLeft || o == fyne.OrientationHorizontalRight
}

// MainLayout places the podcast and episode panes. Desktops and landscape
// tablets get a horizontal split; phones get one tab per pane.
func (m *MobileUI) MainLayout(podcasts, episodes fyne.CanvasObject, localization *Localization) fyne.CanvasObject {
	if !m.IsMobileDevice() || m.IsLandscape() {
		split := container.NewHSplit(podcasts, episodes)
		split.Offset = PodcastPaneOffset
		return split
	}

	m.tabs = container.NewAppTabs(
		container.NewTabItem(localization.GetText(KeyPodcasts), podcasts),
		container.NewTabItem(localization.GetText(KeyEpisodes), episodes),
	)
	return m.tabs
}

// ShowEpisodes switches to the episode tab after a podcast was picked.
// It does nothing in the split layout.
func (m *MobileUI) ShowEpisodes() {
	if m.tabs != nil && len(m.tabs.Items) > 1 {
		m.tabs.SelectIndex(1)
	}
}

// RefreshTabTitles relabels the tabs after a language change
func (m *MobileUI) RefreshTabTitles(localization *Localization) {
	if m.tabs == nil || len(m.tabs.Items) < 2 {
		return
	}
	m.tabs.Items[0].Text = localization.GetText(KeyPodcasts)
	m.tabs.Items[1].Text = localization.GetText(KeyEpisodes)
	m.tabs.Refresh()
}
