package ui

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"sync/atomic"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/ytget/podshelf/internal/background"
	"github.com/ytget/podshelf/internal/config"
	"github.com/ytget/podshelf/internal/coverart"
	"github.com/ytget/podshelf/internal/download"
	"github.com/ytget/podshelf/internal/feeds"
	"github.com/ytget/podshelf/internal/library"
	"github.com/ytget/podshelf/internal/listmodel"
	"github.com/ytget/podshelf/internal/logging"
	"github.com/ytget/podshelf/internal/model"
	"github.com/ytget/podshelf/internal/platform"
	"github.com/ytget/podshelf/internal/rowstore"
	"github.com/ytget/podshelf/internal/thumbs"
)

// Services bundles the backends the UI drives
type Services struct {
	Library  *library.Library
	Feeds    *feeds.Client
	Covers   *coverart.Store
	Download download.Downloader
}

// RootUI represents the main UI structure
type RootUI struct {
	window       fyne.Window
	settings     *config.Settings
	localization *Localization
	mobile       *MobileUI

	lib         *library.Library
	feeds       *feeds.Client
	covers      *coverart.Store
	downloadSvc download.Downloader

	podcasts           []*model.Podcast
	episodeIndex       map[string]*model.Episode
	selected           model.Channel
	includeDescription bool

	coverLoader *listmodel.CoverLoader
	podcastList *listmodel.PodcastList
	episodeList *listmodel.EpisodeList

	urlEntry        *widget.Entry
	subscribeBtn    *widget.Button
	refreshBtn      *widget.Button
	podcastSearch   *widget.Entry
	episodeSearch   *widget.Entry
	viewSelect      *widget.Select
	sortSelect      *widget.Select
	descendingCheck *widget.Check
	podcastView     *widget.List
	episodeView     *widget.List
	emptyLabel      *widget.Label

	refreshPending atomic.Bool
	refreshing     atomic.Bool
	restoring      bool // selection is being restored by a rebuild

	// Notification panel
	notificationContainer *fyne.Container
	notificationLabel     *widget.Label
	notificationSpinner   *widget.ProgressBarInfinite
}

// viewModeKeys are the labels of listmodel.ViewModes, in the same order
var viewModeKeys = []string{KeyViewAll, KeyViewUndeleted, KeyViewDownloaded, KeyViewUnplayed}

// sortKeys label the episode sort columns, indexed by listmodel.EpisodeSort
var sortKeys = []string{KeySortPublished, KeySortTitle, KeySortSize, KeySortDuration}

// NewRootUI creates and initializes the main UI
func NewRootUI(window fyne.Window, settings *config.Settings, svc Services) *RootUI {
	localization := NewLocalization()
	localization.SetLanguage(settings.GetLanguage())

	if err := platform.CreateDirectoryIfNotExists(settings.GetDownloadDirectory()); err != nil {
		log.Warn().Err(err).Msg("could not create download directory")
	}

	ui := &RootUI{
		window:             window,
		settings:           settings,
		localization:       localization,
		mobile:             NewMobileUI(fyne.CurrentDevice()),
		lib:                svc.Library,
		feeds:              svc.Feeds,
		covers:             svc.Covers,
		downloadSvc:        svc.Download,
		episodeIndex:       make(map[string]*model.Episode),
		includeDescription: settings.GetEpisodeListDescriptions(),
	}

	ui.coverLoader = listmodel.NewCoverLoader(thumbs.NewCache(settings.GetCoverSize()), svc.Covers, svc.Library)
	ui.podcastList = listmodel.NewPodcastList(ui.coverLoader)
	ui.podcastList.SetViewMode(settings.GetViewMode())

	sched := background.NewLoopScheduler(fyne.DoAndWait, BackgroundYield)
	ui.episodeList = listmodel.NewEpisodeList(sched, func(bool) { ui.scheduleListRefresh() })
	ui.episodeList.SetIconResolver(platform.FileIconName)
	ui.episodeList.SetViewMode(settings.GetViewMode())
	ui.episodeList.SetSort(settings.GetEpisodeSort())

	ui.podcastList.Store().Subscribe(func(rowstore.Change) { ui.scheduleListRefresh() })
	ui.episodeList.Store().Subscribe(func(rowstore.Change) { ui.scheduleListRefresh() })

	window.SetTitle(localization.GetText(KeyAppTitle))
	ui.downloadSvc.SetUpdateCallback(ui.onTaskUpdate)

	ui.setupUI()
	ui.loadPodcasts()
	return ui
}

// setupUI creates and arranges all UI components
func (ui *RootUI) setupUI() {
	t := ui.localization.GetText

	ui.createMenu()

	ui.urlEntry = widget.NewEntry()
	ui.urlEntry.SetPlaceHolder(t(KeyEnterFeedURL))
	ui.urlEntry.Validator = ui.validateURL
	ui.urlEntry.OnSubmitted = func(string) { ui.onSubscribeClick() }

	ui.subscribeBtn = widget.NewButton(t(KeySubscribe), ui.onSubscribeClick)
	ui.refreshBtn = widget.NewButton(IconRefresh+" "+t(KeyRefresh), ui.onRefreshClick)

	settingsBtn := widget.NewButton(IconSettings, ui.onShowSettings)
	settingsBtn.Importance = widget.LowImportance

	left := container.NewHBox(settingsBtn, ui.refreshBtn)
	if logo, err := LoadLogoResource(); err == nil {
		logoImage := canvas.NewImageFromResource(logo)
		logoImage.SetMinSize(fyne.NewSize(32, 32))
		logoImage.FillMode = canvas.ImageFillContain
		left = container.NewHBox(logoImage, settingsBtn, ui.refreshBtn)
	}
	topPanel := container.NewBorder(nil, nil, left, ui.subscribeBtn, ui.urlEntry)

	// Notification panel under the URL input, hidden by default
	ui.notificationLabel = widget.NewLabel("")
	ui.notificationLabel.Alignment = fyne.TextAlignLeading
	ui.notificationSpinner = widget.NewProgressBarInfinite()
	ui.notificationSpinner.Hide()
	ui.notificationContainer = container.NewHBox(ui.notificationSpinner, container.NewPadded(ui.notificationLabel))
	ui.notificationContainer.Hide()

	topCombined := container.NewVBox(topPanel, ui.notificationContainer)

	ui.window.SetContent(container.NewBorder(
		topCombined, nil, nil, nil,
		ui.mobile.MainLayout(ui.createPodcastPane(), ui.createEpisodePane(), ui.localization),
	))

	log.Debug().Msg("UI setup completed")
}

func (ui *RootUI) createPodcastPane() fyne.CanvasObject {
	ui.podcastSearch = widget.NewEntry()
	ui.podcastSearch.SetPlaceHolder(ui.localization.GetText(KeySearchPodcasts))
	ui.podcastSearch.OnChanged = func(term string) {
		ui.podcastList.SetSearchTerm(strings.TrimSpace(term))
		ui.refreshViews()
	}

	ui.podcastView = widget.NewList(
		func() int { return ui.podcastList.Filtered().Len() },
		func() fyne.CanvasObject {
			item := NewPodcastItem()
			item.SetMenuCallback(ui.showPodcastMenu)
			return item
		},
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			rows := ui.podcastList.Filtered()
			if id >= rows.Len() {
				return
			}
			obj.(*PodcastItem).SetRow(rows.At(id))
		},
	)
	ui.podcastView.OnSelected = ui.onPodcastSelected

	return container.NewBorder(ui.podcastSearch, nil, nil, nil, ui.podcastView)
}

func (ui *RootUI) createEpisodePane() fyne.CanvasObject {
	ui.episodeSearch = widget.NewEntry()
	ui.episodeSearch.SetPlaceHolder(ui.localization.GetText(KeySearch))
	ui.episodeSearch.OnChanged = func(term string) {
		ui.episodeList.SetSearchTerm(strings.TrimSpace(term))
		ui.refreshViews()
	}

	ui.viewSelect = widget.NewSelect(ui.labels(viewModeKeys), nil)
	ui.viewSelect.SetSelectedIndex(viewModeIndex(ui.episodeList.ViewMode()))
	ui.viewSelect.OnChanged = ui.onViewModeSelected

	sortBy, descending := ui.episodeList.Sort()
	ui.sortSelect = widget.NewSelect(ui.labels(sortKeys), nil)
	ui.sortSelect.SetSelectedIndex(int(sortBy))
	ui.sortSelect.OnChanged = func(string) { ui.onSortChanged() }

	ui.descendingCheck = widget.NewCheck(ui.localization.GetText(KeyDescending), nil)
	ui.descendingCheck.SetChecked(descending)
	ui.descendingCheck.OnChanged = func(bool) { ui.onSortChanged() }

	ui.episodeView = widget.NewList(
		func() int { return ui.episodeList.Filtered().Len() },
		func() fyne.CanvasObject {
			item := NewEpisodeItem(ui.localization)
			item.SetCallbacks(ui.onEpisodeAction, ui.onOpenFile, ui.onRevealFile, ui.onCopyPath)
			return item
		},
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			rows := ui.episodeList.Filtered()
			if id >= rows.Len() {
				return
			}
			obj.(*EpisodeItem).SetRow(rows.At(id))
		},
	)
	ui.episodeView.OnSelected = func(id widget.ListItemID) { ui.episodeView.Unselect(id) }

	ui.emptyLabel = widget.NewLabel(ui.localization.GetText(KeyNoEpisodes))
	ui.emptyLabel.Importance = widget.LowImportance
	ui.emptyLabel.Hide()

	toolbar := container.NewBorder(nil, nil, nil,
		container.NewHBox(ui.viewSelect, ui.sortSelect, ui.descendingCheck),
		ui.episodeSearch,
	)
	return container.NewBorder(toolbar, nil, nil, nil,
		container.NewStack(ui.episodeView, container.NewCenter(ui.emptyLabel)))
}

func (ui *RootUI) labels(keys []string) []string {
	out := make([]string, len(keys))
	for i, k := range keys {
		out[i] = ui.localization.GetText(k)
	}
	return out
}

func viewModeIndex(m listmodel.ViewMode) int {
	for i, mode := range listmodel.ViewModes {
		if mode == m {
			return i
		}
	}
	return 0
}

// createMenu creates the application menu
func (ui *RootUI) createMenu() {
	t := ui.localization.GetText

	refreshItem := fyne.NewMenuItem(t(KeyRefresh), ui.onRefreshClick)
	settingsItem := fyne.NewMenuItem(t(KeySettings), ui.onShowSettings)

	languageMenu := fyne.NewMenu(t(KeyLanguage))
	for code, name := range ui.localization.GetAvailableLanguages() {
		langCode := code
		langItem := fyne.NewMenuItem(name, func() {
			ui.onLanguageChange(langCode)
		})
		langItem.Checked = ui.localization.GetCurrentLanguage() == code
		languageMenu.Items = append(languageMenu.Items, langItem)
	}

	ui.window.SetMainMenu(fyne.NewMainMenu(
		fyne.NewMenu(t(KeyFile), refreshItem, settingsItem),
		languageMenu,
	))
}

// onLanguageChange handles language change
func (ui *RootUI) onLanguageChange(langCode string) {
	ui.localization.SetLanguage(langCode)
	ui.settings.SetLanguage(langCode)
	ui.refreshUITexts()
	ui.createMenu()
}

// refreshUITexts updates all UI texts with current language
func (ui *RootUI) refreshUITexts() {
	t := ui.localization.GetText

	ui.window.SetTitle(t(KeyAppTitle))
	ui.urlEntry.SetPlaceHolder(t(KeyEnterFeedURL))
	ui.subscribeBtn.SetText(t(KeySubscribe))
	ui.refreshBtn.SetText(IconRefresh + " " + t(KeyRefresh))
	ui.podcastSearch.SetPlaceHolder(t(KeySearchPodcasts))
	ui.episodeSearch.SetPlaceHolder(t(KeySearch))
	ui.descendingCheck.Text = t(KeyDescending)
	ui.descendingCheck.Refresh()
	ui.emptyLabel.SetText(t(KeyNoEpisodes))

	relabel := func(s *widget.Select, keys []string) {
		i := s.SelectedIndex()
		onChanged := s.OnChanged
		s.OnChanged = nil
		s.SetOptions(ui.labels(keys))
		if i >= 0 {
			s.SetSelectedIndex(i)
		}
		s.OnChanged = onChanged
	}
	relabel(ui.viewSelect, viewModeKeys)
	relabel(ui.sortSelect, sortKeys)

	ui.mobile.RefreshTabTitles(ui.localization)
	ui.refreshViews()
}

// validateURL validates the entered URL
func (ui *RootUI) validateURL(input string) error {
	if strings.TrimSpace(input) == "" {
		return nil
	}

	parsedURL, err := url.Parse(strings.TrimSpace(input))
	if err != nil {
		return err
	}

	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return fmt.Errorf("URL must start with http:// or https://")
	}
	if parsedURL.Host == "" {
		return fmt.Errorf("URL has no host")
	}

	return nil
}

// cleanURL strips the whitespace pasted URLs tend to carry
func cleanURL(s string) string {
	s = strings.ReplaceAll(s, "\n", "")
	s = strings.ReplaceAll(s, "\r", "")
	s = strings.ReplaceAll(s, "\t", "")
	return strings.TrimSpace(s)
}

// scheduleListRefresh coalesces row store notifications into one list
// refresh per UIUpdateDebounce
func (ui *RootUI) scheduleListRefresh() {
	if !ui.refreshPending.CompareAndSwap(false, true) {
		return
	}
	time.AfterFunc(UIUpdateDebounce, func() {
		fyne.Do(func() {
			ui.refreshPending.Store(false)
			ui.refreshViews()
		})
	})
}

func (ui *RootUI) refreshViews() {
	if ui.podcastView == nil || ui.episodeView == nil {
		return
	}
	ui.podcastView.Refresh()
	ui.episodeView.Refresh()

	if ui.episodeList.HasEpisodes() || ui.episodeList.Busy() || ui.selected == nil {
		ui.emptyLabel.Hide()
	} else {
		ui.emptyLabel.Show()
	}
}

// loadPodcasts reads the library in the background and shows it
func (ui *RootUI) loadPodcasts() {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), RefreshTimeout)
		defer cancel()

		podcasts, err := ui.lib.Podcasts(ctx)
		if err != nil {
			log.Error().Err(err).Msg("could not load podcasts")
			ui.showNotification(err.Error(), false)
			return
		}
		log.Info().Int("podcasts", len(podcasts)).Msg("library loaded")

		fyne.Do(func() { ui.setPodcasts(podcasts) })
		ui.fetchMissingCovers(podcasts)
	}()
}

// setPodcasts replaces the shown podcasts, carrying running downloads over
// to the new episode objects
func (ui *RootUI) setPodcasts(podcasts []*model.Podcast) {
	ui.podcasts = podcasts
	ui.episodeIndex = make(map[string]*model.Episode)

	for _, p := range podcasts {
		for _, e := range p.AllEpisodes() {
			ui.episodeIndex[e.URL] = e

			task, ok := ui.downloadSvc.TaskForEpisode(e.URL)
			switch {
			case !ok:
			case !task.Status.IsFinished():
				e.Download = task
			case task.Status == model.TaskStatusCompleted && e.State != model.StateDownloaded:
				download.ApplyResult(e, task)
			}
		}
	}

	ui.rebuildPodcastList()
}

// rebuildPodcastList lays the podcast list out again and restores the
// selection, falling back to the first podcast row
func (ui *RootUI) rebuildPodcastList() {
	previous := ui.selected

	ui.podcastList.SetChannels(ui.podcasts, ui.settings.GetPodcastListOptions())
	ui.podcastView.UnselectAll()

	pos, ok := -1, false
	if previous != nil {
		pos, ok = ui.filterPositionOf(previous)
	}
	if !ok {
		pos, ok = ui.filterPositionOf(nil)
	}

	if ok {
		ui.restoring = true
		ui.podcastView.Select(pos)
		ui.restoring = false
	} else {
		ui.selected = nil
		ui.episodeList.ReplaceFromChannel(nil, ui.includeDescription)
	}
	ui.refreshViews()
}

// filterPositionOf finds the visible row showing ch; a nil ch matches the
// first visible podcast row
func (ui *RootUI) filterPositionOf(ch model.Channel) (int, bool) {
	rows := ui.podcastList.Filtered()
	for i := 0; i < rows.Len(); i++ {
		r := rows.At(i)
		if r.Kind != listmodel.KindPodcast || r.Channel == nil {
			continue
		}
		switch {
		case ch == nil:
			return i, true
		case ch.Aggregate() && r.Channel.Aggregate():
			return i, true
		case !ch.Aggregate() && r.URL == ch.URL():
			return i, true
		}
	}
	return -1, false
}

func (ui *RootUI) onPodcastSelected(id widget.ListItemID) {
	rows := ui.podcastList.Filtered()
	if id < 0 || id >= rows.Len() {
		return
	}
	row := rows.At(id)
	if row.Kind != listmodel.KindPodcast || row.Channel == nil {
		ui.podcastView.Unselect(id)
		return
	}

	ui.selected = row.Channel
	ui.episodeList.ReplaceFromChannel(row.Channel, ui.includeDescription)
	if !ui.restoring {
		ui.episodeView.ScrollToTop()
		ui.mobile.ShowEpisodes()
	}
	ui.refreshViews()
}

func (ui *RootUI) onViewModeSelected(string) {
	i := ui.viewSelect.SelectedIndex()
	if i < 0 || i >= len(listmodel.ViewModes) {
		return
	}
	mode := listmodel.ViewModes[i]

	ui.settings.SetViewMode(mode)
	ui.episodeList.SetViewMode(mode)
	ui.podcastList.SetViewMode(mode)
	ui.refreshViews()
}

func (ui *RootUI) onSortChanged() {
	i := ui.sortSelect.SelectedIndex()
	if i < 0 {
		return
	}
	key := listmodel.EpisodeSort(i)
	descending := ui.descendingCheck.Checked

	ui.settings.SetEpisodeSort(key, descending)
	ui.episodeList.SetSort(key, descending)
	ui.refreshViews()
}

// onSubscribeClick handles the subscribe button click
func (ui *RootUI) onSubscribeClick() {
	t := ui.localization.GetText

	feedURL := cleanURL(ui.urlEntry.Text)
	if feedURL == "" {
		ui.showNotification(t(KeyPleaseEnterURL), false)
		return
	}
	if err := ui.validateURL(feedURL); err != nil {
		ui.showNotification(t(KeyInvalidURL)+": "+err.Error(), false)
		return
	}
	for _, p := range ui.podcasts {
		if p.URL == feedURL {
			ui.showNotification(t(KeyAlreadySubscribed), false)
			return
		}
	}

	ui.subscribeBtn.Disable()
	ui.showNotification(t(KeySubscribing), true)
	go ui.subscribe(feedURL)
}

func (ui *RootUI) subscribe(feedURL string) {
	ctx, cancel := context.WithTimeout(context.Background(), SubscribeTimeout)
	defer cancel()

	p, err := ui.feeds.Subscribe(ctx, feedURL)
	if err == nil {
		_, err = ui.lib.Subscribe(ctx, p)
	}
	if err != nil {
		log.Warn().Err(err).Str("url", feedURL).Msg("subscribe failed")
		fyne.Do(func() {
			ui.subscribeBtn.Enable()
			if errors.Is(err, library.ErrExists) {
				ui.showNotification(ui.localization.GetText(KeyAlreadySubscribed), false)
				return
			}
			ui.showNotification(err.Error(), false)
		})
		return
	}

	fyne.Do(func() {
		ui.subscribeBtn.Enable()
		ui.urlEntry.SetText("")
		ui.showNotification(ui.localization.GetText(KeySubscribed)+": "+p.Title, false)
		ui.selected = p.Channel()
		ui.setPodcasts(append(ui.podcasts, p))
	})
	ui.downloadCover(p)
}

// onRefreshClick checks every feed for new episodes
func (ui *RootUI) onRefreshClick() {
	if !ui.refreshing.CompareAndSwap(false, true) {
		return
	}
	ui.refreshBtn.Disable()
	ui.showNotification(ui.localization.GetText(KeyRefreshing), true)

	go func() {
		defer ui.refreshing.Store(false)

		ctx, cancel := context.WithTimeout(context.Background(), RefreshTimeout)
		defer cancel()

		// Feeds are merged into a fresh copy so the shown objects are only
		// touched on the UI goroutine.
		fresh, err := ui.lib.Podcasts(ctx)
		added := 0
		if err == nil {
			added, err = ui.feeds.UpdateAll(ctx, ui.lib, fresh)
		}

		fyne.Do(func() {
			t := ui.localization.GetText
			ui.refreshBtn.Enable()
			if fresh != nil {
				ui.setPodcasts(fresh)
			}
			if err != nil {
				ui.showNotification(IconError+" "+t(KeyRefreshFailed)+": "+err.Error(), false)
				return
			}
			ui.showNotification(fmt.Sprintf("%s: %d", t(KeyNewEpisodes), added), false)
			if added > 0 {
				fyne.CurrentApp().SendNotification(&fyne.Notification{
					Title:   t(KeyNewEpisodes),
					Content: fmt.Sprintf("%d", added),
				})
			}
		})

		if fresh != nil {
			ui.fetchMissingCovers(fresh)
		}
	}()
}

// fetchMissingCovers downloads the covers not yet in the cover store
func (ui *RootUI) fetchMissingCovers(podcasts []*model.Podcast) {
	for _, p := range podcasts {
		if p.CoverURL == "" {
			continue
		}
		if _, err := os.Stat(ui.covers.Path(p.URL)); err == nil {
			continue
		}
		ui.downloadCover(p)
	}
}

func (ui *RootUI) downloadCover(p *model.Podcast) {
	ctx, cancel := context.WithTimeout(context.Background(), SubscribeTimeout)
	defer cancel()

	img, err := ui.covers.Download(ctx, p)
	if err != nil {
		if !errors.Is(err, coverart.ErrNoCoverURL) {
			log.Warn().Err(err).Str("podcast", p.URL).Msg("cover download failed")
		}
		return
	}
	fyne.Do(func() { ui.podcastList.AddCoverByChannel(p.Channel(), img) })
}

// showPodcastMenu shows the context menu of a podcast row
func (ui *RootUI) showPodcastMenu(row listmodel.PodcastRow, pos fyne.Position) {
	p, ok := model.PodcastOf(row.Channel)
	if !ok {
		return
	}
	t := ui.localization.GetText

	pauseLabel := t(KeyPauseSubscription)
	if p.PauseSubscription {
		pauseLabel = t(KeyResumeSubscription)
	}

	menu := fyne.NewMenu("",
		fyne.NewMenuItem(pauseLabel, func() { ui.setPaused(p, !p.PauseSubscription) }),
		fyne.NewMenuItem(t(KeySetSection), func() { ui.askSection(p) }),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem(t(KeyUnsubscribe), func() { ui.confirmUnsubscribe(p) }),
	)
	widget.ShowPopUpMenuAtPosition(menu, ui.window.Canvas(), pos)
}

func (ui *RootUI) setPaused(p *model.Podcast, paused bool) {
	go func() {
		if err := ui.lib.SetPaused(context.Background(), p.URL, paused); err != nil {
			log.Error().Err(err).Str("podcast", p.URL).Msg("could not change subscription state")
			ui.showNotification(err.Error(), false)
			return
		}
		fyne.Do(func() {
			p.PauseSubscription = paused
			ui.rebuildPodcastList()
		})
	}()
}

func (ui *RootUI) askSection(p *model.Podcast) {
	t := ui.localization.GetText

	entry := widget.NewEntry()
	entry.SetText(p.Section)
	dialog.ShowForm(t(KeySetSection), t(KeySave), t(KeyCancel),
		[]*widget.FormItem{widget.NewFormItem(t(KeySection), entry)},
		func(confirmed bool) {
			if !confirmed {
				return
			}
			section := strings.TrimSpace(entry.Text)
			go func() {
				if err := ui.lib.SetSection(context.Background(), p.URL, section); err != nil {
					log.Error().Err(err).Str("podcast", p.URL).Msg("could not set section")
					ui.showNotification(err.Error(), false)
					return
				}
				fyne.Do(func() {
					p.Section = section
					ui.rebuildPodcastList()
				})
			}()
		}, ui.window)
}

func (ui *RootUI) confirmUnsubscribe(p *model.Podcast) {
	t := ui.localization.GetText

	dialog.ShowConfirm(t(KeyUnsubscribe), p.Title, func(confirmed bool) {
		if !confirmed {
			return
		}
		for _, e := range p.AllEpisodes() {
			if task, ok := ui.downloadSvc.TaskForEpisode(e.URL); ok {
				_ = ui.downloadSvc.RemoveTask(task.ID)
			}
		}
		go func() {
			if err := ui.lib.RemovePodcast(context.Background(), p.URL); err != nil {
				log.Error().Err(err).Str("podcast", p.URL).Msg("could not unsubscribe")
				ui.showNotification(err.Error(), false)
				return
			}
			if err := ui.covers.Remove(p.URL); err != nil {
				log.Warn().Err(err).Str("podcast", p.URL).Msg("could not remove cover")
			}
			fyne.Do(func() {
				ui.podcastList.ClearCoverCache(p.URL)
				remaining := make([]*model.Podcast, 0, len(ui.podcasts))
				for _, other := range ui.podcasts {
					if other != p {
						remaining = append(remaining, other)
					}
				}
				if ui.selected != nil && ui.selected.URL() == p.URL {
					ui.selected = nil
				}
				ui.setPodcasts(remaining)
			})
		}()
	}, ui.window)
}

// onEpisodeAction starts, pauses or resumes the download of e
func (ui *RootUI) onEpisodeAction(e *model.Episode) {
	task, ok := ui.downloadSvc.TaskForEpisode(e.URL)
	if !ok {
		ui.startDownload(e)
		return
	}

	var err error
	switch task.Status {
	case model.TaskStatusPaused, model.TaskStatusStopped, model.TaskStatusError:
		err = ui.downloadSvc.ResumeTask(task.ID)
	case model.TaskStatusPending, model.TaskStatusStarting, model.TaskStatusDownloading:
		err = ui.downloadSvc.PauseTask(task.ID)
	case model.TaskStatusCompleted:
		if err = ui.downloadSvc.RemoveTask(task.ID); err == nil {
			ui.startDownload(e)
			return
		}
	default:
		return
	}
	if err != nil {
		log.Warn().Err(err).Str("task", task.ID).Msg("download action failed")
		ui.showNotification(err.Error(), false)
	}
}

func (ui *RootUI) startDownload(e *model.Episode) {
	if _, err := ui.downloadSvc.AddTask(e); err != nil {
		log.Warn().Err(err).Str("episode", e.URL).Msg("could not queue download")
		ui.showNotification(err.Error(), false)
		return
	}
	ui.showNotification(ui.localization.GetText(KeyDownloadStarted)+": "+e.Title, false)
}

// onTaskUpdate receives task snapshots from the download service
func (ui *RootUI) onTaskUpdate(task *model.DownloadTask) {
	fyne.Do(func() { ui.applyTaskUpdate(task) })
}

func (ui *RootUI) applyTaskUpdate(task *model.DownloadTask) {
	e, ok := ui.episodeIndex[task.EpisodeURL]
	if !ok {
		log.Debug().Str("task", task.ID).Str("episode", task.EpisodeURL).Msg("update for unknown episode")
		return
	}

	if download.ApplyResult(e, task) {
		saved := *e
		saved.Download = nil
		go func() {
			if err := ui.lib.SaveEpisode(context.Background(), &saved); err != nil {
				log.Error().Err(err).Str("episode", saved.URL).Msg("could not save episode")
			}
		}()
	}

	ui.episodeList.UpdateByURLs([]string{e.URL}, ui.includeDescription)
	if e.Podcast != nil {
		ui.podcastList.UpdateByURLs([]string{e.Podcast.URL})
	}
	ui.podcastList.UpdateFirstRow()

	switch task.Status {
	case model.TaskStatusCompleted:
		ui.sendCompletionNotification(task)
		if ui.settings.GetAutoRevealOnComplete() {
			ui.onRevealFile(task.OutputPath)
		}
	case model.TaskStatusError:
		ui.showNotification(IconError+" "+ui.localization.GetText(KeyDownloadFailed)+": "+task.LastError, false)
	}
}

// showNotification displays a message in the notification panel under the URL input.
// When spinning is true, a spinner is shown to indicate background activity.
func (ui *RootUI) showNotification(message string, spinning bool) {
	if ui.notificationLabel == nil || ui.notificationContainer == nil || ui.notificationSpinner == nil {
		return
	}
	fyne.Do(func() {
		ui.notificationLabel.SetText(message)
		if spinning {
			ui.notificationSpinner.Show()
		} else {
			ui.notificationSpinner.Hide()
		}
		ui.notificationContainer.Show()
		ui.notificationContainer.Refresh()
	})
}

// onShowSettings shows the settings dialog
func (ui *RootUI) onShowSettings() {
	ShowSettingsDialog(ui.window, ui.settings, ui.localization, ui.applySettings)
}

// applySettings pushes saved settings into the running services and lists
func (ui *RootUI) applySettings() {
	ui.downloadSvc.SetDownloadDirectory(ui.settings.GetDownloadDirectory())
	ui.downloadSvc.SetMaxParallelDownloads(ui.settings.GetMaxParallelDownloads())

	if level, err := logging.ParseLevel(ui.settings.GetLogLevel()); err == nil {
		zerolog.SetGlobalLevel(level)
	}

	if lang := ui.settings.GetLanguage(); lang != ui.localization.GetCurrentLanguage() {
		ui.onLanguageChange(lang)
	}

	descriptions := ui.settings.GetEpisodeListDescriptions()
	if descriptions != ui.includeDescription {
		ui.includeDescription = descriptions
		ui.episodeList.UpdateAll(descriptions)
	}

	ui.podcastList.SetMaxImageSize(ui.settings.GetCoverSize())
	ui.rebuildPodcastList()
}

// onRevealFile handles revealing a file in the system file manager
func (ui *RootUI) onRevealFile(filePath string) {
	if err := platform.OpenFileInManager(filePath); err != nil {
		log.Warn().Err(err).Str("path", filePath).Msg("could not reveal file")
		ui.showNotification(ui.localization.GetText(KeyErrorOpeningFile)+": "+err.Error(), false)
	}
}

// onOpenFile handles opening a downloaded file with the default application
func (ui *RootUI) onOpenFile(filePath string) {
	if err := platform.OpenFileWithDefaultApp(filePath); err != nil {
		log.Warn().Err(err).Str("path", filePath).Msg("could not open file")
		ui.showNotification(ui.localization.GetText(KeyErrorOpeningFile)+": "+err.Error(), false)
	}
}

// onCopyPath handles copying file path to clipboard
func (ui *RootUI) onCopyPath(filePath string) {
	if filePath == "" {
		return
	}
	ui.window.Clipboard().SetContent(filePath)
	ui.showNotification(ui.localization.GetText(KeyPathCopied), false)
}

// sendCompletionNotification sends a system notification for completed downloads
func (ui *RootUI) sendCompletionNotification(task *model.DownloadTask) {
	fyne.CurrentApp().SendNotification(&fyne.Notification{
		Title:   ui.localization.GetText(KeyDownloadCompleted),
		Content: task.GetDisplayTitle(),
	})
	ui.showToastNotification(task)
}

// showToastNotification shows an in-app toast with reveal/open actions
func (ui *RootUI) showToastNotification(task *model.DownloadTask) {
	titleLabel := widget.NewLabel(ui.localization.GetText(KeyDownloadCompleted))
	titleLabel.TextStyle = fyne.TextStyle{Bold: true}

	messageLabel := widget.NewLabel(task.GetDisplayTitle())
	messageLabel.Truncation = fyne.TextTruncateEllipsis

	outputPath := task.OutputPath
	revealBtn := widget.NewButton(ui.localization.GetText(KeyReveal), func() { ui.onRevealFile(outputPath) })
	revealBtn.Importance = widget.HighImportance
	openBtn := widget.NewButton(ui.localization.GetText(KeyOpen), func() { ui.onOpenFile(outputPath) })

	var toastPopup *widget.PopUp
	closeBtn := widget.NewButton(IconClose, func() {
		if toastPopup != nil {
			toastPopup.Hide()
		}
	})
	closeBtn.Importance = widget.LowImportance

	content := container.NewVBox(
		container.NewBorder(nil, nil, titleLabel, closeBtn),
		messageLabel,
		container.NewHBox(revealBtn, openBtn),
	)

	toastPopup = widget.NewPopUp(content, ui.window.Canvas())

	canvasSize := ui.window.Canvas().Size()
	toastSize := fyne.NewSize(ToastWidth, ToastHeight)
	toastPopup.Resize(toastSize)
	toastPopup.Move(fyne.NewPos(canvasSize.Width-toastSize.Width-ToastMargin, ToastMargin))
	toastPopup.Show()

	time.AfterFunc(ToastAutoHide, func() {
		fyne.Do(toastPopup.Hide)
	})
}
