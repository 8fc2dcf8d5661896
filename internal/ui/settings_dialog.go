package ui

import (
	"sort"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/podshelf/internal/config"
	"github.com/ytget/podshelf/internal/listmodel"
	"github.com/ytget/podshelf/internal/platform"
)

// Dialog size constants
const (
	SettingsDialogWidth  = 520
	SettingsDialogHeight = 480
)

// SettingsDialog represents the settings configuration dialog
type SettingsDialog struct {
	settings     *config.Settings
	localization *Localization
	window       fyne.Window
	dialog       *dialog.ConfirmDialog
	onSaved      func()

	libraryPathEntry *widget.Entry
	downloadDirEntry *widget.Entry
	maxParallelEntry *widget.Entry
	coverSizeEntry   *widget.Entry
	viewAllCheck     *widget.Check
	sectionsCheck    *widget.Check
	descriptionCheck *widget.Check
	autoRevealCheck  *widget.Check
	languageSelect   *widget.Select
	logLevelSelect   *widget.Select
}

// ShowSettingsDialog opens the settings dialog. onSaved runs after the
// values were written back to settings.
func ShowSettingsDialog(window fyne.Window, settings *config.Settings, localization *Localization, onSaved func()) {
	sd := NewSettingsDialog(settings, localization, window)
	sd.onSaved = onSaved
	sd.Show()
}

// NewSettingsDialog creates a new settings dialog
func NewSettingsDialog(settings *config.Settings, localization *Localization, window fyne.Window) *SettingsDialog {
	sd := &SettingsDialog{
		settings:     settings,
		localization: localization,
		window:       window,
	}

	sd.createUI()
	return sd
}

// Show displays the settings dialog
func (sd *SettingsDialog) Show() {
	sd.loadCurrentSettings()
	sd.dialog.Show()
}

func (sd *SettingsDialog) createUI() {
	t := sd.localization.GetText

	sd.libraryPathEntry = widget.NewEntry()
	browseLibraryBtn := widget.NewButton(t(KeyBrowse), sd.onBrowseLibrary)
	libraryRow := container.NewBorder(nil, nil, nil, browseLibraryBtn, sd.libraryPathEntry)

	sd.downloadDirEntry = widget.NewEntry()
	browseDirBtn := widget.NewButton(t(KeyBrowse), sd.onBrowseDirectory)
	downloadDirRow := container.NewBorder(nil, nil, nil, browseDirBtn, sd.downloadDirEntry)

	sd.maxParallelEntry = widget.NewEntry()
	sd.maxParallelEntry.SetPlaceHolder("1-" + strconv.Itoa(config.MaxParallelLimit))

	sd.coverSizeEntry = widget.NewEntry()
	sd.coverSizeEntry.SetPlaceHolder(strconv.Itoa(config.MinCoverSize) + "-" + strconv.Itoa(config.MaxCoverSize))

	sd.viewAllCheck = widget.NewCheck(t(KeyShowAllEpisodes), nil)
	sd.sectionsCheck = widget.NewCheck(t(KeyShowSections), nil)
	sd.descriptionCheck = widget.NewCheck(t(KeyShowDescriptions), nil)
	sd.autoRevealCheck = widget.NewCheck(t(KeyAutoReveal), nil)

	languageOptions := make([]string, 0, len(sd.settings.GetLanguageOptions()))
	for code := range sd.settings.GetLanguageOptions() {
		languageOptions = append(languageOptions, code)
	}
	sort.Strings(languageOptions)
	sd.languageSelect = widget.NewSelect(languageOptions, nil)

	sd.logLevelSelect = widget.NewSelect(sd.settings.GetLogLevelOptions(), nil)

	form := widget.NewForm(
		widget.NewFormItem(t(KeyLibraryPath), libraryRow),
		widget.NewFormItem(t(KeyDownloadDirectory), downloadDirRow),
		widget.NewFormItem(t(KeyMaxParallel), sd.maxParallelEntry),
		widget.NewFormItem(t(KeyCoverSize), sd.coverSizeEntry),
		widget.NewFormItem(t(KeyLanguage), sd.languageSelect),
		widget.NewFormItem(t(KeyLogLevel), sd.logLevelSelect),
	)

	content := container.NewVBox(
		form,
		widget.NewSeparator(),
		sd.viewAllCheck,
		sd.sectionsCheck,
		sd.descriptionCheck,
		sd.autoRevealCheck,
	)

	sd.dialog = dialog.NewCustomConfirm(
		t(KeySettings),
		t(KeySave),
		t(KeyCancel),
		content,
		sd.onSave,
		sd.window,
	)

	sd.dialog.Resize(fyne.NewSize(SettingsDialogWidth, SettingsDialogHeight))
}

func (sd *SettingsDialog) loadCurrentSettings() {
	sd.libraryPathEntry.SetText(sd.settings.GetLibraryPath())
	sd.downloadDirEntry.SetText(sd.settings.GetDownloadDirectory())
	sd.maxParallelEntry.SetText(strconv.Itoa(sd.settings.GetMaxParallelDownloads()))
	sd.coverSizeEntry.SetText(strconv.Itoa(sd.settings.GetCoverSize()))

	opts := sd.settings.GetPodcastListOptions()
	sd.viewAllCheck.SetChecked(opts.ViewAll)
	sd.sectionsCheck.SetChecked(opts.Sections)
	sd.descriptionCheck.SetChecked(sd.settings.GetEpisodeListDescriptions())
	sd.autoRevealCheck.SetChecked(sd.settings.GetAutoRevealOnComplete())

	sd.languageSelect.SetSelected(sd.settings.GetLanguage())
	sd.logLevelSelect.SetSelected(sd.settings.GetLogLevel())
}

func (sd *SettingsDialog) onBrowseDirectory() {
	dialog.ShowFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil || uri == nil {
			return
		}
		sd.downloadDirEntry.SetText(uri.Path())
	}, sd.window)
}

func (sd *SettingsDialog) onBrowseLibrary() {
	d := dialog.NewFileSave(func(w fyne.URIWriteCloser, err error) {
		if err != nil || w == nil {
			return
		}
		// only the chosen path is needed; the library creates the file itself
		path := w.URI().Path()
		_ = w.Close()
		sd.libraryPathEntry.SetText(path)
	}, sd.window)
	d.SetFileName(platform.LibraryFileName)
	d.SetFilter(storage.NewExtensionFileFilter([]string{".db"}))
	d.Show()
}

// onSave writes the dialog values back to settings
func (sd *SettingsDialog) onSave(confirmed bool) {
	if !confirmed {
		return
	}

	libraryChanged := false
	if path := sd.libraryPathEntry.Text; path != "" && path != sd.settings.GetLibraryPath() {
		sd.settings.SetLibraryPath(path)
		libraryChanged = true
	}

	if dir := sd.downloadDirEntry.Text; dir != "" {
		sd.settings.SetDownloadDirectory(dir)
	}

	if n, err := strconv.Atoi(sd.maxParallelEntry.Text); err == nil {
		sd.settings.SetMaxParallelDownloads(n)
	}

	if n, err := strconv.Atoi(sd.coverSizeEntry.Text); err == nil {
		sd.settings.SetCoverSize(n)
	}

	sd.settings.SetPodcastListOptions(listmodel.PodcastListOptions{
		ViewAll:  sd.viewAllCheck.Checked,
		Sections: sd.sectionsCheck.Checked,
	})
	sd.settings.SetEpisodeListDescriptions(sd.descriptionCheck.Checked)
	sd.settings.SetAutoRevealOnComplete(sd.autoRevealCheck.Checked)

	if sd.languageSelect.Selected != "" {
		sd.settings.SetLanguage(sd.languageSelect.Selected)
	}
	if sd.logLevelSelect.Selected != "" {
		sd.settings.SetLogLevel(sd.logLevelSelect.Selected)
	}

	if sd.onSaved != nil {
		sd.onSaved()
	}

	message := sd.localization.GetText(KeySettingsSaved)
	if libraryChanged {
		message += "\n" + sd.localization.GetText(KeyRestartRequired)
	}
	dialog.ShowInformation(sd.localization.GetText(KeySettings), message, sd.window)
}
