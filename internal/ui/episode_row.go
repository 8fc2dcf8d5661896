package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/podshelf/internal/listmodel"
	"github.com/ytget/podshelf/internal/model"
)

// EpisodeItem renders one listmodel.EpisodeRow
type EpisodeItem struct {
	widget.BaseWidget

	row          listmodel.EpisodeRow
	localization *Localization

	statusIcon  *widget.Icon
	titleLabel  *widget.Label
	descLabel   *widget.Label
	statusLabel *widget.Label
	sizeLabel   *widget.Label
	dateLabel   *widget.Label
	timeLabel   *widget.Label
	progressBar *widget.ProgressBar

	actionBtn *widget.Button // download, pause or continue
	openBtn   *widget.Button // open with default app (player)
	revealBtn *widget.Button // reveal in file manager
	copyBtn   *widget.Button

	onAction   func(e *model.Episode)
	onOpen     func(filePath string)
	onReveal   func(filePath string)
	onCopyPath func(filePath string)
}

// NewEpisodeItem creates an empty episode item; SetRow fills it
func NewEpisodeItem(localization *Localization) *EpisodeItem {
	item := &EpisodeItem{localization: localization}
	item.ExtendBaseWidget(item)
	item.createUI()
	return item
}

// SetCallbacks sets the action callbacks
func (it *EpisodeItem) SetCallbacks(
	onAction func(e *model.Episode),
	onOpen func(filePath string),
	onReveal func(filePath string),
	onCopyPath func(filePath string),
) {
	it.onAction = onAction
	it.onOpen = onOpen
	it.onReveal = onReveal
	it.onCopyPath = onCopyPath
}

// SetRow shows row
func (it *EpisodeItem) SetRow(row listmodel.EpisodeRow) {
	it.row = row
	it.updateFromRow()
	it.Refresh()
}

func (it *EpisodeItem) createUI() {
	it.statusIcon = widget.NewIcon(nil)

	it.titleLabel = widget.NewLabel("")
	it.titleLabel.Truncation = fyne.TextTruncateEllipsis

	it.descLabel = widget.NewLabel("")
	it.descLabel.Truncation = fyne.TextTruncateEllipsis

	it.statusLabel = widget.NewLabel("")
	it.statusLabel.Truncation = fyne.TextTruncateEllipsis
	it.statusLabel.Importance = widget.LowImportance

	it.sizeLabel = widget.NewLabel("")
	it.sizeLabel.Alignment = fyne.TextAlignTrailing
	it.dateLabel = widget.NewLabel("")
	it.dateLabel.Alignment = fyne.TextAlignTrailing
	it.timeLabel = widget.NewLabel("")
	it.timeLabel.Alignment = fyne.TextAlignTrailing
	it.timeLabel.TextStyle = fyne.TextStyle{Monospace: true}

	it.progressBar = widget.NewProgressBar()
	it.progressBar.Hide()

	it.actionBtn = widget.NewButton(it.localization.GetText(KeyDownload), func() {
		if it.onAction != nil && it.row.Episode != nil {
			it.onAction(it.row.Episode)
		}
	})
	it.openBtn = widget.NewButton(it.localization.GetText(KeyOpen), func() {
		if path, ok := it.localPath(); ok && it.onOpen != nil {
			it.onOpen(path)
		}
	})
	it.revealBtn = widget.NewButton(IconFolder, func() {
		if path, ok := it.localPath(); ok && it.onReveal != nil {
			it.onReveal(path)
		}
	})
	it.copyBtn = widget.NewButton(IconCopy, func() {
		if path, ok := it.localPath(); ok && it.onCopyPath != nil {
			it.onCopyPath(path)
		}
	})
	for _, b := range []*widget.Button{it.actionBtn, it.openBtn, it.revealBtn, it.copyBtn} {
		b.Importance = widget.MediumImportance
	}
}

// localPath returns the downloaded file of the shown episode, if present
func (it *EpisodeItem) localPath() (string, bool) {
	e := it.row.Episode
	if e == nil || !e.FileExists() {
		return "", false
	}
	return e.LocalPath(), true
}

func (it *EpisodeItem) updateFromRow() {
	row := it.row
	e := row.Episode

	title := row.Title
	if row.Locked {
		title = IconLock + " " + title
	}
	it.titleLabel.SetText(title)
	it.titleLabel.TextStyle = fyne.TextStyle{Bold: e != nil && e.IsNew && e.State != model.StateDeleted}

	it.descLabel.SetText(row.Description)
	it.descLabel.TextStyle = fyne.TextStyle{Bold: row.DescriptionBold}
	it.statusLabel.SetText(row.Tooltip)

	it.statusIcon.SetResource(statusIconResource(row.StatusIcon))

	it.sizeLabel.SetText(row.FileSizeText)
	it.dateLabel.SetText(row.PublishedText)
	if row.TimeVisible {
		it.timeLabel.SetText(row.Time)
	} else {
		it.timeLabel.SetText("")
	}

	if e != nil && e.Downloading() {
		it.progressBar.SetValue(e.DownloadProgress())
		it.progressBar.Show()
	} else {
		it.progressBar.Hide()
	}

	it.updateButtons()
}

func (it *EpisodeItem) updateButtons() {
	e := it.row.Episode
	if e == nil {
		it.actionBtn.Disable()
		it.openBtn.Disable()
		it.revealBtn.Disable()
		it.copyBtn.Disable()
		return
	}

	switch {
	case e.Download != nil && e.Download.Status == model.TaskStatusPaused:
		it.actionBtn.SetText(it.localization.GetText(KeyContinue))
		it.actionBtn.Enable()
	case e.Downloading():
		it.actionBtn.SetText(it.localization.GetText(KeyPause))
		it.actionBtn.Enable()
	case e.State == model.StateDownloaded && e.FileExists():
		it.actionBtn.SetText(it.localization.GetText(KeyDownload))
		it.actionBtn.Disable()
	default:
		it.actionBtn.SetText(it.localization.GetText(KeyDownload))
		it.actionBtn.Enable()
	}

	if _, ok := it.localPath(); ok {
		it.openBtn.Enable()
		it.revealBtn.Enable()
		it.copyBtn.Enable()
	} else {
		it.openBtn.Disable()
		it.revealBtn.Disable()
		it.copyBtn.Disable()
	}
}

// CreateRenderer creates the widget renderer
func (it *EpisodeItem) CreateRenderer() fyne.WidgetRenderer {
	fixedWidth := func(w float32, obj fyne.CanvasObject) fyne.CanvasObject {
		spacer := canvas.NewRectangle(color.Transparent)
		spacer.SetMinSize(fyne.NewSize(w, obj.MinSize().Height))
		return container.NewStack(spacer, obj)
	}

	icon := container.NewGridWrap(fyne.NewSize(StatusIconSize, StatusIconSize), it.statusIcon)

	text := container.NewVBox(it.titleLabel, it.descLabel, it.statusLabel)

	info := container.NewVBox(
		container.NewHBox(
			fixedWidth(SizeLabelWidth, it.sizeLabel),
			fixedWidth(DateLabelWidth, it.dateLabel),
			fixedWidth(TimeLabelWidth, it.timeLabel),
		),
		fixedWidth(ProgressBarWidth, it.progressBar),
	)
	actions := container.NewHBox(it.actionBtn, it.openBtn, it.revealBtn, it.copyBtn)
	right := container.NewBorder(nil, nil, nil, actions, info)

	main := container.NewBorder(nil, nil, container.NewCenter(icon), right, text)
	minSize := canvas.NewRectangle(color.Transparent)
	minSize.SetMinSize(fyne.NewSize(EpisodeRowMinWidth, EpisodeRowMinHeight))

	return widget.NewSimpleRenderer(container.NewStack(minSize, container.NewVBox(main, widget.NewSeparator())))
}
