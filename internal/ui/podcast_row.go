package ui

import (
	"fmt"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/mobile"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/podshelf/internal/listmodel"
)

// pillText formats the unplayed/downloaded counters of a podcast row
func pillText(unplayed, downloaded int) string {
	switch {
	case unplayed > 0 && downloaded > 0:
		return fmt.Sprintf(PillPairFormat, unplayed, downloaded)
	case unplayed > 0:
		return fmt.Sprintf(PillFormat, unplayed)
	case downloaded > 0:
		return fmt.Sprintf(PillFormat, downloaded)
	default:
		return ""
	}
}

// PodcastItem renders one listmodel.PodcastRow: a podcast, a section
// header or a separator
type PodcastItem struct {
	widget.BaseWidget

	row listmodel.PodcastRow

	cover      *canvas.Image
	titleLabel *widget.Label
	descLabel  *widget.Label
	pillBg     *canvas.Rectangle
	pillText   *canvas.Text
	pill       *fyne.Container
	header     *canvas.Text
	separator  *widget.Separator
	podcast    *fyne.Container

	gestures *GestureHandler
	onMenu   func(row listmodel.PodcastRow, pos fyne.Position)
}

var (
	_ fyne.SecondaryTappable = (*PodcastItem)(nil)
	_ mobile.Touchable       = (*PodcastItem)(nil)
)

// NewPodcastItem creates an empty podcast item; SetRow fills it
func NewPodcastItem() *PodcastItem {
	item := &PodcastItem{}
	item.ExtendBaseWidget(item)
	item.gestures = NewGestureHandler(func(g GestureType, pos fyne.Position) {
		if g == GestureLongPress {
			item.showMenu(pos)
		}
	})
	item.createUI()
	return item
}

// SetMenuCallback installs the handler for context menu requests
func (it *PodcastItem) SetMenuCallback(onMenu func(row listmodel.PodcastRow, pos fyne.Position)) {
	it.onMenu = onMenu
}

func (it *PodcastItem) createUI() {
	it.cover = canvas.NewImageFromImage(nil)
	it.cover.FillMode = canvas.ImageFillContain
	it.cover.ScaleMode = canvas.ImageScaleSmooth

	it.titleLabel = widget.NewLabel("")
	it.titleLabel.Truncation = fyne.TextTruncateEllipsis
	it.descLabel = widget.NewLabel("")
	it.descLabel.Truncation = fyne.TextTruncateEllipsis

	it.pillBg = canvas.NewRectangle(theme.Color(ColorNamePill))
	it.pillBg.CornerRadius = theme.Size(theme.SizeNameText) / 2
	it.pillBg.SetMinSize(fyne.NewSize(PillMinWidth, 0))
	it.pillText = canvas.NewText("", theme.Color(ColorNamePillText))
	it.pillText.TextSize = theme.Size(theme.SizeNameCaptionText)
	it.pillText.Alignment = fyne.TextAlignCenter
	it.pill = container.NewStack(it.pillBg, container.NewPadded(it.pillText))

	it.header = canvas.NewText("", theme.Color(ColorNameSectionHeader))
	it.header.TextStyle = fyne.TextStyle{Bold: true}

	it.separator = widget.NewSeparator()
}

// SetRow shows row
func (it *PodcastItem) SetRow(row listmodel.PodcastRow) {
	it.row = row
	it.updateFromRow()
	it.Refresh()
}

func (it *PodcastItem) updateFromRow() {
	row := it.row

	it.header.Hide()
	it.separator.Hide()
	if it.podcast != nil {
		it.podcast.Hide()
	}

	switch row.Kind {
	case listmodel.KindSeparator:
		it.separator.Show()
		return
	case listmodel.KindSection:
		it.header.Text = row.Title
		it.header.Color = theme.Color(ColorNameSectionHeader)
		it.header.Show()
		return
	}

	if it.podcast != nil {
		it.podcast.Show()
	}

	it.titleLabel.SetText(row.Title)
	it.titleLabel.TextStyle = fyne.TextStyle{Bold: true}

	if row.Error != "" {
		it.descLabel.Importance = widget.DangerImportance
		it.descLabel.SetText(row.Error)
	} else {
		it.descLabel.Importance = widget.MediumImportance
		it.descLabel.SetText(row.Description)
	}
	it.descLabel.TextStyle = fyne.TextStyle{Bold: row.DescriptionBold}

	if row.CoverVisible && row.Cover != nil {
		it.cover.Image = row.Cover
		it.cover.Show()
	} else {
		it.cover.Image = nil
		it.cover.Hide()
	}

	if row.PillVisible {
		it.pillText.Text = pillText(row.PillUnplayed, row.PillDownloaded)
		it.pill.Show()
	} else {
		it.pill.Hide()
	}
}

// TappedSecondary opens the context menu on desktop
func (it *PodcastItem) TappedSecondary(ev *fyne.PointEvent) {
	it.showMenu(ev.AbsolutePosition)
}

// TouchDown handles touch down events
func (it *PodcastItem) TouchDown(ev *mobile.TouchEvent) { it.gestures.TouchDown(ev) }

// TouchUp handles touch up events
func (it *PodcastItem) TouchUp(ev *mobile.TouchEvent) { it.gestures.TouchUp(ev) }

// TouchCancel handles touch cancel events
func (it *PodcastItem) TouchCancel(ev *mobile.TouchEvent) { it.gestures.TouchCancel(ev) }

func (it *PodcastItem) showMenu(pos fyne.Position) {
	if it.onMenu == nil || it.row.Kind != listmodel.KindPodcast || it.row.Channel == nil || it.row.Channel.Aggregate() {
		return
	}
	it.onMenu(it.row, pos)
}

// CreateRenderer creates the widget renderer
func (it *PodcastItem) CreateRenderer() fyne.WidgetRenderer {
	side := theme.Size(theme.SizeNameText) * 3
	coverBox := container.NewGridWrap(fyne.NewSize(side, side), it.cover)

	text := container.NewVBox(it.titleLabel, it.descLabel)
	it.podcast = container.NewBorder(nil, nil, container.NewCenter(coverBox), container.NewCenter(it.pill), text)

	minSize := canvas.NewRectangle(color.Transparent)
	minSize.SetMinSize(fyne.NewSize(PodcastRowMinWidth, 0))

	it.updateFromRow()
	return widget.NewSimpleRenderer(container.NewStack(
		minSize,
		it.podcast,
		container.NewPadded(it.header),
		container.NewVBox(layout.NewSpacer(), it.separator, layout.NewSpacer()),
	))
}
