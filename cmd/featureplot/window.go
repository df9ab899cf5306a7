package main

import (
	"image"
	png "image/png"

	fyne "fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"

	"github.com/iafilius/featureflux/src/logging"
)

// newPlotWindow builds the window presenting the rendered figure, with a File menu for
// PNG export and the usual close shortcuts.
func newPlotWindow(a fyne.App, title string, img image.Image) fyne.Window {
	w := a.NewWindow(title)
	b := img.Bounds()
	imgCanvas := canvas.NewImageFromImage(img)
	imgCanvas.FillMode = canvas.ImageFillContain
	imgCanvas.SetMinSize(fyne.NewSize(float32(b.Dx()), float32(b.Dy())))
	w.SetContent(container.NewStack(imgCanvas))
	w.Resize(fyne.NewSize(float32(b.Dx()), float32(b.Dy())))

	export := func() { exportChartPNG(w, imgCanvas, "features.png") }
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("Export PNG…", export),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() { w.Close() }),
	)
	w.SetMainMenu(fyne.NewMainMenu(fileMenu))

	if canv := w.Canvas(); canv != nil {
		canv.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyS, Modifier: fyne.KeyModifierSuper}, func(fyne.Shortcut) { export() })
		canv.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyS, Modifier: fyne.KeyModifierControl}, func(fyne.Shortcut) { export() })
		canv.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyW, Modifier: fyne.KeyModifierSuper}, func(fyne.Shortcut) { w.Close() })
		canv.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyW, Modifier: fyne.KeyModifierControl}, func(fyne.Shortcut) { w.Close() })
	}
	return w
}

// exportChartPNG asks for a destination and writes the displayed figure there.
func exportChartPNG(w fyne.Window, img *canvas.Image, defaultName string) {
	if img == nil || img.Image == nil {
		dialog.ShowInformation("Export", "No chart to export.", w)
		return
	}
	fs := dialog.NewFileSave(func(wc fyne.URIWriteCloser, err error) {
		if err != nil || wc == nil {
			return
		}
		defer wc.Close()
		if err := png.Encode(wc, img.Image); err != nil {
			logging.Errorf("export %s: %v", wc.URI().Path(), err)
			dialog.ShowError(err, w)
			return
		}
		logging.Infof("exported chart to %s", wc.URI().Path())
	}, w)
	fs.SetFileName(defaultName)
	fs.Show()
}
