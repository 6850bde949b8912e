package app

import (
	"context"
	"errors"
	"flag"
	"image/color"
	"runtime"
	"time"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"

	"github.com/kobzarvs/thaipad/internal/composer"
	"github.com/kobzarvs/thaipad/internal/config"
	"github.com/kobzarvs/thaipad/internal/export"
	"github.com/kobzarvs/thaipad/internal/logger"
	"github.com/kobzarvs/thaipad/internal/platform/keyboard"
	"github.com/kobzarvs/thaipad/internal/translate"
	"github.com/kobzarvs/thaipad/internal/ui"
)

// App is the top-level runtime for thaipad.
type App struct {
	args []string
}

func New(args []string) *App {
	return &App{args: args}
}

type translationDone struct {
	token uint64
	text  string
	err   error
}

type exportDone struct {
	path string
	err  error
}

func (a *App) Run() error {
	fs := flag.NewFlagSet("thaipad", flag.ContinueOnError)
	debug := fs.Bool("debug", false, "write debug-level logs")
	if err := fs.Parse(a.args); err != nil {
		return err
	}

	runtime.LockOSThread()
	if err := logger.Init(*debug); err != nil {
		return err
	}
	defer logger.Close()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	timeout := cfg.Translate.TimeoutDuration()
	gateway := translate.NewClient(translate.Options{
		Endpoint:          cfg.Translate.Endpoint,
		Timeout:           timeout,
		RequestsPerSecond: cfg.Translate.RequestsPerSecond,
	})
	rasterizer, err := newRasterizer(cfg.Export)
	if err != nil {
		return err
	}

	s, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := s.Init(); err != nil {
		return err
	}
	s.EnableMouse()
	s.EnablePaste()
	defer s.Fini()

	events := ui.NewEvents()
	comp := composer.New(cfg.Composer.FontSize)
	comp.Mount(events)
	defer comp.Unmount()
	view := ui.New(cfg, comp, events)

	stopTicker := make(chan struct{})
	defer close(stopTicker)
	go func() {
		ticker := time.NewTicker(100 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-stopTicker:
				return
			case <-ticker.C:
				_ = s.PostEvent(tcell.NewEventInterrupt(nil))
			}
		}
	}()

	lastLayoutRaw := keyboard.CurrentLayoutRaw()
	view.SetKeyboardLayout(keyboard.CurrentLayout())
	logger.Info("thaipad started", "font_size", comp.FontSize(), "layout", keyboard.CurrentLayout())

	view.Render(s)
	for {
		ev := s.PollEvent()
		switch ev := ev.(type) {
		case nil:
			return nil
		case *tcell.EventKey:
			if view.HandleKey(ev) {
				return nil
			}
		case *tcell.EventMouse:
			view.HandleMouse(ev)
		case *tcell.EventPaste:
			view.HandlePaste(ev)
		case *tcell.EventResize:
			s.Sync()
		case *tcell.EventInterrupt:
			switch res := ev.Data().(type) {
			case translationDone:
				view.ApplyTranslation(res.token, res.text, res.err)
			case exportDone:
				view.FinishExport(res.path, res.err)
			}
		}
		if job, ok := view.ConsumeTranslationJob(); ok {
			go runTranslation(s, gateway, job, 2*timeout)
		}
		if job, ok := view.ConsumeExportJob(); ok {
			go runExport(s, rasterizer, job)
		}
		layoutRaw := keyboard.CurrentLayoutRaw()
		if layoutRaw != lastLayoutRaw {
			lastLayoutRaw = layoutRaw
			view.SetKeyboardLayout(keyboard.CurrentLayout())
		}
		view.Render(s)
	}
}

// newRasterizer builds the PNG renderer. Without a configured font it looks
// for a system Thai font, and it falls back to the bundled font when the
// chosen one cannot be loaded.
func newRasterizer(opts config.ExportOptions) (*export.Renderer, error) {
	var bg color.Color = color.White
	if opts.Background != "" {
		c, err := composer.ParseColor(opts.Background)
		if err != nil {
			logger.Warn("invalid export background", "background", opts.Background, "err", err)
		} else {
			bg = c
		}
	}
	fontFile := opts.FontFile
	if fontFile == "" {
		fontFile = export.LocateFont(export.ThaiFontCandidates)
		if fontFile == "" {
			logger.Warn("no Thai font found, export needs [export] font-file")
		} else {
			logger.Debug("using system Thai font", "font", fontFile)
		}
	}
	ropts := export.Options{
		FontFile:   fontFile,
		Width:      opts.Width,
		Padding:    opts.Padding,
		Background: bg,
	}
	r, err := export.NewRenderer(ropts)
	if err == nil || ropts.FontFile == "" {
		return r, err
	}
	logger.Warn("export font unavailable, using default", "font", ropts.FontFile, "err", err)
	ropts.FontFile = ""
	return export.NewRenderer(ropts)
}

func runTranslation(s tcell.Screen, gw translate.Gateway, job ui.TranslationJob, timeout time.Duration) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	log := logger.Job(logger.JobTranslate, job.Token, "direction", job.Request.Direction.String())
	log.Debugw("translation started", "runes", utf8.RuneCountInString(job.Request.Text))
	start := time.Now()
	text, err := gw.Translate(ctx, job.Request)
	log.Debugw("translation returned", "elapsed", time.Since(start), "ok", err == nil)
	_ = s.PostEvent(tcell.NewEventInterrupt(translationDone{token: job.Token, text: text, err: err}))
}

func runExport(s tcell.Screen, r export.Rasterizer, job ui.ExportJob) {
	log := logger.Job(logger.JobExport, job.Seq, "dir", job.Dir)
	log.Debugw("export started", "glyphs", len(job.Snapshot.Glyphs), "font_size", job.Snapshot.FontSize)
	path, err := export.Export(r, job.Snapshot, job.Dir)
	if errors.Is(err, export.ErrMissingGlyphs) {
		log.Warnw("export font lacks glyphs", "err", err)
	}
	_ = s.PostEvent(tcell.NewEventInterrupt(exportDone{path: path, err: err}))
}
