package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Fepozopo/colorogram/pkg/canvas"
	"github.com/Fepozopo/colorogram/pkg/histogram"
	"github.com/Fepozopo/colorogram/pkg/imageio"
	"github.com/Fepozopo/colorogram/pkg/logging"
	"github.com/Fepozopo/colorogram/pkg/preview"
)

// Options controls how each input is rendered.
type Options struct {
	Mode  Mode
	Scale histogram.Scale
	// Width of a histogram; 0 uses the source width. Ignored for waveforms,
	// which always match the source width.
	Width int
	// Height of the rendered image; 0 uses a quarter of the source height.
	Height     int
	Workers    int
	Standalone bool
	Label      bool
	// Preview writes the result inline to PreviewOut when the terminal
	// supports it.
	Preview    bool
	PreviewOut io.Writer
}

// Job is one input file and the path its result is written to.
type Job struct {
	Input  string
	Output string
}

// OutputPath derives "<stem>_<mode>.<ext>" next to input. Inputs whose
// format cannot be written (or that have no extension) get ".png".
func OutputPath(input string, mode Mode) string {
	ext := filepath.Ext(input)
	stem := strings.TrimSuffix(input, ext)
	if ext == "" || !imageio.FormatFromPath(input).CanEncode() {
		ext = ".png"
	}
	return stem + "_" + string(mode) + ext
}

// Jobs pairs inputs with outputs. An explicit output is only valid for a
// single input. Two arguments where the second does not exist are taken
// as "<input> <output>".
func Jobs(args []string, output string, mode Mode) ([]Job, error) {
	if output != "" {
		if len(args) != 1 {
			return nil, fmt.Errorf("--output needs exactly one input, got %d", len(args))
		}
		return []Job{{Input: args[0], Output: output}}, nil
	}
	if len(args) == 2 {
		if _, err := os.Stat(args[1]); errors.Is(err, os.ErrNotExist) {
			return []Job{{Input: args[0], Output: args[1]}}, nil
		}
	}
	jobs := make([]Job, 0, len(args))
	for _, in := range args {
		jobs = append(jobs, Job{Input: in, Output: OutputPath(in, mode)})
	}
	return jobs, nil
}

// Run renders every job in order and returns the jobs that were written.
// A failing file is logged and skipped; the joined per-file errors are
// returned once all jobs were attempted. Cancelling ctx stops the batch
// before the next file.
func Run(ctx context.Context, jobs []Job, opts Options) ([]Job, error) {
	var (
		written []Job
		errs    []error
	)
	for i, job := range jobs {
		if err := ctx.Err(); err != nil {
			errs = append(errs, fmt.Errorf("batch stopped before %s: %w", job.Input, err))
			break
		}
		fctx := logging.AppendCtx(ctx, slog.String("input", job.Input), slog.Int("index", i))
		start := time.Now()
		if err := RenderFile(fctx, job, opts); err != nil {
			var de *imageio.DecodeError
			if errors.As(err, &de) {
				slog.ErrorContext(fctx, "skipping unreadable image", "error", err)
			} else {
				slog.ErrorContext(fctx, "failed to render image", "error", err)
			}
			errs = append(errs, err)
			continue
		}
		slog.InfoContext(fctx, "wrote output", "output", job.Output, "took", time.Since(start))
		written = append(written, job)
	}
	return written, errors.Join(errs...)
}

// RenderFile decodes job.Input, renders it per opts and encodes the
// result to job.Output.
func RenderFile(ctx context.Context, job Job, opts Options) error {
	w, h, rgb, err := imageio.Decode(job.Input)
	if err != nil {
		return err
	}
	src, err := canvas.FromBuffer(rgb, w, h)
	if err != nil {
		return fmt.Errorf("%s: %w", job.Input, err)
	}
	slog.DebugContext(ctx, "decoded image", "size", src.Dimensions().String())

	rendered, err := Render(src, opts)
	if err != nil {
		return fmt.Errorf("%s: %w", job.Input, err)
	}

	out := rendered
	if !opts.Standalone {
		if out, err = canvas.Compose(src, rendered); err != nil {
			return fmt.Errorf("%s: %w", job.Input, err)
		}
	}
	if err := imageio.Encode(job.Output, out.Width(), out.Height(), out.Bytes()); err != nil {
		return err
	}

	if opts.Preview && opts.PreviewOut != nil {
		if err := preview.Show(opts.PreviewOut, preview.Detect(nil), out); err != nil {
			slog.WarnContext(ctx, "preview unavailable", "error", err)
		}
	}
	return nil
}

// Render draws the histogram or waveform of src.
func Render(src *canvas.Canvas, opts Options) (*canvas.Canvas, error) {
	height := opts.Height
	if height <= 0 {
		height = max(1, src.Height()/4)
	}

	var (
		rendered *canvas.Canvas
		caption  string
		err      error
	)
	switch opts.Mode {
	case ModeWaveform:
		wf := histogram.Waveform{Height: height, Scale: opts.Scale, Workers: opts.Workers}
		rendered, err = wf.Render(src)
		caption = "waveform " + opts.Scale.String()
	default:
		width := opts.Width
		if width <= 0 {
			width = src.Width()
		}
		hist := histogram.Count(src.Bytes())
		rendered, err = histogram.Renderer{Width: width, Height: height, Scale: opts.Scale}.Render(hist)
		caption = histogram.MaxLabel(hist)
	}
	if err != nil {
		return nil, err
	}
	if opts.Label {
		histogram.Label(rendered, caption)
	}
	return rendered, nil
}
