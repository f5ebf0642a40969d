package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	tcmp3 "github.com/tcolgate/mp3"

	"dancerfit/admin-dashboard/internal/logger"
)

var (
	ErrNoDuration   = errors.New("media duration not available")
	ErrProbeMissing = errors.New("no prober configured")
)

// Prober reads the play duration of a local media file in seconds. It only
// needs container metadata, never the full payload.
type Prober interface {
	Probe(ctx context.Context, path string) (float64, error)
}

// ProberFunc adapts a function to Prober.
type ProberFunc func(ctx context.Context, path string) (float64, error)

func (f ProberFunc) Probe(ctx context.Context, path string) (float64, error) {
	return f(ctx, path)
}

// FFProbe shells out to ffprobe.
type FFProbe struct {
	Path string // binary, "ffprobe" when empty
}

func (p FFProbe) Probe(ctx context.Context, path string) (float64, error) {
	bin := p.Path
	if bin == "" {
		bin = "ffprobe"
	}
	cmd := exec.CommandContext(ctx, bin,
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		path,
	)
	out, err := cmd.Output()
	if err != nil {
		return 0, fmt.Errorf("ffprobe %s: %w", filepath.Base(path), err)
	}
	raw := strings.TrimSpace(string(out))
	if raw == "" || raw == "N/A" {
		return 0, ErrNoDuration
	}
	d, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: ffprobe returned %q", ErrNoDuration, raw)
	}
	return d, nil
}

// MP3Probe decodes MPEG audio frame headers and sums their durations.
type MP3Probe struct{}

func (MP3Probe) Probe(ctx context.Context, path string) (float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	var (
		dur     float64
		dec     = tcmp3.NewDecoder(f)
		frame   tcmp3.Frame
		skipped int
		frames  int
	)
	for {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		if err := dec.Decode(&frame, &skipped); err != nil {
			// A truncated last frame still leaves a usable total.
			if errors.Is(err, io.EOF) || (frames > 0 && errors.Is(err, io.ErrUnexpectedEOF)) {
				break
			}
			if frames == 0 {
				return 0, fmt.Errorf("%w: %v", ErrNoDuration, err)
			}
			return 0, fmt.Errorf("decode mp3 frame %d: %w", frames+1, err)
		}
		frames++
		dur += frame.Duration().Seconds()
	}
	if frames == 0 {
		return 0, ErrNoDuration
	}
	return dur, nil
}

// Dispatch picks a prober by file extension and falls back to Default.
type Dispatch struct {
	ByExt   map[string]Prober // keys are lower-case, with the dot
	Default Prober
}

// NewDispatch routes .mp3 files to MP3Probe and everything else to ffprobe.
func NewDispatch(ffprobePath string) *Dispatch {
	return &Dispatch{
		ByExt:   map[string]Prober{".mp3": MP3Probe{}},
		Default: FFProbe{Path: ffprobePath},
	}
}

func (d *Dispatch) Probe(ctx context.Context, path string) (float64, error) {
	if p, ok := d.ByExt[strings.ToLower(filepath.Ext(path))]; ok {
		return p.Probe(ctx, path)
	}
	if d.Default == nil {
		return 0, ErrProbeMissing
	}
	return d.Default.Probe(ctx, path)
}

// Opener is anything that can hand out the bytes of an uploaded file;
// *multipart.FileHeader satisfies it through an adapter in the submission package.
type Opener interface {
	Open() (io.ReadCloser, error)
	Filename() string
}

// ProbeUpload copies an upload to a temporary file, probes it and removes the
// temporary file again. The duration is returned formatted; on failure it is
// empty so required-field validation catches it.
func ProbeUpload(ctx context.Context, p Prober, upload Opener, log *logger.Logger) (string, error) {
	if p == nil {
		return "", ErrProbeMissing
	}
	src, err := upload.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	tmp, err := os.CreateTemp("", "probe-*"+strings.ToLower(filepath.Ext(upload.Filename())))
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	defer func() {
		tmp.Close()
		if rmErr := os.Remove(tmp.Name()); rmErr != nil && log != nil {
			log.Warn("could not remove probe temp file", "path", tmp.Name(), "error", rmErr)
		}
	}()

	if _, err := io.Copy(tmp, src); err != nil {
		return "", fmt.Errorf("copy upload: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return "", fmt.Errorf("sync temp file: %w", err)
	}

	seconds, err := p.Probe(ctx, tmp.Name())
	if err != nil {
		if log != nil {
			log.Warn("media probe failed", "file", upload.Filename(), "error", err)
		}
		return "", err
	}
	return FormatDuration(seconds), nil
}
