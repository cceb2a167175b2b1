// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package sink

import (
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"sync/atomic"
	"time"
)

// SuffixPolicy controls what, if anything, is appended to a rotated
// file's name.
type SuffixPolicy uint8

const (
	// SuffixNone keeps humanjuan-logger's numeric backup chain:
	// app.log -> app.log.0 -> app.log.1 -> ...
	SuffixNone SuffixPolicy = iota
	// SuffixStartDate renames app.log to app-2026-07-30.log before
	// resuming numeric backups, grounded on rotateByDate.
	SuffixStartDate
	// SuffixStartDateTime is SuffixStartDate with second resolution.
	SuffixStartDateTime
)

const dateFormat = "2006-01-02"
const dateTimeFormat = "2006-01-02T15-04-05"

// FileOptions configures a File sink.
type FileOptions struct {
	Path          string
	MaxSizeBytes  int64 // 0 disables size-based rotation
	MaxBackups    int   // number of rotated files retained, minimum 1 when MaxSizeBytes > 0
	Suffix        SuffixPolicy
	DailyRotation bool // roll over once per calendar day regardless of size
	Compress      bool // gzip the rotated-out file, grounded on opencoff-go-logger's rotateLog
	BeforeOpen    func(path string)
	AfterOpen     func(path string, f *os.File)
	BeforeClose   func(path string, f *os.File)
	AfterClose    func(path string)
}

// File is a rotating file sink.
type File struct {
	opts    FileOptions
	f       *os.File
	size    int64
	lastDay string
	rotated int64 // count of completed rotations, for diagnostics
}

// NewFile opens (creating if necessary) the file at opts.Path for
// appending and returns a File sink.
func NewFile(opts FileOptions) (*File, error) {
	if opts.MaxSizeBytes > 0 && opts.MaxBackups < 1 {
		opts.MaxBackups = 1
	}
	fs := &File{opts: opts, lastDay: time.Now().Format(dateFormat)}
	if err := fs.open(); err != nil {
		return nil, err
	}
	return fs, nil
}

func (fs *File) open() error {
	if fs.opts.BeforeOpen != nil {
		fs.opts.BeforeOpen(fs.opts.Path)
	}
	f, err := os.OpenFile(fs.opts.Path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return err
	}
	fs.f = f
	fs.size = info.Size()
	if fs.opts.AfterOpen != nil {
		fs.opts.AfterOpen(fs.opts.Path, f)
	}
	return nil
}

// Write appends b to the current file, tracking size for rotation.
// When MaxSizeBytes is set and b would push the file over the bound,
// it rotates first so a completed file never exceeds MaxSizeBytes
// (short of a single record larger than the bound itself).
func (fs *File) Write(b []byte) error {
	if fs.opts.MaxSizeBytes > 0 && fs.size > 0 && fs.size+int64(len(b)) > fs.opts.MaxSizeBytes {
		if err := fs.rotate(); err != nil {
			return err
		}
	}
	n, err := fs.f.Write(b)
	fs.size += int64(n)
	return err
}

func (fs *File) Flush() error { return fs.f.Sync() }

func (fs *File) Close() error {
	if fs.opts.BeforeClose != nil {
		fs.opts.BeforeClose(fs.opts.Path, fs.f)
	}
	err := fs.f.Close()
	if fs.opts.AfterClose != nil {
		fs.opts.AfterClose(fs.opts.Path)
	}
	return err
}

// RotateIfNeeded rolls the file over when its size has reached
// MaxSizeBytes, or when DailyRotation is set and the calendar day has
// changed since the file was opened. Mirrors humanjuan-logger's
// sizeCheck/DailyRotation split.
func (fs *File) RotateIfNeeded() error {
	if fs.opts.DailyRotation {
		today := time.Now().Format(dateFormat)
		if today != fs.lastDay {
			oldDay := fs.lastDay
			fs.lastDay = today
			if fs.opts.Suffix == SuffixNone {
				return fs.rotate()
			}
			if err := fs.rotateByDate(oldDay); err != nil {
				return err
			}
			return nil
		}
	}
	if fs.opts.MaxSizeBytes > 0 && fs.size >= fs.opts.MaxSizeBytes {
		return fs.rotate()
	}
	return nil
}

// rotate performs the humanjuan-logger numeric backup chain, with N =
// MaxBackups: app.log.N-2 -> app.log.N-1, ..., app.log.0 -> app.log.1,
// then app.log -> app.log.0 (".gz" appended to every backup name when
// Compress is set), then reopens app.log fresh.
func (fs *File) rotate() error {
	base := fs.opts.Path
	if err := fs.closeForRotation(); err != nil {
		return err
	}

	ext := ""
	if fs.opts.Compress {
		ext = ".gz"
	}
	for i := fs.opts.MaxBackups - 2; i >= 0; i-- {
		src := fmt.Sprintf("%s.%d%s", base, i, ext)
		dst := fmt.Sprintf("%s.%d%s", base, i+1, ext)
		if _, err := os.Stat(src); err == nil {
			os.Rename(src, dst)
		}
	}
	target := base + ".0"
	if fs.opts.Compress {
		if err := compressTo(base, target+".gz"); err != nil {
			return err
		}
		os.Remove(base)
	} else {
		os.Rename(base, target)
	}
	atomic.AddInt64(&fs.rotated, 1)
	return fs.open()
}

// rotateByDate renames the active file to a dated name (app.log ->
// app-2026-07-30.log) before resuming the numeric chain, matching
// humanjuan-logger's rotateByDate.
func (fs *File) rotateByDate(oldDay string) error {
	base := fs.opts.Path
	if err := fs.closeForRotation(); err != nil {
		return err
	}

	suffix := oldDay
	if fs.opts.Suffix == SuffixStartDateTime {
		suffix = time.Now().Format(dateTimeFormat)
	}
	dir, name := filepath.Dir(base), filepath.Base(base)
	ext := filepath.Ext(name)
	stem := name[:len(name)-len(ext)]
	dated := filepath.Join(dir, stem+"-"+suffix+ext)

	if fs.opts.Compress {
		if err := compressTo(base, dated+".gz"); err != nil {
			return err
		}
		os.Remove(base)
	} else {
		os.Rename(base, dated)
	}

	for i := 0; ; i++ {
		bak := fmt.Sprintf("%s.%d", base, i)
		if _, err := os.Stat(bak); err != nil {
			break
		}
		os.Rename(bak, dated+"."+strconv.Itoa(i))
	}

	atomic.AddInt64(&fs.rotated, 1)
	return fs.open()
}

func (fs *File) closeForRotation() error {
	if fs.opts.BeforeClose != nil {
		fs.opts.BeforeClose(fs.opts.Path, fs.f)
	}
	err := fs.f.Close()
	if fs.opts.AfterClose != nil {
		fs.opts.AfterClose(fs.opts.Path)
	}
	return err
}

// compressTo gzips src into dst, grounded on opencoff-go-logger's
// rotateLog (seek-to-start, gzip.NewWriterLevel at best compression,
// io.Copy, then close writer then file).
func compressTo(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}

	gw, err := gzip.NewWriterLevel(out, gzip.BestCompression)
	if err != nil {
		out.Close()
		return err
	}
	if _, err := io.Copy(gw, in); err != nil {
		gw.Close()
		out.Close()
		return err
	}
	if err := gw.Close(); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// Rotations reports how many rotations have completed, for tests and
// diagnostics.
func (fs *File) Rotations() int64 { return atomic.LoadInt64(&fs.rotated) }
