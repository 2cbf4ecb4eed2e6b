// Package textfile stores the schedule in a line-oriented, pipe-delimited text file.
package textfile

import (
	"bufio"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/trezcool/studyplanner/core"
	"github.com/trezcool/studyplanner/core/activity"
)

var ErrNoDataFile = errors.New("data file does not exist")

type Store struct {
	path   string
	logger core.Logger
}

var _ activity.Store = (*Store)(nil)

func NewStore(path string, logger core.Logger) *Store {
	return &Store{path: path, logger: logger}
}

func (s *Store) Path() string { return s.path }

func (s *Store) Exists() bool {
	_, err := os.Stat(s.path)
	return err == nil
}

// Load reads every well-formed line of the file. Malformed lines are skipped with a warning;
// a missing file is an empty schedule.
func (s *Store) Load(ctx context.Context) ([]activity.Activity, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			s.logger.Info("data file not found, starting with an empty schedule", "path", s.path)
			return nil, nil
		}
		return nil, errors.Wrap(err, "opening data file")
	}
	defer f.Close()

	acts, err := s.read(ctx, f)
	if err != nil {
		return nil, err
	}
	s.logger.Info("schedule loaded", "path", s.path, "count", len(acts))
	return acts, nil
}

func (s *Store) read(ctx context.Context, r io.Reader) ([]activity.Activity, error) {
	acts := make([]activity.Activity, 0)
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		a, err := UnmarshalLine(line)
		if err != nil {
			s.logger.Warn("skipping malformed line", "path", s.path, "line", lineNo, "error", err)
			continue
		}
		acts = append(acts, a)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "reading data file")
	}
	return acts, nil
}

// Save rewrites the whole file.
func (s *Store) Save(ctx context.Context, activities []activity.Activity) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return errors.Wrap(err, "creating temp data file")
	}
	defer os.Remove(tmp.Name())

	w := bufio.NewWriter(tmp)
	for _, a := range activities {
		if _, err := w.WriteString(MarshalLine(a) + "\n"); err != nil {
			tmp.Close()
			return errors.Wrap(err, "writing data file")
		}
	}
	if err := w.Flush(); err != nil {
		tmp.Close()
		return errors.Wrap(err, "writing data file")
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(err, "closing data file")
	}
	mode := os.FileMode(0o644)
	if fi, err := os.Stat(s.path); err == nil {
		mode = fi.Mode().Perm()
	}
	if err := os.Chmod(tmp.Name(), mode); err != nil {
		return errors.Wrap(err, "setting data file mode")
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return errors.Wrap(err, "replacing data file")
	}
	s.logger.Debug("schedule saved", "path", s.path, "count", len(activities))
	return nil
}

// Backup copies the data file byte for byte to dst.
func (s *Store) Backup(dst string) error {
	src, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return ErrNoDataFile
		}
		return errors.Wrap(err, "opening data file")
	}
	defer src.Close()

	out, err := os.Create(dst)
	if err != nil {
		return errors.Wrap(err, "creating backup file")
	}
	if _, err := io.Copy(out, src); err != nil {
		out.Close()
		return errors.Wrap(err, "copying data file")
	}
	if err := out.Close(); err != nil {
		return errors.Wrap(err, "closing backup file")
	}
	s.logger.Info("backup written", "path", dst)
	return nil
}

// Clear deletes the data file.
func (s *Store) Clear() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "removing data file")
	}
	return nil
}
