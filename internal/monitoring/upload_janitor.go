package monitoring

import (
	"database/sql"
	"os"
	"path/filepath"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// maxUploadAge is how long an upload may sit unreferenced before the
// janitor deletes it. Uploads happen before the post that references them,
// so young orphans are usually posts still being composed.
const maxUploadAge = 24 * time.Hour

// UploadJanitor periodically deletes aged files from the upload directory
// that no post references. Clients upload an image first and attach the
// returned path to a post; abandoned drafts leave files behind.
type UploadJanitor struct {
	db        *sql.DB
	uploadDir string
	schedule  cron.Schedule
	done      chan bool
}

// NewUploadJanitor creates a janitor sweeping the given directory on the
// given cron schedule (standard five-field syntax or @-descriptors).
func NewUploadJanitor(db *sql.DB, uploadDir, scheduleExpr string) (*UploadJanitor, error) {
	schedule, err := cron.ParseStandard(scheduleExpr)
	if err != nil {
		return nil, err
	}
	return &UploadJanitor{
		db:        db,
		uploadDir: uploadDir,
		schedule:  schedule,
		done:      make(chan bool),
	}, nil
}

// Run starts the janitor's sweep loop.
func (j *UploadJanitor) Run() {
	log.Info().Str("dir", j.uploadDir).Msg("Starting upload janitor")
	for {
		next := j.schedule.Next(time.Now())
		timer := time.NewTimer(time.Until(next))
		select {
		case <-j.done:
			timer.Stop()
			log.Info().Msg("Stopping upload janitor")
			return
		case <-timer.C:
			j.Sweep()
		}
	}
}

// Stop halts the janitor.
func (j *UploadJanitor) Stop() {
	j.done <- true
}

// Sweep deletes aged upload files no post references.
func (j *UploadJanitor) Sweep() {
	entries, err := os.ReadDir(j.uploadDir)
	if err != nil {
		log.Error().Err(err).Str("dir", j.uploadDir).Msg("Janitor: failed to read upload directory")
		return
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if time.Since(info.ModTime()) < maxUploadAge {
			continue
		}

		imagePath := "/uploads/" + entry.Name()
		var refs int
		if err := j.db.QueryRow("SELECT COUNT(*) FROM posts WHERE image = ?", imagePath).Scan(&refs); err != nil {
			log.Error().Err(err).Str("image", imagePath).Msg("Janitor: reference lookup failed")
			continue
		}
		if refs > 0 {
			continue
		}

		if err := os.Remove(filepath.Join(j.uploadDir, entry.Name())); err != nil {
			log.Error().Err(err).Str("image", imagePath).Msg("Janitor: failed to remove orphaned upload")
			continue
		}
		log.Info().Str("image", imagePath).Msg("Janitor: removed orphaned upload")
	}
}
