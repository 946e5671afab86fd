package screens

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"app/backend"
	"app/logger"
)

// UploadScreen runs the two-step sales ingestion: initialize backend storage,
// then upload the CSV. If the first step fails the upload is never attempted
// and the initialization error surfaces verbatim.
type UploadScreen struct {
	state
	api Backend
	log *logger.Logger

	filename string
	result   *backend.UploadResult
}

// UploadSnapshot is the upload view model.
type UploadSnapshot struct {
	Phase    Phase                 `json:"phase"`
	Error    string                `json:"error,omitempty"`
	Filename string                `json:"filename"`
	Result   *backend.UploadResult `json:"result,omitempty"`
}

func NewUploadScreen(api Backend, log *logger.Logger) *UploadScreen {
	return &UploadScreen{
		state: state{phase: PhaseIdle},
		api:   api,
		log:   log.With("screen", "upload"),
	}
}

// Upload validates the file locally and runs the init-then-upload sequence.
// A validation failure is returned to the caller and never reaches the
// transport; transport and backend failures land in the screen state.
func (s *UploadScreen) Upload(ctx context.Context, filename string, size int64, file io.Reader) error {
	if strings.ToLower(filepath.Ext(filename)) != ".csv" {
		return fmt.Errorf("only .csv files can be uploaded, got %q", filepath.Base(filename))
	}
	if file == nil {
		return fmt.Errorf("no file provided")
	}
	if size <= 0 {
		return fmt.Errorf("uploaded file is empty")
	}

	gen := s.begin()

	if err := s.api.InitDB(ctx); err != nil {
		s.finish(gen, err, nil)
		return nil
	}

	result, err := s.api.UploadSales(ctx, filename, file)
	if err != nil {
		s.finish(gen, err, nil)
		return nil
	}

	s.log.Info("sales upload processed",
		"filename", filename, "rows", result.RowsProcessed, "failed", result.RowsFailed)

	s.finish(gen, nil, func() {
		s.filename = filename
		s.result = &result
	})
	return nil
}

// Snapshot returns a copy of the current view model.
func (s *UploadScreen) Snapshot() UploadSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return UploadSnapshot{
		Phase:    s.phase,
		Error:    s.errMsg,
		Filename: s.filename,
		Result:   s.result,
	}
}
