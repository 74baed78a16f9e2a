package handler

import (
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"gympoint/internal/response"
	"gympoint/internal/service"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

type ImportService interface {
	ProcessCSV(ctx context.Context, filePath string) error
	FileProgress(fileName string) *service.ProgressInfo
	AllProgress() []*service.ProgressInfo
	RegisterProgressListener(ch chan *service.ProgressInfo)
	UnregisterProgressListener(ch chan *service.ProgressInfo)
}

// ImportRecorder counts finished imports by status.
type ImportRecorder interface {
	RecordImport(status string)
}

type ImportHandler struct {
	importService ImportService
	recorder      ImportRecorder
	log           logrus.FieldLogger
	dir           string
	maxBytes      int64
	// ctx outlives the upload request; imports stop when it is cancelled.
	ctx context.Context
}

func NewImportHandler(ctx context.Context, importService ImportService, recorder ImportRecorder, dir string, maxBytes int64, log logrus.FieldLogger) *ImportHandler {
	return &ImportHandler{
		importService: importService,
		recorder:      recorder,
		log:           log,
		dir:           dir,
		maxBytes:      maxBytes,
		ctx:           ctx,
	}
}

// Upload stores every CSV of the "files" form field and imports them in the
// background. It answers 202 with the accepted file names.
func (h *ImportHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if err := os.MkdirAll(h.dir, 0o755); err != nil {
		h.log.WithError(err).Error("could not create upload directory")
		response.Error(w, http.StatusInternalServerError, msgInternal)
		return
	}

	if err := r.ParseMultipartForm(h.maxBytes); err != nil {
		response.Error(w, http.StatusRequestEntityTooLarge, "File too large or bad request")
		return
	}

	files := r.MultipartForm.File["files"]
	if len(files) == 0 {
		response.Error(w, http.StatusBadRequest, "No files uploaded")
		return
	}

	fileNames := make([]string, 0, len(files))
	for _, header := range files {
		name := filepath.Base(header.Filename)
		savePath := filepath.Join(h.dir, name)
		log := h.log.WithField("file", name)

		if err := saveUpload(header, savePath); err != nil {
			log.WithError(err).Warn("could not store upload")
			continue
		}
		fileNames = append(fileNames, name)

		go func(path string) {
			status := service.StatusCompleted
			if err := h.importService.ProcessCSV(h.ctx, path); err != nil {
				log.WithError(err).Error("import failed")
				status = service.StatusError
			}
			if h.recorder != nil {
				h.recorder.RecordImport(status)
			}
		}(savePath)
	}

	response.WriteJSON(w, http.StatusAccepted, map[string]interface{}{
		"message": "Files uploaded successfully and processing started",
		"files":   fileNames,
	})
}

func saveUpload(header *multipart.FileHeader, path string) error {
	src, err := header.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	dst, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return err
	}
	return dst.Close()
}

func (h *ImportHandler) AllProgress(w http.ResponseWriter, r *http.Request) {
	response.WriteJSON(w, http.StatusOK, h.importService.AllProgress())
}

// FileProgress answers 404 for a file that was never uploaded.
func (h *ImportHandler) FileProgress(w http.ResponseWriter, r *http.Request) {
	progress := h.importService.FileProgress(filepath.Base(mux.Vars(r)["file"]))
	if progress == nil {
		response.Error(w, http.StatusNotFound, "File not found or not being processed")
		return
	}
	response.WriteJSON(w, http.StatusOK, progress)
}

// Events streams progress updates as server-sent events until the client
// goes away.
func (h *ImportHandler) Events(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		response.Error(w, http.StatusInternalServerError, "Streaming unsupported")
		return
	}

	// The stream outlives the server write timeout.
	_ = http.NewResponseController(w).SetWriteDeadline(time.Time{})

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	progressChan := make(chan *service.ProgressInfo, 16)
	h.importService.RegisterProgressListener(progressChan)
	defer h.importService.UnregisterProgressListener(progressChan)

	for {
		select {
		case progress := <-progressChan:
			data, err := json.Marshal(progress)
			if err != nil {
				h.log.WithError(err).Warn("could not encode progress")
				continue
			}
			if _, err := w.Write([]byte("data: " + string(data) + "\n\n")); err != nil {
				return
			}
			flusher.Flush()
		case <-r.Context().Done():
			return
		}
	}
}
