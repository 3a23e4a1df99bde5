package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/Nikoblas/campeonatoeuskadiponis/internal/adapters/export"
	"github.com/Nikoblas/campeonatoeuskadiponis/internal/adapters/source"
	"github.com/Nikoblas/campeonatoeuskadiponis/internal/domain/model"
)

// MaxUploadBytes caps the body of a file upload.
const MaxUploadBytes = 10 << 20

// FilesDependencies lists what the file endpoints need.
type FilesDependencies interface {
	File(ctx context.Context, key model.FileKey) (*model.FileData, error)
	ReplaceFile(ctx context.Context, key model.FileKey, name string, data []byte) (*model.FileData, error)
}

// FilesHandler reads and replaces single results files.
type FilesHandler struct {
	deps FilesDependencies
}

// NewFilesHandler creates a new files handler.
func NewFilesHandler(deps FilesDependencies) *FilesHandler {
	return &FilesHandler{deps: deps}
}

func fileKey(op string, r *http.Request) (model.FileKey, error) {
	day, ok := model.ParseDay(chi.URLParam(r, "day"))
	if !ok {
		return model.FileKey{}, WrapKind(op, ErrBadRequest, errors.New("unknown day "+chi.URLParam(r, "day")))
	}
	return model.FileKey{
		Competition: chi.URLParam(r, "competition"),
		Day:         day,
		Category:    chi.URLParam(r, "category"),
	}, nil
}

type fileResponse struct {
	Key     model.FileKey        `json:"key"`
	Source  string               `json:"source"`
	Columns []string             `json:"columns"`
	Raw     []model.RawRow       `json:"raw"`
	Rows    []model.CanonicalRow `json:"rows"`
}

func newFileResponse(f *model.FileData) fileResponse {
	return fileResponse{
		Key:     f.Key,
		Source:  f.Source,
		Columns: export.Columns(f.Raw),
		Raw:     f.Raw,
		Rows:    f.Rows,
	}
}

// HandleGet handles GET /competitions/{competition}/files/{day}/{category}.
func (h *FilesHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	const op = "api.file_get"
	key, err := fileKey(op, r)
	if err != nil {
		fail(w, err)
		return
	}
	format, download, err := formatParam(r, "")
	if err != nil {
		fail(w, WrapKind(op, ErrBadRequest, err))
		return
	}

	f, err := h.deps.File(r.Context(), key)
	if err != nil {
		fail(w, Wrap(op, err))
		return
	}
	if !download {
		writeJSON(w, http.StatusOK, newFileResponse(f))
		return
	}
	name := export.FileName(format, key.Competition, key.BaseName())
	if err := writeDownload(w, "file", format, name, export.FileTable(f)); err != nil {
		fail(w, Wrap(op, err))
	}
}

// HandlePut handles PUT /competitions/{competition}/files/{day}/{category}.
// The body is the file itself; ?filename= or the content type picks the
// format.
func (h *FilesHandler) HandlePut(w http.ResponseWriter, r *http.Request) {
	const op = "api.file_put"
	key, err := fileKey(op, r)
	if err != nil {
		fail(w, err)
		return
	}

	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxUploadBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			fail(w, WrapKind(op, ErrTooLarge, err))
			return
		}
		fail(w, WrapKind(op, ErrBadRequest, err))
		return
	}
	if len(data) == 0 {
		fail(w, WrapKind(op, ErrBadRequest, errors.New("empty body")))
		return
	}

	f, err := h.deps.ReplaceFile(r.Context(), key, uploadName(r, key), data)
	if err != nil {
		fail(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, newFileResponse(f))
}

func uploadName(r *http.Request, key model.FileKey) string {
	if name := strings.TrimSpace(r.URL.Query().Get("filename")); name != "" {
		return name
	}
	if f, ok := source.FormatOf(r.Header.Get("Content-Type")); ok {
		return key.BaseName() + "." + string(f)
	}
	return key.BaseName()
}
