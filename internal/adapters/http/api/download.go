package api

import (
	"bytes"
	"net/http"
	"net/url"

	"github.com/Nikoblas/campeonatoeuskadiponis/internal/adapters/export"
	"github.com/Nikoblas/campeonatoeuskadiponis/pkg/metrics"
)

// formatParam reads ?format=. ok is false when the caller wants JSON.
func formatParam(r *http.Request, fallback export.Format) (export.Format, bool, error) {
	v := r.URL.Query().Get("format")
	switch v {
	case "":
		if fallback == "" {
			return "", false, nil
		}
		return fallback, true, nil
	case "json":
		return "", false, nil
	}
	f, err := export.ParseFormat(v)
	if err != nil {
		return "", false, err
	}
	return f, true, nil
}

// writeDownload renders tables as an attachment named file.
func writeDownload(w http.ResponseWriter, kind string, f export.Format, file string, tables ...export.Table) error {
	var buf bytes.Buffer
	if err := export.Write(&buf, f, tables...); err != nil {
		return err
	}
	metrics.RecordExport(kind, string(f))
	w.Header().Set("Content-Type", f.ContentType())
	w.Header().Set("Content-Disposition", "attachment; filename*=UTF-8''"+url.PathEscape(file))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
	return nil
}
