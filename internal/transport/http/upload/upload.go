package upload

import (
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/viper"

	"github.com/ngocdai99/furniture-backend/internal/transport/http/respond"
)

const (
	maxFiles      = 9
	maxUploadSize = 10 << 20
)

// Single stores one multipart file under the configured directory and
// returns its public URL.
func Single(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		respond.Validation(w, r, "invalid multipart form")

		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		respond.Validation(w, r, "file is required")

		return
	}
	defer file.Close()

	url, err := store(file, header.Filename)
	if err != nil {
		respond.Error(w, r, err)

		return
	}

	respond.JSON(w, r, map[string]any{
		"message": "Uploaded successfully",
		"url":     url,
	})
}

// Multi stores up to maxFiles multipart files and returns their public URLs.
func Multi(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		respond.Validation(w, r, "invalid multipart form")

		return
	}

	files := r.MultipartForm.File["files"]
	if len(files) == 0 {
		respond.Validation(w, r, "files are required")

		return
	}
	if len(files) > maxFiles {
		respond.Validation(w, r, "at most 9 files per request")

		return
	}

	urls := make([]string, 0, len(files))
	for _, header := range files {
		file, err := header.Open()
		if err != nil {
			respond.Error(w, r, err)

			return
		}

		url, err := store(file, header.Filename)
		file.Close()
		if err != nil {
			respond.Error(w, r, err)

			return
		}

		urls = append(urls, url)
	}

	respond.JSON(w, r, map[string]any{
		"message": "Uploaded successfully",
		"urls":    urls,
	})
}

// store writes src to disk under a uuid-derived name and returns the
// public URL for the stored file.
func store(src io.Reader, originalName string) (string, error) {
	dir := viper.GetString("upload.dir")
	baseURL := strings.TrimRight(viper.GetString("upload.base_url"), "/")

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	name := uuid.NewString() + filepath.Ext(originalName)

	dst, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}

	return baseURL + "/" + name, nil
}
