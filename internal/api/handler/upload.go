package handler

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
)

const maxImageBytes = 5 << 20

var imageExtensions = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
	".gif":  {},
	".webp": {},
}

// saveImage stores the optional multipart "image" field under dir and returns
// the stored path relative to the static route. An absent field returns "".
func saveImage(c echo.Context, dir string) (string, error) {
	file, err := c.FormFile("image")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return "", nil
		}
		return "", echo.NewHTTPError(http.StatusBadRequest, "invalid image upload")
	}

	if file.Size > maxImageBytes {
		return "", echo.NewHTTPError(http.StatusBadRequest, "image exceeds the 5MB limit")
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if _, ok := imageExtensions[ext]; !ok {
		return "", echo.NewHTTPError(http.StatusBadRequest, "unsupported image format")
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	name := fmt.Sprintf("course-%d%s", time.Now().UnixNano(), ext)
	dstPath := filepath.Join(dir, name)

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(dstPath)
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("write upload: %w", err)
	}

	return "/uploads/" + name, nil
}
