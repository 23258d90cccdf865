package coordinator

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-websettings/pkg/chunked"
	"github.com/goliatone/go-websettings/pkg/metrics"
)

func (c *Coordinator) handleDocument(w http.ResponseWriter, r *http.Request) {
	page := c.Page()
	gen := page.NewContext()
	defer gen.Release()

	c.mu.Lock()
	size := max(c.chunkSize, page.MinBufferSize())
	c.mu.Unlock()
	buf := make([]byte, size)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	flusher, _ := w.(http.Flusher)
	c.metrics.DocumentStarted()

	index := 0
	for {
		if err := r.Context().Err(); err != nil {
			c.logger.Debug().Err(err).Int("sent", index).Msg("Document aborted by client")
			return
		}

		c.mu.Lock()
		n, err := gen.Fill(buf, index)
		if errors.Is(err, chunked.ErrBufferTooSmall) && n == 0 {
			// A setting grew since the buffer was sized.
			if need := page.MinBufferSize(); need > len(buf) {
				buf = make([]byte, need)
				n, err = gen.Fill(buf, index)
			}
		}
		c.mu.Unlock()

		if n > 0 {
			if _, werr := w.Write(buf[:n]); werr != nil {
				c.logger.Debug().Err(werr).Int("sent", index).Msg("Document write failed")
				return
			}
			c.metrics.ChunkWritten(n)
			if flusher != nil {
				flusher.Flush()
			}
		}
		if err != nil {
			c.metrics.GeneratorFailed()
			c.logger.Error().Err(err).Str("state", gen.State().String()).Int("sent", index+n).Msg("Document generation failed")
			if index+n == 0 {
				writeError(w, err)
			}
			return
		}
		if n == 0 {
			return
		}
		index += n
	}
}

func (c *Coordinator) handleStatic(path, contentType string, payload func() string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stream := chunked.NewStatic(payload())
		defer stream.Release()

		w.Header().Set("Content-Type", contentType)
		w.Header().Set("Cache-Control", "public, max-age=86400")
		c.metrics.StaticServed(path)

		buf := make([]byte, c.chunkSize)
		for {
			n, err := stream.Fill(buf, 0)
			if err != nil || n == 0 {
				return
			}
			if _, err := w.Write(buf[:n]); err != nil {
				return
			}
			c.metrics.ChunkWritten(n)
		}
	}
}

func (c *Coordinator) handleGet(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	tabs := query["tab"]
	switch {
	case len(tabs) == 0:
		writeError(w, errTabMissing)
		return
	case len(tabs) > 1:
		writeError(w, errTabDuplicated)
		return
	}

	values := c.Snapshot(tabs[0], query["setting"]...)
	c.metrics.SnapshotServed()

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(values); err != nil {
		c.logger.Debug().Err(err).Msg("Snapshot write failed")
	}
}

func (c *Coordinator) handleSet(w http.ResponseWriter, r *http.Request) {
	if !c.authorize(w, r) {
		return
	}
	if err := r.ParseMultipartForm(DefaultFormMemory); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		writeError(w, StatusError{Code: http.StatusBadRequest, Err: fmt.Errorf("parse form: %w", err)})
		return
	}

	c.mu.Lock()
	for _, p := range c.registry.List() {
		p.ApplyValues(r.PostForm)
	}
	c.mu.Unlock()

	c.metrics.Saved()
	c.logger.Info().Int("fields", len(r.PostForm)).Msg("Settings saved")
	if c.onSave != nil {
		c.onSave(c)
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, `{"saved":true}`)
}

func (c *Coordinator) handleReboot(w http.ResponseWriter, r *http.Request) {
	if !c.authorize(w, r) {
		return
	}
	if err := c.pages.status(w, http.StatusOK, pageRebooting); err != nil {
		c.logger.Error().Err(err).Msg("Reboot page failed")
	}
	c.schedule("restart", c.onRestart)
}

func (c *Coordinator) handleFactoryReset(w http.ResponseWriter, r *http.Request) {
	if !c.authorize(w, r) {
		return
	}
	if r.URL.Query().Get("confirm") != "true" {
		if err := c.pages.status(w, http.StatusOK, pageResetUnconfirmed); err != nil {
			c.logger.Error().Err(err).Msg("Factory reset page failed")
		}
		return
	}
	if err := c.pages.status(w, http.StatusOK, pageResetting); err != nil {
		c.logger.Error().Err(err).Msg("Factory reset page failed")
	}
	c.schedule("factory-reset", c.onFactoryReset)
}

func (c *Coordinator) handleUploadForm(w http.ResponseWriter, r *http.Request) {
	if !c.authorize(w, r) {
		return
	}
	ctx := pongo2.Context{
		"title":  "Upload firmware",
		"field":  uploadField,
		"accept": ".bin,application/octet-stream",
	}
	if err := c.pages.write(w, http.StatusOK, pageUpload, ctx); err != nil {
		c.logger.Error().Err(err).Msg("Upload page failed")
	}
}

const uploadField = "file"

func (c *Coordinator) handleUpload(w http.ResponseWriter, r *http.Request) {
	if !c.authorize(w, r) {
		return
	}

	written, err := c.receiveUpload(w, r)
	if err != nil {
		c.metrics.Upload(metrics.UploadFailed)
		c.logger.Warn().Err(err).Int64("bytes", written).Msg("Firmware upload failed")
		if perr := c.pages.status(w, http.StatusInternalServerError, uploadFailedPage(err)); perr != nil {
			c.logger.Error().Err(perr).Msg("Upload failure page failed")
		}
		return
	}

	c.metrics.Upload(metrics.UploadSucceeded)
	c.logger.Info().Int64("bytes", written).Msg("Firmware upload completed")
	if err := c.pages.status(w, http.StatusOK, pageUploadDone); err != nil {
		c.logger.Error().Err(err).Msg("Upload page failed")
	}
	c.schedule("restart", c.onRestart)
}

// receiveUpload streams the file part of a multipart body into the updater.
func (c *Coordinator) receiveUpload(w http.ResponseWriter, r *http.Request) (int64, error) {
	c.uploadMu.Lock()
	defer c.uploadMu.Unlock()

	r.Body = http.MaxBytesReader(w, r.Body, c.maxUpload)
	reader, err := r.MultipartReader()
	if err != nil {
		return 0, fmt.Errorf("read upload: %w", err)
	}

	for {
		part, err := reader.NextPart()
		if errors.Is(err, io.EOF) {
			return 0, errNoFile
		}
		if err != nil {
			return 0, fmt.Errorf("read upload: %w", err)
		}
		if part.FormName() != uploadField {
			part.Close()
			continue
		}

		if err := c.updater.Begin(r.Context()); err != nil {
			part.Close()
			return 0, fmt.Errorf("begin update: %w", err)
		}
		written, err := io.Copy(c.updater, part)
		part.Close()
		if err != nil {
			_ = c.updater.End(false)
			return written, fmt.Errorf("write update: %w", err)
		}
		if err := c.updater.End(true); err != nil {
			return written, fmt.Errorf("finish update: %w", err)
		}
		return written, nil
	}
}

func (c *Coordinator) handleOpenAPI(w http.ResponseWriter, r *http.Request) {
	body, err := json.Marshal(c.OpenAPI())
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

func (c *Coordinator) handleNotFound(w http.ResponseWriter, r *http.Request) {
	if err := c.pages.status(w, http.StatusNotFound, pageNotFound); err != nil {
		c.logger.Error().Err(err).Msg("Not found page failed")
	}
}

// authorize checks credentials. On failure it answers the request with a
// challenge, or with 429 while this client's failures are throttled.
func (c *Coordinator) authorize(w http.ResponseWriter, r *http.Request) bool {
	if c.realm.Authenticate(r) {
		return true
	}
	if !c.realm.Allow(r) {
		c.metrics.Throttled()
		c.logger.Warn().Str("path", r.URL.Path).Str("remote", r.RemoteAddr).Msg("Authentication throttled")
		writeError(w, StatusError{Code: http.StatusTooManyRequests})
		return false
	}
	c.metrics.Challenged()
	c.logger.Debug().Str("path", r.URL.Path).Msg("Authentication challenge issued")
	c.realm.Challenge(w)
	return false
}
