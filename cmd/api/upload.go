package main

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/Zyntrix-company/Qruzine/internal/media"
)

const multipartMemory = 8 << 20

type DeleteImageRequest struct {
	URL      string `json:"url"`
	PublicID string `json:"publicId"`
}

func (app *application) parseUpload(w http.ResponseWriter, r *http.Request) error {
	r.Body = http.MaxBytesReader(w, r.Body, media.MaxFiles*media.MaxFileSize+1<<20)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			return media.ErrTooLarge
		}
		return fmt.Errorf("invalid multipart form: %w", err)
	}
	return nil
}

// uploadImageHandler godoc
//
//	@Summary	Upload one image
//	@Tags		upload
//	@Accept		mpfd
//	@Produce	json
//	@Param		image	formData	file	true	"Image (jpg, jpeg, png, webp; 5MB max)"
//	@Success	200		{object}	media.Object
//	@Failure	400		{object}	envelope
//	@Security	ApiKeyAuth
//	@Router		/upload/image [post]
func (app *application) uploadImageHandler(w http.ResponseWriter, r *http.Request) {
	if err := app.parseUpload(w, r); err != nil {
		app.errorResponse(w, r, err)
		return
	}

	files := r.MultipartForm.File["image"]
	if len(files) != 1 {
		app.badRequestResponse(w, r, errors.New("no image file provided"))
		return
	}

	obj, err := app.uploader.Upload(r.Context(), files[0])
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	app.logger.Infow("image uploaded", "public_id", obj.PublicID, "size", obj.Size)

	if err := app.messageResponse(w, http.StatusOK, "Image uploaded successfully", obj); err != nil {
		app.internalServerError(w, r, err)
	}
}

// uploadImagesHandler godoc
//
//	@Summary	Upload up to five images
//	@Tags		upload
//	@Accept		mpfd
//	@Produce	json
//	@Param		images	formData	file	true	"Images"
//	@Success	200		{array}		media.Object
//	@Failure	400		{object}	envelope
//	@Security	ApiKeyAuth
//	@Router		/upload/images [post]
func (app *application) uploadImagesHandler(w http.ResponseWriter, r *http.Request) {
	if err := app.parseUpload(w, r); err != nil {
		app.errorResponse(w, r, err)
		return
	}

	files := r.MultipartForm.File["images"]
	switch {
	case len(files) == 0:
		app.badRequestResponse(w, r, errors.New("no image files provided"))
		return
	case len(files) > media.MaxFiles:
		app.badRequestResponse(w, r, fmt.Errorf("at most %d images can be uploaded at once", media.MaxFiles))
		return
	}

	uploaded := make([]*media.Object, 0, len(files))
	for _, fh := range files {
		obj, err := app.uploader.Upload(r.Context(), fh)
		if err != nil {
			for _, done := range uploaded {
				if derr := app.uploader.Delete(r.Context(), done.PublicID); derr != nil {
					app.logger.Warnw("failed to roll back upload", "public_id", done.PublicID, "error", derr)
				}
			}
			app.errorResponse(w, r, fmt.Errorf("%s: %w", fh.Filename, err))
			return
		}
		uploaded = append(uploaded, obj)
	}

	if err := app.messageResponse(w, http.StatusOK, fmt.Sprintf("%d images uploaded successfully", len(uploaded)), uploaded); err != nil {
		app.internalServerError(w, r, err)
	}
}

// deleteImageHandler godoc
//
//	@Summary	Delete an uploaded image
//	@Tags		upload
//	@Accept		json
//	@Produce	json
//	@Param		request	body		DeleteImageRequest	true	"Image URL or public id"
//	@Success	200		{object}	envelope
//	@Failure	400		{object}	envelope
//	@Failure	404		{object}	envelope
//	@Security	ApiKeyAuth
//	@Router		/upload/image [delete]
func (app *application) deleteImageHandler(w http.ResponseWriter, r *http.Request) {
	var req DeleteImageRequest
	if err := readJson(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	ref := req.PublicID
	if ref == "" {
		ref = req.URL
	}
	if ref == "" {
		app.badRequestResponse(w, r, errors.New("url or publicId is required"))
		return
	}

	if err := app.uploader.Delete(r.Context(), ref); err != nil {
		app.errorResponse(w, r, err)
		return
	}

	if err := app.messageResponse(w, http.StatusOK, "Image deleted successfully", nil); err != nil {
		app.internalServerError(w, r, err)
	}
}
