package http

import (
	"errors"
	"io"
	"net/http"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/studymate/pkg/domain/model"
	"github.com/secmon-lab/studymate/pkg/usecase"
	"github.com/secmon-lab/studymate/pkg/utils/errutil"
	"github.com/secmon-lab/studymate/pkg/utils/safe"
)

const uploadField = "file"

// uploadRoute describes one upload endpoint. accept returns false for file
// names the endpoint refuses before any processing.
type uploadRoute struct {
	kind        model.MediaKind
	accept      func(filename string) bool
	rejectReply string
}

var uploadPDF = uploadRoute{kind: model.MediaKindPDF}

var uploadPPTX = uploadRoute{kind: model.MediaKindPPTX}

var uploadImage = uploadRoute{
	kind:        model.MediaKindImage,
	accept:      isSupportedImage,
	rejectReply: usecase.ReplyImageOnly,
}

func isSupportedImage(filename string) bool {
	_, ok := model.ImageMIMEType(filename)
	return ok
}

type uploadResponse struct {
	Reply string `json:"reply"`
}

func uploadHandler(summary *usecase.SummaryUseCase, route uploadRoute) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		file, header, err := r.FormFile(uploadField)
		if err != nil {
			status := http.StatusBadRequest
			if maxErr := (*http.MaxBytesError)(nil); errors.As(err, &maxErr) {
				status = http.StatusRequestEntityTooLarge
			}
			errutil.HandleHTTP(ctx, w, goerr.Wrap(err, "failed to read uploaded file"), status)
			return
		}
		defer safe.Close(ctx, file)

		if route.accept != nil && !route.accept(header.Filename) {
			writeJSON(w, r, http.StatusOK, uploadResponse{Reply: route.rejectReply})
			return
		}

		data, err := io.ReadAll(file)
		if err != nil {
			errutil.HandleHTTP(ctx, w, goerr.Wrap(err, "failed to read uploaded file",
				goerr.V("filename", header.Filename)), http.StatusBadRequest)
			return
		}

		reply := summary.Summarize(ctx, model.Document{
			Filename: header.Filename,
			Kind:     route.kind,
			Data:     data,
		})
		writeJSON(w, r, http.StatusOK, uploadResponse{Reply: reply})
	}
}
