package usecase

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/studymate/pkg/domain/interfaces"
	"github.com/secmon-lab/studymate/pkg/domain/model"
	"github.com/secmon-lab/studymate/pkg/utils/errutil"
	"github.com/secmon-lab/studymate/pkg/utils/logging"
)

// maxSummaryInput caps the extracted text sent for summarization, in runes.
const maxSummaryInput = 10000

const (
	ReplyImageOnly       = "❌ Please upload a PNG or JPG image."
	ReplyUnsupportedFile = "❌ Unsupported file type. Please upload a PDF, PPTX, PNG or JPG file."
)

// summaryProfile holds the prompt and reply strings of one document kind.
type summaryProfile struct {
	systemPrompt string
	temperature  float64
	prefix       string
	noContent    string
	failure      string
}

var summaryProfiles = map[model.MediaKind]summaryProfile{
	model.MediaKindPDF: {
		systemPrompt: "You're a helpful study assistant. Summarize the uploaded PDF clearly and concisely in points.",
		temperature:  0.3,
		prefix:       "📄 Summary of your PDF:\n\n",
		noContent:    "❌ No text found in PDF.",
		failure:      "❌ Couldn't process the PDF.",
	},
	model.MediaKindImage: {
		systemPrompt: "You are an AI assistant summarizing lecture content from an image.",
		temperature:  0.5,
		prefix:       "📝 OCR Summary of your image:\n\n",
		noContent:    "❌ No readable text detected in the image.",
		failure:      "❌ Sorry, I couldn't process the image.",
	},
	model.MediaKindPPTX: {
		systemPrompt: "You are a helpful assistant summarizing lecture slides.",
		temperature:  0.5,
		prefix:       "📊 Summary of your slides:\n\n",
		noContent:    "❌ No readable text found in the PPTX.",
		failure:      "❌ Couldn't process the slides.",
	},
}

// SummaryUseCase turns uploaded documents into study summaries.
type SummaryUseCase struct {
	documents  interfaces.DocumentExtractor
	completion interfaces.Completion
	archive    interfaces.ArchiveStorage
	model      string
	now        func() time.Time
}

func NewSummaryUseCase(documents interfaces.DocumentExtractor, completion interfaces.Completion, archive interfaces.ArchiveStorage, model string, now func() time.Time) *SummaryUseCase {
	return &SummaryUseCase{
		documents:  documents,
		completion: completion,
		archive:    archive,
		model:      model,
		now:        now,
	}
}

// Summarize returns the reply text for an uploaded document. Failures are
// logged and turned into the fixed failure reply of the document kind.
func (uc *SummaryUseCase) Summarize(ctx context.Context, doc model.Document) string {
	profile, ok := summaryProfiles[doc.Kind]
	if !ok {
		errutil.Handle(ctx, goerr.Wrap(model.ErrUnsupportedMedia, "no summary profile", goerr.V("kind", doc.Kind)), "cannot summarize document")
		return ReplyUnsupportedFile
	}

	summary, err := uc.summarize(ctx, doc, profile)
	if err != nil {
		errutil.Handle(ctx, err, "failed to summarize document")
		return profile.failure
	}
	return summary
}

func (uc *SummaryUseCase) summarize(ctx context.Context, doc model.Document, profile summaryProfile) (string, error) {
	if uc.documents == nil {
		return "", goerr.Wrap(ErrDocumentsNotConfigured, "cannot extract document text")
	}

	uc.archiveUpload(ctx, doc)

	text, err := uc.documents.ExtractText(ctx, doc.Data, doc.Kind)
	if err != nil {
		return "", goerr.Wrap(err, "failed to extract document text", goerr.V("filename", doc.Filename))
	}
	if text == "" {
		return profile.noContent, nil
	}

	if runes := []rune(text); len(runes) > maxSummaryInput {
		text = string(runes[:maxSummaryInput])
	}

	summary, err := uc.completion.Complete(ctx, model.CompletionRequest{
		Model: uc.model,
		Messages: []model.Message{
			{Role: model.RoleSystem, Content: profile.systemPrompt},
			{Role: model.RoleUser, Content: text},
		},
		Temperature: profile.temperature,
	})
	if err != nil {
		return "", goerr.Wrap(err, "failed to summarize text", goerr.V("filename", doc.Filename))
	}

	return profile.prefix + summary, nil
}

// archiveUpload stores a copy of the upload when archiving is enabled. It
// never fails the request.
func (uc *SummaryUseCase) archiveUpload(ctx context.Context, doc model.Document) {
	if uc.archive == nil {
		return
	}

	key := fmt.Sprintf("uploads/%s/%d_%s", uc.now().UTC().Format(dateLayout), uc.now().UnixNano(), filepath.Base(doc.Filename))
	if err := uc.archive.Put(ctx, key, doc.Data); err != nil {
		errutil.Handle(ctx, err, "failed to archive upload")
		return
	}
	logging.From(ctx).Debug("upload archived", "key", key, "size", len(doc.Data))
}
