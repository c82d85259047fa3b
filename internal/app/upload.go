package app

import (
	"context"

	"go.uber.org/zap"

	"github.com/recruitgenius/recruit-cli/internal/recruit"
	"github.com/recruitgenius/recruit-cli/internal/upload"
)

const (
	uploadNotification = "upload-cv"

	MsgUploading    = "Uploading CV..."
	MsgUploaded     = "CV uploaded successfully!"
	MsgUploadFailed = "Failed to upload CV"
)

// UploadPage walks through picking a CV file and sending it.
type UploadPage struct {
	env

	File      *upload.File
	Uploading bool
	Result    *recruit.UploadResult
	Err       error
}

func NewUploadPage(backend Backend, notifier Notifier, log *zap.Logger) *UploadPage {
	return &UploadPage{env: newEnv(backend, notifier, log, "upload")}
}

// Select picks f for upload and clears any previous outcome. A file of a
// type the API does not accept only raises a notification; the page is left
// as it was and false is returned.
func (p *UploadPage) Select(f *upload.File) bool {
	if err := upload.Check(f); err != nil {
		p.logger.Debug("rejected file", zap.Error(err))
		p.notifier.Notify(Notification{Level: LevelError, Message: upload.UnsupportedTypeMessage})
		return false
	}

	p.File = f
	p.Uploading = false
	p.Result = nil
	p.Err = nil
	return true
}

// Upload sends the selected file. It does nothing when no file is selected.
func (p *UploadPage) Upload(ctx context.Context) {
	if p.File == nil {
		return
	}

	p.Uploading = true
	p.Err = nil
	defer func() { p.Uploading = false }()

	p.notifier.Notify(Notification{Level: LevelLoading, ID: uploadNotification, Message: MsgUploading})

	body, closer, err := p.File.Open()
	if err != nil {
		p.Err = err
		p.fail(uploadNotification, MsgUploadFailed, err)
		return
	}
	defer closer.Close()

	result, err := p.backend.UploadCV(ctx, body)
	if err != nil {
		p.Err = err
		p.fail(uploadNotification, MsgUploadFailed, err)
		return
	}

	p.Result = result
	p.notifier.Notify(Notification{Level: LevelSuccess, ID: uploadNotification, Message: MsgUploaded})
}

// Reset returns the page to its initial state.
func (p *UploadPage) Reset() {
	p.File = nil
	p.Uploading = false
	p.Result = nil
	p.Err = nil
}
