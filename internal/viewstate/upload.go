package viewstate

// Texts rendered by the upload view.
const (
	UploadSuccessMessage = "Quote uploaded successfully"
	UploadErrorMessage   = "Error uploading quote. Please try again later"
)

// Upload is the view-state of the quote POST. Success carries no payload.
type Upload struct {
	req request
}

// Start begins a new attempt in Pending.
func (u Upload) Start() (Upload, Attempt) {
	next := Upload{req: u.req.start()}
	return next, next.req.attempt
}

// Resolve applies the outcome of attempt; stale results are ignored.
func (u Upload) Resolve(attempt Attempt, err error) Upload {
	if !u.req.accepts(attempt) {
		return u
	}
	next := Upload{req: u.req}
	if err != nil {
		next.req.phase = Failed
		next.req.reason = err
		return next
	}
	next.req.phase = Succeeded
	return next
}

// Phase is the active variant.
func (u Upload) Phase() Phase { return u.req.phase }

// Attempt is the number of the latest started request.
func (u Upload) Attempt() Attempt { return u.req.attempt }

// Branch is what the uploader renders.
func (u Upload) Branch() Branch { return u.req.branch() }

// Reason is the failure behind Failed, or nil.
func (u Upload) Reason() error { return u.req.reason }

// Cause classifies Reason for logs.
func (u Upload) Cause() string { return causeOf(u.req.reason) }
