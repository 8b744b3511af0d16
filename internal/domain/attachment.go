package domain

// AttachmentOrigin tags where an attachment came from
type AttachmentOrigin string

const (
	OriginUserPicked     AttachmentOrigin = "user-picked"
	OriginVoiceRecording AttachmentOrigin = "voice-recording"
	OriginVideoRecording AttachmentOrigin = "video-recording"
)

// Attachment is a binary file staged on a draft for inclusion in a
// submission. It lives only as long as its draft; the bytes are never
// persisted as draft state (the archive after a successful submission is a
// separate, best-effort concern).
type Attachment struct {
	ID       string           `json:"id"`
	Filename string           `json:"filename"`
	MIME     string           `json:"mime"`
	Size     int64            `json:"size"`
	Origin   AttachmentOrigin `json:"origin"`
	Data     []byte           `json:"-"`
}

// IncomingFile is a candidate attachment before the policy filter runs
type IncomingFile struct {
	Filename string
	MIME     string
	Data     []byte
	Origin   AttachmentOrigin
}

// AddFilesResult summarizes one AddFiles batch. Rejected counts files that
// failed the MIME/size policy; callers surface only the aggregate signal,
// never per-file details.
type AddFilesResult struct {
	Accepted int `json:"accepted"`
	Rejected int `json:"rejected"`
}
