package models

import "strings"

// UnknownSender is stored when a message carries no From header.
const UnknownSender = "(unknown)"

// MessageSummary is one entry of an inbox listing, newest first.
type MessageSummary struct {
	ID string
}

// EmailMessage is an immutable snapshot of one fetched message: ordered
// headers, snippet and the full part tree. It is detached from the
// remote client; attachment bodies are resolved separately by id.
type EmailMessage struct {
	ID      string
	Headers []MessageHeader
	Snippet string
	Payload *MessagePart
}

type MessageHeader struct {
	Name  string
	Value string
}

// Header returns the first header whose name matches case-insensitively,
// or UnknownSender when the header is absent.
func (m *EmailMessage) Header(name string) string {
	for _, h := range m.Headers {
		if strings.EqualFold(h.Name, name) {
			return h.Value
		}
	}
	return UnknownSender
}

// MessagePart is one node of the message part tree. A part with a
// non-empty Filename is an attachment candidate; its bytes are only
// reachable through the owning message id plus AttachmentID. Container
// parts group children and are always recursed into.
type MessagePart struct {
	Filename     string
	MimeType     string
	AttachmentID string
	Parts        []*MessagePart
}

// StoredObject describes an uploaded attachment in the blob store.
type StoredObject struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	MimeType    string `json:"mimeType"`
	WebViewLink string `json:"webViewLink"`
}

// ExtractedAttachment is a decoded attachment ready for upload and
// conversion. Plain value type, no file-like indirection.
type ExtractedAttachment struct {
	Filename string
	MimeType string
	Data     []byte
}
